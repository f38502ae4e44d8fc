package app

import "learning-service/internal/domain"

// CanAccess reports whether user may read lectures of courseID. Admins are
// always allowed; everyone else needs the course in their subscription.
func CanAccess(user domain.User, courseID string) bool {
	if user.IsAdmin() {
		return true
	}
	return isSubscribed(user, courseID)
}

func isSubscribed(user domain.User, courseID string) bool {
	for _, id := range user.Subscription {
		if id == courseID {
			return true
		}
	}
	return false
}
