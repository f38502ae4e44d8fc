package app

import "learning-service/internal/domain"

// completionPercentage returns completed/total*100. A zero total yields NaN,
// which callers pass through untouched.
func completionPercentage(completed, total int) domain.Percentage {
	return domain.Percentage(float64(completed) / float64(total) * 100)
}
