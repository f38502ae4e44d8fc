package domain

import (
	"encoding/json"
	"math"
)

// Percentage is a completion ratio scaled to 0..100. It may hold NaN when a
// course has no lectures; JSON renders non-finite values as null.
type Percentage float64

func (p Percentage) MarshalJSON() ([]byte, error) {
	f := float64(p)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}
