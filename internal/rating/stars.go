// Package rating turns average scores into the star ratings shown next to a company.
package rating

import "math"

// MaxStars is the number of stars a score is drawn with.
const MaxStars = 5

// Stars is a score split into full, half and blank stars.
// Full+Half+Blank always equals MaxStars.
type Stars struct {
	Full  int `json:"full"`
	Half  int `json:"half"`
	Blank int `json:"blank"`
}

// Split draws a score in [0, 5] as stars. A remainder in [0.25, 0.75) becomes a
// half star and a remainder of 0.75 or more rounds up to a full star.
// Scores outside the range are clamped.
func Split(score float64) Stars {
	score = math.Max(0, math.Min(MaxStars, score))

	full := int(math.Floor(score))
	remainder := score - float64(full)

	half := 0
	switch {
	case remainder >= 0.75:
		full++
	case remainder >= 0.25:
		half = 1
	}

	return Stars{
		Full:  full,
		Half:  half,
		Blank: MaxStars - full - half,
	}
}

// SplitAll splits every score of a dimension map.
func SplitAll(scores map[string]float64) map[string]Stars {
	stars := make(map[string]Stars, len(scores))
	for dimension, score := range scores {
		stars[dimension] = Split(score)
	}
	return stars
}
