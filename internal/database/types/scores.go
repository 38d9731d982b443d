package types

import "math"

// Dimensions lists the five rating dimensions in display order.
var Dimensions = []string{"overallScore", "advancement", "workLife", "compensation", "environment"}

// DisplayScores are the per-dimension averages of a company, rounded to one decimal.
type DisplayScores struct {
	OverallScore float64 `json:"overallScore"`
	Advancement  float64 `json:"advancement"`
	WorkLife     float64 `json:"workLife"`
	Compensation float64 `json:"compensation"`
	Environment  float64 `json:"environment"`
}

// ByDimension returns the scores keyed by the names in Dimensions.
func (d *DisplayScores) ByDimension() map[string]float64 {
	return map[string]float64{
		"overallScore": d.OverallScore,
		"advancement":  d.Advancement,
		"workLife":     d.WorkLife,
		"compensation": d.Compensation,
		"environment":  d.Environment,
	}
}

// Display derives the average scores from the stored totals.
// It returns nil when no review has been counted yet.
func (t ScoreTotals) Display() *DisplayScores {
	if t.ReviewCount == 0 {
		return nil
	}

	avg := func(sum int64) float64 {
		return roundTenth(float64(sum) / float64(t.ReviewCount))
	}

	return &DisplayScores{
		OverallScore: avg(t.OverallScore),
		Advancement:  avg(t.Advancement),
		WorkLife:     avg(t.WorkLife),
		Compensation: avg(t.Compensation),
		Environment:  avg(t.Environment),
	}
}

// AsDisplay returns the ratings of a single review in display form.
func (r Ratings) AsDisplay() *DisplayScores {
	return &DisplayScores{
		OverallScore: float64(r.OverallScore),
		Advancement:  float64(r.Advancement),
		WorkLife:     float64(r.WorkLife),
		Compensation: float64(r.Compensation),
		Environment:  float64(r.Environment),
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
