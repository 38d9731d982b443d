package rating_test

import (
	"testing"

	"github.com/pracor/pracor/internal/rating"
	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score float64
		want  rating.Stars
	}{
		{score: 0, want: rating.Stars{Full: 0, Half: 0, Blank: 5}},
		{score: 0.24, want: rating.Stars{Full: 0, Half: 0, Blank: 5}},
		{score: 0.25, want: rating.Stars{Full: 0, Half: 1, Blank: 4}},
		{score: 0.74, want: rating.Stars{Full: 0, Half: 1, Blank: 4}},
		{score: 0.75, want: rating.Stars{Full: 1, Half: 0, Blank: 4}},
		{score: 1.0, want: rating.Stars{Full: 1, Half: 0, Blank: 4}},
		{score: 3.5, want: rating.Stars{Full: 3, Half: 1, Blank: 1}},
		{score: 4.6, want: rating.Stars{Full: 4, Half: 1, Blank: 0}},
		{score: 4.8, want: rating.Stars{Full: 5, Half: 0, Blank: 0}},
		{score: 5.0, want: rating.Stars{Full: 5, Half: 0, Blank: 0}},
		{score: -1, want: rating.Stars{Full: 0, Half: 0, Blank: 5}},
		{score: 7, want: rating.Stars{Full: 5, Half: 0, Blank: 0}},
	}

	for _, tt := range tests {
		got := rating.Split(tt.score)
		assert.Equal(t, tt.want, got, "score %v", tt.score)
		assert.Equal(t, rating.MaxStars, got.Full+got.Half+got.Blank, "score %v", tt.score)
	}
}

func TestSplitAll(t *testing.T) {
	t.Parallel()

	stars := rating.SplitAll(map[string]float64{
		"overallScore": 4.6,
		"workLife":     2.2,
	})

	assert.Len(t, stars, 2)
	assert.Equal(t, rating.Stars{Full: 4, Half: 1}, stars["overallScore"])
	assert.Equal(t, rating.Stars{Full: 2, Blank: 3}, stars["workLife"])
}
