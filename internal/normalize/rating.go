package normalize

import (
	"math"
	"strconv"
	"strings"

	"showflix/internal/media"
)

// ParseRating reads rating text such as "7.5" or "7.5/10" onto the
// 0..media.MaxRating scale. Missing or unparsable text yields nil, never 0.
// Values outside the scale are clamped.
func ParseRating(text string) *float64 {
	text = strings.TrimSpace(text)
	text = strings.TrimSpace(strings.TrimSuffix(text, "/10"))
	if text == "" {
		return nil
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}

	v = math.Max(0, math.Min(media.MaxRating, v))
	v = math.Round(v*10) / 10
	return &v
}
