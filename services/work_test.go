package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkPercent(t *testing.T) {
	cases := []struct {
		within, total, want int
	}{
		{0, 0, 0},
		{0, 10, 0},
		{10, 10, 100},
		{1, 3, 33},
		{2, 3, 67},
		{12, 10, 100},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, WorkPercent(tc.within, tc.total), "%d/%d", tc.within, tc.total)
	}
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	day := time.Date(2024, 3, 1, 3, 0, 0, 0, loc) // 2024-02-29 21:30 UTC

	from, to := DayBounds(day)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), to)
}
