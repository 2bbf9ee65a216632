package entities_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/drivelane/rental-backend/internal/domain/entities"
)

func TestReserve_Overlaps(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC)
	}

	reserve := entities.Reserve{StartDate: day(5), EndDate: day(10)}

	cases := []struct {
		name     string
		start    time.Time
		end      time.Time
		overlaps bool
	}{
		{"starts inside", day(7), day(12), true},
		{"ends inside", day(3), day(7), true},
		{"encloses", day(1), day(15), true},
		{"enclosed", day(6), day(9), true},
		{"identical", day(5), day(10), true},
		{"ends exactly at start", day(1), day(5), false},
		{"starts exactly at end", day(10), day(15), false},
		{"fully before", day(1), day(4), false},
		{"fully after", day(11), day(15), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlaps, reserve.Overlaps(tc.start, tc.end))
		})
	}
}
