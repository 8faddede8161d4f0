package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayKeyUsesLocation(t *testing.T) {
	utc := time.Date(2024, 3, 9, 23, 30, 0, 0, time.UTC)
	tokyo := time.FixedZone("JST", 9*60*60)

	assert.Equal(t, "2024-03-09", DayKey(utc, time.UTC))
	assert.Equal(t, "2024-03-10", DayKey(utc, tokyo))
}

func TestStartOfDay(t *testing.T) {
	ny := time.FixedZone("EST", -5*60*60)
	in := time.Date(2024, 3, 10, 2, 0, 0, 0, time.UTC)

	got := StartOfDay(in, ny)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, ny), got)
	assert.Equal(t, ny, got.Location())
}
