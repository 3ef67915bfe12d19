package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Parsed API dates are UTC midnight even when the server clock runs in
// another zone; today must never classify as past.
func TestIsPastDay(t *testing.T) {
	local := time.Now()
	utcMidnight := func(offsetDays int) time.Time {
		d := local.AddDate(0, 0, offsetDays)
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}

	assert.True(t, isPastDay(utcMidnight(-1)))
	assert.False(t, isPastDay(utcMidnight(0)))
	assert.False(t, isPastDay(utcMidnight(1)))
}
