package leave_test

import (
	"testing"
	"time"

	"github.com/shkhalid/maxerp/internal/leave"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestInclusiveDayCount(t *testing.T) {
	t.Run("single day counts as one", func(t *testing.T) {
		assert.Equal(t, 1, leave.InclusiveDayCount(day(2027, 3, 10), day(2027, 3, 10)))
	})

	t.Run("both ends included", func(t *testing.T) {
		assert.Equal(t, 3, leave.InclusiveDayCount(day(2027, 3, 1), day(2027, 3, 3)))
	})

	t.Run("month boundary", func(t *testing.T) {
		assert.Equal(t, 4, leave.InclusiveDayCount(day(2027, 3, 30), day(2027, 4, 2)))
	})

	t.Run("time of day is ignored", func(t *testing.T) {
		start := time.Date(2027, 3, 1, 23, 59, 0, 0, time.UTC)
		end := time.Date(2027, 3, 2, 0, 1, 0, 0, time.UTC)
		assert.Equal(t, 2, leave.InclusiveDayCount(start, end))
	})
}

func TestValidateDateRange(t *testing.T) {
	today := day(2027, 6, 15)

	t.Run("future range is valid", func(t *testing.T) {
		assert.True(t, leave.ValidateDateRange(day(2027, 6, 20), day(2027, 6, 22), today))
	})

	t.Run("range starting today is valid", func(t *testing.T) {
		assert.True(t, leave.ValidateDateRange(day(2027, 6, 15), day(2027, 6, 16), today))
	})

	t.Run("start in the past is invalid", func(t *testing.T) {
		assert.False(t, leave.ValidateDateRange(day(2027, 6, 14), day(2027, 6, 20), today))
	})

	t.Run("end in the past is invalid", func(t *testing.T) {
		assert.False(t, leave.ValidateDateRange(day(2027, 6, 20), day(2027, 6, 10), today))
	})

	t.Run("inverted range with both ends in the future passes", func(t *testing.T) {
		// Range order is enforced at the workflow entry point, not here.
		assert.True(t, leave.ValidateDateRange(day(2027, 6, 22), day(2027, 6, 20), today))
	})

	t.Run("time of day on today is ignored", func(t *testing.T) {
		now := time.Date(2027, 6, 15, 18, 30, 0, 0, time.UTC)
		assert.True(t, leave.ValidateDateRange(day(2027, 6, 15), day(2027, 6, 15), now))
	})
}

func TestBalanceYearPolicy(t *testing.T) {
	now := day(2027, 12, 20)
	start := day(2028, 1, 5)

	t.Run("current year policy follows the clock", func(t *testing.T) {
		assert.Equal(t, 2027, leave.CurrentYearPolicy(now, start))
	})

	t.Run("start date policy follows the request", func(t *testing.T) {
		assert.Equal(t, 2028, leave.StartDateYearPolicy(now, start))
	})
}
