package utils_test

import (
	"testing"
	"time"

	"tourbook/internal/utils"

	"github.com/stretchr/testify/require"
)

func TestDayKey_TruncatesToUTCDay(t *testing.T) {
	morning := time.Date(2026, 7, 14, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 7, 14, 23, 59, 59, 0, time.UTC)

	require.Equal(t, "2026-07-14", utils.DayKey(morning))
	require.Equal(t, utils.DayKey(morning), utils.DayKey(evening))
}

func TestDayKey_ConvertsZoneBeforeTruncating(t *testing.T) {
	// 23:00 in UTC-3 is already the next day in UTC
	zone := time.FixedZone("UTC-3", -3*60*60)
	local := time.Date(2026, 7, 14, 23, 0, 0, 0, zone)

	require.Equal(t, "2026-07-15", utils.DayKey(local))
}

func TestParseDayKey_AcceptsBothShapes(t *testing.T) {
	fromDay, err := utils.ParseDayKey("2026-07-14")
	require.NoError(t, err)
	require.Equal(t, "2026-07-14", fromDay)

	fromStamp, err := utils.ParseDayKey("2026-07-14T18:30:00Z")
	require.NoError(t, err)
	require.Equal(t, "2026-07-14", fromStamp)

	fromOffset, err := utils.ParseDayKey("2026-07-14T23:30:00-03:00")
	require.NoError(t, err)
	require.Equal(t, "2026-07-15", fromOffset)
}

func TestParseDayKey_RejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "14/07/2026", "tomorrow", "2026-13-01"} {
		_, err := utils.ParseDayKey(input)
		require.Error(t, err, input)
	}
}

func TestDayKeyBefore_OrdersChronologically(t *testing.T) {
	require.True(t, utils.DayKeyBefore("2026-07-14", "2026-07-15"))
	require.True(t, utils.DayKeyBefore("2026-09-30", "2026-10-01"))
	require.False(t, utils.DayKeyBefore("2026-07-15", "2026-07-15"))
	require.False(t, utils.DayKeyBefore("2027-01-01", "2026-12-31"))
}
