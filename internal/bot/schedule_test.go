package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBookingDate(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	date, err := parseBookingDate("24.09.2026", now)
	require.NoError(t, err)
	assert.Equal(t, "2026-09-24", date.Format("2006-01-02"))

	// Two-digit years are forgiven.
	date, err = parseBookingDate("24.09.26", now)
	require.NoError(t, err)
	assert.Equal(t, "2026-09-24", date.Format("2006-01-02"))

	_, err = parseBookingDate("tomorrow-ish", now)
	assert.ErrorIs(t, err, errDateFormat)

	_, err = parseBookingDate("31.08.2026", now)
	assert.ErrorIs(t, err, errDatePast)

	_, err = parseBookingDate("02.09.2027", now)
	assert.ErrorIs(t, err, errDateTooFar)

	// Today itself is bookable.
	_, err = parseBookingDate("01.09.2026", now)
	assert.NoError(t, err)
}

func TestParseBookingDateNearMidnight(t *testing.T) {
	// 23:30 local in a UTC-4 zone is already the next day in UTC; the
	// local calendar day is what counts.
	zone := time.FixedZone("UTC-4", -4*3600)
	now := time.Date(2026, 9, 1, 23, 30, 0, 0, zone)

	_, err := parseBookingDate("01.09.2026", now)
	assert.NoError(t, err)

	_, err = parseBookingDate("31.08.2026", now)
	assert.ErrorIs(t, err, errDatePast)
}
