package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitExceeded(t *testing.T) {
	const limit = 5

	// Attempts up to the limit are allowed, the counter includes the
	// current attempt.
	for count := int64(1); count <= limit; count++ {
		assert.False(t, rateLimitExceeded(count, limit), "attempt %d should pass", count)
	}
	assert.True(t, rateLimitExceeded(limit+1, limit))
	assert.True(t, rateLimitExceeded(limit+100, limit))
}

func TestValidStatus(t *testing.T) {
	for _, status := range []string{
		StatusNew, StatusProcessing, StatusConfirmed, StatusCompleted, StatusCancelled,
	} {
		assert.True(t, ValidStatus(status), status)
	}
	assert.False(t, ValidStatus("sideways"))
	assert.False(t, ValidStatus(""))
}
