package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "2024-01-01 00:00:00", FormatTimestamp(1704067200))
	assert.Equal(t, "1970-01-01 00:00:00", FormatTimestamp(0))
}
