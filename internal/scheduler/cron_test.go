package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCronSchedule(t *testing.T) {
	tests := []struct {
		schedule string
		valid    bool
	}{
		{"0 * * * *", true},    // Every hour
		{"*/15 * * * *", true}, // Every 15 minutes
		{"0 3 * * *", true},    // Daily at 03:00
		{"0 0 * * 0", true},    // Weekly on Sunday
		{"invalid", false},
		{"* * * *", false},    // Missing field
		{"60 * * * *", false}, // Invalid minute
		{"0 25 * * *", false}, // Invalid hour
	}

	for _, tt := range tests {
		t.Run(tt.schedule, func(t *testing.T) {
			err := ValidateCronSchedule(tt.schedule)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestDescribeSchedule(t *testing.T) {
	assert.Equal(t, "Daily at 03:00", DescribeSchedule("0 3 * * *"))
	assert.Equal(t, "Every 15 minutes", DescribeSchedule("*/15 * * * *"))
	assert.Equal(t, "Custom schedule: 5 4 * * *", DescribeSchedule("5 4 * * *"))
}

func TestNextRunTime(t *testing.T) {
	from := time.Date(2024, time.June, 12, 2, 30, 0, 0, time.Local)

	next, err := NextRunTime("0 3 * * *", from)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 12, 3, 0, 0, 0, time.Local), next)

	_, err = NextRunTime("invalid", from)
	assert.Error(t, err)
}
