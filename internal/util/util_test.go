package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	require.Equal(t, "00:00:00", FormatDuration(0))
	require.Equal(t, "00:00:59", FormatDuration(59*time.Second))
	require.Equal(t, "01:30:05", FormatDuration(90*time.Minute+5*time.Second))
	require.Equal(t, "27:00:00", FormatDuration(27*time.Hour))
	require.Equal(t, "00:00:00", FormatDuration(-time.Minute))
}

func TestFormatBudget(t *testing.T) {
	require.Equal(t, "$500", FormatBudget(500))
	require.Equal(t, "$2k", FormatBudget(1500))
	require.Equal(t, "$120k", FormatBudget(120000))
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", Truncate("short", 10))
	require.Equal(t, "exactly", Truncate("exactly", 7))
	require.Equal(t, "long ...", Truncate("long string here", 8))
	require.Equal(t, "ab", Truncate("ab", 2))
}
