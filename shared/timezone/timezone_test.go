package timezone_test

import (
	"testing"
	"time"

	"stayengine/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		zone string
		want string
	}{
		{name: "empty falls back to utc", zone: "", want: "UTC"},
		{name: "unknown falls back to utc", zone: "Mars/Olympus_Mons", want: "UTC"},
		{name: "iana name", zone: "Asia/Jakarta", want: "Asia/Jakarta"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timezone.Load(tt.zone).String())
		})
	}
}

func TestNow_UsesApplicationLocation(t *testing.T) {
	assert.Equal(t, timezone.GetLocation(), timezone.Now().Location())
	assert.Equal(t, timezone.GetLocation(), timezone.NewClock().Now().Location())
}

func TestParseFormat_RoundTrip(t *testing.T) {
	parsed, err := timezone.Parse("2006-01-02 15:04", "2025-03-01 14:00")
	require.NoError(t, err)

	assert.Equal(t, timezone.GetLocation(), parsed.Location())
	assert.Equal(t, "2025-03-01 14:00", timezone.Format(parsed, "2006-01-02 15:04"))
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

	assert.True(t, timezone.FixedClock(at).Now().Equal(at))
}
