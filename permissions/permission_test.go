package permissions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayengine/permissions"
)

func TestGet_EmbeddedTable(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name      string
		path      string
		method    string
		wantSkip  bool
		wantRoles []string
	}{
		{name: "public quote", path: "/v1/properties/{id}/quote", method: "GET", wantSkip: true},
		{name: "public listing without trailing slash", path: "/v1/properties", method: "GET", wantSkip: true},
		{name: "host only block", path: "/v1/properties/{id}/unavailability", method: "POST", wantRoles: []string{"host", "admin"}},
		{name: "booking create", path: "/v1/bookings/", method: "post", wantRoles: []string{"guest", "host", "admin"}},
		{name: "internal export", path: "/v1/internal/payouts/export", method: "POST", wantRoles: []string{"system"}},
		{name: "unknown route", path: "/v1/rooms", method: "GET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.wantSkip, permission.Skip)
			assert.Equal(t, tt.wantRoles, permission.Permissions)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := permissions.Parse([]byte("{"))

	assert.Error(t, err)
}
