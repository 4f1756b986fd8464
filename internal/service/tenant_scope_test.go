package service

import (
	"testing"

	"hostel-data/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestResolveHostelScope(t *testing.T) {
	cases := []struct {
		name        string
		role        string
		requested   string
		callerOwn   string
		wantHostel  string
		wantAll     bool
		wantErr     bool
	}{
		{"super with explicit hostel", domain.RoleSystemAdmin, "h2", "h1", "h2", false, false},
		{"super falls back to own hostel", domain.RoleSystemAdmin, "", "h1", "h1", false, false},
		{"super with nothing sees all", domain.RoleSystemAdmin, "", "", "", true, false},
		{"warden scoped to own hostel", domain.RoleWarden, "", "h1", "h1", false, false},
		{"warden may name own hostel", domain.RoleWarden, "h1", "h1", "h1", false, false},
		{"warden denied foreign hostel", domain.RoleWarden, "h2", "h1", "", false, true},
		{"warden without hostel rejected", domain.RoleWarden, "", "", "", false, true},
		{"staff denied foreign hostel", domain.RoleStaff, "h9", "h3", "", false, true},
		{"unknown role treated as scoped", "", "", "", "", false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scope, err := ResolveHostelScope(tc.role, tc.requested, tc.callerOwn)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.wantHostel, scope.HostelID)
			require.Equal(t, tc.wantAll, scope.AllHostels)
		})
	}
}
