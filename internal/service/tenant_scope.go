package service

import (
	"fmt"

	"hostel-data/internal/domain"
)

// TenantScope is the hostel scope a request resolves to. HostelID == ""
// with AllHostels set means the caller sees every hostel (SystemAdmin with
// no explicit selection).
type TenantScope struct {
	HostelID   string
	AllHostels bool
}

// ResolveHostelScope decides which hostel a request operates on.
//
// Resolution order, first match wins:
//  1. an explicitly requested hostel (query param or header), allowed only
//     for super-tenant callers or when it matches the caller's own hostel
//  2. the caller's own hostel
//  3. for super-tenant callers, all hostels
//
// Scoped callers without a hostel of their own are rejected: a request that
// cannot be pinned to a hostel must not fall through to cross-tenant reads.
func ResolveHostelScope(callerRole, requestedHostelID, callerHostelID string) (TenantScope, error) {
	if domain.IsSuperTenant(callerRole) {
		if requestedHostelID != "" {
			return TenantScope{HostelID: requestedHostelID}, nil
		}
		if callerHostelID != "" {
			return TenantScope{HostelID: callerHostelID}, nil
		}
		return TenantScope{AllHostels: true}, nil
	}

	if requestedHostelID != "" && requestedHostelID != callerHostelID {
		return TenantScope{}, fmt.Errorf("access to hostel %s denied", requestedHostelID)
	}
	if callerHostelID == "" {
		return TenantScope{}, fmt.Errorf("caller has no hostel scope")
	}
	return TenantScope{HostelID: callerHostelID}, nil
}
