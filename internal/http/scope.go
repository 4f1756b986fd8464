package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"hostel-data/internal/repository"
	"hostel-data/internal/service"
)

// ScopeResolver turns an incoming request into a hostel scope.
//
// Caller identity comes from a bearer session token when one is presented,
// otherwise from the X-User-Role / X-User-Id headers the gateway injects.
// The requested hostel comes from the hostel_id query param, falling back
// to the X-Hostel-Id header. The precedence rules live in
// service.ResolveHostelScope.
type ScopeResolver struct {
	Auth     service.AuthService       // optional
	Resolver repository.TenantResolver // optional, resolves X-User-Id to its hostel
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

// CallerRole extracts the caller's role, preferring a valid session over
// the gateway header.
func (s *ScopeResolver) CallerRole(r *http.Request) string {
	if s.Auth != nil {
		if token := bearerToken(r); token != "" {
			if session, err := s.Auth.ValidateToken(r.Context(), token); err == nil {
				return session.Role
			}
		}
	}
	return r.Header.Get("X-User-Role")
}

// HostelScope resolves the scope for a request. An empty HostelID with
// AllHostels set means "every hostel".
func (s *ScopeResolver) HostelScope(r *http.Request) (service.TenantScope, error) {
	requested := r.URL.Query().Get("hostel_id")
	if requested == "" {
		requested = r.Header.Get("X-Hostel-Id")
	}

	role := r.Header.Get("X-User-Role")
	callerHostelID := ""

	if s.Auth != nil {
		if token := bearerToken(r); token != "" {
			if session, err := s.Auth.ValidateToken(r.Context(), token); err == nil {
				role = session.Role
				callerHostelID = session.HostelID
				return service.ResolveHostelScope(role, requested, callerHostelID)
			}
		}
	}

	if userID := r.Header.Get("X-User-Id"); userID != "" && s.Resolver != nil {
		if hostelID, err := s.Resolver.HostelIDByUserID(r.Context(), userID); err == nil {
			callerHostelID = hostelID
		}
	}

	return service.ResolveHostelScope(role, requested, callerHostelID)
}

// HostelScopeStrict is HostelScope for endpoints that operate on a single
// hostel: an all-hostels scope is rejected.
func (s *ScopeResolver) HostelScopeStrict(r *http.Request) (string, error) {
	scope, err := s.HostelScope(r)
	if err != nil {
		return "", err
	}
	if scope.AllHostels {
		return "", errHostelRequired
	}
	return scope.HostelID, nil
}

var errHostelRequired = errors.New("hostel_id is required")
