package httpapi

import (
	"database/sql"
	"net/http"
	"strings"

	"hostel-data/internal/domain"
	"hostel-data/internal/repository"
)

type StaffHandler struct {
	Repo  repository.StaffRepository
	Scope *ScopeResolver
}

func NewStaffHandler(repo repository.StaffRepository, scope *ScopeResolver) *StaffHandler {
	return &StaffHandler{Repo: repo, Scope: scope}
}

func staffView(s *domain.StaffMember) map[string]any {
	return map[string]any{
		"staff_id":   s.StaffID,
		"hostel_id":  s.HostelID,
		"full_name":  s.FullName,
		"role":       s.Role,
		"phone":      nullStr(s.Phone),
		"status":     s.Status,
		"created_at": nullTime(s.CreatedAt),
	}
}

func (h *StaffHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	hostelID, err := h.Scope.HostelScopeStrict(r)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}

	switch {
	case r.URL.Path == "/hostel/api/v1/staff":
		switch r.Method {
		case http.MethodGet:
			q := r.URL.Query()
			staff, total, err := h.Repo.ListStaff(r.Context(), hostelID,
				q.Get("role"), parseInt(q.Get("page"), 1), parseInt(q.Get("size"), 20))
			if err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to list staff"))
				return
			}
			items := make([]any, 0, len(staff))
			for _, s := range staff {
				items = append(items, staffView(s))
			}
			writeJSON(w, http.StatusOK, Ok(map[string]any{"items": items, "total": total}))
		case http.MethodPost:
			var payload struct {
				FullName string `json:"full_name"`
				Role     string `json:"role"`
				Phone    string `json:"phone"`
			}
			if err := readBodyJSON(r, 1<<20, &payload); err != nil {
				writeJSON(w, http.StatusOK, Fail("invalid body"))
				return
			}
			if payload.FullName == "" || payload.Role == "" {
				writeJSON(w, http.StatusOK, Fail("full_name and role are required"))
				return
			}
			member := &domain.StaffMember{
				FullName: payload.FullName,
				Role:     payload.Role,
				Status:   "active",
			}
			if payload.Phone != "" {
				member.Phone = sql.NullString{String: payload.Phone, Valid: true}
			}
			staffID, err := h.Repo.CreateStaff(r.Context(), hostelID, member)
			if err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to create staff member"))
				return
			}
			writeJSON(w, http.StatusOK, Ok(map[string]any{"staff_id": staffID}))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}

	case strings.HasPrefix(r.URL.Path, "/hostel/api/v1/staff/"):
		id := strings.TrimPrefix(r.URL.Path, "/hostel/api/v1/staff/")
		if id == "" || strings.Contains(id, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodPut:
			// Whole-row replace; the row is small enough that clients
			// send every field back.
			var payload struct {
				FullName string `json:"full_name"`
				Role     string `json:"role"`
				Phone    string `json:"phone"`
				Status   string `json:"status"`
			}
			if err := readBodyJSON(r, 1<<20, &payload); err != nil {
				writeJSON(w, http.StatusOK, Fail("invalid body"))
				return
			}
			if payload.FullName == "" || payload.Role == "" {
				writeJSON(w, http.StatusOK, Fail("full_name and role are required"))
				return
			}
			if payload.Status == "" {
				payload.Status = "active"
			}
			member := &domain.StaffMember{
				FullName: payload.FullName,
				Role:     payload.Role,
				Status:   payload.Status,
			}
			if payload.Phone != "" {
				member.Phone = sql.NullString{String: payload.Phone, Valid: true}
			}
			if err := h.Repo.UpdateStaff(r.Context(), hostelID, id, member); err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to update staff member"))
				return
			}
			writeJSON(w, http.StatusOK, Ok(map[string]any{"updated": true}))
		case http.MethodDelete:
			if err := h.Repo.DeleteStaff(r.Context(), hostelID, id); err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to delete staff member"))
				return
			}
			writeJSON(w, http.StatusOK, Ok(map[string]any{"deleted": true}))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}
