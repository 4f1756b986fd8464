package httpapi

import (
	"database/sql"
	"net/http"
	"strings"

	"hostel-data/internal/domain"
	"hostel-data/internal/repository"
)

// HostelsHandler manages hostels. Creating and deleting hostels is a
// platform operation, so writes require the super-tenant role.
type HostelsHandler struct {
	Repo  repository.HostelsRepository
	Scope *ScopeResolver
}

func NewHostelsHandler(repo repository.HostelsRepository, scope *ScopeResolver) *HostelsHandler {
	return &HostelsHandler{Repo: repo, Scope: scope}
}

func hostelView(h *domain.Hostel) map[string]any {
	return map[string]any{
		"hostel_id":   h.HostelID,
		"hostel_name": h.HostelName,
		"address":     nullStr(h.Address),
		"warden":      nullStr(h.Warden),
		"phone":       nullStr(h.Phone),
		"status":      h.Status,
		"created_at":  nullTime(h.CreatedAt),
	}
}

func (h *HostelsHandler) requireSuper(r *http.Request) bool {
	return domain.IsSuperTenant(h.Scope.CallerRole(r))
}

func (h *HostelsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/hostel/api/v1/hostels":
		switch r.Method {
		case http.MethodGet:
			hostels, err := h.Repo.ListHostels(r.Context())
			if err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to list hostels"))
				return
			}
			out := make([]any, 0, len(hostels))
			for _, hostel := range hostels {
				out = append(out, hostelView(hostel))
			}
			writeJSON(w, http.StatusOK, Ok(map[string]any{"items": out, "total": len(out)}))
		case http.MethodPost:
			if !h.requireSuper(r) {
				writeJSON(w, http.StatusOK, Fail("permission denied"))
				return
			}
			var payload struct {
				HostelName string `json:"hostel_name"`
				Address    string `json:"address"`
				Warden     string `json:"warden"`
				Phone      string `json:"phone"`
			}
			if err := readBodyJSON(r, 1<<20, &payload); err != nil || payload.HostelName == "" {
				writeJSON(w, http.StatusOK, Fail("hostel_name is required"))
				return
			}
			hostel := &domain.Hostel{
				HostelName: payload.HostelName,
				Status:     "active",
			}
			if payload.Address != "" {
				hostel.Address = sql.NullString{String: payload.Address, Valid: true}
			}
			if payload.Warden != "" {
				hostel.Warden = sql.NullString{String: payload.Warden, Valid: true}
			}
			if payload.Phone != "" {
				hostel.Phone = sql.NullString{String: payload.Phone, Valid: true}
			}
			hostelID, err := h.Repo.CreateHostel(r.Context(), hostel)
			if err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to create hostel"))
				return
			}
			writeJSON(w, http.StatusOK, Ok(map[string]any{"hostel_id": hostelID}))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}

	case strings.HasPrefix(r.URL.Path, "/hostel/api/v1/hostels/"):
		id := strings.TrimPrefix(r.URL.Path, "/hostel/api/v1/hostels/")
		if id == "" || strings.Contains(id, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodGet:
			hostel, err := h.Repo.GetHostel(r.Context(), id)
			if err != nil {
				writeJSON(w, http.StatusOK, Fail("hostel not found"))
				return
			}
			writeJSON(w, http.StatusOK, Ok(hostelView(hostel)))
		case http.MethodPut:
			if !h.requireSuper(r) {
				writeJSON(w, http.StatusOK, Fail("permission denied"))
				return
			}
			hostel, err := h.Repo.GetHostel(r.Context(), id)
			if err != nil {
				writeJSON(w, http.StatusOK, Fail("hostel not found"))
				return
			}
			var payload struct {
				HostelName *string `json:"hostel_name"`
				Address    *string `json:"address"`
				Warden     *string `json:"warden"`
				Phone      *string `json:"phone"`
				Status     *string `json:"status"`
			}
			if err := readBodyJSON(r, 1<<20, &payload); err != nil {
				writeJSON(w, http.StatusOK, Fail("invalid body"))
				return
			}
			if payload.HostelName != nil {
				hostel.HostelName = *payload.HostelName
			}
			if payload.Address != nil {
				hostel.Address = sql.NullString{String: *payload.Address, Valid: *payload.Address != ""}
			}
			if payload.Warden != nil {
				hostel.Warden = sql.NullString{String: *payload.Warden, Valid: *payload.Warden != ""}
			}
			if payload.Phone != nil {
				hostel.Phone = sql.NullString{String: *payload.Phone, Valid: *payload.Phone != ""}
			}
			if payload.Status != nil {
				hostel.Status = *payload.Status
			}
			if err := h.Repo.UpdateHostel(r.Context(), id, hostel); err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to update hostel"))
				return
			}
			writeJSON(w, http.StatusOK, Ok(map[string]any{"updated": true}))
		case http.MethodDelete:
			if !h.requireSuper(r) {
				writeJSON(w, http.StatusOK, Fail("permission denied"))
				return
			}
			if err := h.Repo.DeleteHostel(r.Context(), id); err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to delete hostel"))
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
