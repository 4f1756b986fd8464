package httpapi

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"hostel-data/internal/domain"
	"hostel-data/internal/repository"
)

type VisitorsHandler struct {
	Repo  repository.VisitorsRepository
	Scope *ScopeResolver
}

func NewVisitorsHandler(repo repository.VisitorsRepository, scope *ScopeResolver) *VisitorsHandler {
	return &VisitorsHandler{Repo: repo, Scope: scope}
}

func visitorView(v *domain.VisitorLog) map[string]any {
	return map[string]any{
		"visitor_id":   v.VisitorID,
		"hostel_id":    v.HostelID,
		"student_id":   v.StudentID,
		"visitor_name": v.VisitorName,
		"relation":     nullStr(v.Relation),
		"phone":        nullStr(v.Phone),
		"check_in":     v.CheckIn.Format(time.RFC3339),
		"check_out":    nullTime(v.CheckOut),
		"created_at":   nullTime(v.CreatedAt),
	}
}

func (h *VisitorsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	hostelID, err := h.Scope.HostelScopeStrict(r)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}

	switch {
	case r.URL.Path == "/hostel/api/v1/visitors":
		switch r.Method {
		case http.MethodGet:
			q := r.URL.Query()
			visitors, total, err := h.Repo.ListVisitors(r.Context(), hostelID,
				q.Get("student_id"), parseInt(q.Get("page"), 1), parseInt(q.Get("size"), 20))
			if err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to list visitors"))
				return
			}
			items := make([]any, 0, len(visitors))
			for _, v := range visitors {
				items = append(items, visitorView(v))
			}
			writeJSON(w, http.StatusOK, Ok(map[string]any{"items": items, "total": total}))
		case http.MethodPost:
			var payload struct {
				StudentID   string `json:"student_id"`
				VisitorName string `json:"visitor_name"`
				Relation    string `json:"relation"`
				Phone       string `json:"phone"`
			}
			if err := readBodyJSON(r, 1<<20, &payload); err != nil {
				writeJSON(w, http.StatusOK, Fail("invalid body"))
				return
			}
			if payload.StudentID == "" || payload.VisitorName == "" {
				writeJSON(w, http.StatusOK, Fail("student_id and visitor_name are required"))
				return
			}
			visitor := &domain.VisitorLog{
				StudentID:   payload.StudentID,
				VisitorName: payload.VisitorName,
				CheckIn:     time.Now(),
			}
			if payload.Relation != "" {
				visitor.Relation = sql.NullString{String: payload.Relation, Valid: true}
			}
			if payload.Phone != "" {
				visitor.Phone = sql.NullString{String: payload.Phone, Valid: true}
			}
			visitorID, err := h.Repo.CreateVisitor(r.Context(), hostelID, visitor)
			if err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to log visitor"))
				return
			}
			writeJSON(w, http.StatusOK, Ok(map[string]any{"visitor_id": visitorID}))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}

	case strings.HasPrefix(r.URL.Path, "/hostel/api/v1/visitors/"):
		rest := strings.TrimPrefix(r.URL.Path, "/hostel/api/v1/visitors/")
		parts := strings.Split(rest, "/")
		id := parts[0]
		if id == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		switch {
		case len(parts) == 2 && parts[1] == "checkout" && r.Method == http.MethodPost:
			if err := h.Repo.CheckOutVisitor(r.Context(), hostelID, id, time.Now()); err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to check out visitor"))
				return
			}
			writeJSON(w, http.StatusOK, Ok(map[string]any{"checked_out": true}))
		case len(parts) == 1 && r.Method == http.MethodDelete:
			if err := h.Repo.DeleteVisitor(r.Context(), hostelID, id); err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to delete visitor log"))
				return
			}
			writeJSON(w, http.StatusOK, Ok(map[string]any{"deleted": true}))
		default:
			w.WriteHeader(http.StatusNotFound)
		}

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}
