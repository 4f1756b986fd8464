package httpapi

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"hostel-data/internal/domain"
	"hostel-data/internal/repository"
)

type ComplaintsHandler struct {
	Repo  repository.ComplaintsRepository
	Scope *ScopeResolver
}

func NewComplaintsHandler(repo repository.ComplaintsRepository, scope *ScopeResolver) *ComplaintsHandler {
	return &ComplaintsHandler{Repo: repo, Scope: scope}
}

func complaintView(c *domain.Complaint) map[string]any {
	return map[string]any{
		"complaint_id": c.ComplaintID,
		"hostel_id":    c.HostelID,
		"student_id":   nullStr(c.StudentID),
		"room_id":      nullStr(c.RoomID),
		"category":     c.Category,
		"description":  c.Description,
		"status":       c.Status,
		"resolved_at":  nullTime(c.ResolvedAt),
		"created_at":   nullTime(c.CreatedAt),
	}
}

func (h *ComplaintsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	hostelID, err := h.Scope.HostelScopeStrict(r)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}

	switch {
	case r.URL.Path == "/hostel/api/v1/complaints":
		switch r.Method {
		case http.MethodGet:
			q := r.URL.Query()
			complaints, total, err := h.Repo.ListComplaints(r.Context(), hostelID,
				q.Get("status"), parseInt(q.Get("page"), 1), parseInt(q.Get("size"), 20))
			if err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to list complaints"))
				return
			}
			items := make([]any, 0, len(complaints))
			for _, c := range complaints {
				items = append(items, complaintView(c))
			}
			writeJSON(w, http.StatusOK, Ok(map[string]any{"items": items, "total": total}))
		case http.MethodPost:
			var payload struct {
				StudentID   string `json:"student_id"`
				RoomID      string `json:"room_id"`
				Category    string `json:"category"`
				Description string `json:"description"`
			}
			if err := readBodyJSON(r, 1<<20, &payload); err != nil {
				writeJSON(w, http.StatusOK, Fail("invalid body"))
				return
			}
			if payload.Category == "" || payload.Description == "" {
				writeJSON(w, http.StatusOK, Fail("category and description are required"))
				return
			}
			complaint := &domain.Complaint{
				Category:    payload.Category,
				Description: payload.Description,
				Status:      domain.ComplaintOpen,
			}
			if payload.StudentID != "" {
				complaint.StudentID = sql.NullString{String: payload.StudentID, Valid: true}
			}
			if payload.RoomID != "" {
				complaint.RoomID = sql.NullString{String: payload.RoomID, Valid: true}
			}
			complaintID, err := h.Repo.CreateComplaint(r.Context(), hostelID, complaint)
			if err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to create complaint"))
				return
			}
			writeJSON(w, http.StatusOK, Ok(map[string]any{"complaint_id": complaintID}))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}

	case strings.HasPrefix(r.URL.Path, "/hostel/api/v1/complaints/"):
		id := strings.TrimPrefix(r.URL.Path, "/hostel/api/v1/complaints/")
		if id == "" || strings.Contains(id, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodGet:
			complaint, err := h.Repo.GetComplaint(r.Context(), hostelID, id)
			if err != nil {
				writeJSON(w, http.StatusOK, Fail("complaint not found"))
				return
			}
			writeJSON(w, http.StatusOK, Ok(complaintView(complaint)))
		case http.MethodPut:
			complaint, err := h.Repo.GetComplaint(r.Context(), hostelID, id)
			if err != nil {
				writeJSON(w, http.StatusOK, Fail("complaint not found"))
				return
			}
			var payload struct {
				Status      *string `json:"status"`
				Description *string `json:"description"`
			}
			if err := readBodyJSON(r, 1<<20, &payload); err != nil {
				writeJSON(w, http.StatusOK, Fail("invalid body"))
				return
			}
			if payload.Status != nil {
				switch *payload.Status {
				case domain.ComplaintOpen, domain.ComplaintInProgress:
					complaint.Status = *payload.Status
					complaint.ResolvedAt = sql.NullTime{}
				case domain.ComplaintResolved:
					complaint.Status = *payload.Status
					complaint.ResolvedAt = sql.NullTime{Time: time.Now(), Valid: true}
				default:
					writeJSON(w, http.StatusOK, Fail("invalid status"))
					return
				}
			}
			if payload.Description != nil {
				complaint.Description = *payload.Description
			}
			if err := h.Repo.UpdateComplaint(r.Context(), hostelID, id, complaint); err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to update complaint"))
				return
			}
			writeJSON(w, http.StatusOK, Ok(map[string]any{"updated": true}))
		case http.MethodDelete:
			if err := h.Repo.DeleteComplaint(r.Context(), hostelID, id); err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to delete complaint"))
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
