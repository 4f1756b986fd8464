package httpapi

import (
	"net/http"
	"strings"
	"time"

	"hostel-data/internal/domain"
	"hostel-data/internal/repository"
)

// LeavesHandler manages student leave requests. Approve and reject share
// the pending-only compare-and-set guard with room transfers.
type LeavesHandler struct {
	Repo  repository.LeavesRepository
	Scope *ScopeResolver
}

func NewLeavesHandler(repo repository.LeavesRepository, scope *ScopeResolver) *LeavesHandler {
	return &LeavesHandler{Repo: repo, Scope: scope}
}

func leaveView(l *domain.LeaveRequest) map[string]any {
	return map[string]any{
		"leave_id":    l.LeaveID,
		"hostel_id":   l.HostelID,
		"student_id":  l.StudentID,
		"from_date":   l.FromDate.Format("2006-01-02"),
		"to_date":     l.ToDate.Format("2006-01-02"),
		"reason":      l.Reason,
		"status":      l.Status,
		"approved_by": nullStr(l.ApprovedBy),
		"created_at":  nullTime(l.CreatedAt),
	}
}

func (h *LeavesHandler) callerUserID(r *http.Request) string {
	if h.Scope.Auth != nil {
		if token := bearerToken(r); token != "" {
			if session, err := h.Scope.Auth.ValidateToken(r.Context(), token); err == nil {
				return session.UserID
			}
		}
	}
	return r.Header.Get("X-User-Id")
}

func (h *LeavesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	hostelID, err := h.Scope.HostelScopeStrict(r)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}

	switch {
	case r.URL.Path == "/hostel/api/v1/leaves":
		switch r.Method {
		case http.MethodGet:
			q := r.URL.Query()
			leaves, total, err := h.Repo.ListLeaves(r.Context(), hostelID,
				q.Get("student_id"), q.Get("status"),
				parseInt(q.Get("page"), 1), parseInt(q.Get("size"), 20))
			if err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to list leave requests"))
				return
			}
			items := make([]any, 0, len(leaves))
			for _, l := range leaves {
				items = append(items, leaveView(l))
			}
			writeJSON(w, http.StatusOK, Ok(map[string]any{"items": items, "total": total}))
		case http.MethodPost:
			var payload struct {
				StudentID string `json:"student_id"`
				FromDate  string `json:"from_date"`
				ToDate    string `json:"to_date"`
				Reason    string `json:"reason"`
			}
			if err := readBodyJSON(r, 1<<20, &payload); err != nil {
				writeJSON(w, http.StatusOK, Fail("invalid body"))
				return
			}
			if payload.StudentID == "" || payload.Reason == "" {
				writeJSON(w, http.StatusOK, Fail("student_id and reason are required"))
				return
			}
			fromDate, err := time.Parse("2006-01-02", payload.FromDate)
			if err != nil {
				writeJSON(w, http.StatusOK, Fail("from_date must be YYYY-MM-DD"))
				return
			}
			toDate, err := time.Parse("2006-01-02", payload.ToDate)
			if err != nil {
				writeJSON(w, http.StatusOK, Fail("to_date must be YYYY-MM-DD"))
				return
			}
			if toDate.Before(fromDate) {
				writeJSON(w, http.StatusOK, Fail("to_date must not precede from_date"))
				return
			}
			leave := &domain.LeaveRequest{
				StudentID: payload.StudentID,
				FromDate:  fromDate,
				ToDate:    toDate,
				Reason:    payload.Reason,
				Status:    domain.LeavePending,
			}
			leaveID, err := h.Repo.CreateLeave(r.Context(), hostelID, leave)
			if err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to create leave request"))
				return
			}
			writeJSON(w, http.StatusOK, Ok(map[string]any{"leave_id": leaveID}))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}

	case strings.HasPrefix(r.URL.Path, "/hostel/api/v1/leaves/"):
		rest := strings.TrimPrefix(r.URL.Path, "/hostel/api/v1/leaves/")
		parts := strings.Split(rest, "/")
		id := parts[0]
		if id == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		switch {
		case len(parts) == 1 && r.Method == http.MethodGet:
			leave, err := h.Repo.GetLeave(r.Context(), hostelID, id)
			if err != nil {
				writeJSON(w, http.StatusOK, Fail("leave request not found"))
				return
			}
			writeJSON(w, http.StatusOK, Ok(leaveView(leave)))
		case len(parts) == 2 && parts[1] == "approve" && r.Method == http.MethodPost:
			h.transition(w, r, hostelID, id, domain.LeaveApproved)
		case len(parts) == 2 && parts[1] == "reject" && r.Method == http.MethodPost:
			h.transition(w, r, hostelID, id, domain.LeaveRejected)
		case len(parts) == 1 && r.Method == http.MethodDelete:
			if err := h.Repo.DeleteLeave(r.Context(), hostelID, id); err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to delete leave request"))
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

func (h *LeavesHandler) transition(w http.ResponseWriter, r *http.Request, hostelID, leaveID, status string) {
	won, err := h.Repo.SetLeaveStatus(r.Context(), hostelID, leaveID, status, h.callerUserID(r))
	if err != nil {
		writeJSON(w, http.StatusOK, Fail("failed to update leave request"))
		return
	}
	if !won {
		writeJSON(w, http.StatusOK, Fail("leave request is not pending"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"status": status}))
}
