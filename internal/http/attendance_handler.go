package httpapi

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"hostel-data/internal/domain"
	"hostel-data/internal/repository"
)

type AttendanceHandler struct {
	Repo  repository.AttendanceRepository
	Scope *ScopeResolver
}

func NewAttendanceHandler(repo repository.AttendanceRepository, scope *ScopeResolver) *AttendanceHandler {
	return &AttendanceHandler{Repo: repo, Scope: scope}
}

func attendanceView(a *domain.AttendanceRecord) map[string]any {
	return map[string]any{
		"attendance_id": a.AttendanceID,
		"hostel_id":     a.HostelID,
		"student_id":    a.StudentID,
		"date":          a.Date.Format("2006-01-02"),
		"status":        a.Status,
		"marked_by":     nullStr(a.MarkedBy),
		"created_at":    nullTime(a.CreatedAt),
	}
}

func validAttendanceStatus(s string) bool {
	return s == domain.AttendancePresent || s == domain.AttendanceAbsent || s == domain.AttendanceOnLeave
}

func (h *AttendanceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	hostelID, err := h.Scope.HostelScopeStrict(r)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}

	switch {
	case r.URL.Path == "/hostel/api/v1/attendance":
		switch r.Method {
		case http.MethodGet:
			q := r.URL.Query()
			var from, to time.Time
			if v := q.Get("from"); v != "" {
				from, _ = time.Parse("2006-01-02", v)
			}
			if v := q.Get("to"); v != "" {
				to, _ = time.Parse("2006-01-02", v)
			}
			records, total, err := h.Repo.ListAttendance(r.Context(), hostelID,
				q.Get("student_id"), from, to,
				parseInt(q.Get("page"), 1), parseInt(q.Get("size"), 50))
			if err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to list attendance"))
				return
			}
			items := make([]any, 0, len(records))
			for _, rec := range records {
				items = append(items, attendanceView(rec))
			}
			writeJSON(w, http.StatusOK, Ok(map[string]any{"items": items, "total": total}))
		case http.MethodPost:
			var payload struct {
				StudentID string `json:"student_id"`
				Date      string `json:"date"`
				Status    string `json:"status"`
				MarkedBy  string `json:"marked_by"`
			}
			if err := readBodyJSON(r, 1<<20, &payload); err != nil {
				writeJSON(w, http.StatusOK, Fail("invalid body"))
				return
			}
			if payload.StudentID == "" || !validAttendanceStatus(payload.Status) {
				writeJSON(w, http.StatusOK, Fail("student_id and a valid status are required"))
				return
			}
			date, err := time.Parse("2006-01-02", payload.Date)
			if err != nil {
				writeJSON(w, http.StatusOK, Fail("date must be YYYY-MM-DD"))
				return
			}
			rec := &domain.AttendanceRecord{
				StudentID: payload.StudentID,
				Date:      date,
				Status:    payload.Status,
			}
			if payload.MarkedBy != "" {
				rec.MarkedBy = sql.NullString{String: payload.MarkedBy, Valid: true}
			}
			attendanceID, err := h.Repo.CreateAttendance(r.Context(), hostelID, rec)
			if err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to record attendance"))
				return
			}
			writeJSON(w, http.StatusOK, Ok(map[string]any{"attendance_id": attendanceID}))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}

	case strings.HasPrefix(r.URL.Path, "/hostel/api/v1/attendance/"):
		id := strings.TrimPrefix(r.URL.Path, "/hostel/api/v1/attendance/")
		if id == "" || strings.Contains(id, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodPut:
			var payload struct {
				Status   string `json:"status"`
				MarkedBy string `json:"marked_by"`
			}
			if err := readBodyJSON(r, 1<<20, &payload); err != nil || !validAttendanceStatus(payload.Status) {
				writeJSON(w, http.StatusOK, Fail("a valid status is required"))
				return
			}
			rec := &domain.AttendanceRecord{Status: payload.Status}
			if payload.MarkedBy != "" {
				rec.MarkedBy = sql.NullString{String: payload.MarkedBy, Valid: true}
			}
			if err := h.Repo.UpdateAttendance(r.Context(), hostelID, id, rec); err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to update attendance"))
				return
			}
			writeJSON(w, http.StatusOK, Ok(map[string]any{"updated": true}))
		case http.MethodDelete:
			if err := h.Repo.DeleteAttendance(r.Context(), hostelID, id); err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to delete attendance"))
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
