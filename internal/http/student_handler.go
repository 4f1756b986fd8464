package httpapi

import (
	"net/http"
	"strings"

	"hostel-data/internal/domain"
	"hostel-data/internal/repository"
	"hostel-data/internal/service"
)

type StudentsHandler struct {
	Students service.StudentService
	Scope    *ScopeResolver
}

func NewStudentsHandler(students service.StudentService, scope *ScopeResolver) *StudentsHandler {
	return &StudentsHandler{Students: students, Scope: scope}
}

func studentView(s *domain.Student) map[string]any {
	return map[string]any{
		"student_id":     s.StudentID,
		"hostel_id":      s.HostelID,
		"room_id":        nullStr(s.RoomID),
		"admission_no":   s.AdmissionNo,
		"full_name":      s.FullName,
		"email":          nullStr(s.Email),
		"phone":          nullStr(s.Phone),
		"guardian_name":  nullStr(s.GuardianName),
		"guardian_phone": nullStr(s.GuardianPhone),
		"course":         nullStr(s.Course),
		"status":         s.Status,
		"created_at":     nullTime(s.CreatedAt),
		"updated_at":     nullTime(s.UpdatedAt),
	}
}

func (h *StudentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	hostelID, err := h.Scope.HostelScopeStrict(r)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}

	switch {
	case r.URL.Path == "/hostel/api/v1/students":
		switch r.Method {
		case http.MethodGet:
			h.list(w, r, hostelID)
		case http.MethodPost:
			h.create(w, r, hostelID)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}

	case strings.HasPrefix(r.URL.Path, "/hostel/api/v1/students/"):
		rest := strings.TrimPrefix(r.URL.Path, "/hostel/api/v1/students/")
		parts := strings.Split(rest, "/")
		id := parts[0]
		if id == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		if len(parts) == 2 && parts[1] == "allocate-room" {
			if r.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			h.allocateRoom(w, r, hostelID, id)
			return
		}
		if len(parts) != 1 {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		switch r.Method {
		case http.MethodGet:
			h.get(w, r, hostelID, id)
		case http.MethodPut:
			h.update(w, r, hostelID, id)
		case http.MethodDelete:
			h.delete(w, r, hostelID, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *StudentsHandler) list(w http.ResponseWriter, r *http.Request, hostelID string) {
	q := r.URL.Query()
	resp, err := h.Students.ListStudents(r.Context(), service.ListStudentsRequest{
		HostelID: hostelID,
		Filters: repository.StudentFilters{
			Status: q.Get("status"),
			RoomID: q.Get("room_id"),
			Course: q.Get("course"),
			Search: q.Get("search"),
		},
		Page:     parseInt(q.Get("page"), 1),
		PageSize: parseInt(q.Get("size"), 20),
	})
	if err != nil {
		writeJSON(w, http.StatusOK, Fail("failed to list students"))
		return
	}
	items := make([]any, 0, len(resp.Students))
	for _, student := range resp.Students {
		items = append(items, studentView(student))
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"items": items,
		"total": resp.Total,
		"page":  resp.Page,
		"size":  resp.PageSize,
	}))
}

func (h *StudentsHandler) get(w http.ResponseWriter, r *http.Request, hostelID, studentID string) {
	student, err := h.Students.GetStudent(r.Context(), service.GetStudentRequest{
		HostelID:  hostelID,
		StudentID: studentID,
	})
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(studentView(student)))
}

func (h *StudentsHandler) create(w http.ResponseWriter, r *http.Request, hostelID string) {
	var payload struct {
		AdmissionNo   string `json:"admission_no"`
		FullName      string `json:"full_name"`
		Email         string `json:"email"`
		Phone         string `json:"phone"`
		GuardianName  string `json:"guardian_name"`
		GuardianPhone string `json:"guardian_phone"`
		Course        string `json:"course"`
		RoomID        string `json:"room_id"`
	}
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	resp, err := h.Students.CreateStudent(r.Context(), service.CreateStudentRequest{
		HostelID:      hostelID,
		AdmissionNo:   payload.AdmissionNo,
		FullName:      payload.FullName,
		Email:         payload.Email,
		Phone:         payload.Phone,
		GuardianName:  payload.GuardianName,
		GuardianPhone: payload.GuardianPhone,
		Course:        payload.Course,
		RoomID:        payload.RoomID,
	})
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *StudentsHandler) update(w http.ResponseWriter, r *http.Request, hostelID, studentID string) {
	var payload struct {
		FullName      *string `json:"full_name"`
		Email         *string `json:"email"`
		Phone         *string `json:"phone"`
		GuardianName  *string `json:"guardian_name"`
		GuardianPhone *string `json:"guardian_phone"`
		Course        *string `json:"course"`
		Status        *string `json:"status"`
		RoomID        *string `json:"room_id"`
	}
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	err := h.Students.UpdateStudent(r.Context(), service.UpdateStudentRequest{
		HostelID:      hostelID,
		StudentID:     studentID,
		FullName:      payload.FullName,
		Email:         payload.Email,
		Phone:         payload.Phone,
		GuardianName:  payload.GuardianName,
		GuardianPhone: payload.GuardianPhone,
		Course:        payload.Course,
		Status:        payload.Status,
		RoomID:        payload.RoomID,
	})
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"updated": true}))
}

func (h *StudentsHandler) delete(w http.ResponseWriter, r *http.Request, hostelID, studentID string) {
	err := h.Students.DeleteStudent(r.Context(), service.DeleteStudentRequest{
		HostelID:  hostelID,
		StudentID: studentID,
	})
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"deleted": true}))
}

func (h *StudentsHandler) allocateRoom(w http.ResponseWriter, r *http.Request, hostelID, studentID string) {
	var payload struct {
		RoomID string `json:"room_id"`
	}
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	err := h.Students.AllocateRoom(r.Context(), service.AllocateRoomRequest{
		HostelID:  hostelID,
		StudentID: studentID,
		RoomID:    payload.RoomID,
	})
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"allocated": true}))
}
