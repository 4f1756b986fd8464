package httpapi

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hostel-data/internal/domain"
	"hostel-data/internal/repository"
	"hostel-data/internal/service"
	"hostel-data/internal/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func wardenUser(account, hostelID string) *domain.User {
	return &domain.User{
		HostelID:     sql.NullString{String: hostelID, Valid: true},
		UserAccount:  account,
		PasswordHash: service.HashPassword("secret123"),
		Role:         domain.RoleWarden,
		Status:       "active",
	}
}

func newTestRouter(t *testing.T) (*Router, *repository.MemoryStore) {
	t.Helper()
	mem := repository.NewMemoryStore()
	log := zap.NewNop()

	occupancy := service.NewOccupancyService(mem, log)
	rooms := service.NewRoomService(mem, mem, occupancy, log)
	students := service.NewStudentService(mem, mem, occupancy, log)
	transfers := service.NewTransferService(mem, mem, mem, occupancy, log)

	scope := &ScopeResolver{Resolver: mem}

	router := NewRouter(log)
	router.RegisterRoutes(&API{
		Auth:       NewAuthHandler(service.NewAuthService(mem, store.NewMemoryKV(), log)),
		Hostels:    NewHostelsHandler(mem, scope),
		Rooms:      NewRoomsHandler(rooms, scope),
		Students:   NewStudentsHandler(students, scope),
		Transfers:  NewTransfersHandler(transfers, scope),
		Fees:       NewFeesHandler(mem, scope),
		Attendance: NewAttendanceHandler(mem, scope),
		Complaints: NewComplaintsHandler(mem, scope),
		Staff:      NewStaffHandler(mem, scope),
		Visitors:   NewVisitorsHandler(mem, scope),
		Leaves:     NewLeavesHandler(mem, scope),
		Inventory:  NewInventoryHandler(mem, scope),
		Reports:    NewReportsHandler(service.NewReportService(mem, mem, log), scope),
	})
	return router, mem
}

func doJSON(t *testing.T, router *Router, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) Result[map[string]any] {
	t.Helper()
	var res Result[map[string]any]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

var superHeaders = map[string]string{
	"X-User-Role": domain.RoleSystemAdmin,
	"X-Hostel-Id": "hostel-1",
}

func TestRoomCreateAndOccupancyOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/hostel/api/v1/rooms",
		map[string]any{"room_number": "A-101", "capacity": 2}, superHeaders)
	res := decodeResult(t, rec)
	require.Equal(t, ResultSuccess, res.Code)
	roomID, _ := res.Result["room_id"].(string)
	require.NotEmpty(t, roomID)

	rec = doJSON(t, router, http.MethodPost, "/hostel/api/v1/students",
		map[string]any{"admission_no": "ADM-1", "full_name": "Asha Rao", "room_id": roomID}, superHeaders)
	require.Equal(t, ResultSuccess, decodeResult(t, rec).Code)

	rec = doJSON(t, router, http.MethodGet, "/hostel/api/v1/rooms/"+roomID, nil, superHeaders)
	res = decodeResult(t, rec)
	require.Equal(t, ResultSuccess, res.Code)
	require.Equal(t, float64(1), res.Result["current_occupancy"])
	require.Equal(t, domain.RoomStatusPartiallyOccupied, res.Result["status"])
}

func TestDuplicateRoomNumberRejected(t *testing.T) {
	router, _ := newTestRouter(t)

	payload := map[string]any{"room_number": "B-201", "capacity": 2}
	rec := doJSON(t, router, http.MethodPost, "/hostel/api/v1/rooms", payload, superHeaders)
	require.Equal(t, ResultSuccess, decodeResult(t, rec).Code)

	rec = doJSON(t, router, http.MethodPost, "/hostel/api/v1/rooms", payload, superHeaders)
	res := decodeResult(t, rec)
	require.Equal(t, http.StatusOK, rec.Code) // business errors ride on HTTP 200
	require.Equal(t, ResultError, res.Code)
}

func TestScopedCallerCannotReachForeignHostel(t *testing.T) {
	router, mem := newTestRouter(t)

	// Seed a warden bound to hostel-1.
	userID, err := mem.UpsertUser(context.Background(), wardenUser("h1-warden", "hostel-1"))
	require.NoError(t, err)

	headers := map[string]string{
		"X-User-Role": domain.RoleWarden,
		"X-User-Id":   userID,
		"X-Hostel-Id": "hostel-2",
	}
	rec := doJSON(t, router, http.MethodGet, "/hostel/api/v1/rooms", nil, headers)
	res := decodeResult(t, rec)
	require.Equal(t, ResultError, res.Code)
	require.Contains(t, res.Message, "denied")
}

func TestScopedCallerDefaultsToOwnHostel(t *testing.T) {
	router, mem := newTestRouter(t)

	userID, err := mem.UpsertUser(context.Background(), wardenUser("h1-warden", "hostel-1"))
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodPost, "/hostel/api/v1/rooms",
		map[string]any{"room_number": "C-301", "capacity": 1},
		map[string]string{"X-User-Role": domain.RoleWarden, "X-User-Id": userID})
	require.Equal(t, ResultSuccess, decodeResult(t, rec).Code)

	rooms, total, err := mem.ListRooms(context.Background(), "hostel-1", repository.RoomFilters{}, 1, 10)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "C-301", rooms[0].RoomNumber)
}

func TestTransferApprovalOverHTTP(t *testing.T) {
	router, mem := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/hostel/api/v1/rooms",
		map[string]any{"room_number": "D-401", "capacity": 2}, superHeaders)
	roomA := decodeResult(t, rec).Result["room_id"].(string)
	rec = doJSON(t, router, http.MethodPost, "/hostel/api/v1/rooms",
		map[string]any{"room_number": "D-402", "capacity": 2}, superHeaders)
	roomB := decodeResult(t, rec).Result["room_id"].(string)

	rec = doJSON(t, router, http.MethodPost, "/hostel/api/v1/students",
		map[string]any{"admission_no": "ADM-2", "full_name": "Vikram Shah", "room_id": roomA}, superHeaders)
	studentID := decodeResult(t, rec).Result["student_id"].(string)

	rec = doJSON(t, router, http.MethodPost, "/hostel/api/v1/transfers",
		map[string]any{"student_id": studentID, "to_room_id": roomB}, superHeaders)
	requestID := decodeResult(t, rec).Result["request_id"].(string)

	rec = doJSON(t, router, http.MethodPost, "/hostel/api/v1/transfers/"+requestID+"/approve", nil, superHeaders)
	require.Equal(t, ResultSuccess, decodeResult(t, rec).Code)

	// Second approval must fail the compare-and-set.
	rec = doJSON(t, router, http.MethodPost, "/hostel/api/v1/transfers/"+requestID+"/approve", nil, superHeaders)
	res := decodeResult(t, rec)
	require.Equal(t, ResultError, res.Code)
	require.Contains(t, res.Message, "not pending")

	student, err := mem.GetStudent(context.Background(), "hostel-1", studentID)
	require.NoError(t, err)
	require.Equal(t, roomB, student.RoomID.String)
}
