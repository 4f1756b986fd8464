package httpapi

import (
	"net/http"
	"strings"

	"hostel-data/internal/domain"
	"hostel-data/internal/repository"
	"hostel-data/internal/service"
)

type RoomsHandler struct {
	Rooms service.RoomService
	Scope *ScopeResolver
}

func NewRoomsHandler(rooms service.RoomService, scope *ScopeResolver) *RoomsHandler {
	return &RoomsHandler{Rooms: rooms, Scope: scope}
}

func roomView(r *domain.Room) map[string]any {
	return map[string]any{
		"room_id":           r.RoomID,
		"hostel_id":         r.HostelID,
		"room_number":       r.RoomNumber,
		"room_type":         nullStr(r.RoomType),
		"floor":             nullStr(r.Floor),
		"capacity":          r.Capacity,
		"current_occupancy": r.CurrentOccupancy,
		"status":            r.Status,
		"monthly_rent":      nullFloat(r.MonthlyRent),
		"created_at":        nullTime(r.CreatedAt),
		"updated_at":        nullTime(r.UpdatedAt),
	}
}

func (h *RoomsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	hostelID, err := h.Scope.HostelScopeStrict(r)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}

	switch {
	case r.URL.Path == "/hostel/api/v1/rooms":
		switch r.Method {
		case http.MethodGet:
			h.list(w, r, hostelID)
		case http.MethodPost:
			h.create(w, r, hostelID)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}

	case strings.HasPrefix(r.URL.Path, "/hostel/api/v1/rooms/"):
		rest := strings.TrimPrefix(r.URL.Path, "/hostel/api/v1/rooms/")
		parts := strings.Split(rest, "/")
		id := parts[0]
		if id == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		if len(parts) == 2 && parts[1] == "maintenance" {
			if r.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			h.setMaintenance(w, r, hostelID, id)
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

func (h *RoomsHandler) list(w http.ResponseWriter, r *http.Request, hostelID string) {
	q := r.URL.Query()
	resp, err := h.Rooms.ListRooms(r.Context(), service.ListRoomsRequest{
		HostelID: hostelID,
		Filters: repository.RoomFilters{
			Status:   q.Get("status"),
			RoomType: q.Get("room_type"),
			Floor:    q.Get("floor"),
			Search:   q.Get("search"),
		},
		Page:     parseInt(q.Get("page"), 1),
		PageSize: parseInt(q.Get("size"), 20),
	})
	if err != nil {
		writeJSON(w, http.StatusOK, Fail("failed to list rooms"))
		return
	}
	items := make([]any, 0, len(resp.Rooms))
	for _, room := range resp.Rooms {
		items = append(items, roomView(room))
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"items": items,
		"total": resp.Total,
		"page":  resp.Page,
		"size":  resp.PageSize,
	}))
}

func (h *RoomsHandler) get(w http.ResponseWriter, r *http.Request, hostelID, roomID string) {
	room, err := h.Rooms.GetRoom(r.Context(), service.GetRoomRequest{HostelID: hostelID, RoomID: roomID})
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(roomView(room)))
}

func (h *RoomsHandler) create(w http.ResponseWriter, r *http.Request, hostelID string) {
	var payload struct {
		RoomNumber  string  `json:"room_number"`
		RoomType    string  `json:"room_type"`
		Floor       string  `json:"floor"`
		Capacity    int     `json:"capacity"`
		MonthlyRent float64 `json:"monthly_rent"`
	}
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	resp, err := h.Rooms.CreateRoom(r.Context(), service.CreateRoomRequest{
		HostelID:    hostelID,
		RoomNumber:  payload.RoomNumber,
		RoomType:    payload.RoomType,
		Floor:       payload.Floor,
		Capacity:    payload.Capacity,
		MonthlyRent: payload.MonthlyRent,
	})
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *RoomsHandler) update(w http.ResponseWriter, r *http.Request, hostelID, roomID string) {
	var payload struct {
		RoomNumber  *string  `json:"room_number"`
		RoomType    *string  `json:"room_type"`
		Floor       *string  `json:"floor"`
		Capacity    *int     `json:"capacity"`
		MonthlyRent *float64 `json:"monthly_rent"`
	}
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	err := h.Rooms.UpdateRoom(r.Context(), service.UpdateRoomRequest{
		HostelID:    hostelID,
		RoomID:      roomID,
		RoomNumber:  payload.RoomNumber,
		RoomType:    payload.RoomType,
		Floor:       payload.Floor,
		Capacity:    payload.Capacity,
		MonthlyRent: payload.MonthlyRent,
	})
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"updated": true}))
}

func (h *RoomsHandler) delete(w http.ResponseWriter, r *http.Request, hostelID, roomID string) {
	err := h.Rooms.DeleteRoom(r.Context(), service.DeleteRoomRequest{HostelID: hostelID, RoomID: roomID})
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"deleted": true}))
}

func (h *RoomsHandler) setMaintenance(w http.ResponseWriter, r *http.Request, hostelID, roomID string) {
	var payload struct {
		Maintenance bool `json:"maintenance"`
	}
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	err := h.Rooms.SetMaintenance(r.Context(), service.SetMaintenanceRequest{
		HostelID:    hostelID,
		RoomID:      roomID,
		Maintenance: payload.Maintenance,
	})
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"maintenance": payload.Maintenance}))
}
