package httpapi

import (
	"database/sql"
	"net/http"
	"strings"

	"hostel-data/internal/domain"
	"hostel-data/internal/repository"
)

type InventoryHandler struct {
	Repo  repository.InventoryRepository
	Scope *ScopeResolver
}

func NewInventoryHandler(repo repository.InventoryRepository, scope *ScopeResolver) *InventoryHandler {
	return &InventoryHandler{Repo: repo, Scope: scope}
}

func inventoryView(i *domain.InventoryItem) map[string]any {
	return map[string]any{
		"item_id":    i.ItemID,
		"hostel_id":  i.HostelID,
		"room_id":    nullStr(i.RoomID),
		"item_name":  i.ItemName,
		"quantity":   i.Quantity,
		"condition":  i.Condition,
		"created_at": nullTime(i.CreatedAt),
		"updated_at": nullTime(i.UpdatedAt),
	}
}

func (h *InventoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	hostelID, err := h.Scope.HostelScopeStrict(r)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}

	switch {
	case r.URL.Path == "/hostel/api/v1/inventory":
		switch r.Method {
		case http.MethodGet:
			q := r.URL.Query()
			items, total, err := h.Repo.ListInventory(r.Context(), hostelID,
				q.Get("room_id"), parseInt(q.Get("page"), 1), parseInt(q.Get("size"), 50))
			if err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to list inventory"))
				return
			}
			out := make([]any, 0, len(items))
			for _, item := range items {
				out = append(out, inventoryView(item))
			}
			writeJSON(w, http.StatusOK, Ok(map[string]any{"items": out, "total": total}))
		case http.MethodPost:
			var payload struct {
				RoomID    string `json:"room_id"`
				ItemName  string `json:"item_name"`
				Quantity  int    `json:"quantity"`
				Condition string `json:"condition"`
			}
			if err := readBodyJSON(r, 1<<20, &payload); err != nil {
				writeJSON(w, http.StatusOK, Fail("invalid body"))
				return
			}
			if payload.ItemName == "" || payload.Quantity < 0 {
				writeJSON(w, http.StatusOK, Fail("item_name and a non-negative quantity are required"))
				return
			}
			if payload.Condition == "" {
				payload.Condition = "good"
			}
			item := &domain.InventoryItem{
				ItemName:  payload.ItemName,
				Quantity:  payload.Quantity,
				Condition: payload.Condition,
			}
			if payload.RoomID != "" {
				item.RoomID = sql.NullString{String: payload.RoomID, Valid: true}
			}
			itemID, err := h.Repo.CreateInventoryItem(r.Context(), hostelID, item)
			if err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to create inventory item"))
				return
			}
			writeJSON(w, http.StatusOK, Ok(map[string]any{"item_id": itemID}))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}

	case strings.HasPrefix(r.URL.Path, "/hostel/api/v1/inventory/"):
		id := strings.TrimPrefix(r.URL.Path, "/hostel/api/v1/inventory/")
		if id == "" || strings.Contains(id, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodPut:
			var payload struct {
				RoomID    string `json:"room_id"`
				ItemName  string `json:"item_name"`
				Quantity  int    `json:"quantity"`
				Condition string `json:"condition"`
			}
			if err := readBodyJSON(r, 1<<20, &payload); err != nil {
				writeJSON(w, http.StatusOK, Fail("invalid body"))
				return
			}
			if payload.ItemName == "" || payload.Quantity < 0 {
				writeJSON(w, http.StatusOK, Fail("item_name and a non-negative quantity are required"))
				return
			}
			if payload.Condition == "" {
				payload.Condition = "good"
			}
			item := &domain.InventoryItem{
				ItemName:  payload.ItemName,
				Quantity:  payload.Quantity,
				Condition: payload.Condition,
			}
			if payload.RoomID != "" {
				item.RoomID = sql.NullString{String: payload.RoomID, Valid: true}
			}
			if err := h.Repo.UpdateInventoryItem(r.Context(), hostelID, id, item); err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to update inventory item"))
				return
			}
			writeJSON(w, http.StatusOK, Ok(map[string]any{"updated": true}))
		case http.MethodDelete:
			if err := h.Repo.DeleteInventoryItem(r.Context(), hostelID, id); err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to delete inventory item"))
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
