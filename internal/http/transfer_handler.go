package httpapi

import (
	"net/http"
	"strings"

	"hostel-data/internal/domain"
	"hostel-data/internal/service"
)

type TransfersHandler struct {
	Transfers service.TransferService
	Scope     *ScopeResolver
}

func NewTransfersHandler(transfers service.TransferService, scope *ScopeResolver) *TransfersHandler {
	return &TransfersHandler{Transfers: transfers, Scope: scope}
}

func transferView(t *domain.RoomTransferRequest) map[string]any {
	return map[string]any{
		"request_id":   t.RequestID,
		"hostel_id":    t.HostelID,
		"student_id":   t.StudentID,
		"from_room_id": nullStr(t.FromRoomID),
		"to_room_id":   t.ToRoomID,
		"reason":       nullStr(t.Reason),
		"status":       t.Status,
		"approved_by":  nullStr(t.ApprovedBy),
		"approved_at":  nullTime(t.ApprovedAt),
		"created_at":   nullTime(t.CreatedAt),
	}
}

func (h *TransfersHandler) callerUserID(r *http.Request) string {
	if h.Scope.Auth != nil {
		if token := bearerToken(r); token != "" {
			if session, err := h.Scope.Auth.ValidateToken(r.Context(), token); err == nil {
				return session.UserID
			}
		}
	}
	return r.Header.Get("X-User-Id")
}

func (h *TransfersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	hostelID, err := h.Scope.HostelScopeStrict(r)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}

	switch {
	case r.URL.Path == "/hostel/api/v1/transfers":
		switch r.Method {
		case http.MethodGet:
			h.list(w, r, hostelID)
		case http.MethodPost:
			h.create(w, r, hostelID)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}

	case strings.HasPrefix(r.URL.Path, "/hostel/api/v1/transfers/"):
		rest := strings.TrimPrefix(r.URL.Path, "/hostel/api/v1/transfers/")
		parts := strings.Split(rest, "/")
		id := parts[0]
		if id == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		switch {
		case len(parts) == 1 && r.Method == http.MethodGet:
			h.get(w, r, hostelID, id)
		case len(parts) == 2 && parts[1] == "approve" && r.Method == http.MethodPost:
			h.approve(w, r, hostelID, id)
		case len(parts) == 2 && parts[1] == "reject" && r.Method == http.MethodPost:
			h.reject(w, r, hostelID, id)
		default:
			w.WriteHeader(http.StatusNotFound)
		}

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *TransfersHandler) list(w http.ResponseWriter, r *http.Request, hostelID string) {
	q := r.URL.Query()
	resp, err := h.Transfers.ListTransfers(r.Context(), service.ListTransfersRequest{
		HostelID: hostelID,
		Status:   q.Get("status"),
		Page:     parseInt(q.Get("page"), 1),
		PageSize: parseInt(q.Get("size"), 20),
	})
	if err != nil {
		writeJSON(w, http.StatusOK, Fail("failed to list transfer requests"))
		return
	}
	items := make([]any, 0, len(resp.Transfers))
	for _, t := range resp.Transfers {
		items = append(items, transferView(t))
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"items": items,
		"total": resp.Total,
		"page":  resp.Page,
		"size":  resp.PageSize,
	}))
}

func (h *TransfersHandler) get(w http.ResponseWriter, r *http.Request, hostelID, requestID string) {
	transfer, err := h.Transfers.GetTransfer(r.Context(), service.GetTransferRequest{
		HostelID:  hostelID,
		RequestID: requestID,
	})
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(transferView(transfer)))
}

func (h *TransfersHandler) create(w http.ResponseWriter, r *http.Request, hostelID string) {
	var payload struct {
		StudentID string `json:"student_id"`
		ToRoomID  string `json:"to_room_id"`
		Reason    string `json:"reason"`
	}
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	if payload.StudentID == "" || payload.ToRoomID == "" {
		writeJSON(w, http.StatusOK, Fail("student_id and to_room_id are required"))
		return
	}
	resp, err := h.Transfers.CreateTransfer(r.Context(), service.CreateTransferRequest{
		HostelID:  hostelID,
		StudentID: payload.StudentID,
		ToRoomID:  payload.ToRoomID,
		Reason:    payload.Reason,
	})
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *TransfersHandler) approve(w http.ResponseWriter, r *http.Request, hostelID, requestID string) {
	err := h.Transfers.ApproveTransfer(r.Context(), service.ApproveTransferRequest{
		HostelID:   hostelID,
		RequestID:  requestID,
		ApprovedBy: h.callerUserID(r),
	})
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"status": domain.TransferStatusApproved}))
}

func (h *TransfersHandler) reject(w http.ResponseWriter, r *http.Request, hostelID, requestID string) {
	err := h.Transfers.RejectTransfer(r.Context(), service.RejectTransferRequest{
		HostelID:  hostelID,
		RequestID: requestID,
	})
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"status": domain.TransferStatusRejected}))
}
