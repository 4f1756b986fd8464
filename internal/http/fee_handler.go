package httpapi

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"hostel-data/internal/domain"
	"hostel-data/internal/repository"
)

// FeesHandler straight CRUD over fee records; no service layer needed.
type FeesHandler struct {
	Repo  repository.FeesRepository
	Scope *ScopeResolver
}

func NewFeesHandler(repo repository.FeesRepository, scope *ScopeResolver) *FeesHandler {
	return &FeesHandler{Repo: repo, Scope: scope}
}

func feeView(f *domain.FeeRecord) map[string]any {
	return map[string]any{
		"fee_id":     f.FeeID,
		"hostel_id":  f.HostelID,
		"student_id": f.StudentID,
		"fee_type":   f.FeeType,
		"amount":     f.Amount,
		"due_date":   f.DueDate.Format("2006-01-02"),
		"paid_date":  nullTime(f.PaidDate),
		"status":     f.Status,
		"remarks":    nullStr(f.Remarks),
		"created_at": nullTime(f.CreatedAt),
	}
}

func (h *FeesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	hostelID, err := h.Scope.HostelScopeStrict(r)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}

	switch {
	case r.URL.Path == "/hostel/api/v1/fees":
		switch r.Method {
		case http.MethodGet:
			q := r.URL.Query()
			fees, total, err := h.Repo.ListFees(r.Context(), hostelID,
				q.Get("student_id"), q.Get("status"),
				parseInt(q.Get("page"), 1), parseInt(q.Get("size"), 20))
			if err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to list fees"))
				return
			}
			items := make([]any, 0, len(fees))
			for _, f := range fees {
				items = append(items, feeView(f))
			}
			writeJSON(w, http.StatusOK, Ok(map[string]any{"items": items, "total": total}))
		case http.MethodPost:
			var payload struct {
				StudentID string  `json:"student_id"`
				FeeType   string  `json:"fee_type"`
				Amount    float64 `json:"amount"`
				DueDate   string  `json:"due_date"`
				Remarks   string  `json:"remarks"`
			}
			if err := readBodyJSON(r, 1<<20, &payload); err != nil {
				writeJSON(w, http.StatusOK, Fail("invalid body"))
				return
			}
			if payload.StudentID == "" || payload.FeeType == "" {
				writeJSON(w, http.StatusOK, Fail("student_id and fee_type are required"))
				return
			}
			dueDate, err := time.Parse("2006-01-02", payload.DueDate)
			if err != nil {
				writeJSON(w, http.StatusOK, Fail("due_date must be YYYY-MM-DD"))
				return
			}
			fee := &domain.FeeRecord{
				StudentID: payload.StudentID,
				FeeType:   payload.FeeType,
				Amount:    payload.Amount,
				DueDate:   dueDate,
				Status:    domain.FeeStatusDue,
			}
			if payload.Remarks != "" {
				fee.Remarks = sql.NullString{String: payload.Remarks, Valid: true}
			}
			feeID, err := h.Repo.CreateFee(r.Context(), hostelID, fee)
			if err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to create fee record"))
				return
			}
			writeJSON(w, http.StatusOK, Ok(map[string]any{"fee_id": feeID}))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}

	case strings.HasPrefix(r.URL.Path, "/hostel/api/v1/fees/"):
		id := strings.TrimPrefix(r.URL.Path, "/hostel/api/v1/fees/")
		if id == "" || strings.Contains(id, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodGet:
			fee, err := h.Repo.GetFee(r.Context(), hostelID, id)
			if err != nil {
				writeJSON(w, http.StatusOK, Fail("fee record not found"))
				return
			}
			writeJSON(w, http.StatusOK, Ok(feeView(fee)))
		case http.MethodPut:
			fee, err := h.Repo.GetFee(r.Context(), hostelID, id)
			if err != nil {
				writeJSON(w, http.StatusOK, Fail("fee record not found"))
				return
			}
			var payload struct {
				Status   *string  `json:"status"`
				Amount   *float64 `json:"amount"`
				PaidDate *string  `json:"paid_date"`
				Remarks  *string  `json:"remarks"`
			}
			if err := readBodyJSON(r, 1<<20, &payload); err != nil {
				writeJSON(w, http.StatusOK, Fail("invalid body"))
				return
			}
			if payload.Status != nil {
				switch *payload.Status {
				case domain.FeeStatusDue, domain.FeeStatusPaid, domain.FeeStatusOverdue:
					fee.Status = *payload.Status
				default:
					writeJSON(w, http.StatusOK, Fail("invalid status"))
					return
				}
			}
			if payload.Amount != nil {
				fee.Amount = *payload.Amount
			}
			if payload.PaidDate != nil {
				if *payload.PaidDate == "" {
					fee.PaidDate = sql.NullTime{}
				} else {
					paid, err := time.Parse("2006-01-02", *payload.PaidDate)
					if err != nil {
						writeJSON(w, http.StatusOK, Fail("paid_date must be YYYY-MM-DD"))
						return
					}
					fee.PaidDate = sql.NullTime{Time: paid, Valid: true}
				}
			}
			if payload.Remarks != nil {
				fee.Remarks = sql.NullString{String: *payload.Remarks, Valid: *payload.Remarks != ""}
			}
			if err := h.Repo.UpdateFee(r.Context(), hostelID, id, fee); err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to update fee record"))
				return
			}
			writeJSON(w, http.StatusOK, Ok(map[string]any{"updated": true}))
		case http.MethodDelete:
			if err := h.Repo.DeleteFee(r.Context(), hostelID, id); err != nil {
				writeJSON(w, http.StatusOK, Fail("failed to delete fee record"))
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
