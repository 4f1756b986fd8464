package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"hostel-data/internal/service"
)

type ReportsHandler struct {
	Reports service.ReportService
	Scope   *ScopeResolver
}

func NewReportsHandler(reports service.ReportService, scope *ScopeResolver) *ReportsHandler {
	return &ReportsHandler{Reports: reports, Scope: scope}
}

func (h *ReportsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	hostelID, err := h.Scope.HostelScopeStrict(r)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}

	switch r.URL.Path {
	case "/hostel/api/v1/reports/occupancy":
		summary, err := h.Reports.OccupancySummary(r.Context(), hostelID)
		if err != nil {
			writeJSON(w, http.StatusOK, Fail("failed to build occupancy summary"))
			return
		}
		writeJSON(w, http.StatusOK, Ok(summary))

	case "/hostel/api/v1/reports/fees":
		summary, err := h.Reports.FeeSummary(r.Context(), hostelID)
		if err != nil {
			writeJSON(w, http.StatusOK, Fail("failed to build fee summary"))
			return
		}
		writeJSON(w, http.StatusOK, Ok(summary))

	case "/hostel/api/v1/reports/occupancy/export":
		data, err := h.Reports.ExportOccupancyExcel(r.Context(), hostelID)
		if err != nil {
			writeJSON(w, http.StatusOK, Fail("failed to generate export"))
			return
		}
		filename := fmt.Sprintf("occupancy_%s.xlsx", time.Now().Format("20060102"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}
