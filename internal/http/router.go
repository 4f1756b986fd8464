package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router wraps the standard library http.ServeMux (no third-party router
// dependency needed for a path surface this size).
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) HandleHandler(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// API bundles every handler the service exposes.
type API struct {
	Auth       *AuthHandler
	Hostels    *HostelsHandler
	Rooms      *RoomsHandler
	Students   *StudentsHandler
	Transfers  *TransfersHandler
	Fees       *FeesHandler
	Attendance *AttendanceHandler
	Complaints *ComplaintsHandler
	Staff      *StaffHandler
	Visitors   *VisitorsHandler
	Leaves     *LeavesHandler
	Inventory  *InventoryHandler
	Reports    *ReportsHandler
}

// RegisterRoutes wires the whole /hostel/api/v1 surface.
func (r *Router) RegisterRoutes(api *API) {
	r.Handle("/hostel/api/v1/auth/login", api.Auth.Login)
	r.Handle("/hostel/api/v1/auth/logout", api.Auth.Logout)

	r.HandleHandler("/hostel/api/v1/hostels", api.Hostels)
	r.HandleHandler("/hostel/api/v1/hostels/", api.Hostels)

	r.HandleHandler("/hostel/api/v1/rooms", api.Rooms)
	r.HandleHandler("/hostel/api/v1/rooms/", api.Rooms)

	r.HandleHandler("/hostel/api/v1/students", api.Students)
	r.HandleHandler("/hostel/api/v1/students/", api.Students)

	r.HandleHandler("/hostel/api/v1/transfers", api.Transfers)
	r.HandleHandler("/hostel/api/v1/transfers/", api.Transfers)

	r.HandleHandler("/hostel/api/v1/fees", api.Fees)
	r.HandleHandler("/hostel/api/v1/fees/", api.Fees)

	r.HandleHandler("/hostel/api/v1/attendance", api.Attendance)
	r.HandleHandler("/hostel/api/v1/attendance/", api.Attendance)

	r.HandleHandler("/hostel/api/v1/complaints", api.Complaints)
	r.HandleHandler("/hostel/api/v1/complaints/", api.Complaints)

	r.HandleHandler("/hostel/api/v1/staff", api.Staff)
	r.HandleHandler("/hostel/api/v1/staff/", api.Staff)

	r.HandleHandler("/hostel/api/v1/visitors", api.Visitors)
	r.HandleHandler("/hostel/api/v1/visitors/", api.Visitors)

	r.HandleHandler("/hostel/api/v1/leaves", api.Leaves)
	r.HandleHandler("/hostel/api/v1/leaves/", api.Leaves)

	r.HandleHandler("/hostel/api/v1/inventory", api.Inventory)
	r.HandleHandler("/hostel/api/v1/inventory/", api.Inventory)

	r.HandleHandler("/hostel/api/v1/reports/", api.Reports)
}
