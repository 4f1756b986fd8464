package repository

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"hostel-data/internal/domain"

	"github.com/google/uuid"
)

// Record-keeping methods of MemoryStore.

// ---- fees ----

func (m *MemoryStore) ListFees(_ context.Context, hostelID string, studentID, status string, page, size int) ([]*domain.FeeRecord, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*domain.FeeRecord{}
	for _, f := range m.fees[hostelID] {
		if studentID != "" && f.StudentID != studentID {
			continue
		}
		if status != "" && f.Status != status {
			continue
		}
		cp := *f
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.After(out[j].DueDate) })
	paged, total := paginate(out, page, size)
	return paged, total, nil
}

func (m *MemoryStore) GetFee(_ context.Context, hostelID, feeID string) (*domain.FeeRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.fees[hostelID][feeID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *f
	return &cp, nil
}

func (m *MemoryStore) CreateFee(_ context.Context, hostelID string, f *domain.FeeRecord) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fees[hostelID] == nil {
		m.fees[hostelID] = map[string]*domain.FeeRecord{}
	}
	cp := *f
	cp.FeeID = uuid.NewString()
	cp.HostelID = hostelID
	cp.CreatedAt = sql.NullTime{Time: time.Now(), Valid: true}
	m.fees[hostelID][cp.FeeID] = &cp
	return cp.FeeID, nil
}

func (m *MemoryStore) UpdateFee(_ context.Context, hostelID, feeID string, f *domain.FeeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.fees[hostelID][feeID]
	if !ok {
		return sql.ErrNoRows
	}
	cur.FeeType = f.FeeType
	cur.Amount = f.Amount
	cur.DueDate = f.DueDate
	cur.PaidDate = f.PaidDate
	cur.Status = f.Status
	cur.Remarks = f.Remarks
	return nil
}

func (m *MemoryStore) DeleteFee(_ context.Context, hostelID, feeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.fees[hostelID][feeID]; !ok {
		return sql.ErrNoRows
	}
	delete(m.fees[hostelID], feeID)
	return nil
}

// ---- attendance ----

func (m *MemoryStore) ListAttendance(_ context.Context, hostelID, studentID string, from, to time.Time, page, size int) ([]*domain.AttendanceRecord, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*domain.AttendanceRecord{}
	for _, a := range m.attendance[hostelID] {
		if studentID != "" && a.StudentID != studentID {
			continue
		}
		if !from.IsZero() && a.Date.Before(from) {
			continue
		}
		if !to.IsZero() && a.Date.After(to) {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	paged, total := paginate(out, page, size)
	return paged, total, nil
}

func (m *MemoryStore) CreateAttendance(_ context.Context, hostelID string, a *domain.AttendanceRecord) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.attendance[hostelID] == nil {
		m.attendance[hostelID] = map[string]*domain.AttendanceRecord{}
	}
	cp := *a
	cp.AttendanceID = uuid.NewString()
	cp.HostelID = hostelID
	cp.CreatedAt = sql.NullTime{Time: time.Now(), Valid: true}
	m.attendance[hostelID][cp.AttendanceID] = &cp
	return cp.AttendanceID, nil
}

func (m *MemoryStore) UpdateAttendance(_ context.Context, hostelID, attendanceID string, a *domain.AttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.attendance[hostelID][attendanceID]
	if !ok {
		return sql.ErrNoRows
	}
	cur.Status = a.Status
	cur.MarkedBy = a.MarkedBy
	return nil
}

func (m *MemoryStore) DeleteAttendance(_ context.Context, hostelID, attendanceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.attendance[hostelID][attendanceID]; !ok {
		return sql.ErrNoRows
	}
	delete(m.attendance[hostelID], attendanceID)
	return nil
}

// ---- complaints ----

func (m *MemoryStore) ListComplaints(_ context.Context, hostelID, status string, page, size int) ([]*domain.Complaint, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*domain.Complaint{}
	for _, c := range m.complaints[hostelID] {
		if status != "" && c.Status != status {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Time.After(out[j].CreatedAt.Time) })
	paged, total := paginate(out, page, size)
	return paged, total, nil
}

func (m *MemoryStore) GetComplaint(_ context.Context, hostelID, complaintID string) (*domain.Complaint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.complaints[hostelID][complaintID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (m *MemoryStore) CreateComplaint(_ context.Context, hostelID string, c *domain.Complaint) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.complaints[hostelID] == nil {
		m.complaints[hostelID] = map[string]*domain.Complaint{}
	}
	cp := *c
	cp.ComplaintID = uuid.NewString()
	cp.HostelID = hostelID
	cp.CreatedAt = sql.NullTime{Time: time.Now(), Valid: true}
	m.complaints[hostelID][cp.ComplaintID] = &cp
	return cp.ComplaintID, nil
}

func (m *MemoryStore) UpdateComplaint(_ context.Context, hostelID, complaintID string, c *domain.Complaint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.complaints[hostelID][complaintID]
	if !ok {
		return sql.ErrNoRows
	}
	cur.Category = c.Category
	cur.Description = c.Description
	cur.Status = c.Status
	cur.ResolvedAt = c.ResolvedAt
	return nil
}

func (m *MemoryStore) DeleteComplaint(_ context.Context, hostelID, complaintID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.complaints[hostelID][complaintID]; !ok {
		return sql.ErrNoRows
	}
	delete(m.complaints[hostelID], complaintID)
	return nil
}

// ---- staff ----

func (m *MemoryStore) ListStaff(_ context.Context, hostelID, role string, page, size int) ([]*domain.StaffMember, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*domain.StaffMember{}
	for _, s := range m.staff[hostelID] {
		if role != "" && s.Role != role {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	paged, total := paginate(out, page, size)
	return paged, total, nil
}

func (m *MemoryStore) CreateStaff(_ context.Context, hostelID string, s *domain.StaffMember) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.staff[hostelID] == nil {
		m.staff[hostelID] = map[string]*domain.StaffMember{}
	}
	cp := *s
	cp.StaffID = uuid.NewString()
	cp.HostelID = hostelID
	cp.CreatedAt = sql.NullTime{Time: time.Now(), Valid: true}
	m.staff[hostelID][cp.StaffID] = &cp
	return cp.StaffID, nil
}

func (m *MemoryStore) UpdateStaff(_ context.Context, hostelID, staffID string, s *domain.StaffMember) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.staff[hostelID][staffID]
	if !ok {
		return sql.ErrNoRows
	}
	cur.FullName = s.FullName
	cur.Role = s.Role
	cur.Phone = s.Phone
	cur.Status = s.Status
	return nil
}

func (m *MemoryStore) DeleteStaff(_ context.Context, hostelID, staffID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.staff[hostelID][staffID]; !ok {
		return sql.ErrNoRows
	}
	delete(m.staff[hostelID], staffID)
	return nil
}

// ---- visitors ----

func (m *MemoryStore) ListVisitors(_ context.Context, hostelID, studentID string, page, size int) ([]*domain.VisitorLog, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*domain.VisitorLog{}
	for _, v := range m.visitors[hostelID] {
		if studentID != "" && v.StudentID != studentID {
			continue
		}
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckIn.After(out[j].CheckIn) })
	paged, total := paginate(out, page, size)
	return paged, total, nil
}

func (m *MemoryStore) CreateVisitor(_ context.Context, hostelID string, v *domain.VisitorLog) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.visitors[hostelID] == nil {
		m.visitors[hostelID] = map[string]*domain.VisitorLog{}
	}
	cp := *v
	cp.VisitorID = uuid.NewString()
	cp.HostelID = hostelID
	cp.CreatedAt = sql.NullTime{Time: time.Now(), Valid: true}
	m.visitors[hostelID][cp.VisitorID] = &cp
	return cp.VisitorID, nil
}

func (m *MemoryStore) CheckOutVisitor(_ context.Context, hostelID, visitorID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.visitors[hostelID][visitorID]
	if !ok || v.CheckOut.Valid {
		return sql.ErrNoRows
	}
	v.CheckOut = sql.NullTime{Time: at, Valid: true}
	return nil
}

func (m *MemoryStore) DeleteVisitor(_ context.Context, hostelID, visitorID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.visitors[hostelID][visitorID]; !ok {
		return sql.ErrNoRows
	}
	delete(m.visitors[hostelID], visitorID)
	return nil
}

// ---- leaves ----

func (m *MemoryStore) ListLeaves(_ context.Context, hostelID, studentID, status string, page, size int) ([]*domain.LeaveRequest, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*domain.LeaveRequest{}
	for _, l := range m.leaves[hostelID] {
		if studentID != "" && l.StudentID != studentID {
			continue
		}
		if status != "" && l.Status != status {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Time.After(out[j].CreatedAt.Time) })
	paged, total := paginate(out, page, size)
	return paged, total, nil
}

func (m *MemoryStore) GetLeave(_ context.Context, hostelID, leaveID string) (*domain.LeaveRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l, ok := m.leaves[hostelID][leaveID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *l
	return &cp, nil
}

func (m *MemoryStore) CreateLeave(_ context.Context, hostelID string, l *domain.LeaveRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.leaves[hostelID] == nil {
		m.leaves[hostelID] = map[string]*domain.LeaveRequest{}
	}
	cp := *l
	cp.LeaveID = uuid.NewString()
	cp.HostelID = hostelID
	cp.Status = domain.LeavePending
	cp.CreatedAt = sql.NullTime{Time: time.Now(), Valid: true}
	m.leaves[hostelID][cp.LeaveID] = &cp
	return cp.LeaveID, nil
}

func (m *MemoryStore) SetLeaveStatus(_ context.Context, hostelID, leaveID, status, approvedBy string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.leaves[hostelID][leaveID]
	if !ok || l.Status != domain.LeavePending {
		return false, nil
	}
	l.Status = status
	l.ApprovedBy = sql.NullString{String: approvedBy, Valid: approvedBy != ""}
	return true, nil
}

func (m *MemoryStore) DeleteLeave(_ context.Context, hostelID, leaveID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.leaves[hostelID][leaveID]; !ok {
		return sql.ErrNoRows
	}
	delete(m.leaves[hostelID], leaveID)
	return nil
}

// ---- inventory ----

func (m *MemoryStore) ListInventory(_ context.Context, hostelID, roomID string, page, size int) ([]*domain.InventoryItem, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*domain.InventoryItem{}
	for _, it := range m.inventory[hostelID] {
		if roomID != "" && (!it.RoomID.Valid || it.RoomID.String != roomID) {
			continue
		}
		cp := *it
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemName < out[j].ItemName })
	paged, total := paginate(out, page, size)
	return paged, total, nil
}

func (m *MemoryStore) CreateInventoryItem(_ context.Context, hostelID string, it *domain.InventoryItem) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.inventory[hostelID] == nil {
		m.inventory[hostelID] = map[string]*domain.InventoryItem{}
	}
	cp := *it
	cp.ItemID = uuid.NewString()
	cp.HostelID = hostelID
	cp.CreatedAt = sql.NullTime{Time: time.Now(), Valid: true}
	m.inventory[hostelID][cp.ItemID] = &cp
	return cp.ItemID, nil
}

func (m *MemoryStore) UpdateInventoryItem(_ context.Context, hostelID, itemID string, it *domain.InventoryItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.inventory[hostelID][itemID]
	if !ok {
		return sql.ErrNoRows
	}
	cur.RoomID = it.RoomID
	cur.ItemName = it.ItemName
	cur.Quantity = it.Quantity
	cur.Condition = it.Condition
	cur.UpdatedAt = sql.NullTime{Time: time.Now(), Valid: true}
	return nil
}

func (m *MemoryStore) DeleteInventoryItem(_ context.Context, hostelID, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.inventory[hostelID][itemID]; !ok {
		return sql.ErrNoRows
	}
	delete(m.inventory[hostelID], itemID)
	return nil
}

// ---- reports ----

func (m *MemoryStore) OccupancySummary(_ context.Context, hostelID string) (*OccupancySummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := &OccupancySummary{}
	for _, r := range m.rooms[hostelID] {
		s.TotalRooms++
		s.TotalCapacity += r.Capacity
		s.TotalOccupancy += r.CurrentOccupancy
		switch r.Status {
		case domain.RoomStatusAvailable:
			s.Available++
		case domain.RoomStatusPartiallyOccupied:
			s.PartiallyOccupied++
		case domain.RoomStatusOccupied:
			s.Occupied++
		case domain.RoomStatusMaintenance:
			s.Maintenance++
		}
	}
	return s, nil
}

func (m *MemoryStore) FeeSummary(_ context.Context, hostelID string) (*FeeSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := &FeeSummary{}
	for _, f := range m.fees[hostelID] {
		switch f.Status {
		case domain.FeeStatusDue:
			s.TotalDue += f.Amount
		case domain.FeeStatusPaid:
			s.TotalPaid += f.Amount
		case domain.FeeStatusOverdue:
			s.TotalOverdue += f.Amount
		}
	}
	return s, nil
}
