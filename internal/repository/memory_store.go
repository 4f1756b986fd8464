package repository

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"hostel-data/internal/domain"

	"github.com/google/uuid"
)

// MemoryStore backs every repository interface with in-process maps. Used
// when the DB is not ready (dev fallback in main) and by the service tests.
// One mutex covers the whole store so reconciliation sees a consistent view
// of rooms and students, mirroring the row lock the Postgres repository
// takes.
type MemoryStore struct {
	mu sync.RWMutex

	hostels map[string]*domain.Hostel
	users   map[string]*domain.User

	// keyed hostelID -> entityID
	rooms     map[string]map[string]*domain.Room
	students  map[string]map[string]*domain.Student
	transfers map[string]map[string]*domain.RoomTransferRequest

	fees       map[string]map[string]*domain.FeeRecord
	attendance map[string]map[string]*domain.AttendanceRecord
	complaints map[string]map[string]*domain.Complaint
	staff      map[string]map[string]*domain.StaffMember
	visitors   map[string]map[string]*domain.VisitorLog
	leaves     map[string]map[string]*domain.LeaveRequest
	inventory  map[string]map[string]*domain.InventoryItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		hostels:    map[string]*domain.Hostel{},
		users:      map[string]*domain.User{},
		rooms:      map[string]map[string]*domain.Room{},
		students:   map[string]map[string]*domain.Student{},
		transfers:  map[string]map[string]*domain.RoomTransferRequest{},
		fees:       map[string]map[string]*domain.FeeRecord{},
		attendance: map[string]map[string]*domain.AttendanceRecord{},
		complaints: map[string]map[string]*domain.Complaint{},
		staff:      map[string]map[string]*domain.StaffMember{},
		visitors:   map[string]map[string]*domain.VisitorLog{},
		leaves:     map[string]map[string]*domain.LeaveRequest{},
		inventory:  map[string]map[string]*domain.InventoryItem{},
	}
}

func paginate[T any](items []T, page, size int) ([]T, int) {
	total := len(items)
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 100
	}
	start := (page - 1) * size
	if start >= total {
		return []T{}, total
	}
	end := start + size
	if end > total {
		end = total
	}
	return items[start:end], total
}

// ---- rooms ----

func (m *MemoryStore) ListRooms(_ context.Context, hostelID string, filters RoomFilters, page, size int) ([]*domain.Room, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*domain.Room{}
	for _, r := range m.rooms[hostelID] {
		if filters.Status != "" && r.Status != filters.Status {
			continue
		}
		if filters.RoomType != "" && (!r.RoomType.Valid || r.RoomType.String != filters.RoomType) {
			continue
		}
		if filters.Floor != "" && (!r.Floor.Valid || r.Floor.String != filters.Floor) {
			continue
		}
		if filters.Search != "" && !strings.Contains(strings.ToLower(r.RoomNumber), strings.ToLower(filters.Search)) {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomNumber < out[j].RoomNumber })
	paged, total := paginate(out, page, size)
	return paged, total, nil
}

func (m *MemoryStore) GetRoom(_ context.Context, hostelID, roomID string) (*domain.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.rooms[hostelID][roomID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *r
	return &cp, nil
}

func (m *MemoryStore) CreateRoom(_ context.Context, hostelID string, room *domain.Room) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rooms[hostelID] == nil {
		m.rooms[hostelID] = map[string]*domain.Room{}
	}
	cp := *room
	cp.RoomID = uuid.NewString()
	cp.HostelID = hostelID
	cp.CurrentOccupancy = 0
	cp.Status = domain.RoomStatusAvailable
	cp.CreatedAt = sql.NullTime{Time: time.Now(), Valid: true}
	m.rooms[hostelID][cp.RoomID] = &cp
	return cp.RoomID, nil
}

func (m *MemoryStore) UpdateRoom(_ context.Context, hostelID, roomID string, room *domain.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.rooms[hostelID][roomID]
	if !ok {
		return sql.ErrNoRows
	}
	cur.RoomNumber = room.RoomNumber
	cur.RoomType = room.RoomType
	cur.Floor = room.Floor
	cur.Capacity = room.Capacity
	cur.Status = room.Status
	cur.MonthlyRent = room.MonthlyRent
	cur.UpdatedAt = sql.NullTime{Time: time.Now(), Valid: true}
	return nil
}

func (m *MemoryStore) DeleteRoom(_ context.Context, hostelID, roomID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rooms[hostelID][roomID]; !ok {
		return sql.ErrNoRows
	}
	delete(m.rooms[hostelID], roomID)
	return nil
}

func (m *MemoryStore) RoomNumberExists(_ context.Context, hostelID, roomNumber, excludeRoomID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for id, r := range m.rooms[hostelID] {
		if id == excludeRoomID {
			continue
		}
		if r.RoomNumber == roomNumber {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) ReconcileOccupancy(_ context.Context, hostelID, roomID string) (int, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[hostelID][roomID]
	if !ok {
		return 0, "", sql.ErrNoRows
	}

	count := 0
	for _, s := range m.students[hostelID] {
		if s.RoomID.Valid && s.RoomID.String == roomID && s.Status == domain.StudentStatusActive {
			count++
		}
	}

	room.CurrentOccupancy = count
	if room.Status != domain.RoomStatusMaintenance {
		room.Status = domain.DeriveRoomStatus(count, room.Capacity)
	}
	room.UpdatedAt = sql.NullTime{Time: time.Now(), Valid: true}
	return count, room.Status, nil
}

// ---- students ----

func (m *MemoryStore) ListStudents(_ context.Context, hostelID string, filters StudentFilters, page, size int) ([]*domain.Student, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*domain.Student{}
	for _, s := range m.students[hostelID] {
		if filters.Status != "" && s.Status != filters.Status {
			continue
		}
		if filters.RoomID != "" && (!s.RoomID.Valid || s.RoomID.String != filters.RoomID) {
			continue
		}
		if filters.Course != "" && (!s.Course.Valid || s.Course.String != filters.Course) {
			continue
		}
		if filters.Search != "" {
			needle := strings.ToLower(filters.Search)
			if !strings.Contains(strings.ToLower(s.FullName), needle) &&
				!strings.Contains(strings.ToLower(s.AdmissionNo), needle) {
				continue
			}
		}
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	paged, total := paginate(out, page, size)
	return paged, total, nil
}

func (m *MemoryStore) GetStudent(_ context.Context, hostelID, studentID string) (*domain.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.students[hostelID][studentID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *s
	return &cp, nil
}

func (m *MemoryStore) CreateStudent(_ context.Context, hostelID string, student *domain.Student) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.students[hostelID] == nil {
		m.students[hostelID] = map[string]*domain.Student{}
	}
	cp := *student
	cp.StudentID = uuid.NewString()
	cp.HostelID = hostelID
	cp.CreatedAt = sql.NullTime{Time: time.Now(), Valid: true}
	m.students[hostelID][cp.StudentID] = &cp
	return cp.StudentID, nil
}

func (m *MemoryStore) UpdateStudent(_ context.Context, hostelID, studentID string, student *domain.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.students[hostelID][studentID]
	if !ok {
		return sql.ErrNoRows
	}
	cur.RoomID = student.RoomID
	cur.AdmissionNo = student.AdmissionNo
	cur.FullName = student.FullName
	cur.Email = student.Email
	cur.Phone = student.Phone
	cur.GuardianName = student.GuardianName
	cur.GuardianPhone = student.GuardianPhone
	cur.Course = student.Course
	cur.Status = student.Status
	cur.UpdatedAt = sql.NullTime{Time: time.Now(), Valid: true}
	return nil
}

func (m *MemoryStore) DeleteStudent(_ context.Context, hostelID, studentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.students[hostelID][studentID]; !ok {
		return sql.ErrNoRows
	}
	delete(m.students[hostelID], studentID)
	return nil
}

func (m *MemoryStore) SetStudentRoom(_ context.Context, hostelID, studentID string, roomID sql.NullString) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.students[hostelID][studentID]
	if !ok {
		return sql.ErrNoRows
	}
	cur.RoomID = roomID
	cur.UpdatedAt = sql.NullTime{Time: time.Now(), Valid: true}
	return nil
}

func (m *MemoryStore) AdmissionNoExists(_ context.Context, hostelID, admissionNo, excludeStudentID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for id, s := range m.students[hostelID] {
		if id == excludeStudentID {
			continue
		}
		if s.AdmissionNo == admissionNo {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) CountActiveByRoom(_ context.Context, hostelID, roomID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, s := range m.students[hostelID] {
		if s.RoomID.Valid && s.RoomID.String == roomID && s.Status == domain.StudentStatusActive {
			count++
		}
	}
	return count, nil
}

// ---- transfers ----

func (m *MemoryStore) ListTransfers(_ context.Context, hostelID string, status string, page, size int) ([]*domain.RoomTransferRequest, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*domain.RoomTransferRequest{}
	for _, t := range m.transfers[hostelID] {
		if status != "" && t.Status != status {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Time.After(out[j].CreatedAt.Time)
	})
	paged, total := paginate(out, page, size)
	return paged, total, nil
}

func (m *MemoryStore) GetTransfer(_ context.Context, hostelID, requestID string) (*domain.RoomTransferRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.transfers[hostelID][requestID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *t
	return &cp, nil
}

func (m *MemoryStore) CreateTransfer(_ context.Context, hostelID string, req *domain.RoomTransferRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.transfers[hostelID] == nil {
		m.transfers[hostelID] = map[string]*domain.RoomTransferRequest{}
	}
	cp := *req
	cp.RequestID = uuid.NewString()
	cp.HostelID = hostelID
	cp.Status = domain.TransferStatusPending
	cp.CreatedAt = sql.NullTime{Time: time.Now(), Valid: true}
	m.transfers[hostelID][cp.RequestID] = &cp
	return cp.RequestID, nil
}

func (m *MemoryStore) MarkApproved(_ context.Context, hostelID, requestID, approvedBy string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.transfers[hostelID][requestID]
	if !ok || t.Status != domain.TransferStatusPending {
		return false, nil
	}
	t.Status = domain.TransferStatusApproved
	t.ApprovedBy = sql.NullString{String: approvedBy, Valid: approvedBy != ""}
	t.ApprovedAt = sql.NullTime{Time: time.Now(), Valid: true}
	return true, nil
}

func (m *MemoryStore) MarkRejected(_ context.Context, hostelID, requestID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.transfers[hostelID][requestID]
	if !ok || t.Status != domain.TransferStatusPending {
		return false, nil
	}
	t.Status = domain.TransferStatusRejected
	return true, nil
}

// ---- hostels ----

func (m *MemoryStore) ListHostels(_ context.Context) ([]*domain.Hostel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*domain.Hostel{}
	for _, h := range m.hostels {
		cp := *h
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HostelName < out[j].HostelName })
	return out, nil
}

func (m *MemoryStore) GetHostel(_ context.Context, hostelID string) (*domain.Hostel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h, ok := m.hostels[hostelID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *h
	return &cp, nil
}

func (m *MemoryStore) CreateHostel(_ context.Context, hostel *domain.Hostel) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *hostel
	if cp.HostelID == "" {
		cp.HostelID = uuid.NewString()
	}
	cp.CreatedAt = sql.NullTime{Time: time.Now(), Valid: true}
	m.hostels[cp.HostelID] = &cp
	return cp.HostelID, nil
}

func (m *MemoryStore) UpdateHostel(_ context.Context, hostelID string, hostel *domain.Hostel) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.hostels[hostelID]
	if !ok {
		return sql.ErrNoRows
	}
	cur.HostelName = hostel.HostelName
	cur.Address = hostel.Address
	cur.Warden = hostel.Warden
	cur.Phone = hostel.Phone
	cur.Status = hostel.Status
	cur.UpdatedAt = sql.NullTime{Time: time.Now(), Valid: true}
	return nil
}

func (m *MemoryStore) DeleteHostel(_ context.Context, hostelID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.hostels[hostelID]; !ok {
		return sql.ErrNoRows
	}
	delete(m.hostels, hostelID)
	return nil
}

// ---- users ----

func (m *MemoryStore) GetUser(_ context.Context, userID string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (m *MemoryStore) GetUserByAccount(_ context.Context, userAccount string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.UserAccount == userAccount {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MemoryStore) UpsertUser(_ context.Context, user *domain.User) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.UserAccount == user.UserAccount {
			u.HostelID = user.HostelID
			u.PasswordHash = user.PasswordHash
			u.Nickname = user.Nickname
			u.Role = user.Role
			u.Status = user.Status
			return u.UserID, nil
		}
	}
	cp := *user
	if cp.UserID == "" {
		cp.UserID = uuid.NewString()
	}
	cp.CreatedAt = sql.NullTime{Time: time.Now(), Valid: true}
	m.users[cp.UserID] = &cp
	return cp.UserID, nil
}

// ---- tenant resolver ----

func (m *MemoryStore) HostelIDByUserID(_ context.Context, userID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[userID]
	if !ok {
		return "", sql.ErrNoRows
	}
	if !u.HostelID.Valid {
		return "", nil
	}
	return u.HostelID.String, nil
}

func (m *MemoryStore) HostelIDByStudentID(_ context.Context, studentID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for hostelID, students := range m.students {
		if _, ok := students[studentID]; ok {
			return hostelID, nil
		}
	}
	return "", sql.ErrNoRows
}

func (m *MemoryStore) HostelIDByRoomID(_ context.Context, roomID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for hostelID, rooms := range m.rooms {
		if _, ok := rooms[roomID]; ok {
			return hostelID, nil
		}
	}
	return "", sql.ErrNoRows
}
