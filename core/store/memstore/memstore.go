// Package memstore is the in-memory Store backend, used for development and
// tests. It keeps everything in maps behind one RWMutex and can snapshot its
// state to a JSON file so restarts keep data, replacing the file-backed
// fallback of earlier InternTrack deployments with typed records.
package memstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"interntrack.com/interntrack/core/model"
	"interntrack.com/interntrack/core/store"
)

type Store struct {
	mu           sync.RWMutex
	snapshotPath string

	attendance    map[string]*model.AttendanceRecord
	attendanceKey map[string]string // userID|date -> record id
	users         map[string]*model.User
	userEmails    map[string]string // email -> user id
	reports       map[string]*model.DailyReport
	reportKey     map[string]string // userID|date -> report id
	screenshots   map[string]*model.Screenshot
}

// New creates an empty store. When snapshotPath is non-empty, existing state
// is loaded from it and every mutation rewrites it.
func New(snapshotPath string) (*Store, error) {
	s := &Store{
		snapshotPath:  snapshotPath,
		attendance:    make(map[string]*model.AttendanceRecord),
		attendanceKey: make(map[string]string),
		users:         make(map[string]*model.User),
		userEmails:    make(map[string]string),
		reports:       make(map[string]*model.DailyReport),
		reportKey:     make(map[string]string),
		screenshots:   make(map[string]*model.Screenshot),
	}
	if snapshotPath != "" {
		if err := s.load(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) Attendance() store.AttendanceStore  { return (*attendanceStore)(s) }
func (s *Store) Users() store.UserStore             { return (*userStore)(s) }
func (s *Store) Reports() store.ReportStore         { return (*reportStore)(s) }
func (s *Store) Screenshots() store.ScreenshotStore { return (*screenshotStore)(s) }

func key(userID, date string) string {
	return userID + "|" + date
}

type snapshot struct {
	Attendance  []*model.AttendanceRecord `json:"attendance"`
	Users       []*model.User             `json:"users"`
	Reports     []*model.DailyReport      `json:"reports"`
	Screenshots []*model.Screenshot       `json:"screenshots"`
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.snapshotPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read snapshot: %w", err)
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	for _, rec := range snap.Attendance {
		s.attendance[rec.ID] = rec
		s.attendanceKey[key(rec.UserID, rec.Date)] = rec.ID
	}
	for _, u := range snap.Users {
		s.users[u.ID] = u
		s.userEmails[u.Email] = u.ID
	}
	for _, r := range snap.Reports {
		s.reports[r.ID] = r
		s.reportKey[key(r.UserID, r.Date)] = r.ID
	}
	for _, sc := range snap.Screenshots {
		s.screenshots[sc.ID] = sc
	}
	return nil
}

// persist writes the snapshot file. Callers hold the write lock. Snapshot
// failures are returned so a mutation is never half-acknowledged.
func (s *Store) persist() error {
	if s.snapshotPath == "" {
		return nil
	}
	snap := snapshot{}
	for _, rec := range s.attendance {
		snap.Attendance = append(snap.Attendance, rec)
	}
	for _, u := range s.users {
		snap.Users = append(snap.Users, u)
	}
	for _, r := range s.reports {
		snap.Reports = append(snap.Reports, r)
	}
	for _, sc := range s.screenshots {
		snap.Screenshots = append(snap.Screenshots, sc)
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(s.snapshotPath, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func cloneAttendance(rec *model.AttendanceRecord) *model.AttendanceRecord {
	out := *rec
	out.Breaks = make([]model.Break, len(rec.Breaks))
	copy(out.Breaks, rec.Breaks)
	if rec.ClockOutTime != nil {
		v := *rec.ClockOutTime
		out.ClockOutTime = &v
	}
	if rec.TotalHours != nil {
		v := *rec.TotalHours
		out.TotalHours = &v
	}
	for i := range rec.Breaks {
		if rec.Breaks[i].BreakEndTime != nil {
			v := *rec.Breaks[i].BreakEndTime
			out.Breaks[i].BreakEndTime = &v
		}
		if rec.Breaks[i].BreakDuration != nil {
			v := *rec.Breaks[i].BreakDuration
			out.Breaks[i].BreakDuration = &v
		}
	}
	return &out
}

func cloneUser(u *model.User) *model.User {
	out := *u
	return &out
}

func cloneReport(r *model.DailyReport) *model.DailyReport {
	out := *r
	out.ToolsUsed = append(model.StringList(nil), r.ToolsUsed...)
	if r.ReviewedAt != nil {
		v := *r.ReviewedAt
		out.ReviewedAt = &v
	}
	return &out
}

func cloneScreenshot(sc *model.Screenshot) *model.Screenshot {
	out := *sc
	return &out
}

// attendanceStore implements store.AttendanceStore.
type attendanceStore Store

func (s *attendanceStore) Create(_ context.Context, rec *model.AttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(rec.UserID, rec.Date)
	if _, exists := s.attendanceKey[k]; exists {
		return store.ErrDuplicate
	}
	s.attendance[rec.ID] = cloneAttendance(rec)
	s.attendanceKey[k] = rec.ID
	return (*Store)(s).persist()
}

func (s *attendanceStore) FindByID(_ context.Context, id string) (*model.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.attendance[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneAttendance(rec), nil
}

func (s *attendanceStore) FindByUserAndDate(_ context.Context, userID, date string) (*model.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.attendanceKey[key(userID, date)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneAttendance(s.attendance[id]), nil
}

func (s *attendanceStore) Update(_ context.Context, rec *model.AttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.attendance[rec.ID]; !ok {
		return store.ErrNotFound
	}
	s.attendance[rec.ID] = cloneAttendance(rec)
	return (*Store)(s).persist()
}

func (s *attendanceStore) FindByUserID(_ context.Context, userID string, limit int) ([]model.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.AttendanceRecord
	for _, rec := range s.attendance {
		if rec.UserID == userID {
			out = append(out, *cloneAttendance(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *attendanceStore) FindAll(_ context.Context, f store.AttendanceFilter) ([]model.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.AttendanceRecord
	for _, rec := range s.attendance {
		if f.UserID != "" && rec.UserID != f.UserID {
			continue
		}
		if f.Date != "" && rec.Date != f.Date {
			continue
		}
		if f.Status != "" && rec.Status != f.Status {
			continue
		}
		if f.FromDate != "" && rec.Date < f.FromDate {
			continue
		}
		if f.ToDate != "" && rec.Date > f.ToDate {
			continue
		}
		out = append(out, *cloneAttendance(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

// userStore implements store.UserStore.
type userStore Store

func (s *userStore) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.userEmails[u.Email]; exists {
		return store.ErrDuplicate
	}
	s.users[u.ID] = cloneUser(u)
	s.userEmails[u.Email] = u.ID
	return (*Store)(s).persist()
}

func (s *userStore) FindByID(_ context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneUser(u), nil
}

func (s *userStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.userEmails[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneUser(s.users[id]), nil
}

func (s *userStore) Update(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.users[u.ID]
	if !ok {
		return store.ErrNotFound
	}
	if old.Email != u.Email {
		if _, taken := s.userEmails[u.Email]; taken {
			return store.ErrDuplicate
		}
		delete(s.userEmails, old.Email)
		s.userEmails[u.Email] = u.ID
	}
	s.users[u.ID] = cloneUser(u)
	return (*Store)(s).persist()
}

func (s *userStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	delete(s.userEmails, u.Email)
	delete(s.users, id)
	return (*Store)(s).persist()
}

func (s *userStore) FindAll(_ context.Context, f store.UserFilter) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.User
	for _, u := range s.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.IsActive != nil && u.IsActive != *f.IsActive {
			continue
		}
		out = append(out, *cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// reportStore implements store.ReportStore.
type reportStore Store

func (s *reportStore) Create(_ context.Context, r *model.DailyReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(r.UserID, r.Date)
	if _, exists := s.reportKey[k]; exists {
		return store.ErrDuplicate
	}
	s.reports[r.ID] = cloneReport(r)
	s.reportKey[k] = r.ID
	return (*Store)(s).persist()
}

func (s *reportStore) FindByID(_ context.Context, id string) (*model.DailyReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneReport(r), nil
}

func (s *reportStore) FindByUserAndDate(_ context.Context, userID, date string) (*model.DailyReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.reportKey[key(userID, date)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneReport(s.reports[id]), nil
}

func (s *reportStore) Update(_ context.Context, r *model.DailyReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reports[r.ID]; !ok {
		return store.ErrNotFound
	}
	s.reports[r.ID] = cloneReport(r)
	return (*Store)(s).persist()
}

func (s *reportStore) FindByUserID(_ context.Context, userID string, limit int) ([]model.DailyReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.DailyReport
	for _, r := range s.reports {
		if r.UserID == userID {
			out = append(out, *cloneReport(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *reportStore) FindAll(_ context.Context, f store.ReportFilter) ([]model.DailyReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.DailyReport
	for _, r := range s.reports {
		if f.UserID != "" && r.UserID != f.UserID {
			continue
		}
		if f.Date != "" && r.Date != f.Date {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.FromDate != "" && r.Date < f.FromDate {
			continue
		}
		if f.ToDate != "" && r.Date > f.ToDate {
			continue
		}
		out = append(out, *cloneReport(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

// screenshotStore implements store.ScreenshotStore.
type screenshotStore Store

func (s *screenshotStore) Create(_ context.Context, sc *model.Screenshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screenshots[sc.ID] = cloneScreenshot(sc)
	return (*Store)(s).persist()
}

func (s *screenshotStore) FindByID(_ context.Context, id string) (*model.Screenshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sc, ok := s.screenshots[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneScreenshot(sc), nil
}

func (s *screenshotStore) FindByUserID(_ context.Context, userID string, limit int) ([]model.Screenshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Screenshot
	for _, sc := range s.screenshots {
		if sc.UserID == userID {
			out = append(out, *cloneScreenshot(sc))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
