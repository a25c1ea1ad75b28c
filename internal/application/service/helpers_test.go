package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/garyjia/gov-travel-expense/internal/domain/entity"
	"github.com/shopspring/decimal"
)

type logEntry struct {
	level string
	msg   string
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) Info(msg string, keysAndValues ...interface{}) {
	l.record("info", msg)
}

func (l *recordingLogger) Error(msg string, keysAndValues ...interface{}) {
	l.record("error", msg)
}

func (l *recordingLogger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg})
}

func (l *recordingLogger) errors() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.entries {
		if e.level == "error" {
			n++
		}
	}
	return n
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// sampleInput is a 60-hour C1-C8 trip: 3 per-diem days, 2 nights lump sum
// and one 445 km private car leg.
func sampleInput() *ClaimInput {
	start := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)
	return &ClaimInput{
		Traveler: TravelerInput{
			Name:       "  สมชาย   ใจดี ",
			Position:   "นักวิชาการเงินและบัญชี",
			Grade:      "C5",
			Department: "กรมธนารักษ์",
		},
		Trip: TripInput{
			Start:       start,
			End:         start.Add(60 * time.Hour),
			Purpose:     "ประชุมสัมมนา",
			Destination: "ขอนแก่น",
		},
		Accommodation: []AccommodationInput{
			{Method: "lump_sum", Nights: 2},
		},
		Transport: []TransportInput{
			{Kind: "private_vehicle", Vehicle: "private_car", DistanceKm: dec("445"), Description: "กรุงเทพ - ขอนแก่น"},
		},
	}
}

type fakeTxManager struct {
	calls int
	err   error
}

func (m *fakeTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	return fn(ctx)
}

type fakeFolderManager struct {
	base    string
	deleted []string
}

func newFakeFolderManager(t *testing.T) *fakeFolderManager {
	return &fakeFolderManager{base: t.TempDir()}
}

func (f *fakeFolderManager) CreateFolder(ctx context.Context, name string) (string, error) {
	path := f.GetPath(name)
	if err := os.MkdirAll(path, 0755); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}
	return path, nil
}

func (f *fakeFolderManager) GetPath(name string) string {
	return filepath.Join(f.base, f.SanitizeName(name))
}

func (f *fakeFolderManager) Exists(name string) bool {
	_, err := os.Stat(f.GetPath(name))
	return err == nil
}

func (f *fakeFolderManager) Delete(ctx context.Context, name string) error {
	f.deleted = append(f.deleted, name)
	return os.RemoveAll(f.GetPath(name))
}

func (f *fakeFolderManager) SanitizeName(name string) string {
	return filepath.Base(name)
}

type mockProfileRepo struct {
	saveFunc      func(ctx context.Context, p *entity.SavedProfile) error
	listFunc      func(ctx context.Context, limit int) ([]*entity.SavedProfile, error)
	getByNameFunc func(ctx context.Context, name string) (*entity.SavedProfile, error)
	touchFunc     func(ctx context.Context, name string) error
	deleteFunc    func(ctx context.Context, name string) (bool, error)
}

func (m *mockProfileRepo) Save(ctx context.Context, p *entity.SavedProfile) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, p)
	}
	p.ID = 1
	return nil
}

func (m *mockProfileRepo) List(ctx context.Context, limit int) ([]*entity.SavedProfile, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockProfileRepo) GetByName(ctx context.Context, name string) (*entity.SavedProfile, error) {
	if m.getByNameFunc != nil {
		return m.getByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *mockProfileRepo) Touch(ctx context.Context, name string) error {
	if m.touchFunc != nil {
		return m.touchFunc(ctx, name)
	}
	return nil
}

func (m *mockProfileRepo) Delete(ctx context.Context, name string) (bool, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, name)
	}
	return false, nil
}

type mockDraftRepo struct {
	drafts map[string]*entity.Draft
	err    error
	nextID int64
}

func newMockDraftRepo() *mockDraftRepo {
	return &mockDraftRepo{drafts: make(map[string]*entity.Draft)}
}

func (m *mockDraftRepo) Create(ctx context.Context, d *entity.Draft) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	d.ID = m.nextID
	d.PublicID = fmt.Sprintf("draft-%d", m.nextID)
	d.CreatedAt = time.Now()
	copied := *d
	m.drafts[d.PublicID] = &copied
	return nil
}

func (m *mockDraftRepo) List(ctx context.Context, limit int) ([]*entity.Draft, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*entity.Draft
	for _, d := range m.drafts {
		out = append(out, &entity.Draft{ID: d.ID, PublicID: d.PublicID, Name: d.Name, CreatedAt: d.CreatedAt})
	}
	return out, nil
}

func (m *mockDraftRepo) GetByPublicID(ctx context.Context, id string) (*entity.Draft, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.drafts[id], nil
}

func (m *mockDraftRepo) Delete(ctx context.Context, id string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.drafts[id]
	delete(m.drafts, id)
	return ok, nil
}
