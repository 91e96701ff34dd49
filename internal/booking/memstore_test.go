package booking

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/court-reservation/internal/model"
)

// In-memory store fakes.  CreateActive takes the same lock as the real
// repository takes a transaction, so the concurrency guarantees under
// test match production semantics.

type memCourts struct {
	mu      sync.Mutex
	courts  map[uint64]model.Court
	private map[uint64]bool
}

func newMemCourts() *memCourts {
	return &memCourts{courts: map[uint64]model.Court{}, private: map[uint64]bool{}}
}

func (m *memCourts) add(c model.Court, private bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.courts[c.ID] = c
	m.private[c.ID] = private
}

func (m *memCourts) GetCourt(_ context.Context, id uint64) (*model.Court, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.courts[id]
	if !ok {
		return nil, false, ErrNotFound
	}
	return &c, m.private[id], nil
}

func (m *memCourts) ListCourts(_ context.Context, sport string, ids []uint64) ([]model.Court, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := map[uint64]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	out := []model.Court{}
	for _, c := range m.courts {
		if !c.IsActive {
			continue
		}
		if sport != "" && c.Sport != sport {
			continue
		}
		if len(ids) > 0 && !wanted[c.ID] {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

type memTemplates struct {
	mu        sync.Mutex
	templates map[uint64]model.SlotTemplate
}

func newMemTemplates() *memTemplates {
	return &memTemplates{templates: map[uint64]model.SlotTemplate{}}
}

func (m *memTemplates) add(t model.SlotTemplate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates[t.ID] = t
}

func (m *memTemplates) GetTemplate(_ context.Context, id uint64) (*model.SlotTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.templates[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (m *memTemplates) ListActive(_ context.Context, courtIDs []uint64) ([]model.SlotTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := map[uint64]bool{}
	for _, id := range courtIDs {
		wanted[id] = true
	}
	out := []model.SlotTemplate{}
	for _, t := range m.templates {
		if t.IsActive && wanted[t.CourtID] {
			out = append(out, t)
		}
	}
	return out, nil
}

type memHolidays struct {
	mu      sync.Mutex
	entries []model.HolidayEntry
}

func (m *memHolidays) add(e model.HolidayEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
}

func (m *memHolidays) ListRange(_ context.Context, from, to time.Time, courtIDs []uint64) ([]model.HolidayEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := map[uint64]bool{0: true}
	for _, id := range courtIDs {
		wanted[id] = true
	}
	out := []model.HolidayEntry{}
	for _, e := range m.entries {
		if !e.IsActive || e.Date.Before(from) || e.Date.After(to) || !wanted[e.CourtID] {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

type memReservations struct {
	mu       sync.Mutex
	nextID   uint64
	rows     map[uint64]*model.Reservation
	addOns   map[uint64][]model.AddOnLine
	payments map[uint64]*model.Payment
	audit    []model.PaymentTransaction
}

func newMemReservations() *memReservations {
	return &memReservations{
		rows:     map[uint64]*model.Reservation{},
		addOns:   map[uint64][]model.AddOnLine{},
		payments: map[uint64]*model.Payment{},
	}
}

func (m *memReservations) CreateActive(_ context.Context, res *model.Reservation, addOns []model.AddOnLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := SlotKey{CourtID: res.CourtID, SlotTemplateID: res.SlotTemplateID, Date: FormatDate(res.Date)}
	for _, existing := range m.rows {
		if existing.Status.Active() &&
			(SlotKey{CourtID: existing.CourtID, SlotTemplateID: existing.SlotTemplateID, Date: FormatDate(existing.Date)}) == key {
			return ErrSlotTaken
		}
	}
	m.nextID++
	res.ID = m.nextID
	res.CreatedAt = time.Now().UTC()
	res.UpdatedAt = res.CreatedAt
	cp := *res
	m.rows[res.ID] = &cp
	if len(addOns) > 0 {
		lines := make([]model.AddOnLine, len(addOns))
		copy(lines, addOns)
		for i := range lines {
			lines[i].ReservationID = res.ID
		}
		m.addOns[res.ID] = lines
	}
	return nil
}

func (m *memReservations) GetReservation(_ context.Context, id uint64) (*model.Reservation, []model.AddOnLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, nil, ErrNotFound
	}
	cp := *row
	return &cp, append([]model.AddOnLine(nil), m.addOns[id]...), nil
}

func (m *memReservations) ActiveKeys(_ context.Context, courtIDs []uint64, from, to time.Time) (map[SlotKey]struct{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := map[uint64]bool{}
	for _, id := range courtIDs {
		wanted[id] = true
	}
	keys := map[SlotKey]struct{}{}
	for _, row := range m.rows {
		if !row.Status.Active() || !wanted[row.CourtID] || row.Date.Before(from) || row.Date.After(to) {
			continue
		}
		keys[SlotKey{CourtID: row.CourtID, SlotTemplateID: row.SlotTemplateID, Date: FormatDate(row.Date)}] = struct{}{}
	}
	return keys, nil
}

func (m *memReservations) Mutate(_ context.Context, id uint64, mutate func(res *model.Reservation, pay *model.Payment) (*model.PaymentTransaction, error)) (*model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	res := *row
	var pay model.Payment
	if p, ok := m.payments[id]; ok {
		pay = *p
	}
	txn, err := mutate(&res, &pay)
	if err != nil {
		return nil, err
	}
	*row = res
	if pay.ID != 0 {
		*m.payments[id] = pay
	} else if pay.AmountCents > 0 {
		pay.ID = uint64(len(m.payments) + 1)
		cp := pay
		m.payments[id] = &cp
	}
	if txn != nil {
		txn.ID = uint64(len(m.audit) + 1)
		txn.CreatedAt = time.Now().UTC()
		m.audit = append(m.audit, *txn)
	}
	cp := res
	return &cp, nil
}

type memAccess struct {
	mu      sync.Mutex
	allowed map[uint64]map[uint64]bool // userID -> courtID -> ok
	err     error
}

func newMemAccess() *memAccess { return &memAccess{allowed: map[uint64]map[uint64]bool{}} }

func (m *memAccess) allow(userID, courtID uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.allowed[userID] == nil {
		m.allowed[userID] = map[uint64]bool{}
	}
	m.allowed[userID][courtID] = true
}

func (m *memAccess) CanAccess(_ context.Context, userID, courtID uint64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	return m.allowed[userID][courtID], nil
}

// fixture bundles the fakes behind one service instance.
type fixture struct {
	courts       *memCourts
	templates    *memTemplates
	holidays     *memHolidays
	reservations *memReservations
	access       *memAccess
	svc          *Service
}

func newFixture(cfg Config) *fixture {
	f := &fixture{
		courts:       newMemCourts(),
		templates:    newMemTemplates(),
		holidays:     &memHolidays{},
		reservations: newMemReservations(),
		access:       newMemAccess(),
	}
	f.svc = NewService(f.courts, f.templates, f.holidays, f.reservations, f.access, cfg)
	return f
}

// seedCourt adds an active public tennis court with one template per
// weekday at 18:00-19:00.
func (f *fixture) seedCourt(courtID uint64, rateCents int64) {
	f.courts.add(model.Court{ID: courtID, VenueID: 1, Name: "Court", Sport: "TENNIS",
		HourlyRateCents: rateCents, IsActive: true}, false)
	for day := 0; day <= 6; day++ {
		f.templates.add(model.SlotTemplate{
			ID:        courtID*10 + uint64(day),
			CourtID:   courtID,
			DayOfWeek: day,
			StartTime: "18:00",
			EndTime:   "19:00",
			IsActive:  true,
		})
	}
}
