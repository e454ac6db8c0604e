// Package testutil provides in-memory stand-ins for the Mongo repositories
// and the external services, for use in tests.
package testutil

import (
	"context"
	"sync"

	"github.com/harentsoaR/smile-care-api/internal/models"
	"github.com/harentsoaR/smile-care-api/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MemStore keeps every collection in memory and enforces the same unique
// keys as the Mongo indexes. Set Err to make every call fail.
type MemStore struct {
	mu       sync.Mutex
	Options  []models.TreatmentOption
	Bookings []models.Booking
	Users    []models.User
	Payments []models.Payment
	Doctors  []models.Doctor
	Err      error
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) fail() error {
	return s.Err
}

// Option store.

func (s *MemStore) OptionStore() *MemOptions { return (*MemOptions)(s) }

type MemOptions MemStore

func (o *MemOptions) All(ctx context.Context) ([]models.TreatmentOption, error) {
	s := (*MemStore)(o)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return nil, err
	}
	out := make([]models.TreatmentOption, len(s.Options))
	for i, opt := range s.Options {
		opt.Slots = append([]string(nil), opt.Slots...)
		out[i] = opt
	}
	return out, nil
}

func (o *MemOptions) FindByName(ctx context.Context, name string) (*models.TreatmentOption, error) {
	s := (*MemStore)(o)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return nil, err
	}
	for _, opt := range s.Options {
		if opt.Name == name {
			opt.Slots = append([]string(nil), opt.Slots...)
			return &opt, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (o *MemOptions) Specialties(ctx context.Context) ([]models.Specialty, error) {
	s := (*MemStore)(o)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return nil, err
	}
	out := make([]models.Specialty, 0, len(s.Options))
	for _, opt := range s.Options {
		out = append(out, models.Specialty{ID: opt.ID, Name: opt.Name})
	}
	return out, nil
}

// Booking store.

func (s *MemStore) BookingStore() *MemBookings { return (*MemBookings)(s) }

type MemBookings MemStore

func (m *MemBookings) Insert(ctx context.Context, b *models.Booking) (primitive.ObjectID, error) {
	s := (*MemStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return primitive.NilObjectID, err
	}
	for _, existing := range s.Bookings {
		if existing.Treatment != b.Treatment || existing.AppointmentDate != b.AppointmentDate {
			continue
		}
		if existing.Email == b.Email {
			return primitive.NilObjectID, repository.ErrDuplicateBooking
		}
		if existing.Slot == b.Slot {
			return primitive.NilObjectID, repository.ErrSlotTaken
		}
	}
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	s.Bookings = append(s.Bookings, *b)
	return b.ID, nil
}

func (m *MemBookings) FindByDate(ctx context.Context, date string) ([]models.Booking, error) {
	return m.filter(func(b models.Booking) bool { return b.AppointmentDate == date })
}

func (m *MemBookings) FindByOwner(ctx context.Context, email, date, treatment string) ([]models.Booking, error) {
	return m.filter(func(b models.Booking) bool {
		return b.Email == email && b.AppointmentDate == date && b.Treatment == treatment
	})
}

func (m *MemBookings) FindByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	return m.filter(func(b models.Booking) bool { return b.Email == email })
}

func (m *MemBookings) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	found, err := m.filter(func(b models.Booking) bool { return b.ID == id })
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, repository.ErrNotFound
	}
	return &found[0], nil
}

func (m *MemBookings) MarkPaid(ctx context.Context, id primitive.ObjectID, transactionID string) (bool, error) {
	s := (*MemStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return false, err
	}
	for i := range s.Bookings {
		if s.Bookings[i].ID == id && !s.Bookings[i].Paid {
			s.Bookings[i].Paid = true
			s.Bookings[i].TransactionID = transactionID
			return true, nil
		}
	}
	return false, nil
}

func (m *MemBookings) filter(keep func(models.Booking) bool) ([]models.Booking, error) {
	s := (*MemStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return nil, err
	}
	out := make([]models.Booking, 0)
	for _, b := range s.Bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out, nil
}

// User store.

func (s *MemStore) UserStore() *MemUsers { return (*MemUsers)(s) }

type MemUsers MemStore

func (m *MemUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s := (*MemStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return nil, err
	}
	for _, u := range s.Users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (m *MemUsers) Upsert(ctx context.Context, u *models.User) (*mongo.UpdateResult, error) {
	s := (*MemStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return nil, err
	}
	for i := range s.Users {
		if s.Users[i].Email == u.Email {
			if u.Name != "" {
				s.Users[i].Name = u.Name
			}
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	id := primitive.NewObjectID()
	s.Users = append(s.Users, models.User{ID: id, Name: u.Name, Email: u.Email})
	return &mongo.UpdateResult{UpsertedCount: 1, UpsertedID: id}, nil
}

func (m *MemUsers) All(ctx context.Context) ([]models.User, error) {
	s := (*MemStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return nil, err
	}
	return append(make([]models.User, 0, len(s.Users)), s.Users...), nil
}

func (m *MemUsers) PromoteAdmin(ctx context.Context, id primitive.ObjectID) (*mongo.UpdateResult, error) {
	s := (*MemStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return nil, err
	}
	for i := range s.Users {
		if s.Users[i].ID == id {
			s.Users[i].Role = models.RoleAdmin
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	s.Users = append(s.Users, models.User{ID: id, Role: models.RoleAdmin})
	return &mongo.UpdateResult{UpsertedCount: 1, UpsertedID: id}, nil
}

// Payment store.

func (s *MemStore) PaymentStore() *MemPayments { return (*MemPayments)(s) }

type MemPayments MemStore

func (m *MemPayments) Insert(ctx context.Context, p *models.Payment) (primitive.ObjectID, error) {
	s := (*MemStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return primitive.NilObjectID, err
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.Payments = append(s.Payments, *p)
	return p.ID, nil
}

// Doctor store.

func (s *MemStore) DoctorStore() *MemDoctors { return (*MemDoctors)(s) }

type MemDoctors MemStore

func (m *MemDoctors) Insert(ctx context.Context, d *models.Doctor) (primitive.ObjectID, error) {
	s := (*MemStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return primitive.NilObjectID, err
	}
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	s.Doctors = append(s.Doctors, *d)
	return d.ID, nil
}

func (m *MemDoctors) All(ctx context.Context) ([]models.Doctor, error) {
	s := (*MemStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return nil, err
	}
	return append(make([]models.Doctor, 0, len(s.Doctors)), s.Doctors...), nil
}

func (m *MemDoctors) Delete(ctx context.Context, id primitive.ObjectID) error {
	s := (*MemStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return err
	}
	for i, d := range s.Doctors {
		if d.ID == id {
			s.Doctors = append(s.Doctors[:i], s.Doctors[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}
