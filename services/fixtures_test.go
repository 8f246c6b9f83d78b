package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/meinhoongagan/household-services/db"
	"github.com/meinhoongagan/household-services/db/dbtest"
	"github.com/meinhoongagan/household-services/models"
	"github.com/meinhoongagan/household-services/utils"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var testHasher = utils.NewPasswordHasher(bcrypt.MinCost)

const testPassword = "pa55word"

type fixture struct {
	t        *testing.T
	ctx      context.Context
	db       *gorm.DB
	uploads  string
	auth     *AuthService
	gate     *Gate
	catalog  *CatalogService
	pros     *ProfessionalService
	custs    *CustomerService
	bookings *BookingService
	reviews  *ReviewService
	events   *recordingSink
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn := dbtest.New(t)
	uploads := t.TempDir()
	sink := &recordingSink{}

	f := &fixture{
		t:        t,
		ctx:      context.Background(),
		db:       conn,
		uploads:  uploads,
		auth:     NewAuthService(conn, testHasher, utils.NewTokenIssuer("test-secret", time.Hour), utils.NewLocalStore(uploads)),
		gate:     NewGate(conn),
		catalog:  NewCatalogService(conn),
		pros:     NewProfessionalService(conn),
		custs:    NewCustomerService(conn),
		bookings: NewBookingService(conn, sink),
		reviews:  NewReviewService(conn),
		events:   sink,
	}
	return f
}

func (f *fixture) admin(email string) *models.Account {
	f.t.Helper()
	require.NoError(f.t, db.SeedAdmin(f.db, testHasher, email, testPassword))
	var a models.Account
	require.NoError(f.t, f.db.Where("email = ?", email).First(&a).Error)
	return &a
}

func (f *fixture) customer(email string) *models.CustomerProfile {
	f.t.Helper()
	c, err := f.auth.RegisterCustomer(f.ctx, RegisterCustomerInput{
		Email:    email,
		Password: testPassword,
		Fullname: "Customer " + email,
		Address:  "12 MG Road",
		Pincode:  "560001",
	})
	require.NoError(f.t, err)
	return c
}

func (f *fixture) professional(email string, approved bool) *models.ProfessionalProfile {
	f.t.Helper()
	years := 4
	p, err := f.auth.RegisterProfessional(f.ctx, RegisterProfessionalInput{
		Email:             email,
		Password:          testPassword,
		Fullname:          "Pro " + email,
		AvailableServices: []string{"plumbing", "ac repair"},
		Experience:        &years,
		Address:           "7 Residency Road",
		Pincode:           "560025",
	}, nil)
	require.NoError(f.t, err)
	if approved {
		require.NoError(f.t, f.pros.SetApproval(f.ctx, p.ID, true))
		p.IsApproved = true
	}
	return p
}

func (f *fixture) service(name string, price float64) *models.Service {
	f.t.Helper()
	svc, err := f.catalog.Add(f.ctx, ServiceInput{
		Name:         name,
		Description:  name + " at home",
		Price:        &price,
		TimeRequired: "2 hours",
	})
	require.NoError(f.t, err)
	return svc
}

// completedBooking runs a booking through the whole lifecycle.
func (f *fixture) completedBooking(c *models.CustomerProfile, p *models.ProfessionalProfile, svc *models.Service) *models.Booking {
	f.t.Helper()
	b, err := f.bookings.Create(f.ctx, c, svc.ID)
	require.NoError(f.t, err)
	_, err = f.bookings.Accept(f.ctx, p, b.ID)
	require.NoError(f.t, err)
	_, err = f.bookings.Start(f.ctx, p, b.ID)
	require.NoError(f.t, err)
	b, err = f.bookings.Complete(f.ctx, p, b.ID, "done")
	require.NoError(f.t, err)
	return b
}

func (f *fixture) count(model interface{}) int64 {
	f.t.Helper()
	var n int64
	require.NoError(f.t, f.db.Model(model).Count(&n).Error)
	return n
}

type recordingSink struct {
	mu     sync.Mutex
	events []BookingEvent
}

func (s *recordingSink) Publish(ctx context.Context, ev BookingEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *recordingSink) statuses() []models.BookingStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.BookingStatus, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Status)
	}
	return out
}
