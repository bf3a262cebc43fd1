package memory

import (
	"time"

	"github.com/techipro/konnect-admin/types"
)

// Seeded record identifiers, stable so that tests and demos can refer to them
const (
	SeedAdminID            = "usr-admin"
	SeedCustomerID         = "usr-customer"
	SeedPendingTechnician  = "tech-pending"
	SeedAwaitingTechnician = "tech-awaiting"
	SeedVerifiedTechnician = "tech-verified"
	SeedPlumbingCategory   = "cat-plumbing"
	SeedElectricalCategory = "cat-electrical"
	SeedAppointmentID      = "apt-1"
	SeedPaymentID          = "pay-1"
)

// NewSeededProvider creates a provider holding a small, consistent data set
func NewSeededProvider() *Provider {
	p := NewProvider()
	p.Seed(p.now())
	return p
}

// Seed replaces all data with the sample data set, dated relative to now
func (p *Provider) Seed(now time.Time) {
	p.Lock()
	defer p.Unlock()

	day := 24 * time.Hour
	faceMatch := true
	plumbing := &types.CategoryRef{ID: SeedPlumbingCategory, Name: "Plumbing"}
	electrical := &types.CategoryRef{ID: SeedElectricalCategory, Name: "Electrical"}

	p.users = []types.User{
		{ID: SeedAdminID, Username: "konnect-admin", Email: "admin@techipro.io", Role: types.RoleAdmin,
			IsActive: true, CreatedAt: now.Add(-90 * day), UpdatedAt: now.Add(-90 * day)},
		{ID: SeedCustomerID, Username: "chioma", Email: "chioma@example.com", Role: types.RoleUser,
			IsActive: true, PhoneNumber: "+2348000000001", CreatedAt: now.Add(-20 * day), UpdatedAt: now.Add(-20 * day)},
		{ID: "usr-tunde", Username: "tunde", Email: "tunde@example.com", Role: types.RoleUser,
			IsActive: false, CreatedAt: now.Add(-12 * day), UpdatedAt: now.Add(-2 * day)},
		{ID: SeedVerifiedTechnician, Username: "emeka.fixes", Email: "emeka@example.com", Role: types.RoleTechnician,
			IsActive: true, CreatedAt: now.Add(-60 * day), UpdatedAt: now.Add(-30 * day)},
	}

	p.technicians = []types.Technician{
		{
			ID: SeedPendingTechnician, Username: "amaka.volts", Email: "amaka@example.com",
			PhoneNumber: "+2348000000002", Location: "Lagos", Category: electrical,
			FirebaseKYCStatus: types.FirebaseKYCPending, VerificationStatus: types.VerificationPending,
			AvailabilityStatus: "available", CreatedAt: now.Add(-3 * day), UpdatedAt: now.Add(-3 * day),
		},
		{
			ID: SeedAwaitingTechnician, Username: "segun.pipes", Email: "segun@example.com",
			PhoneNumber: "+2348000000003", Location: "Ibadan", Category: plumbing,
			FirebaseKYCStatus: types.FirebaseKYCVerified, VerificationStatus: types.VerificationPending,
			FirebaseKYCData: &types.FirebaseKYCData{
				ConfidenceScore: 0.94,
				DocumentURLs:    []string{"https://storage.techipro.io/kyc/segun-id-front.jpg"},
				FaceMatch:       &faceMatch,
				DocumentType:    "national_id",
			},
			AvailabilityStatus: "available", CreatedAt: now.Add(-5 * day), UpdatedAt: now.Add(-1 * day),
		},
		{
			ID: SeedVerifiedTechnician, Username: "emeka.fixes", Email: "emeka@example.com",
			Location: "Abuja", Category: plumbing,
			FirebaseKYCStatus: types.FirebaseKYCVerified, VerificationStatus: types.VerificationVerified,
			FirebaseKYCData: &types.FirebaseKYCData{
				ConfidenceScore: 0.99,
				DocumentURLs:    []string{"https://storage.techipro.io/kyc/emeka-passport.jpg"},
				FaceMatch:       &faceMatch,
				DocumentType:    "passport",
				AdminNotes:      "Documents clear",
			},
			AvailabilityStatus: "busy", CreatedAt: now.Add(-60 * day), UpdatedAt: now.Add(-30 * day),
		},
	}

	p.categories = []types.Category{
		{ID: SeedPlumbingCategory, Name: "Plumbing", Description: "Pipes, leaks and fittings",
			IsActive: true, CreatedAt: now.Add(-100 * day), UpdatedAt: now.Add(-100 * day)},
		{ID: SeedElectricalCategory, Name: "Electrical", Description: "Wiring and installations",
			IsActive: true, CreatedAt: now.Add(-100 * day), UpdatedAt: now.Add(-100 * day)},
	}

	p.services = []types.Service{
		{ID: "svc-leak", Name: "Leak repair", Category: plumbing, MinPrice: 5000, MaxPrice: 20000,
			IsActive: true, CreatedAt: now.Add(-100 * day)},
		{ID: "svc-rewire", Name: "House rewiring", Category: electrical, MinPrice: 50000, MaxPrice: 250000,
			IsActive: true, CreatedAt: now.Add(-100 * day)},
	}

	p.appointments = []types.Appointment{
		{
			ID:          SeedAppointmentID,
			Customer:    &types.Party{ID: SeedCustomerID, Username: "chioma"},
			Technician:  &types.Party{ID: SeedVerifiedTechnician, Username: "emeka.fixes"},
			Service:     &types.ServiceRef{ID: "svc-leak", Name: "Leak repair"},
			ScheduledAt: now.Add(2 * day),
			Status:      types.AppointmentScheduled,
			Amount:      15000,
			CreatedAt:   now.Add(-1 * day),
		},
		{
			ID:          "apt-2",
			Customer:    &types.Party{ID: "usr-tunde", Username: "tunde"},
			Technician:  &types.Party{ID: SeedVerifiedTechnician, Username: "emeka.fixes"},
			Service:     &types.ServiceRef{ID: "svc-leak", Name: "Leak repair"},
			ScheduledAt: now.Add(-4 * day),
			Status:      types.AppointmentCompleted,
			Amount:      8000,
			CreatedAt:   now.Add(-6 * day),
		},
	}

	p.payments = []types.Payment{
		{ID: SeedPaymentID, AppointmentID: "apt-2", Customer: &types.Party{ID: "usr-tunde", Username: "tunde"},
			Amount: 8000, PaymentMethod: "card", Status: types.PaymentCompleted, CreatedAt: now.Add(-4 * day)},
		{ID: "pay-2", AppointmentID: SeedAppointmentID, Customer: &types.Party{ID: SeedCustomerID, Username: "chioma"},
			Amount: 15000, PaymentMethod: "transfer", Status: types.PaymentPending, CreatedAt: now.Add(-1 * day)},
	}

	p.settings = types.Settings{
		AppName:                   "Techi-Pro Konnect",
		SupportEmail:              "support@techipro.io",
		MaxTechniciansPerCategory: 500,
		KYCAutoApprove:            false,
		MaintenanceMode:           false,
		BookingAdvanceDays:        30,
	}
}
