package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/techipro/konnect-admin/db"
	"github.com/techipro/konnect-admin/types"
)

// Provider is an in-memory implementation of db.Provider.
// Records keep insertion order; every accessor returns deep copies.
type Provider struct {
	sync.Mutex
	users        []types.User
	technicians  []types.Technician
	categories   []types.Category
	services     []types.Service
	appointments []types.Appointment
	payments     []types.Payment
	settings     types.Settings
	now          func() time.Time
}

// Ensure Provider implements db.Provider
var _ db.Provider = (*Provider)(nil)

// NewProvider creates an empty provider
func NewProvider() *Provider {
	return &Provider{now: time.Now}
}

// GetUser gets a single user by its ID
func (p *Provider) GetUser(ctx context.Context, id string) (*types.User, error) {
	p.Lock()
	defer p.Unlock()

	i := p.userIndex(id)
	if i < 0 {
		return nil, db.NewNotFoundError("user", id)
	}

	user := p.users[i]
	return &user, nil
}

// GetAllUsers gets all users
func (p *Provider) GetAllUsers(ctx context.Context) ([]types.User, error) {
	p.Lock()
	defer p.Unlock()

	return append([]types.User{}, p.users...), nil
}

// UpdateUser applies the non-nil fields of update
func (p *Provider) UpdateUser(ctx context.Context, id string, update types.UserUpdate) (*types.User, error) {
	p.Lock()
	defer p.Unlock()

	i := p.userIndex(id)
	if i < 0 {
		return nil, db.NewNotFoundError("user", id)
	}

	user := &p.users[i]
	if update.Username != nil {
		user.Username = strings.TrimSpace(*update.Username)
	}
	if update.Email != nil {
		user.Email = strings.TrimSpace(*update.Email)
	}
	if update.Role != nil {
		user.Role = strings.ToUpper(strings.TrimSpace(*update.Role))
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}
	user.UpdatedAt = p.now()

	updated := *user
	return &updated, nil
}

// DeleteUser removes a user
func (p *Provider) DeleteUser(ctx context.Context, id string) error {
	p.Lock()
	defer p.Unlock()

	i := p.userIndex(id)
	if i < 0 {
		return db.NewNotFoundError("user", id)
	}

	p.users = append(p.users[:i], p.users[i+1:]...)
	return nil
}

// GetTechnician gets a single technician by its ID
func (p *Provider) GetTechnician(ctx context.Context, id string) (*types.Technician, error) {
	p.Lock()
	defer p.Unlock()

	i := p.technicianIndex(id)
	if i < 0 {
		return nil, db.NewNotFoundError("technician", id)
	}

	technician := cloneTechnician(p.technicians[i])
	return &technician, nil
}

// GetAllTechnicians gets all technicians
func (p *Provider) GetAllTechnicians(ctx context.Context) ([]types.Technician, error) {
	p.Lock()
	defer p.Unlock()

	return cloneTechnicians(p.technicians), nil
}

// UpdateTechnician applies the non-nil fields of update
func (p *Provider) UpdateTechnician(ctx context.Context, id string, update types.TechnicianUpdate) (*types.Technician, error) {
	p.Lock()
	defer p.Unlock()

	i := p.technicianIndex(id)
	if i < 0 {
		return nil, db.NewNotFoundError("technician", id)
	}

	var category *types.CategoryRef
	if update.CategoryID != nil {
		j := p.categoryIndex(*update.CategoryID)
		if j < 0 {
			return nil, db.NewNotFoundError("category", *update.CategoryID)
		}
		category = &types.CategoryRef{ID: p.categories[j].ID, Name: p.categories[j].Name}
	}

	technician := &p.technicians[i]
	if category != nil {
		technician.Category = category
	}
	if update.VerificationStatus != nil {
		technician.VerificationStatus = *update.VerificationStatus
	}
	if update.AvailabilityStatus != nil {
		technician.AvailabilityStatus = *update.AvailabilityStatus
	}
	if update.Location != nil {
		technician.Location = *update.Location
	}
	technician.UpdatedAt = p.now()

	updated := cloneTechnician(*technician)
	return &updated, nil
}

// FinalVerification records an admin decision on a technician
// that is still awaiting review
func (p *Provider) FinalVerification(ctx context.Context, id string, decision types.Decision, notes string) (*types.Technician, error) {
	p.Lock()
	defer p.Unlock()

	i := p.technicianIndex(id)
	if i < 0 {
		return nil, db.NewNotFoundError("technician", id)
	}

	technician := &p.technicians[i]
	if technician.VerificationStatus != types.VerificationPending {
		return nil, db.NewInvalidStateError(id, technician.VerificationStatus, "verify technician")
	}

	switch decision {
	case types.DecisionApprove:
		technician.VerificationStatus = types.VerificationVerified
	case types.DecisionReject:
		technician.VerificationStatus = types.VerificationRejected
	default:
		return nil, db.NewInvalidStateError(id, technician.VerificationStatus, string(decision))
	}

	data := types.FirebaseKYCData{}
	if technician.FirebaseKYCData != nil {
		data = *technician.FirebaseKYCData
	}
	data.AdminNotes = notes
	technician.FirebaseKYCData = &data
	technician.UpdatedAt = p.now()

	updated := cloneTechnician(*technician)
	return &updated, nil
}

// GetCategory gets a single category by its ID
func (p *Provider) GetCategory(ctx context.Context, id string) (*types.Category, error) {
	p.Lock()
	defer p.Unlock()

	i := p.categoryIndex(id)
	if i < 0 {
		return nil, db.NewNotFoundError("category", id)
	}

	category := p.withTechnicianCount(p.categories[i])
	return &category, nil
}

// GetAllCategories gets all categories
func (p *Provider) GetAllCategories(ctx context.Context) ([]types.Category, error) {
	p.Lock()
	defer p.Unlock()

	categories := make([]types.Category, 0, len(p.categories))
	for _, category := range p.categories {
		categories = append(categories, p.withTechnicianCount(category))
	}

	return categories, nil
}

// CreateCategory inserts a new category
func (p *Provider) CreateCategory(ctx context.Context, category types.Category) error {
	p.Lock()
	defer p.Unlock()

	if p.categoryIndex(category.ID) >= 0 {
		return db.NewDuplicateIDError(category.ID)
	}

	now := p.now()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	category.UpdatedAt = now
	p.categories = append(p.categories, category)
	return nil
}

// UpdateCategory replaces a category's editable fields
func (p *Provider) UpdateCategory(ctx context.Context, id string, input types.CategoryInput) (*types.Category, error) {
	p.Lock()
	defer p.Unlock()

	i := p.categoryIndex(id)
	if i < 0 {
		return nil, db.NewNotFoundError("category", id)
	}

	category := &p.categories[i]
	category.Name = input.Name
	category.Description = input.Description
	category.IsActive = input.IsActive
	category.UpdatedAt = p.now()

	updated := p.withTechnicianCount(*category)
	return &updated, nil
}

// DeleteCategory removes a category
func (p *Provider) DeleteCategory(ctx context.Context, id string) error {
	p.Lock()
	defer p.Unlock()

	i := p.categoryIndex(id)
	if i < 0 {
		return db.NewNotFoundError("category", id)
	}

	p.categories = append(p.categories[:i], p.categories[i+1:]...)
	return nil
}

// GetAllServices gets all services
func (p *Provider) GetAllServices(ctx context.Context) ([]types.Service, error) {
	p.Lock()
	defer p.Unlock()

	return cloneServices(p.services), nil
}

// GetAppointment gets a single appointment by its ID
func (p *Provider) GetAppointment(ctx context.Context, id string) (*types.Appointment, error) {
	p.Lock()
	defer p.Unlock()

	for _, appointment := range p.appointments {
		if appointment.ID == id {
			cloned := cloneAppointment(appointment)
			return &cloned, nil
		}
	}

	return nil, db.NewNotFoundError("appointment", id)
}

// GetAllAppointments gets all appointments
func (p *Provider) GetAllAppointments(ctx context.Context) ([]types.Appointment, error) {
	p.Lock()
	defer p.Unlock()

	return cloneAppointments(p.appointments), nil
}

// UpdateAppointment applies the non-nil fields of update
func (p *Provider) UpdateAppointment(ctx context.Context, id string, update types.AppointmentUpdate) (*types.Appointment, error) {
	p.Lock()
	defer p.Unlock()

	for i := range p.appointments {
		appointment := &p.appointments[i]
		if appointment.ID != id {
			continue
		}

		var technician *types.Party
		if update.TechnicianID != nil {
			j := p.technicianIndex(*update.TechnicianID)
			if j < 0 {
				return nil, db.NewNotFoundError("technician", *update.TechnicianID)
			}
			technician = &types.Party{ID: p.technicians[j].ID, Username: p.technicians[j].Username}
		}

		if technician != nil {
			appointment.Technician = technician
		}
		if update.Status != nil {
			appointment.Status = *update.Status
		}
		if update.ScheduledAt != nil {
			appointment.ScheduledAt = *update.ScheduledAt
		}
		if update.Notes != nil {
			appointment.Notes = *update.Notes
		}
		updated := cloneAppointment(*appointment)
		return &updated, nil
	}

	return nil, db.NewNotFoundError("appointment", id)
}

// GetPayment gets a single payment by its ID
func (p *Provider) GetPayment(ctx context.Context, id string) (*types.Payment, error) {
	p.Lock()
	defer p.Unlock()

	for _, payment := range p.payments {
		if payment.ID == id {
			cloned := clonePayment(payment)
			return &cloned, nil
		}
	}

	return nil, db.NewNotFoundError("payment", id)
}

// GetAllPayments gets all payments
func (p *Provider) GetAllPayments(ctx context.Context) ([]types.Payment, error) {
	p.Lock()
	defer p.Unlock()

	return clonePayments(p.payments), nil
}

// GetSettings gets the platform settings
func (p *Provider) GetSettings(ctx context.Context) (*types.Settings, error) {
	p.Lock()
	defer p.Unlock()

	settings := p.settings
	return &settings, nil
}

// UpdateSettings replaces the platform settings
func (p *Provider) UpdateSettings(ctx context.Context, settings types.Settings) (*types.Settings, error) {
	p.Lock()
	defer p.Unlock()

	p.settings = settings
	return &settings, nil
}

func (p *Provider) userIndex(id string) int {
	for i := range p.users {
		if p.users[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *Provider) technicianIndex(id string) int {
	for i := range p.technicians {
		if p.technicians[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *Provider) categoryIndex(id string) int {
	for i := range p.categories {
		if p.categories[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *Provider) withTechnicianCount(category types.Category) types.Category {
	count := 0
	for _, technician := range p.technicians {
		if technician.Category != nil && technician.Category.ID == category.ID {
			count++
		}
	}
	category.TechnicianCount = count
	return category
}
