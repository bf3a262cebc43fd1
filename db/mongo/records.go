package mongo

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/techipro/konnect-admin/db"
	"github.com/techipro/konnect-admin/types"
)

// GetUser gets a single user by its ID
func (p *Provider) GetUser(ctx context.Context, id string) (*types.User, error) {
	var user types.User
	if err := findOne(ctx, p.users(), "user", id, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// GetAllUsers gets all users
func (p *Provider) GetAllUsers(ctx context.Context) ([]types.User, error) {
	var users []types.User
	if err := findAll(ctx, p.users(), &users); err != nil {
		return nil, err
	}

	// Return non-nil slice so JSON serialization is nice
	if users == nil {
		return []types.User{}, nil
	}

	return users, nil
}

// UpdateUser applies the non-nil fields of update
func (p *Provider) UpdateUser(ctx context.Context, id string, update types.UserUpdate) (*types.User, error) {
	fields := bson.M{"updatedat": p.now()}
	if update.Username != nil {
		fields["username"] = strings.TrimSpace(*update.Username)
	}
	if update.Email != nil {
		fields["email"] = strings.TrimSpace(*update.Email)
	}
	if update.Role != nil {
		fields["role"] = strings.ToUpper(strings.TrimSpace(*update.Role))
	}
	if update.IsActive != nil {
		fields["isactive"] = *update.IsActive
	}

	var user types.User
	if err := setFields(ctx, p.users(), "user", id, fields, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// DeleteUser removes a user
func (p *Provider) DeleteUser(ctx context.Context, id string) error {
	return deleteOne(ctx, p.users(), "user", id)
}

// GetTechnician gets a single technician by its ID
func (p *Provider) GetTechnician(ctx context.Context, id string) (*types.Technician, error) {
	var technician types.Technician
	if err := findOne(ctx, p.technicians(), "technician", id, &technician); err != nil {
		return nil, err
	}

	return &technician, nil
}

// GetAllTechnicians gets all technicians
func (p *Provider) GetAllTechnicians(ctx context.Context) ([]types.Technician, error) {
	var technicians []types.Technician
	if err := findAll(ctx, p.technicians(), &technicians); err != nil {
		return nil, err
	}

	// Return non-nil slice so JSON serialization is nice
	if technicians == nil {
		return []types.Technician{}, nil
	}

	return technicians, nil
}

// UpdateTechnician applies the non-nil fields of update
func (p *Provider) UpdateTechnician(ctx context.Context, id string, update types.TechnicianUpdate) (*types.Technician, error) {
	fields := bson.M{"updatedat": p.now()}
	if update.CategoryID != nil {
		category, err := p.GetCategory(ctx, *update.CategoryID)
		if err != nil {
			return nil, err
		}
		fields["category"] = types.CategoryRef{ID: category.ID, Name: category.Name}
	}
	if update.VerificationStatus != nil {
		fields["verificationstatus"] = *update.VerificationStatus
	}
	if update.AvailabilityStatus != nil {
		fields["availabilitystatus"] = *update.AvailabilityStatus
	}
	if update.Location != nil {
		fields["location"] = *update.Location
	}

	var technician types.Technician
	if err := setFields(ctx, p.technicians(), "technician", id, fields, &technician); err != nil {
		return nil, err
	}

	return &technician, nil
}

// FinalVerification records an admin decision. The update only matches
// while the technician is still pending, so concurrent decisions cannot both apply.
func (p *Provider) FinalVerification(ctx context.Context, id string, decision types.Decision, notes string) (*types.Technician, error) {
	current, err := p.GetTechnician(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.VerificationStatus != types.VerificationPending {
		return nil, db.NewInvalidStateError(id, current.VerificationStatus, "verify technician")
	}

	var status string
	switch decision {
	case types.DecisionApprove:
		status = types.VerificationVerified
	case types.DecisionReject:
		status = types.VerificationRejected
	default:
		return nil, db.NewInvalidStateError(id, current.VerificationStatus, string(decision))
	}

	data := types.FirebaseKYCData{}
	if current.FirebaseKYCData != nil {
		data = *current.FirebaseKYCData
	}
	data.AdminNotes = notes

	filter := bson.M{"id": id, "verificationstatus": types.VerificationPending}
	update := bson.M{"$set": bson.M{
		"verificationstatus": status,
		"firebasekycdata":    data,
		"updatedat":          p.now(),
	}}
	after := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var technician types.Technician
	err = p.technicians().FindOneAndUpdate(ctx, filter, update, after).Decode(&technician)
	if err == mongo.ErrNoDocuments {
		// Another decision landed between the read and the update
		return nil, db.NewInvalidStateError(id, "decided", "verify technician")
	}
	if err != nil {
		return nil, err
	}

	return &technician, nil
}

// GetCategory gets a single category by its ID
func (p *Provider) GetCategory(ctx context.Context, id string) (*types.Category, error) {
	var category types.Category
	if err := findOne(ctx, p.categories(), "category", id, &category); err != nil {
		return nil, err
	}

	if err := p.countTechnicians(ctx, &category); err != nil {
		return nil, err
	}

	return &category, nil
}

// GetAllCategories gets all categories
func (p *Provider) GetAllCategories(ctx context.Context) ([]types.Category, error) {
	var categories []types.Category
	if err := findAll(ctx, p.categories(), &categories); err != nil {
		return nil, err
	}

	for i := range categories {
		if err := p.countTechnicians(ctx, &categories[i]); err != nil {
			return nil, err
		}
	}

	// Return non-nil slice so JSON serialization is nice
	if categories == nil {
		return []types.Category{}, nil
	}

	return categories, nil
}

// CreateCategory inserts a new category
func (p *Provider) CreateCategory(ctx context.Context, category types.Category) error {
	now := p.now()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	category.UpdatedAt = now
	category.TechnicianCount = 0

	_, err := p.categories().InsertOne(ctx, category)
	if err != nil {
		// Handle known cases (such as when the category was duplicate)
		if isDuplicate(err) {
			return db.NewDuplicateIDError(category.ID)
		}

		return err
	}

	return nil
}

// UpdateCategory replaces a category's editable fields
func (p *Provider) UpdateCategory(ctx context.Context, id string, input types.CategoryInput) (*types.Category, error) {
	fields := bson.M{
		"name":        input.Name,
		"description": input.Description,
		"isactive":    input.IsActive,
		"updatedat":   p.now(),
	}

	var category types.Category
	if err := setFields(ctx, p.categories(), "category", id, fields, &category); err != nil {
		return nil, err
	}

	if err := p.countTechnicians(ctx, &category); err != nil {
		return nil, err
	}

	return &category, nil
}

// DeleteCategory removes a category
func (p *Provider) DeleteCategory(ctx context.Context, id string) error {
	return deleteOne(ctx, p.categories(), "category", id)
}

func (p *Provider) countTechnicians(ctx context.Context, category *types.Category) error {
	count, err := p.technicians().CountDocuments(ctx, bson.M{"category.id": category.ID})
	if err != nil {
		return err
	}

	category.TechnicianCount = int(count)
	return nil
}

// GetAllServices gets all services
func (p *Provider) GetAllServices(ctx context.Context) ([]types.Service, error) {
	var services []types.Service
	if err := findAll(ctx, p.services(), &services); err != nil {
		return nil, err
	}

	// Return non-nil slice so JSON serialization is nice
	if services == nil {
		return []types.Service{}, nil
	}

	return services, nil
}

// GetAppointment gets a single appointment by its ID
func (p *Provider) GetAppointment(ctx context.Context, id string) (*types.Appointment, error) {
	var appointment types.Appointment
	if err := findOne(ctx, p.appointments(), "appointment", id, &appointment); err != nil {
		return nil, err
	}

	return &appointment, nil
}

// GetAllAppointments gets all appointments
func (p *Provider) GetAllAppointments(ctx context.Context) ([]types.Appointment, error) {
	var appointments []types.Appointment
	if err := findAll(ctx, p.appointments(), &appointments); err != nil {
		return nil, err
	}

	// Return non-nil slice so JSON serialization is nice
	if appointments == nil {
		return []types.Appointment{}, nil
	}

	return appointments, nil
}

// UpdateAppointment applies the non-nil fields of update
func (p *Provider) UpdateAppointment(ctx context.Context, id string, update types.AppointmentUpdate) (*types.Appointment, error) {
	fields := bson.M{}
	if update.TechnicianID != nil {
		technician, err := p.GetTechnician(ctx, *update.TechnicianID)
		if err != nil {
			return nil, err
		}
		fields["technician"] = types.Party{ID: technician.ID, Username: technician.Username}
	}
	if update.Status != nil {
		fields["status"] = *update.Status
	}
	if update.ScheduledAt != nil {
		fields["scheduledat"] = *update.ScheduledAt
	}
	if update.Notes != nil {
		fields["notes"] = *update.Notes
	}

	var appointment types.Appointment
	if len(fields) == 0 {
		if err := findOne(ctx, p.appointments(), "appointment", id, &appointment); err != nil {
			return nil, err
		}
		return &appointment, nil
	}
	if err := setFields(ctx, p.appointments(), "appointment", id, fields, &appointment); err != nil {
		return nil, err
	}

	return &appointment, nil
}

// GetPayment gets a single payment by its ID
func (p *Provider) GetPayment(ctx context.Context, id string) (*types.Payment, error) {
	var payment types.Payment
	if err := findOne(ctx, p.payments(), "payment", id, &payment); err != nil {
		return nil, err
	}

	return &payment, nil
}

// GetAllPayments gets all payments
func (p *Provider) GetAllPayments(ctx context.Context) ([]types.Payment, error) {
	var payments []types.Payment
	if err := findAll(ctx, p.payments(), &payments); err != nil {
		return nil, err
	}

	// Return non-nil slice so JSON serialization is nice
	if payments == nil {
		return []types.Payment{}, nil
	}

	return payments, nil
}

// GetSettings returns the stored settings, or the zero value before the first update
func (p *Provider) GetSettings(ctx context.Context) (*types.Settings, error) {
	var settings types.Settings
	err := p.settings().FindOne(ctx, bson.M{"_id": settingsID}).Decode(&settings)
	if err != nil && err != mongo.ErrNoDocuments {
		return nil, err
	}

	return &settings, nil
}

// UpdateSettings replaces the platform settings
func (p *Provider) UpdateSettings(ctx context.Context, settings types.Settings) (*types.Settings, error) {
	_, err := p.settings().ReplaceOne(ctx, bson.M{"_id": settingsID}, settings, options.Replace().SetUpsert(true))
	if err != nil {
		return nil, err
	}

	return &settings, nil
}
