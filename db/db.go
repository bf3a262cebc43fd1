package db

import (
	"context"

	"github.com/techipro/konnect-admin/types"
)

// Represents a database provider implementation
type Provider interface {
	UserProvider
	TechnicianProvider
	CategoryProvider
	ServiceProvider
	AppointmentProvider
	PaymentProvider
	SettingsProvider
}

// Provides CRUD operations for types.User structs
type UserProvider interface {
	GetUser(ctx context.Context, id string) (*types.User, error)
	GetAllUsers(ctx context.Context) ([]types.User, error)
	UpdateUser(ctx context.Context, id string, update types.UserUpdate) (*types.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// Provides read/update operations and KYC decisions for types.Technician structs
type TechnicianProvider interface {
	GetTechnician(ctx context.Context, id string) (*types.Technician, error)
	GetAllTechnicians(ctx context.Context) ([]types.Technician, error)
	UpdateTechnician(ctx context.Context, id string, update types.TechnicianUpdate) (*types.Technician, error)
	FinalVerification(ctx context.Context, id string, decision types.Decision, notes string) (*types.Technician, error)
}

// Provides CRUD operations for types.Category structs
type CategoryProvider interface {
	GetCategory(ctx context.Context, id string) (*types.Category, error)
	GetAllCategories(ctx context.Context) ([]types.Category, error)
	CreateCategory(ctx context.Context, category types.Category) error
	UpdateCategory(ctx context.Context, id string, input types.CategoryInput) (*types.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// Provides read operations for types.Service structs
type ServiceProvider interface {
	GetAllServices(ctx context.Context) ([]types.Service, error)
}

// Provides read/update operations for types.Appointment structs
type AppointmentProvider interface {
	GetAppointment(ctx context.Context, id string) (*types.Appointment, error)
	GetAllAppointments(ctx context.Context) ([]types.Appointment, error)
	UpdateAppointment(ctx context.Context, id string, update types.AppointmentUpdate) (*types.Appointment, error)
}

// Provides read operations for types.Payment structs
type PaymentProvider interface {
	GetPayment(ctx context.Context, id string) (*types.Payment, error)
	GetAllPayments(ctx context.Context) ([]types.Payment, error)
}

// Provides access to the singleton types.Settings value
type SettingsProvider interface {
	GetSettings(ctx context.Context) (*types.Settings, error)
	UpdateSettings(ctx context.Context, settings types.Settings) (*types.Settings, error)
}

// Connector is implemented by providers that hold a connection
// with a lifecycle of connection and disconnection
type Connector interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
}
