package types

import "time"

// Category is a service category
type Category struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	IsActive        bool      `json:"isActive"`
	TechnicianCount int       `json:"technicianCount"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CategoryList is returned by /admin/categories
type CategoryList struct {
	Categories []Category `json:"categories"`
}

// MissingField implements Envelope
func (l *CategoryList) MissingField() string {
	if l.Categories == nil {
		return "categories"
	}

	return ""
}

// CategoryInput is the body used to create or replace a category
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
}

// Service is an offering technicians can be booked for
type Service struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Category    *CategoryRef `json:"category,omitempty"`
	MinPrice    float64      `json:"minPrice"`
	MaxPrice    float64      `json:"maxPrice"`
	IsActive    bool         `json:"isActive"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// ServicePage is a page of services
type ServicePage struct {
	Items []Service `json:"items"`
	PageInfo
}

// MissingField implements Envelope
func (p *ServicePage) MissingField() string {
	if p.Items == nil {
		return "items"
	}

	return ""
}

// Settings are the platform-wide configuration values
type Settings struct {
	AppName                   string `json:"appName"`
	SupportEmail              string `json:"supportEmail"`
	MaxTechniciansPerCategory int    `json:"maxTechniciansPerCategory"`
	KYCAutoApprove            bool   `json:"kycAutoApprove"`
	MaintenanceMode           bool   `json:"maintenanceMode"`
	BookingAdvanceDays        int    `json:"bookingAdvanceDays"`
}

// SettingsEnvelope is returned by GET /admin/settings
type SettingsEnvelope struct {
	Settings *Settings `json:"settings"`
}

// MissingField implements Envelope
func (e *SettingsEnvelope) MissingField() string {
	if e.Settings == nil {
		return "settings"
	}

	return ""
}
