package types

import "time"

// Roles an account may hold
const (
	RoleUser       = "USER"
	RoleTechnician = "TECHNICIAN"
	RoleAdmin      = "ADMIN"
)

// User is a platform account
type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"isActive"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UserPage is a page of users
type UserPage struct {
	Items []User `json:"items"`
	PageInfo
}

// MissingField implements Envelope
func (p *UserPage) MissingField() string {
	if p.Items == nil {
		return "items"
	}

	return ""
}

// UserUpdate is a partial update; nil fields are left untouched
type UserUpdate struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// TechnicianUpdate is a partial update; nil fields are left untouched
type TechnicianUpdate struct {
	VerificationStatus *string `json:"verificationStatus,omitempty"`
	AvailabilityStatus *string `json:"availabilityStatus,omitempty"`
	CategoryID         *string `json:"categoryId,omitempty"`
	Location           *string `json:"location,omitempty"`
}
