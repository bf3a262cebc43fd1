package types

import "time"

// Party is a person referenced from an appointment or payment
type Party struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
}

// ServiceRef is the embedded service summary on appointments
type ServiceRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Appointment statuses
const (
	AppointmentScheduled  = "scheduled"
	AppointmentInProgress = "in_progress"
	AppointmentCompleted  = "completed"
	AppointmentCancelled  = "cancelled"
)

// Appointment is a booking between a customer and a technician
type Appointment struct {
	ID          string      `json:"id"`
	Customer    *Party      `json:"customer,omitempty"`
	User        *Party      `json:"user,omitempty"`
	Technician  *Party      `json:"technician,omitempty"`
	Service     *ServiceRef `json:"service,omitempty"`
	ScheduledAt time.Time   `json:"scheduledAt"`
	Status      string      `json:"status"`
	Amount      float64     `json:"amount"`
	Notes       string      `json:"notes,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// AppointmentPage is a page of appointments
type AppointmentPage struct {
	Items []Appointment `json:"items"`
	PageInfo
}

// MissingField implements Envelope
func (p *AppointmentPage) MissingField() string {
	if p.Items == nil {
		return "items"
	}

	return ""
}

// AppointmentUpdate is a partial update; nil fields are left untouched
type AppointmentUpdate struct {
	Status       *string    `json:"status,omitempty"`
	ScheduledAt  *time.Time `json:"scheduledAt,omitempty"`
	TechnicianID *string    `json:"technicianId,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

// Payment statuses
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// Payment is a charge attached to an appointment
type Payment struct {
	ID            string    `json:"id"`
	AppointmentID string    `json:"appointmentId,omitempty"`
	Customer      *Party    `json:"customer,omitempty"`
	User          *Party    `json:"user,omitempty"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"paymentMethod,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// PaymentPage is a page of payments
type PaymentPage struct {
	Items []Payment `json:"items"`
	PageInfo
}

// MissingField implements Envelope
func (p *PaymentPage) MissingField() string {
	if p.Items == nil {
		return "items"
	}

	return ""
}
