package types

import "time"

// KYC status values reported by the identity provider
const (
	FirebaseKYCPending  = "PENDING"
	FirebaseKYCVerified = "FIREBASE_VERIFIED"
	FirebaseKYCRejected = "FIREBASE_REJECTED"
)

// Verification status values owned by administrators
const (
	VerificationPending  = "PENDING"
	VerificationVerified = "VERIFIED"
	VerificationRejected = "REJECTED"
)

// KYCStatistics is returned by /kyc-admin/kyc-statistics
type KYCStatistics struct {
	Pending             int `json:"pending"`
	FirebaseVerified    int `json:"firebaseVerified"`
	AwaitingAdminReview int `json:"awaitingAdminReview"`
	AdminApproved       int `json:"adminApproved"`
}

// CategoryRef is the embedded category summary on technicians and services
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FirebaseKYCData holds the automated identity check results
type FirebaseKYCData struct {
	ConfidenceScore float64  `json:"confidenceScore"`
	DocumentURLs    []string `json:"documentUrls"`
	AdminNotes      string   `json:"adminNotes,omitempty"`
	FaceMatch       *bool    `json:"faceMatch,omitempty"`
	DocumentType    string   `json:"documentType,omitempty"`
}

// Technician is a service provider account as seen by administrators
type Technician struct {
	ID                 string           `json:"id"`
	Username           string           `json:"username"`
	Email              string           `json:"email"`
	PhoneNumber        string           `json:"phoneNumber,omitempty"`
	Location           string           `json:"location,omitempty"`
	Category           *CategoryRef     `json:"category,omitempty"`
	FirebaseKYCStatus  string           `json:"firebaseKycStatus,omitempty"`
	FirebaseKYCData    *FirebaseKYCData `json:"firebaseKycData,omitempty"`
	VerificationStatus string           `json:"verificationStatus,omitempty"`
	AvailabilityStatus string           `json:"availabilityStatus,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

// TechnicianPage is a page of technicians, used by both the pending review
// listing and the general technician listing
type TechnicianPage struct {
	Items []Technician `json:"items"`
	PageInfo
}

// MissingField implements Envelope
func (p *TechnicianPage) MissingField() string {
	if p.Items == nil {
		return "items"
	}

	return ""
}

// Decision is the outcome of a final KYC verification
type Decision string

// Supported decisions
const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Valid reports whether the decision is one the API accepts
func (d Decision) Valid() bool {
	return d == DecisionApprove || d == DecisionReject
}

// FinalVerificationRequest is the body of the final verification action
type FinalVerificationRequest struct {
	Decision   Decision `json:"decision"`
	AdminNotes string   `json:"adminNotes"`
}

// FinalVerificationResult is returned after a final verification
type FinalVerificationResult struct {
	Message    string      `json:"message"`
	Technician *Technician `json:"technician,omitempty"`
}

// KYCStatus is returned by /technicians/{id}/kyc-status
type KYCStatus struct {
	TechnicianID       string           `json:"technicianId"`
	FirebaseKYCStatus  string           `json:"firebaseKycStatus"`
	VerificationStatus string           `json:"verificationStatus"`
	FirebaseKYCData    *FirebaseKYCData `json:"firebaseKycData,omitempty"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}
