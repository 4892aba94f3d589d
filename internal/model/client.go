package model

type ClientStatus string

const (
	ClientStatusNew        ClientStatus = "new"
	ClientStatusEvaluating ClientStatus = "evaluating"
	ClientStatusOutreach   ClientStatus = "outreach"
	ClientStatusScheduled  ClientStatus = "scheduled"
	ClientStatusReferred   ClientStatus = "referred"
	ClientStatusClosed     ClientStatus = "closed"
)

// Client is a prospective client moving through the intake workflow.
type Client struct {
	Base
	Name               string       `db:"name" json:"name"`
	Email              string       `db:"email" json:"email"`
	Phone              string       `db:"phone" json:"phone,omitempty"`
	InsuranceProvider  string       `db:"insurance_provider" json:"insurance_provider,omitempty"`
	RequestedClinician string       `db:"requested_clinician" json:"requested_clinician,omitempty"`
	Status             ClientStatus `db:"status" json:"status"`
	Notes              string       `db:"notes" json:"notes,omitempty"`
}

type CreateClientRequest struct {
	Name               string `json:"name" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	Phone              string `json:"phone"`
	InsuranceProvider  string `json:"insurance_provider"`
	RequestedClinician string `json:"requested_clinician"`
	Notes              string `json:"notes" binding:"max=2000"`
}

type UpdateClientRequest struct {
	Name               *string       `json:"name"`
	Email              *string       `json:"email" binding:"omitempty,email"`
	Phone              *string       `json:"phone"`
	InsuranceProvider  *string       `json:"insurance_provider"`
	RequestedClinician *string       `json:"requested_clinician"`
	Status             *ClientStatus `json:"status" binding:"omitempty,oneof=new evaluating outreach scheduled referred closed"`
	Notes              *string       `json:"notes"`
}

type ClientFilters struct {
	Status     ClientStatus
	SearchTerm string
}
