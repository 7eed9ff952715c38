package entity

import (
	"context"
	"errors"
	"time"
)

// CRM delivery statuses stored on the application row.
const (
	CrmStatusPending = "pending"
	CrmStatusSuccess = "success"
	CrmStatusFailed  = "failed"
	CrmStatusSkipped = "skipped"
)

var ErrLeadNotFound = errors.New("lead not found")

// Lead is one talent application submitted by a parent on behalf of a child.
// The ID is assigned by the capture flow and never changes; the delivery
// pipeline only ever mutates CrmStatus and CrmResponse.
type Lead struct {
	ID           string    `json:"id"`
	CampaignCode string    `json:"campaign_code,omitempty"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	City         string    `json:"city,omitempty"`
	PostCode     string    `json:"post_code"`
	ChildName    string    `json:"child_name"`
	LastName     string    `json:"last_name"`
	ImageURL     string    `json:"image_url"`
	FirstName    string    `json:"first_name"` // parent first name
	Age          int       `json:"age"`
	Gender       string    `json:"gender"`
	CrmStatus    string    `json:"crm_status"`
	CrmResponse  string    `json:"crm_response,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type LeadRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*Lead, error)

	// List returns leads newest-first, optionally bounded by creation time.
	List(ctx context.Context, from, to *time.Time) ([]*Lead, error)

	// UpdateCrmStatus overwrites the last delivery outcome. Last write wins:
	// concurrent retries for the same id race on the stored status by design
	// of the operator flow (one human at a time).
	UpdateCrmStatus(ctx context.Context, id, status, response string) error
}
