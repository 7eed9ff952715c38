package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/starlingkids/leads-api/internal/entity"
)

const leadColumns = `id, campaign_code, email, phone, city, post_code, child_name,
		last_name, image_url, first_name, age, gender, crm_status, crm_response, created_at`

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM applications WHERE id = $1`

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}

	return lead, nil
}

func (r *LeadRepository) List(ctx context.Context, from, to *time.Time) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM applications WHERE 1=1`
	args := []interface{}{}

	if from != nil {
		args = append(args, *from)
		query += ` AND created_at >= $1`
	}
	if to != nil {
		args = append(args, *to)
		if from != nil {
			query += ` AND created_at < $2`
		} else {
			query += ` AND created_at < $1`
		}
	}

	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []*entity.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

// UpdateCrmStatus overwrites the last delivery outcome. No version check:
// last write wins, which matches the one-operator-at-a-time usage.
func (r *LeadRepository) UpdateCrmStatus(ctx context.Context, id, status, response string) error {
	query := `UPDATE applications SET crm_status = $2, crm_response = $3 WHERE id = $1`

	result, err := r.DB.ExecContext(ctx, query, id, status, response)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrLeadNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var campaignCode, city, crmStatus, crmResponse sql.NullString

	err := row.Scan(
		&lead.ID,
		&campaignCode,
		&lead.Email,
		&lead.Phone,
		&city,
		&lead.PostCode,
		&lead.ChildName,
		&lead.LastName,
		&lead.ImageURL,
		&lead.FirstName,
		&lead.Age,
		&lead.Gender,
		&crmStatus,
		&crmResponse,
		&lead.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.CampaignCode = campaignCode.String
	lead.City = city.String
	lead.CrmStatus = crmStatus.String
	if lead.CrmStatus == "" {
		lead.CrmStatus = entity.CrmStatusPending
	}
	lead.CrmResponse = crmResponse.String

	return &lead, nil
}
