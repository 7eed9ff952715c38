package usecase

import (
	"encoding/json"
	"strconv"

	"github.com/starlingkids/leads-api/internal/entity"
)

// FlexString tolerates JSON string or number for the same field. The form
// posts age as a string, the dashboard retry path replays it as a number.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// DeliverLeadInput is the loose request bag. Fresh submissions carry the
// full field set (ApplicationID optional); retry/resend requests carry only
// ApplicationID and, for resend, SkipCrm.
type DeliverLeadInput struct {
	ApplicationID string     `json:"applicationId"`
	SkipCrm       bool       `json:"skipCrm"`
	CampaignCode  string     `json:"campaignCode"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	City          string     `json:"city"`
	ZipCode       string     `json:"zipCode"`
	ChildName     string     `json:"childName"`
	LastName      string     `json:"lastName"`
	ImageURL      string     `json:"image_url"`
	FirstName     string     `json:"firstName"`
	Age           FlexString `json:"age"`
	Gender        string     `json:"gender"`

	// Filled by the HTTP layer, never from the request body.
	ClientIP  string `json:"-"`
	UserAgent string `json:"-"`
}

type DeliverLeadOutput struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	CrmResponse string `json:"crmResponse"`
}

// fillFromLead rehydrates the field bag from a stored application record,
// keeping the request-only fields (SkipCrm, client metadata) intact.
func (in *DeliverLeadInput) fillFromLead(lead *entity.Lead) {
	in.ApplicationID = lead.ID
	in.CampaignCode = lead.CampaignCode
	in.Email = lead.Email
	in.Phone = lead.Phone
	in.City = lead.City
	in.ZipCode = lead.PostCode
	in.ChildName = lead.ChildName
	in.LastName = lead.LastName
	in.ImageURL = lead.ImageURL
	in.FirstName = lead.FirstName
	in.Age = FlexString(strconv.Itoa(lead.Age))
	in.Gender = lead.Gender
}
