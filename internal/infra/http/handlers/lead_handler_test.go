package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/starlingkids/leads-api/internal/entity"
	"github.com/starlingkids/leads-api/internal/infra/integration/studiocrm"
	"github.com/starlingkids/leads-api/internal/usecase"
)

// Hand-rolled fakes are enough here; the usecase's own tests cover the
// orchestration details, this file only cares about HTTP translation.

type fakeLeadRepo struct {
	leads   map[string]*entity.Lead
	listErr error
}

func (f *fakeLeadRepo) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	lead, ok := f.leads[id]
	if !ok {
		return nil, entity.ErrLeadNotFound
	}
	return lead, nil
}

func (f *fakeLeadRepo) List(ctx context.Context, from, to *time.Time) ([]*entity.Lead, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*entity.Lead{}
	for _, lead := range f.leads {
		out = append(out, lead)
	}
	return out, nil
}

func (f *fakeLeadRepo) UpdateCrmStatus(ctx context.Context, id, status, response string) error {
	if lead, ok := f.leads[id]; ok {
		lead.CrmStatus = status
		lead.CrmResponse = response
	}
	return nil
}

type fakeCrm struct {
	outcome studiocrm.Outcome
	calls   int
}

func (f *fakeCrm) Submit(payload studiocrm.Payload) studiocrm.Outcome {
	f.calls++
	return f.outcome
}

func newHandler(repo *fakeLeadRepo, crm *fakeCrm) *LeadHandler {
	uc := usecase.NewDeliverLeadUseCase(repo, crm, nil, nil)
	return NewLeadHandler(uc, repo, nil)
}

func postLeads(t *testing.T, h *LeadHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/leads", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.HandleDeliver(rec, req)
	return rec
}

func TestHandleDeliverFreshSuccess(t *testing.T) {
	crm := &fakeCrm{outcome: studiocrm.Outcome{Status: studiocrm.StatusSuccess, ResponseSummary: "OK-12345", HTTPStatus: 200}}
	h := newHandler(&fakeLeadRepo{leads: map[string]*entity.Lead{}}, crm)

	rec := postLeads(t, h, `{"childName":"Leo","lastName":"Smith","email":"parent@example.com","age":7}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var output usecase.DeliverLeadOutput
	json.Unmarshal(rec.Body.Bytes(), &output)
	assert.True(t, output.Success)
	assert.Equal(t, "Lead sent to CRM", output.Message)
	assert.Equal(t, "OK-12345", output.CrmResponse)
	assert.Equal(t, 1, crm.calls)
}

func TestHandleDeliverRetryUnknownIDIs404(t *testing.T) {
	crm := &fakeCrm{}
	h := newHandler(&fakeLeadRepo{leads: map[string]*entity.Lead{}}, crm)

	rec := postLeads(t, h, `{"applicationId":"unknown-id"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp errorResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Contains(t, resp.Error, "unknown-id")
	assert.Equal(t, 0, crm.calls)
}

func TestHandleDeliverCrmFailureIs400(t *testing.T) {
	repo := &fakeLeadRepo{leads: map[string]*entity.Lead{
		"app-123": {ID: "app-123", Email: "parent@example.com", ChildName: "Leo"},
	}}
	crm := &fakeCrm{outcome: studiocrm.Outcome{Status: studiocrm.StatusFailed, ResponseSummary: "Error 500: server error", HTTPStatus: 500}}
	h := newHandler(repo, crm)

	rec := postLeads(t, h, `{"applicationId":"app-123"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Equal(t, "Failed to send to CRM", resp.Error)
	assert.Equal(t, "Error 500: server error", resp.Details)

	// The failed outcome must land on the row before the response goes out.
	assert.Equal(t, entity.CrmStatusFailed, repo.leads["app-123"].CrmStatus)
}

func TestHandleDeliverResendSkipsCrm(t *testing.T) {
	repo := &fakeLeadRepo{leads: map[string]*entity.Lead{
		"app-123": {ID: "app-123", Email: "parent@example.com", ChildName: "Leo"},
	}}
	crm := &fakeCrm{}
	h := newHandler(repo, crm)

	rec := postLeads(t, h, `{"applicationId":"app-123","skipCrm":true}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, crm.calls)
	assert.Equal(t, entity.CrmStatusSkipped, repo.leads["app-123"].CrmStatus)
}

func TestHandleDeliverInvalidJSON(t *testing.T) {
	h := newHandler(&fakeLeadRepo{leads: map[string]*entity.Lead{}}, &fakeCrm{})

	rec := postLeads(t, h, `{"childName":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleListReturnsLeads(t *testing.T) {
	repo := &fakeLeadRepo{leads: map[string]*entity.Lead{
		"app-123": {ID: "app-123", ChildName: "Leo", CrmStatus: entity.CrmStatusSuccess},
	}}
	h := newHandler(repo, &fakeCrm{})

	req := httptest.NewRequest("GET", "/api/leads?from=2024-06-01&to=2024-06-30", nil)
	rec := httptest.NewRecorder()
	h.HandleList(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var leads []entity.Lead
	json.Unmarshal(rec.Body.Bytes(), &leads)
	assert.Len(t, leads, 1)
	assert.Equal(t, "app-123", leads[0].ID)
}

func TestHandleListRejectsBadDates(t *testing.T) {
	h := newHandler(&fakeLeadRepo{leads: map[string]*entity.Lead{}}, &fakeCrm{})

	req := httptest.NewRequest("GET", "/api/leads?from=01-06-2024", nil)
	rec := httptest.NewRecorder()
	h.HandleList(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeliveryModeDetection(t *testing.T) {
	assert.Equal(t, "fresh", deliveryMode(usecase.DeliverLeadInput{Email: "a@b.com"}))
	assert.Equal(t, "fresh", deliveryMode(usecase.DeliverLeadInput{ApplicationID: "x", Email: "a@b.com"}))
	assert.Equal(t, "retry", deliveryMode(usecase.DeliverLeadInput{ApplicationID: "x"}))
	assert.Equal(t, "resend", deliveryMode(usecase.DeliverLeadInput{ApplicationID: "x", SkipCrm: true}))
}
