package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/starlingkids/leads-api/internal/entity"
	"github.com/starlingkids/leads-api/internal/infra/integration/meta"
	"github.com/starlingkids/leads-api/internal/infra/integration/studiocrm"
	"github.com/starlingkids/leads-api/internal/infra/mail"
)

func NewDeliverLeadUseCase(
	repo entity.LeadRepositoryInterface,
	crm CrmGateway,
	emailService EmailService,
	conversionService ConversionService,
) *DeliverLeadUseCase {
	return &DeliverLeadUseCase{
		Repo:              repo,
		Crm:               crm,
		EmailService:      emailService,
		ConversionService: conversionService,
	}
}

// Execute runs one delivery attempt end to end: map, submit, record, notify.
//
// The CRM path is strictly sequential because the caller's answer depends on
// it. The email notification is awaited but error-isolated; the conversion
// event is fired on a goroutine and never awaited. On CRM failure neither
// channel runs, so a failed lead is not announced anywhere until it lands.
func (uc *DeliverLeadUseCase) Execute(ctx context.Context, input DeliverLeadInput) (*DeliverLeadOutput, error) {
	// Retry/resend mode: only an id in hand, rehydrate from the store.
	if input.ApplicationID != "" && input.Email == "" {
		lead, err := uc.Repo.FindByID(ctx, input.ApplicationID)
		if err != nil {
			if errors.Is(err, entity.ErrLeadNotFound) {
				return nil, &DomainError{
					Code:    CodeLeadNotFound,
					Message: "application not found: " + input.ApplicationID,
				}
			}
			return nil, &TechnicalError{
				Code:    "DATABASE_ERROR",
				Message: "failed to load application: " + err.Error(),
			}
		}
		input.fillFromLead(lead)
		log.Printf("🔁 Delivery: rehydrated application %s for retry (skipCrm=%v)", lead.ID, input.SkipCrm)
	}

	payload := studiocrm.MapLead(studiocrm.LeadFields{
		CampaignCode: input.CampaignCode,
		Email:        input.Email,
		Phone:        input.Phone,
		City:         input.City,
		ZipCode:      input.ZipCode,
		ChildName:    input.ChildName,
		LastName:     input.LastName,
		ImageURL:     input.ImageURL,
		FirstName:    input.FirstName,
		Age:          string(input.Age),
		Gender:       input.Gender,
	})

	var outcome studiocrm.Outcome
	if input.SkipCrm {
		// Operator asked for notifications only; no network call at all.
		outcome = studiocrm.Outcome{Status: studiocrm.StatusSkipped, ResponseSummary: "CRM submission skipped"}
	} else {
		outcome = uc.Crm.Submit(payload)
	}

	uc.recordOutcome(ctx, input.ApplicationID, outcome)

	if outcome.Status == studiocrm.StatusFailed {
		return nil, &DomainError{
			Code:    CodeCrmDeliveryFailed,
			Message: outcome.ResponseSummary,
		}
	}

	uc.notify(input, outcome)

	message := "Lead sent to CRM"
	if outcome.Status == studiocrm.StatusSkipped {
		message = "Notification resent"
	}

	return &DeliverLeadOutput{
		Success:     true,
		Message:     message,
		CrmResponse: outcome.ResponseSummary,
	}, nil
}

// recordOutcome persists the attempt onto the application row. Without an id
// (fresh submission that never got one) there is nothing to write, and that
// is fine. Write errors are logged but never overturn the CRM outcome: the
// external call already happened.
func (uc *DeliverLeadUseCase) recordOutcome(ctx context.Context, leadID string, outcome studiocrm.Outcome) {
	if leadID == "" {
		return
	}

	if err := uc.Repo.UpdateCrmStatus(ctx, leadID, outcome.Status, outcome.ResponseSummary); err != nil {
		log.Printf("❌ Delivery: failed to record outcome for %s: %v", leadID, err)
	}
}

// notify fans out to the secondary channels. Each channel is isolated: the
// email error is logged and dropped, the conversion event runs detached.
func (uc *DeliverLeadUseCase) notify(input DeliverLeadInput, outcome studiocrm.Outcome) {
	if uc.EmailService != nil {
		data := mail.LeadNotificationData{
			ChildName:    input.ChildName,
			LastName:     input.LastName,
			FirstName:    input.FirstName,
			Age:          string(input.Age),
			Phone:        input.Phone,
			Email:        input.Email,
			PostCode:     input.ZipCode,
			City:         input.City,
			CampaignCode: input.CampaignCode,
			ImageURL:     input.ImageURL,
			CrmStatus:    outcome.Status,
			CrmResponse:  outcome.ResponseSummary,
		}

		if err := uc.EmailService.SendLeadNotification(data); err != nil {
			log.Printf("⚠️ Mail: notification failed for %q: %v", mail.Subject(input.ChildName, input.CampaignCode), err)
		}
	}

	if uc.ConversionService != nil {
		event := meta.LeadEventInput{
			EventID:      input.ApplicationID,
			Email:        input.Email,
			Phone:        input.Phone,
			ChildName:    input.ChildName,
			CampaignCode: input.CampaignCode,
			ClientIP:     input.ClientIP,
			UserAgent:    input.UserAgent,
		}

		go func() {
			if err := uc.ConversionService.SendLeadEvent(event); err != nil {
				log.Printf("⚠️ Meta: conversion event failed for %s: %v", event.EventID, err)
			}
		}()
	}
}
