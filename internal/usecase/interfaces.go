package usecase

import (
	"github.com/starlingkids/leads-api/internal/entity"
	"github.com/starlingkids/leads-api/internal/infra/integration/meta"
	"github.com/starlingkids/leads-api/internal/infra/integration/studiocrm"
	"github.com/starlingkids/leads-api/internal/infra/mail"
)

type CrmGateway interface {
	Submit(payload studiocrm.Payload) studiocrm.Outcome
}

type EmailService interface {
	SendLeadNotification(data mail.LeadNotificationData) error
}

type ConversionService interface {
	SendLeadEvent(input meta.LeadEventInput) error
}

type DeliverLeadUseCase struct {
	Repo              entity.LeadRepositoryInterface
	Crm               CrmGateway
	EmailService      EmailService
	ConversionService ConversionService
}
