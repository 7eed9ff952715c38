package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubjectFormat(t *testing.T) {
	assert.Equal(t, "Leo - SPRING24", Subject("Leo", "SPRING24"))
	assert.Equal(t, "Leo - ", Subject("Leo", ""))
}

func TestSendLeadNotificationSkipsWithoutRecipient(t *testing.T) {
	sender := NewEmailSender("smtp.example.com", 587, "user", "pass", "from@example.com", "")

	err := sender.SendLeadNotification(LeadNotificationData{ChildName: "Leo"})

	assert.NoError(t, err, "missing recipient is a skip, not a failure")
}

func TestRenderLeadNotification(t *testing.T) {
	old := templateDir
	templateDir = "../../../templates"
	defer func() { templateDir = old }()

	body, err := renderLeadNotification(LeadNotificationData{
		ChildName:    "Leo",
		LastName:     "Smith",
		FirstName:    "Anna",
		Age:          "7",
		Email:        "parent@example.com",
		CampaignCode: "SPRING24",
		CrmStatus:    "success",
		CrmResponse:  "OK-12345",
		ImageURL:     "https://cdn.example.com/leo.jpg",
	})

	assert.NoError(t, err)
	assert.Contains(t, body, "Leo Smith")
	assert.Contains(t, body, "SPRING24")
	assert.Contains(t, body, "OK-12345")
	assert.Contains(t, body, "https://cdn.example.com/leo.jpg")
}
