package mail

type LeadNotificationData struct {
	ChildName    string
	LastName     string
	FirstName    string
	Age          string
	Phone        string
	Email        string
	PostCode     string
	City         string
	CampaignCode string
	ImageURL     string
	CrmStatus    string
	CrmResponse  string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string
}
