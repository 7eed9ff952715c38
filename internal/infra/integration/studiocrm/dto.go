package studiocrm

// Payload is the flat schema the StudioBookings import endpoint expects.
// Field names are fixed by the PHP side; do not rename.
type Payload struct {
	Campaign    string `json:"campaign"`
	Email       string `json:"email"`
	Telephone   string `json:"telephone"`
	Address     string `json:"address"`
	Firstname   string `json:"firstname"`
	Lastname    string `json:"lastname"`
	Image       string `json:"image"`
	AnalyticsID string `json:"analyticsid"`
	Age         string `json:"age"`
	Gender      string `json:"gender"`
	OptIn       string `json:"opt_in"`
}

// LeadFields is the loose bag the mapper accepts. Fresh submissions arrive as
// partially filled JSON, retries as a rehydrated entity; either way every
// field is optional and missing values map to "".
type LeadFields struct {
	CampaignCode string
	Email        string
	Phone        string
	City         string
	ZipCode      string
	ChildName    string
	LastName     string
	ImageURL     string
	FirstName    string
	Age          string
	Gender       string
}

// Delivery statuses for one submission attempt.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Outcome is the classified result of a single Submit call.
type Outcome struct {
	Status          string
	ResponseSummary string
	HTTPStatus      int
}
