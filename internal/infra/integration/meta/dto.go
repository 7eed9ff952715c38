package meta

// LeadEventInput carries everything needed for one server-side Lead event.
// EventID is the application id; Meta uses it to dedupe against the browser
// pixel firing for the same submission.
type LeadEventInput struct {
	EventID      string
	Email        string
	Phone        string
	ChildName    string
	CampaignCode string
	ClientIP     string
	UserAgent    string
}

type conversionRequest struct {
	Data []conversionEvent `json:"data"`
}

type conversionEvent struct {
	EventName    string     `json:"event_name"`
	EventTime    int64      `json:"event_time"`
	EventID      string     `json:"event_id"`
	ActionSource string     `json:"action_source"`
	UserData     userData   `json:"user_data"`
	CustomData   customData `json:"custom_data,omitempty"`
}

type userData struct {
	Em              []string `json:"em,omitempty"`
	Ph              []string `json:"ph,omitempty"`
	Fn              []string `json:"fn,omitempty"`
	ClientIPAddress string   `json:"client_ip_address,omitempty"`
	ClientUserAgent string   `json:"client_user_agent,omitempty"`
}

type customData struct {
	CampaignCode string `json:"campaign_code,omitempty"`
}
