package meta

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const graphAPIBase = "https://graph.facebook.com/v18.0"

var nonDigits = regexp.MustCompile(`\D`)

type Client struct {
	pixelID     string
	accessToken string
	baseURL     string
	http        *http.Client
}

func NewClient() *Client {
	baseURL := os.Getenv("META_GRAPH_URL")
	if baseURL == "" {
		baseURL = graphAPIBase
	}

	return &Client{
		pixelID:     os.Getenv("META_PIXEL_ID"),
		accessToken: os.Getenv("META_ACCESS_TOKEN"),
		baseURL:     baseURL,
		http:        &http.Client{Timeout: 10 * time.Second},
	}
}

// SendLeadEvent posts one Lead event to the Conversions API. Identifying
// fields are SHA-256 hashed before they leave the process, as the API
// requires. The caller fires this from a goroutine and only logs the result.
func (c *Client) SendLeadEvent(input LeadEventInput) error {
	if c.pixelID == "" || c.accessToken == "" {
		log.Println("⚠️ Meta: pixel id / access token not configured, skipping conversion event")
		return nil
	}

	// Leads captured without a client-assigned id still need an event_id;
	// a random one means no dedup against the browser pixel, which is the
	// best we can do for them.
	if input.EventID == "" {
		input.EventID = uuid.NewString()
	}

	event := conversionEvent{
		EventName:    "Lead",
		EventTime:    time.Now().Unix(),
		EventID:      input.EventID,
		ActionSource: "website",
		UserData: userData{
			Em:              hashedField(normalizeEmail(input.Email)),
			Ph:              hashedField(normalizePhone(input.Phone)),
			Fn:              hashedField(normalizeName(input.ChildName)),
			ClientIPAddress: input.ClientIP,
			ClientUserAgent: input.UserAgent,
		},
		CustomData: customData{CampaignCode: input.CampaignCode},
	}

	jsonBody, err := json.Marshal(conversionRequest{Data: []conversionEvent{event}})
	if err != nil {
		return fmt.Errorf("failed to marshal conversion event: %w", err)
	}

	url := fmt.Sprintf("%s/%s/events?access_token=%s", c.baseURL, c.pixelID, c.accessToken)

	resp, err := c.http.Post(url, "application/json", bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("conversion API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("conversion API answered %d: %s", resp.StatusCode, string(body))
	}

	log.Printf("✅ Meta: Lead event sent (event_id=%s)", input.EventID)
	return nil
}

func hashedField(normalized string) []string {
	if normalized == "" {
		return nil
	}
	sum := sha256.Sum256([]byte(normalized))
	return []string{hex.EncodeToString(sum[:])}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizePhone strips everything but digits; Meta matches on digit strings.
func normalizePhone(phone string) string {
	return nonDigits.ReplaceAllString(phone, "")
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
