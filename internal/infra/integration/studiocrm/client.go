package studiocrm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

const defaultEndpoint = "https://www.thestudiobookings.online/application/lead/service/importlead-api.php"

// maxSummaryLen caps what we store as crm_response on the application row.
const maxSummaryLen = 200

type Client struct {
	endpoint string
	http     *http.Client
}

func NewClient() *Client {
	endpoint := os.Getenv("CRM_ENDPOINT")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Submit performs exactly one POST to the import endpoint and classifies the
// result. The endpoint is a PHP script that may answer with plain text or
// JSON, so the body is treated as opaque text either way. Network failures
// are classified as failed deliveries; retrying is always the caller's move.
func (c *Client) Submit(payload Payload) Outcome {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return Outcome{Status: StatusFailed, ResponseSummary: truncate("marshal error: "+err.Error(), maxSummaryLen)}
	}

	req, err := http.NewRequest("POST", c.endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return Outcome{Status: StatusFailed, ResponseSummary: truncate(err.Error(), maxSummaryLen)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("❌ CRM: request failed: %v", err)
		return Outcome{Status: StatusFailed, ResponseSummary: truncate(err.Error(), maxSummaryLen)}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("❌ CRM: endpoint answered %d: %s", resp.StatusCode, truncate(string(body), maxSummaryLen))
		return Outcome{
			Status:          StatusFailed,
			ResponseSummary: truncate(fmt.Sprintf("Error %d: %s", resp.StatusCode, string(body)), maxSummaryLen),
			HTTPStatus:      resp.StatusCode,
		}
	}

	return Outcome{
		Status:          StatusSuccess,
		ResponseSummary: truncate(string(body), maxSummaryLen),
		HTTPStatus:      resp.StatusCode,
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
