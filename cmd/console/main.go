// Operator console: lists captured leads and replays deliveries through the
// API, one call at a time. Batch resends pace themselves with a fixed delay
// so the SMTP relay and the CRM endpoint are never hammered.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/starlingkids/leads-api/internal/entity"
)

// batchDelay between consecutive resend calls, matching the dashboard's
// original 5 second pacing.
const batchDelay = 5 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, using system environment")
	}

	var (
		list   = flag.Bool("list", false, "list captured leads")
		from   = flag.String("from", "", "list: only leads submitted on/after this date (YYYY-MM-DD)")
		to     = flag.String("to", "", "list: only leads submitted on/before this date (YYYY-MM-DD)")
		retry  = flag.String("retry", "", "re-deliver one lead to the CRM by application id")
		resend = flag.String("resend", "", "comma-separated application ids to resend notifications for (no CRM call)")
	)
	flag.Parse()

	baseURL := os.Getenv("LEADS_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	client := &consoleClient{baseURL: baseURL, http: &http.Client{Timeout: 30 * time.Second}}

	switch {
	case *list:
		client.listLeads(*from, *to)
	case *retry != "":
		client.deliver(*retry, false)
	case *resend != "":
		client.batchResend(strings.Split(*resend, ","))
	default:
		flag.Usage()
		os.Exit(1)
	}
}

type consoleClient struct {
	baseURL string
	http    *http.Client
}

func (c *consoleClient) listLeads(from, to string) {
	url := c.baseURL + "/api/leads"
	sep := "?"
	if from != "" {
		url += sep + "from=" + from
		sep = "&"
	}
	if to != "" {
		url += sep + "to=" + to
	}

	resp, err := c.http.Get(url)
	if err != nil {
		log.Fatalf("❌ Failed to reach the API: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Fatalf("❌ API answered %d: %s", resp.StatusCode, string(body))
	}

	var leads []entity.Lead
	if err := json.NewDecoder(resp.Body).Decode(&leads); err != nil {
		log.Fatalf("❌ Failed to decode lead list: %v", err)
	}

	fmt.Printf("📋 %d lead(s)\n\n", len(leads))
	for _, lead := range leads {
		fmt.Printf("  %s  %-20s  age %-2d  %-10s  %s\n",
			lead.ID,
			lead.ChildName+" "+lead.LastName,
			lead.Age,
			lead.CrmStatus,
			lead.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
}

func (c *consoleClient) batchResend(ids []string) {
	total := len(ids)
	sent := 0

	for i, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}

		fmt.Printf("📨 [%d/%d] Resending notification for %s...\n", i+1, total, id)
		if c.deliver(id, true) {
			sent++
		}

		if i < total-1 {
			time.Sleep(batchDelay)
		}
	}

	fmt.Printf("✅ Done: %d/%d notifications resent\n", sent, total)
}

func (c *consoleClient) deliver(id string, skipCrm bool) bool {
	payload := map[string]interface{}{"applicationId": id}
	if skipCrm {
		payload["skipCrm"] = true
	}

	jsonBody, _ := json.Marshal(payload)

	resp, err := c.http.Post(c.baseURL+"/api/leads", "application/json", bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Printf("❌ %s: request failed: %v", id, err)
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		log.Printf("❌ %s: API answered %d: %s", id, resp.StatusCode, string(body))
		return false
	}

	fmt.Printf("   ✅ %s: %s\n", id, strings.TrimSpace(string(body)))
	return true
}
