package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

const (
	colorFresh = 0x5865F2 // blurple: new postings today
	colorQuiet = 0xFFA500 // orange: nothing new
	colorError = 0xFF0000
)

type embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []embedField `json:"fields,omitempty"`
	Footer      *embedFooter `json:"footer,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type embedFooter struct {
	Text string `json:"text"`
}

type payload struct {
	Content  string  `json:"content"`
	Username string  `json:"username,omitempty"`
	Embeds   []embed `json:"embeds,omitempty"`
}

// Discord posts to a webhook. A missing DISCORD_WEBHOOK_URL disables it; all
// sends are best-effort and only log on failure.
type Discord struct {
	webhookURL string
	username   string
	hc         *http.Client
}

func NewDiscord(username string) *Discord {
	url := os.Getenv("DISCORD_WEBHOOK_URL")
	if url == "" {
		log.Printf("[notify] DISCORD_WEBHOOK_URL not set, notifications disabled")
	}
	if username == "" {
		username = "Internship Tracker"
	}
	return &Discord{
		webhookURL: url,
		username:   username,
		hc:         &http.Client{Timeout: 10 * time.Second},
	}
}

func (d *Discord) Enabled() bool { return d != nil && d.webhookURL != "" }

func (d *Discord) SendDailyReminder(ctx context.Context, total, postedToday int) {
	if !d.Enabled() {
		return
	}

	var content string
	color := colorQuiet
	todayField := "None today"
	if postedToday > 0 {
		content = fmt.Sprintf("@everyone **Daily Internship Reminder**\n\n**%d internships posted today!**\n\nRemember to check and apply to today's fresh opportunities!", postedToday)
		color = colorFresh
		todayField = fmt.Sprintf("%d new", postedToday)
	} else {
		content = "@everyone **Daily Internship Reminder**\n\nNo new internships posted today, but keep applying to existing opportunities!"
	}

	d.send(ctx, payload{
		Content:  content,
		Username: d.username,
		Embeds: []embed{{
			Title: "Internship Tracker Statistics",
			Color: color,
			Fields: []embedField{
				{Name: "Total Available", Value: fmt.Sprintf("%d internships", total), Inline: true},
				{Name: "Posted Today", Value: todayField, Inline: true},
			},
			Footer:    &embedFooter{Text: "Updated on " + time.Now().Format("Monday, January 2, 2006")},
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}},
	})
}

func (d *Discord) SendError(ctx context.Context, runErr error) {
	if !d.Enabled() || runErr == nil {
		return
	}

	msg := runErr.Error()
	if len(msg) > 1000 {
		msg = msg[:1000]
	}

	d.send(ctx, payload{
		Content:  "**Scraper Error Occurred**",
		Username: d.username,
		Embeds: []embed{{
			Title:       "Error Details",
			Description: "```" + msg + "```",
			Color:       colorError,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		}},
	})
}

func (d *Discord) send(ctx context.Context, p payload) {
	body, err := json.Marshal(p)
	if err != nil {
		log.Printf("[notify] marshal: %v", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		log.Printf("[notify] request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.hc.Do(req)
	if err != nil {
		log.Printf("[notify] send: %v", err)
		return
	}
	defer resp.Body.Close()

	// webhooks answer 204 No Content on success
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		log.Printf("[notify] discord returned %d", resp.StatusCode)
	}
}

// WithWebhookURL overrides the webhook target, for tests.
func (d *Discord) WithWebhookURL(url string) *Discord {
	d.webhookURL = url
	return d
}
