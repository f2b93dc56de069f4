package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledWithoutWebhook(t *testing.T) {
	t.Setenv("DISCORD_WEBHOOK_URL", "")
	d := NewDiscord("")
	assert.False(t, d.Enabled())

	// must be a no-op, not a panic or a network call
	d.SendDailyReminder(context.Background(), 10, 2)
	d.SendError(context.Background(), errors.New("boom"))
}

func TestSendDailyReminder(t *testing.T) {
	t.Setenv("DISCORD_WEBHOOK_URL", "")

	var got payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	d := NewDiscord("Tracker Test").WithWebhookURL(srv.URL)
	require.True(t, d.Enabled())

	d.SendDailyReminder(context.Background(), 42, 5)

	assert.Contains(t, got.Content, "5 internships posted today")
	assert.Equal(t, "Tracker Test", got.Username)
	require.Len(t, got.Embeds, 1)
	assert.Equal(t, colorFresh, got.Embeds[0].Color)
	require.Len(t, got.Embeds[0].Fields, 2)
	assert.Equal(t, "42 internships", got.Embeds[0].Fields[0].Value)

	// quiet day flips to the orange embed
	d.SendDailyReminder(context.Background(), 42, 0)
	assert.Equal(t, colorQuiet, got.Embeds[0].Color)
	assert.Contains(t, got.Content, "No new internships")
}

func TestSendError(t *testing.T) {
	t.Setenv("DISCORD_WEBHOOK_URL", "")

	var got payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	d := NewDiscord("").WithWebhookURL(srv.URL)
	d.SendError(context.Background(), errors.New("scrape blew up"))

	require.Len(t, got.Embeds, 1)
	assert.Equal(t, colorError, got.Embeds[0].Color)
	assert.Contains(t, got.Embeds[0].Description, "scrape blew up")

	// nil error sends nothing
	got = payload{}
	d.SendError(context.Background(), nil)
	assert.Empty(t, got.Embeds)
}

func TestSendSwallowsServerErrors(t *testing.T) {
	t.Setenv("DISCORD_WEBHOOK_URL", "")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	d := NewDiscord("").WithWebhookURL(srv.URL)
	// only logs; never returns or panics
	d.SendDailyReminder(context.Background(), 1, 1)
}
