package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/samber/mo"

	"threadscan/models"
	"threadscan/usecases"
)

// extractIssuesCallbackID is the callback ID of the message shortcut that
// triggers a thread analysis, as registered in the Slack app manifest.
const extractIssuesCallbackID = "extract_thread_issues"

type SlackEventsHandler struct {
	signingSecret string
	slackUseCase  usecases.SlackUseCase
}

func NewSlackEventsHandler(signingSecret string, slackUseCase usecases.SlackUseCase) *SlackEventsHandler {
	return &SlackEventsHandler{
		signingSecret: signingSecret,
		slackUseCase:  slackUseCase,
	}
}

// SetupEndpoints registers the Slack webhook endpoints with the router
func (h *SlackEventsHandler) SetupEndpoints(router *mux.Router) {
	router.HandleFunc("/slack/events", h.HandleSlackEvent).Methods("POST")
	router.HandleFunc("/slack/interactivity", h.HandleSlackInteractivity).Methods("POST")
}

// verifySlackSignature verifies the authenticity of a Slack webhook request
func (h *SlackEventsHandler) verifySlackSignature(r *http.Request, body []byte) error {
	// Extract headers
	timestamp := r.Header.Get("X-Slack-Request-Timestamp")
	signature := r.Header.Get("X-Slack-Signature")

	if timestamp == "" || signature == "" {
		return fmt.Errorf("missing required headers")
	}

	// Verify timestamp freshness (within 5 minutes)
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp format: %v", err)
	}

	if time.Now().Unix()-ts > 300 { // 5 minutes
		return fmt.Errorf("request timestamp too old")
	}

	// Create signature base string: v0:timestamp:body
	baseString := fmt.Sprintf("v0:%s:%s", timestamp, string(body))

	// Compute HMAC-SHA256
	mac := hmac.New(sha256.New, []byte(h.signingSecret))
	mac.Write([]byte(baseString))
	expectedSignature := "v0=" + hex.EncodeToString(mac.Sum(nil))

	// Secure comparison
	if !hmac.Equal([]byte(expectedSignature), []byte(signature)) {
		return fmt.Errorf("signature verification failed")
	}

	return nil
}

// HandleSlackEvent handles the Events API endpoint: the URL verification
// challenge and app_mention events.
func (h *SlackEventsHandler) HandleSlackEvent(w http.ResponseWriter, r *http.Request) {
	log.Printf("📨 Slack event received from %s", r.RemoteAddr)

	// Read raw body for signature verification
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("❌ Failed to read request body: %v", err)
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	// Verify Slack signature
	if err := h.verifySlackSignature(r, bodyBytes); err != nil {
		log.Printf("❌ Slack signature verification failed: %v", err)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	// Parse JSON from body bytes
	var body map[string]any
	if err := json.Unmarshal(bodyBytes, &body); err != nil {
		log.Printf("❌ Failed to parse JSON body: %v", err)
		http.Error(w, "failed to parse body", http.StatusBadRequest)
		return
	}

	if body["type"] == "url_verification" {
		log.Printf("🔐 Slack URL verification challenge received")
		challenge, ok := body["challenge"].(string)
		if !ok {
			log.Printf("❌ Challenge not found in verification request")
			http.Error(w, "challenge not found", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		if _, err := w.Write([]byte(challenge)); err != nil {
			log.Printf("❌ Failed to write challenge response: %v", err)
		}
		return
	}

	if body["type"] != "event_callback" {
		log.Printf("📋 Non-event callback received: %s", body["type"])
		w.WriteHeader(http.StatusOK)
		return
	}

	event, ok := body["event"].(map[string]any)
	if !ok {
		log.Printf("❌ Event payload not found in callback")
		http.Error(w, "event not found", http.StatusBadRequest)
		return
	}

	eventType, _ := event["type"].(string)
	if eventType != "app_mention" {
		log.Printf("⏭️ Ignoring event type: %s", eventType)
		w.WriteHeader(http.StatusOK)
		return
	}

	mention := models.SlackAppMentionEvent{
		ChannelID: stringField(event, "channel"),
		UserID:    stringField(event, "user"),
		TS:        stringField(event, "ts"),
	}

	// Ack within Slack's 3 second window; the reply is sent asynchronously
	w.WriteHeader(http.StatusOK)
	go func() {
		if err := h.slackUseCase.ProcessAppMention(context.Background(), mention); err != nil {
			log.Printf("❌ Failed to process app mention: %v", err)
		}
	}()
}

// messageActionPayload is the subset of Slack's message_action interactivity
// payload the shortcut handler needs.
type messageActionPayload struct {
	Type       string `json:"type"`
	CallbackID string `json:"callback_id"`
	Channel    struct {
		ID string `json:"id"`
	} `json:"channel"`
	User struct {
		ID string `json:"id"`
	} `json:"user"`
	Team struct {
		ID string `json:"id"`
	} `json:"team"`
	Message struct {
		TS       string `json:"ts"`
		ThreadTS string `json:"thread_ts"`
	} `json:"message"`
}

// HandleSlackInteractivity handles the interactivity endpoint where message
// shortcuts arrive. Slack sends the payload as a form-encoded JSON blob.
func (h *SlackEventsHandler) HandleSlackInteractivity(w http.ResponseWriter, r *http.Request) {
	log.Printf("📨 Slack interactivity payload received from %s", r.RemoteAddr)

	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("❌ Failed to read request body: %v", err)
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	// Signature is computed over the raw form-encoded body
	if err := h.verifySlackSignature(r, bodyBytes); err != nil {
		log.Printf("❌ Slack signature verification failed: %v", err)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	values, err := parseFormBody(bodyBytes)
	if err != nil {
		log.Printf("❌ Failed to parse form body: %v", err)
		http.Error(w, "failed to parse body", http.StatusBadRequest)
		return
	}

	var payload messageActionPayload
	if err := json.Unmarshal([]byte(values.Get("payload")), &payload); err != nil {
		log.Printf("❌ Failed to parse interactivity payload: %v", err)
		http.Error(w, "failed to parse payload", http.StatusBadRequest)
		return
	}

	if payload.Type != "message_action" || payload.CallbackID != extractIssuesCallbackID {
		log.Printf("⏭️ Ignoring interactivity payload: type=%s callback_id=%s", payload.Type, payload.CallbackID)
		w.WriteHeader(http.StatusOK)
		return
	}

	event := models.SlackShortcutEvent{
		CallbackID: payload.CallbackID,
		ChannelID:  payload.Channel.ID,
		UserID:     payload.User.ID,
		TeamID:     payload.Team.ID,
		MessageTS:  payload.Message.TS,
	}
	if payload.Message.ThreadTS != "" {
		event.ThreadTS = mo.Some(payload.Message.ThreadTS)
	}

	// Ack within Slack's 3 second window; the analysis runs asynchronously
	// and can take a while since report posts are paced.
	w.WriteHeader(http.StatusOK)
	go func() {
		if err := h.slackUseCase.ProcessThreadShortcut(context.Background(), event); err != nil {
			log.Printf("❌ Failed to process thread shortcut: %v", err)
		}
	}()
}

func parseFormBody(body []byte) (url.Values, error) {
	return url.ParseQuery(string(body))
}

func stringField(event map[string]any, key string) string {
	value, _ := event[key].(string)
	return value
}
