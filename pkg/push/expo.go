package push

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultExpoURL = "https://exp.host/--/api/v2/push/send"

	// Title is shown on every "meeting processed" notification
	Title = "Meeting transcript ready"

	// MaxBodyChars is the longest summary prefix placed in a notification body
	MaxBodyChars = 100

	Ellipsis = "…"

	channelID = "default"
	priority  = "high"
)

// Message is the Expo push payload
type Message struct {
	To        string      `json:"to"`
	Title     string      `json:"title"`
	Body      string      `json:"body"`
	Data      MessageData `json:"data"`
	ChannelID string      `json:"channelId"`
	Priority  string      `json:"priority"`
}

// MessageData carries the deep-link target for the mobile client
type MessageData struct {
	MeetingID string `json:"meetingId"`
}

// ticketResponse is the relevant part of Expo's push ticket reply
type ticketResponse struct {
	Data struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"data"`
}

// ExpoClient delivers push notifications through the Expo push relay
type ExpoClient struct {
	url         string
	accessToken string
	client      *resty.Client
}

// NewExpoClient creates an Expo client. An empty url selects DefaultExpoURL.
func NewExpoClient(url, accessToken string, timeout time.Duration) *ExpoClient {
	if url == "" {
		url = DefaultExpoURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &ExpoClient{
		url:         url,
		accessToken: accessToken,
		client:      client,
	}
}

// NewMessage builds the fixed-schema notification for a processed meeting
func NewMessage(token, meetingID, summary string) Message {
	return Message{
		To:        token,
		Title:     Title,
		Body:      TruncateBody(summary),
		Data:      MessageData{MeetingID: meetingID},
		ChannelID: channelID,
		Priority:  priority,
	}
}

// TruncateBody caps summary at MaxBodyChars characters, marking the cut with Ellipsis
func TruncateBody(summary string) string {
	runes := []rune(summary)
	if len(runes) <= MaxBodyChars {
		return summary
	}
	return string(runes[:MaxBodyChars]) + Ellipsis
}

// Send posts the notification for meetingID to the device identified by token
func (c *ExpoClient) Send(ctx context.Context, token, meetingID, summary string) error {
	var ticket ticketResponse
	req := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(NewMessage(token, meetingID, summary)).
		SetResult(&ticket).
		ForceContentType("application/json")
	if c.accessToken != "" {
		req.SetHeader("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := req.Post(c.url)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("expo returned status %d: %s", resp.StatusCode(), resp.String())
	}
	if ticket.Data.Status == "error" {
		return fmt.Errorf("expo rejected notification: %s", ticket.Data.Message)
	}
	return nil
}
