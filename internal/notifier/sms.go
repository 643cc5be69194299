package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Client sends short text notifications to a booker's phone.
type Client interface {
	Send(phone, message string) error
}

type THSMSClient struct {
	token   string
	sender  string
	baseURL string
	client  *http.Client
	log     *zerolog.Logger
}

type thsmsRequest struct {
	Sender  string   `json:"sender"`
	Msisdn  []string `json:"msisdn"`
	Message string   `json:"message"`
}

func NewTHSMSClient(token, sender, baseURL string, log *zerolog.Logger) *THSMSClient {
	return &THSMSClient{
		token:   token,
		sender:  sender,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

func (c *THSMSClient) Send(phone, message string) error {
	payload := thsmsRequest{
		Sender:  c.sender,
		Msisdn:  []string{phone},
		Message: message,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal sms payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("create sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}

	c.log.Info().Str("phone", phone).Msg("SMS notification sent")
	return nil
}

// BookingCreatedMessage is the confirmation text sent after a successful
// reservation.
func BookingCreatedMessage(machine, date, start, end string) string {
	return fmt.Sprintf("Your booking for %s on %s from %s to %s is confirmed.", machine, date, start, end)
}
