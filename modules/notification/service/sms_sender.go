package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"garage-api/core/config"
	"garage-api/core/constants"
	"garage-api/core/logger"
)

// Texter sends one SMS.
type Texter interface {
	Send(ctx context.Context, to, message string) error
}

// GatewaySMSSender posts to an HTTP SMS gateway. An empty gateway URL means
// SMS sending is disabled; sends are then logged and dropped.
type GatewaySMSSender struct {
	cfg    config.SMSConfig
	client *http.Client
}

func NewGatewaySMSSender(cfg config.SMSConfig) *GatewaySMSSender {
	return &GatewaySMSSender{
		cfg:    cfg,
		client: &http.Client{Timeout: constants.NotificationTimeout},
	}
}

func (s *GatewaySMSSender) Send(ctx context.Context, to, message string) error {
	if s.cfg.GatewayURL == "" {
		logger.Warn("GatewaySMSSender:Send:NotConfigured", "to", to)
		return nil
	}

	body, err := json.Marshal(map[string]string{
		"to":      to,
		"from":    s.cfg.Sender,
		"message": message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.GatewayURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}
