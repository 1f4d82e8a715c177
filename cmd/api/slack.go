package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// SendSlackMessage posts an ops alert to the configured Slack webhook.
// No-op when the webhook isn't configured; failures are logged and dropped.
func (s *Server) SendSlackMessage(format string, args ...interface{}) {
	if s.Config.SlackWebhookURL == "" {
		return
	}

	run := func() error {
		req := map[string]string{"text": fmt.Sprintf(format, args...)}
		data, err := json.Marshal(req)
		if err != nil {
			return err
		}

		resp, err := http.Post(s.Config.SlackWebhookURL, "application/json", bytes.NewReader(data))
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		if resp.StatusCode != http.StatusOK {
			return errors.New(string(body))
		}

		return nil
	}

	if err := run(); err != nil {
		log.Errorf("error sending slack message: %s", err)
	}
}
