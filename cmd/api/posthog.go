package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/google/uuid"
	"github.com/posthog/posthog-go"
)

type PosthogProps posthog.Properties

func (s *Server) PosthogCapture(userID uuid.UUID, event string, properties PosthogProps) {
	if s.Posthog == nil {
		return
	}
	err := s.Posthog.Enqueue(posthog.Capture{
		DistinctId: userID.String(),
		Event:      event,
		Properties: posthog.Properties(properties),
	})
	if err != nil {
		log.Errorf("posthog capture: %v", err)
	}
}
