package services

import (
	"fmt"

	"cleanup-backend/internal/models"

	"github.com/rs/zerolog/log"
	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/payload"
	"github.com/sideshow/apns2/token"
)

// PushSender delivers change events as APNs pushes. It plugs into the
// notification hub as a subscription callback, so geofencing applies to
// push listeners exactly as to in-process ones.
type PushSender struct {
	client *apns2.Client
	topic  string
}

// NewPushSender creates a token-based APNs client from a .p8 key file.
func NewPushSender(keyFile, keyID, teamID, topic string, production bool) (*PushSender, error) {
	authKey, err := token.AuthKeyFromFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load APNs auth key: %w", err)
	}

	client := apns2.NewTokenClient(&token.Token{
		AuthKey: authKey,
		KeyID:   keyID,
		TeamID:  teamID,
	})
	if production {
		client = client.Production()
	} else {
		client = client.Development()
	}

	return &PushSender{client: client, topic: topic}, nil
}

// Callback returns a hub delivery callback that pushes to one device.
func (p *PushSender) Callback(deviceToken string) func(models.ChangeEvent) {
	return func(ev models.ChangeEvent) {
		pl := payload.NewPayload().
			AlertTitle("Something changed near you").
			AlertBody(fmt.Sprintf("%s: %s #%d", ev.Kind, ev.Entity, ev.EntityID)).
			Custom("kind", string(ev.Kind)).
			Custom("entity", string(ev.Entity)).
			Custom("entity_id", ev.EntityID)

		res, err := p.client.Push(&apns2.Notification{
			DeviceToken: deviceToken,
			Topic:       p.topic,
			Payload:     pl,
		})
		if err != nil {
			log.Error().Err(err).Msg("Failed to send push notification")
			return
		}
		if !res.Sent() {
			log.Warn().Int("status", res.StatusCode).Str("reason", res.Reason).Msg("Push rejected")
		}
	}
}
