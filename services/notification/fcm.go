package notification

import (
	"context"
	"fmt"
	"strings"

	"rescuehub/config"
	"rescuehub/models"
	"rescuehub/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// FCMNotifier is the production DispatchNotifier. It publishes to the
// operator topic so every subscribed dispatch console receives the event.
type FCMNotifier struct{}

func NewFCMNotifier() *FCMNotifier { return &FCMNotifier{} }

// NotifyDispatch sends a high-priority push for a dispatched incident.
// It is a no-op when Firebase was not initialized, so local runs without
// a service account still work.
func (n *FCMNotifier) NotifyDispatch(ctx context.Context, snap models.IncidentSnapshot) error {
	if utils.FCMClient == nil {
		utils.GetLogger().Debug("fcm client not initialized, skipping dispatch push",
			zap.String("sessionID", snap.SessionID))
		return nil
	}

	topic := config.AppConfig.DispatchTopic
	if topic == "" {
		topic = "dispatch-events"
	}

	title := fmt.Sprintf("%s incident dispatched", strings.ToUpper(string(snap.IncidentType)))
	body := fmt.Sprintf("Units dispatched to %s.", snap.Address)
	if snap.InjuryDescription != "" {
		body = fmt.Sprintf("Units dispatched to %s. Reported injury: %s.", snap.Address, snap.InjuryDescription)
	}

	msg := &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{
			"type":         "incident_dispatch",
			"sessionID":    snap.SessionID,
			"incidentType": string(snap.IncidentType),
			"address":      snap.Address,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "dispatch_alerts",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("NotifyDispatch: failed to send FCM message: %w", err)
	}
	return nil
}
