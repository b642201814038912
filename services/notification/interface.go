package notification

import (
	"context"

	"rescuehub/models"
)

// DispatchNotifier pushes dispatch events to the operator channel.
type DispatchNotifier interface {
	NotifyDispatch(ctx context.Context, snap models.IncidentSnapshot) error
}
