package notification

import (
	"context"
	"time"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
)

// DisabledGateway stands in when no dispatch backend is configured. It
// reports permission as denied so specs still persist, and cancellation is
// a no-op since nothing was ever scheduled.
type DisabledGateway struct{}

func NewDisabledGateway() *DisabledGateway {
	return &DisabledGateway{}
}

func (g *DisabledGateway) RequestPermission(_ context.Context) (bool, error) {
	return false, nil
}

func (g *DisabledGateway) ScheduleAt(_ context.Context, _ time.Time, _ domain.NotificationPayload) (domain.Handle, error) {
	return "", nil
}

func (g *DisabledGateway) Cancel(_ context.Context, _ domain.Handle) error {
	return nil
}
