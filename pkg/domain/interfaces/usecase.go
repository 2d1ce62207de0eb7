package interfaces

import (
	"context"

	"github.com/m-mizutani/warden/pkg/domain/model"
)

// CheckUseCase defines the patch series policy check over a revision range
type CheckUseCase interface {
	// CheckRange resolves start..end into commits (oldest first), runs
	// every per-commit and series-level check without short-circuiting,
	// and returns the full report. The returned error covers collaborator
	// failures only; check failures are expressed in the report.
	CheckRange(ctx context.Context, startRev, endRev string) (*model.SeriesReport, error)
}

// EventHandler consumes webhook events accepted by the HTTP controller
type EventHandler interface {
	HandleEvent(ctx context.Context, event *model.WebhookEvent) error
}
