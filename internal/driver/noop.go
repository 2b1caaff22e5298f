package driver

import (
	"context"
	"log/slog"

	"github.com/openagi/lux-go/internal/oagi"
)

// NoopHandler logs actions without performing them. Used by --dry-run.
type NoopHandler struct {
	Logger *slog.Logger
}

// Apply implements oagi.ActionHandler.
func (h NoopHandler) Apply(ctx context.Context, action oagi.Action) error {
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.DebugContext(ctx, "dry-run action",
		"type", action.Type,
		"x", action.X,
		"y", action.Y,
		"text", action.Text)
	return ctx.Err()
}

// StaticProvider returns the same screenshot on every capture. Used by
// --dry-run and tests.
type StaticProvider struct {
	Shot oagi.Screenshot
}

// Capture implements oagi.ImageProvider.
func (p StaticProvider) Capture(ctx context.Context) (*oagi.Screenshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	shot := p.Shot
	if shot.Format == "" {
		shot.Format = "png"
	}
	return &shot, nil
}
