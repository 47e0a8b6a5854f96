package gateway

import (
	"context"
	"time"

	"subman-bot-be/internal/pkg/logger"
)

const (
	pollTimeoutSeconds = 30
	pollBackoffInitial = 1 * time.Second
	pollBackoffMax     = 30 * time.Second
)

// UpdateHandler consumes one inbound update. Errors are the handler's to
// report; the poller only keeps the stream moving.
type UpdateHandler interface {
	Handle(ctx context.Context, update *Update)
}

// Poller pulls updates from the platform over long polls and feeds them to
// the handler. Transport errors back off exponentially and never stop the
// loop; only context cancellation ends it.
type Poller struct {
	telegram *Telegram
	handler  UpdateHandler
	logger   logger.ILogger
}

func NewPoller(telegram *Telegram, handler UpdateHandler, logger logger.ILogger) *Poller {
	return &Poller{
		telegram: telegram,
		handler:  handler,
		logger:   logger,
	}
}

func (p *Poller) Run(ctx context.Context) {
	var offset int64
	backoff := pollBackoffInitial

	p.logger.Info("gateway.poller", "Update polling started", nil)

	for {
		if ctx.Err() != nil {
			p.logger.Info("gateway.poller", "Update polling stopped", nil)
			return
		}

		updates, err := p.telegram.GetUpdates(ctx, offset, pollTimeoutSeconds)
		if err != nil {
			if ctx.Err() != nil {
				p.logger.Info("gateway.poller", "Update polling stopped", nil)
				return
			}
			p.logger.Warn("gateway.poller", "Poll failed, backing off", map[string]interface{}{
				"error":   err.Error(),
				"backoff": backoff.String(),
			})
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return
			}
			backoff *= 2
			if backoff > pollBackoffMax {
				backoff = pollBackoffMax
			}
			continue
		}
		backoff = pollBackoffInitial

		for _, raw := range updates {
			if raw.UpdateId >= offset {
				offset = raw.UpdateId + 1
			}
			update := mapUpdate(raw)
			if update == nil {
				continue
			}
			p.handler.Handle(ctx, update)
		}
	}
}
