package audit

import (
	"context"
	"log/slog"
	"time"
)

// ChannelPublisher feeds events to the worker inbox without blocking the
// emitting request. A full inbox drops the event with a log line rather
// than stalling a routing invocation: the audit trail is best-effort for
// operations events, and the compliance-relevant state lives in the
// signal store itself.
type ChannelPublisher struct {
	inbox  chan<- Event
	logger *slog.Logger
}

func NewChannelPublisher(inbox chan<- Event, logger *slog.Logger) *ChannelPublisher {
	return &ChannelPublisher{inbox: inbox, logger: logger}
}

func (p *ChannelPublisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case p.inbox <- event:
		return nil
	default:
		p.logger.WarnContext(ctx, "audit inbox full, event dropped",
			"action", event.Action,
			"signal_id", event.SignalID,
		)
		return nil
	}
}

// NopPublisher discards events. Used when audit is not wired, e.g. tests.
type NopPublisher struct{}

func (NopPublisher) Emit(context.Context, Event) error { return nil }
