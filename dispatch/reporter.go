package dispatch

import (
	"chat-server/contract"
	"chat-server/domain/event"
	"chat-server/errors"
	"context"
	"fmt"
	"log/slog"
)

// ToErrorEvent maps a handler failure to the "<event>:error" event sent back to the client.
// Internal failures are reported with a generic message so nothing about the process leaks.
func ToErrorEvent(name, code string, err error) event.Outbound {
	message := ""
	if err != nil && errors.KindOf(err) != errors.KindInternal {
		message = err.Error()
	}
	if message == "" {
		message = fmt.Sprintf("An unexpected error occurred during the '%s' event.", name)
	}
	return event.Failure(event.Name(name), code, message)
}

// Reporter is the terminal sink of every handler failure.
type Reporter struct {
	log    *slog.Logger
	router *Router
}

func NewReporter(log *slog.Logger, router *Router) *Reporter {
	return &Reporter{log: log, router: router}
}

// Report emits the error event to the originating connection. It never fails and never panics.
func (r *Reporter) Report(ctx context.Context, origin contract.Session, name, code string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("Error report failed", "conn_id", origin.ConnID, "event", name, "panic", rec)
		}
	}()

	out := ToErrorEvent(name, code, err)
	attrs := []any{"conn_id", origin.ConnID, "user_id", origin.UserID, "event", name, "code", code, "error", err}
	switch errors.KindOf(err) {
	case errors.KindInternal, errors.KindCollaborator:
		r.log.Error("Event failed", attrs...)
	default:
		r.log.Debug("Event rejected", attrs...)
	}
	r.router.Emit(ctx, origin, out)
}
