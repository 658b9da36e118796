package dispatch

import (
	"chat-server/contract"
	"chat-server/domain/event"
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Router delivers outbound events, either to the connection that sent the inbound event
// or to every online member of a room.
type Router struct {
	log         *slog.Logger
	registry    contract.IRegistry
	sinkTimeout time.Duration
}

func NewRouter(log *slog.Logger, registry contract.IRegistry, sinkTimeout time.Duration) *Router {
	return &Router{log: log, registry: registry, sinkTimeout: sinkTimeout}
}

// Emit sends the event to one connection.
func (r *Router) Emit(ctx context.Context, target contract.Session, e event.Outbound) bool {
	if target.Sink == nil {
		return false
	}
	// Delivery outlives the inbound request: the sender may disconnect while
	// its own event is still being fanned out.
	sinkCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.sinkTimeout)
	defer cancel()
	if err := target.Sink.Consume(sinkCtx, e); err != nil {
		r.log.Debug("Event not delivered", "conn_id", target.ConnID, "user_id", target.UserID, "event", e.Name, "error", err)
		return false
	}
	return true
}

// Broadcast sends the event to the active connection of every identity in audience.
// Identities without a session are skipped. Each sink gets its own goroutine and timeout
// so a slow connection cannot hold the others back. It returns the number of deliveries.
func (r *Router) Broadcast(ctx context.Context, audience []string, e event.Outbound) int {
	var wg sync.WaitGroup
	var delivered atomic.Int32
	for _, userID := range audience {
		session, ok := r.registry.Lookup(userID)
		if !ok {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if r.Emit(ctx, session, e) {
				delivered.Add(1)
			}
		}()
	}
	wg.Wait()
	return int(delivered.Load())
}
