package ws

import (
	"chat-server/contract"
	"chat-server/domain/event"
	"chat-server/errors"
	"context"
	"sync/atomic"

	"github.com/sourcegraph/jsonrpc2"
)

// connectionSink pushes outbound events as JSON-RPC notifications.
// Once the connection is gone every Consume is a no-op.
type connectionSink struct {
	conn   *jsonrpc2.Conn
	closed atomic.Bool
}

func (s *connectionSink) Consume(ctx context.Context, e event.Outbound) error {
	if s.closed.Load() || s.conn == nil {
		return nil
	}
	err := s.conn.Notify(ctx, e.Name, e.Payload)
	if errors.Is(err, jsonrpc2.ErrClosed) {
		s.closed.Store(true)
		return nil
	}
	return err
}

func (s *connectionSink) close() {
	s.closed.Store(true)
}

var _ contract.EventSink = (*connectionSink)(nil)
