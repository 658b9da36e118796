// Package ws is the websocket transport: it authenticates the upgrade, keeps one JSON-RPC
// connection per socket and hands every inbound event to the dispatcher.
package ws

import (
	"chat-server/auth"
	"chat-server/contract"
	"chat-server/dispatch"
	"chat-server/domain"
	"chat-server/domain/event"
	"chat-server/errors"
	"chat-server/services"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sourcegraph/jsonrpc2"
)

type HandlerConfig struct {
	// FrontendOrigins are the allowed browser origins, scheme included or not.
	FrontendOrigins []string
	// DevMode accepts any origin.
	DevMode      bool
	WriteTimeout time.Duration
}

type Handler struct {
	log            *slog.Logger
	gatekeeper     *Gatekeeper
	registry       contract.IRegistry
	dispatcher     *dispatch.Dispatcher
	profiles       services.IProfileService
	originPatterns []string
	devMode        bool
	writeTimeout   time.Duration
	streams        sync.WaitGroup
}

func NewHandler(
	log *slog.Logger,
	gatekeeper *Gatekeeper,
	registry contract.IRegistry,
	dispatcher *dispatch.Dispatcher,
	profiles services.IProfileService,
	cfg HandlerConfig,
) *Handler {
	return &Handler{
		log:            log,
		gatekeeper:     gatekeeper,
		registry:       registry,
		dispatcher:     dispatcher,
		profiles:       profiles,
		originPatterns: originPatterns(cfg.FrontendOrigins),
		devMode:        cfg.DevMode,
		writeTimeout:   cfg.WriteTimeout,
	}
}

// originPatterns keeps the host part of each origin, which is what the websocket
// origin check matches against.
func originPatterns(origins []string) []string {
	var patterns []string
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			origin = u.Host
		}
		patterns = append(patterns, origin)
	}
	return patterns
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, err := h.gatekeeper.Authenticate(r)
	if err != nil {
		h.gatekeeper.Refuse(w, r, err)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns:     h.originPatterns,
		InsecureSkipVerify: h.devMode,
	})
	if err != nil {
		h.log.Warn("WebSocket accept failed", "user_id", identity.ID, "error", err)
		return
	}

	ctx := auth.WithIdentity(r.Context(), identity)
	h.HandleStream(ctx, newWebSocketStream(conn, h.writeTimeout), identity)
}

// HandleStream serves one authenticated connection until it is closed or ctx is done.
func (h *Handler) HandleStream(ctx context.Context, stream jsonrpc2.ObjectStream, identity domain.Identity) {
	h.streams.Add(1)
	defer h.streams.Done()
	connID := uuid.Must(uuid.NewV7()).String()
	log := h.log.With("conn_id", connID, "user_id", identity.ID)

	sink := &connectionSink{}
	rpc := &rpcHandler{
		log:        log,
		dispatcher: h.dispatcher,
		ready:      make(chan struct{}),
	}
	rpcConn := jsonrpc2.NewConn(ctx, stream, jsonrpc2.AsyncHandler(rpc))
	sink.conn = rpcConn

	previous, replaced := h.registry.Register(identity.ID, connID, sink)
	if replaced {
		log.Info("Session replaced", "previous_conn_id", previous.ConnID)
	}
	rpc.session = contract.Session{UserID: identity.ID, ConnID: connID, Sink: sink}
	close(rpc.ready)
	log.Info("User connected")

	if err := h.profiles.SetPresence(ctx, identity.ID, domain.Online); err != nil {
		log.Warn("Presence not marked online", "error", err)
	}

	go func() {
		select {
		case <-ctx.Done():
			_ = rpcConn.Close()
		case <-rpcConn.DisconnectNotify():
		}
	}()

	<-rpcConn.DisconnectNotify()
	sink.close()

	if _, removed := h.registry.Unregister(connID); removed {
		if err := h.profiles.SetPresence(context.WithoutCancel(ctx), identity.ID, domain.Offline); err != nil {
			log.Warn("Presence not marked offline", "error", err)
		}
	}
	log.Info("User disconnected")
}

// Wait blocks until every open stream has finished its disconnect bookkeeping, or ctx is done.
// Hijacked connections are invisible to http.Server.Shutdown, so the store must not be closed before this returns.
func (h *Handler) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.streams.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// rpcHandler turns JSON-RPC calls into dispatched events.
// Notifications get their answer as events only; requests are also replied to.
type rpcHandler struct {
	log        *slog.Logger
	dispatcher *dispatch.Dispatcher
	session    contract.Session
	ready      chan struct{}
}

func (h *rpcHandler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	select {
	case <-h.ready:
	case <-ctx.Done():
		return
	}

	var params json.RawMessage
	if req.Params != nil {
		params = *req.Params
	}
	err := h.dispatcher.Dispatch(ctx, h.session, req.Method, params)
	if req.Notif {
		return
	}

	if err != nil {
		err = conn.ReplyWithError(ctx, req.ID, h.replyError(req.Method, err))
	} else {
		err = conn.Reply(ctx, req.ID, struct{}{})
	}
	if err != nil {
		h.log.Debug("Reply not sent", "event", req.Method, "error", err)
	}
}

func (h *rpcHandler) replyError(method string, err error) *jsonrpc2.Error {
	code := int64(jsonrpc2.CodeInternalError)
	switch {
	case !h.dispatcher.Known(method):
		code = jsonrpc2.CodeMethodNotFound
	case errors.KindOf(err) == errors.KindValidation:
		code = jsonrpc2.CodeInvalidParams
	}
	message := ""
	if payload, ok := dispatch.ToErrorEvent(method, "", err).Payload.(event.ErrorPayload); ok {
		message = payload.Message
	}
	return &jsonrpc2.Error{Code: code, Message: message}
}
