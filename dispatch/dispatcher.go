// Package dispatch routes inbound events to their handler and delivers the outcome:
// success to the sender or to the room, failures through the Reporter.
package dispatch

import (
	"chat-server/auth"
	"chat-server/contract"
	"chat-server/domain"
	"chat-server/domain/event"
	"chat-server/errors"
	"chat-server/services"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

const (
	CodeProfileGet        = "PROFILE_GET_ERROR"
	CodeProfileUpdate     = "PROFILE_UPDATE_ERROR"
	CodePrivateChatCreate = "PRIVATE_CHAT_CREATE_ERROR"
	CodeGroupChatCreate   = "GROUP_CHAT_CREATE_ERROR"
	CodeGroupAddMember    = "GROUP_CHAT_ADD_MEMBER_ERROR"
	CodeGroupRemoveMember = "GROUP_CHAT_REMOVE_MEMBER_ERROR"
	CodeMessageSend       = "MESSAGE_SEND_ERROR"
	CodeRoomListFetch     = "ROOM_LIST_FETCH_ERROR"
	CodeRoomHistoryFetch  = "ROOM_HISTORY_FETCH_ERROR"
	CodeUnknownEvent      = "UNKNOWN_EVENT"
)

// Result is what a handler hands back to the dispatcher.
// A nil Audience means the payload goes to the sender only.
// Failures are partial errors reported next to the success event.
type Result struct {
	Payload  any
	Audience []string
	Failures []error
}

type handler func(ctx context.Context, identity domain.Identity, params json.RawMessage) (Result, error)

type route struct {
	code   string
	handle handler
}

type Dispatcher struct {
	log      *slog.Logger
	rooms    services.IRoomService
	messages services.IMessageService
	profiles services.IProfileService
	router   *Router
	reporter *Reporter
	routes   map[event.Name]route
}

func NewDispatcher(
	log *slog.Logger,
	rooms services.IRoomService,
	messages services.IMessageService,
	profiles services.IProfileService,
	router *Router,
	reporter *Reporter,
) *Dispatcher {
	d := &Dispatcher{
		log:      log,
		rooms:    rooms,
		messages: messages,
		profiles: profiles,
		router:   router,
		reporter: reporter,
	}
	d.routes = map[event.Name]route{
		event.ProfileGet:        {CodeProfileGet, d.profileGet},
		event.ProfileUpdate:     {CodeProfileUpdate, d.profileUpdate},
		event.PrivateChatCreate: {CodePrivateChatCreate, d.privateChatCreate},
		event.GroupChatCreate:   {CodeGroupChatCreate, d.groupChatCreate},
		event.GroupAddMember:    {CodeGroupAddMember, d.groupAddMember},
		event.GroupRemoveMember: {CodeGroupRemoveMember, d.groupRemoveMember},
		event.MessageSend:       {CodeMessageSend, d.messageSend},
		event.RoomListFetch:     {CodeRoomListFetch, d.roomListFetch},
		event.RoomHistoryFetch:  {CodeRoomHistoryFetch, d.roomHistoryFetch},
	}
	return d
}

// Known reports whether name is routed.
func (d *Dispatcher) Known(name string) bool {
	_, ok := d.routes[event.Name(name)]
	return ok
}

// Dispatch runs one inbound event for the origin connection and delivers its outcome.
// It returns the handler error, already reported to the client, so the transport can
// answer a request with it.
func (d *Dispatcher) Dispatch(ctx context.Context, origin contract.Session, name string, params json.RawMessage) error {
	r, ok := d.routes[event.Name(name)]
	if !ok {
		err := errors.Validation("unknown event '%s'", name)
		d.reporter.Report(ctx, origin, name, CodeUnknownEvent, err)
		return err
	}

	identity, ok := auth.IdentityFrom(ctx)
	if !ok || identity.ID != origin.UserID {
		d.reporter.Report(ctx, origin, name, r.code, errors.ErrUnauthenticated)
		return errors.ErrUnauthenticated
	}

	result, err := d.run(ctx, r, identity, name, params)
	if err != nil {
		d.reporter.Report(ctx, origin, name, r.code, err)
		return err
	}

	success := event.Success(event.Name(name), result.Payload)
	if result.Audience != nil {
		delivered := d.router.Broadcast(ctx, result.Audience, success)
		d.log.Debug("Event broadcast", "event", name, "user_id", identity.ID, "audience", len(result.Audience), "delivered", delivered)
	} else {
		d.router.Emit(ctx, origin, success)
	}
	for _, failure := range result.Failures {
		d.reporter.Report(ctx, origin, name, r.code, failure)
	}
	return nil
}

// run isolates the handler so a panic is reported like any other failure.
func (d *Dispatcher) run(ctx context.Context, r route, identity domain.Identity, name string, params json.RawMessage) (result Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			d.log.Error("Handler panic", "event", name, "user_id", identity.ID, "panic", rec)
			err = fmt.Errorf("%w: %v", errors.ErrHandlerPanic, rec)
		}
	}()
	return r.handle(ctx, identity, params)
}
