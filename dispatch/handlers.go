package dispatch

import (
	"chat-server/domain"
	"context"
	"encoding/json"
	"fmt"
)

func (d *Dispatcher) profileGet(ctx context.Context, identity domain.Identity, _ json.RawMessage) (Result, error) {
	profile, err := d.profiles.Get(ctx, identity.ID)
	if err != nil {
		return Result{}, err
	}
	return Result{Payload: profile}, nil
}

func (d *Dispatcher) profileUpdate(ctx context.Context, identity domain.Identity, params json.RawMessage) (Result, error) {
	payload, err := decode[profileUpdatePayload](params)
	if err != nil {
		return Result{}, err
	}
	profile, err := d.profiles.Update(ctx, identity, domain.ProfilePatch{
		Username:    payload.Username,
		Description: payload.Description,
	})
	if err != nil {
		return Result{}, err
	}
	return Result{Payload: profile}, nil
}

func (d *Dispatcher) privateChatCreate(ctx context.Context, identity domain.Identity, params json.RawMessage) (Result, error) {
	payload, err := decode[privateChatPayload](params)
	if err != nil {
		return Result{}, err
	}
	room, err := d.rooms.CreateDirect(ctx, identity.ID, payload.RecipientID)
	if err != nil {
		return Result{}, err
	}
	return Result{Payload: room}, nil
}

func (d *Dispatcher) groupChatCreate(ctx context.Context, identity domain.Identity, params json.RawMessage) (Result, error) {
	payload, err := decode[groupCreatePayload](params)
	if err != nil {
		return Result{}, err
	}
	room, err := d.rooms.CreateGroup(ctx, identity.ID, payload.Name, payload.Description, payload.Members)
	if err != nil {
		return Result{}, err
	}
	return Result{Payload: room}, nil
}

func (d *Dispatcher) groupAddMember(ctx context.Context, _ domain.Identity, params json.RawMessage) (Result, error) {
	payload, err := decode[membershipPayload](params)
	if err != nil {
		return Result{}, err
	}
	room, err := d.rooms.AddMember(ctx, payload.GroupID, payload.MemberID)
	if err != nil {
		return Result{}, err
	}
	return Result{Payload: room}, nil
}

func (d *Dispatcher) groupRemoveMember(ctx context.Context, _ domain.Identity, params json.RawMessage) (Result, error) {
	payload, err := decode[membershipPayload](params)
	if err != nil {
		return Result{}, err
	}
	room, err := d.rooms.RemoveMember(ctx, payload.GroupID, payload.MemberID)
	if err != nil {
		return Result{}, err
	}
	return Result{Payload: room}, nil
}

// messageSend is the only handler whose success goes to the whole room.
func (d *Dispatcher) messageSend(ctx context.Context, identity domain.Identity, params json.RawMessage) (Result, error) {
	payload, err := decode[messagePayload](params)
	if err != nil {
		return Result{}, err
	}
	message, room, err := d.messages.Send(ctx, identity.ID, payload.RoomID, payload.Content)
	if err != nil {
		return Result{}, err
	}
	return Result{Payload: message, Audience: room.Members}, nil
}

// roomListFetch answers with every room that could be read.
// Rooms that failed are reported one by one as extra error events.
func (d *Dispatcher) roomListFetch(ctx context.Context, identity domain.Identity, _ json.RawMessage) (Result, error) {
	roomIDs, err := d.rooms.ListRoomsFor(ctx, identity.ID)
	if err != nil {
		return Result{}, err
	}
	rooms := make([]domain.Room, 0, len(roomIDs))
	var failures []error
	for _, lookup := range d.rooms.FetchMetadataBatch(ctx, roomIDs) {
		if lookup.Err != nil {
			failures = append(failures, fmt.Errorf("room %s: %w", lookup.RoomID, lookup.Err))
			continue
		}
		rooms = append(rooms, lookup.Room)
	}
	return Result{Payload: rooms, Failures: failures}, nil
}

func (d *Dispatcher) roomHistoryFetch(ctx context.Context, _ domain.Identity, params json.RawMessage) (Result, error) {
	payload, err := decode[historyPayload](params)
	if err != nil {
		return Result{}, err
	}
	messages, err := d.messages.FetchHistory(ctx, payload.RoomID)
	if err != nil {
		return Result{}, err
	}
	return Result{Payload: messages}, nil
}
