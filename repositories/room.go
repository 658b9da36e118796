//go:generate go run go.uber.org/mock/mockgen -source=room.go -destination=../mocks/mock_room_repository.go -package=mocks
package repositories

import (
	"chat-server/errors"
	"time"

	"github.com/samber/lo"
)

type IRoomRepository interface {
	CreateRoom(room DiskRoom) error
	GetRoom(roomID string) (DiskRoom, error)
	AddMember(roomID, userID string) (DiskRoom, bool, error)
	RemoveMember(roomID, userID string) (DiskRoom, bool, error)
	SetLastMessage(roomID string, last DiskLastMessage) error
}

type RoomRepository struct {
	store *Store
}

func NewRoomRepository(store *Store) IRoomRepository {
	return &RoomRepository{store: store}
}

// DiskRoom is the stored room document, keyed by "room:{id}".
type DiskRoom struct {
	ID          string           `cbor:"id"`
	Type        string           `cbor:"type"`
	Name        string           `cbor:"name,omitempty"`
	Description string           `cbor:"description,omitempty"`
	Admin       string           `cbor:"admin,omitempty"`
	Members     []string         `cbor:"members"`
	CreatedAt   time.Time        `cbor:"createdAt"`
	LastMessage *DiskLastMessage `cbor:"lastMessage,omitempty"`
}

type DiskLastMessage struct {
	Content   string    `cbor:"content"`
	SenderID  string    `cbor:"senderId"`
	Timestamp time.Time `cbor:"timestamp"`
}

func roomKey(roomID string) string { return "room:" + roomID }

func (r *RoomRepository) CreateRoom(room DiskRoom) error {
	if err := put(r.store, roomKey(room.ID), room); err != nil {
		return errors.Store("create room", err)
	}
	return nil
}

func (r *RoomRepository) GetRoom(roomID string) (DiskRoom, error) {
	room, found, err := get[DiskRoom](r.store, roomKey(roomID))
	if err != nil {
		return DiskRoom{}, errors.Store("get room", err)
	}
	if !found {
		return DiskRoom{}, errors.ErrRoomNotFound
	}
	return room, nil
}

// AddMember is an array union on the member list.
// The returned flag is false when the user was already a member and nothing was written.
func (r *RoomRepository) AddMember(roomID, userID string) (DiskRoom, bool, error) {
	changed := false
	room, err := update(r.store, roomKey(roomID), func(doc *DiskRoom, found bool) error {
		if !found {
			return errors.ErrRoomNotFound
		}
		if lo.Contains(doc.Members, userID) {
			return errSkipWrite
		}
		doc.Members = append(doc.Members, userID)
		changed = true
		return nil
	})
	return r.membershipResult("add member", room, changed, err)
}

// RemoveMember is an array removal on the member list.
// The returned flag is false when the user was not a member.
func (r *RoomRepository) RemoveMember(roomID, userID string) (DiskRoom, bool, error) {
	changed := false
	room, err := update(r.store, roomKey(roomID), func(doc *DiskRoom, found bool) error {
		if !found {
			return errors.ErrRoomNotFound
		}
		if !lo.Contains(doc.Members, userID) {
			return errSkipWrite
		}
		doc.Members = lo.Without(doc.Members, userID)
		changed = true
		return nil
	})
	return r.membershipResult("remove member", room, changed, err)
}

func (r *RoomRepository) membershipResult(op string, room DiskRoom, changed bool, err error) (DiskRoom, bool, error) {
	switch {
	case errors.Is(err, errors.ErrRoomNotFound):
		return DiskRoom{}, false, err
	case err != nil:
		return DiskRoom{}, false, errors.Store(op, err)
	}
	return room, changed, nil
}

// SetLastMessage moves the projection forward. An older message never replaces a newer one,
// which keeps the projection right when two sends race on the same room.
func (r *RoomRepository) SetLastMessage(roomID string, last DiskLastMessage) error {
	_, err := update(r.store, roomKey(roomID), func(doc *DiskRoom, found bool) error {
		if !found {
			return errors.ErrRoomNotFound
		}
		if doc.LastMessage != nil && doc.LastMessage.Timestamp.After(last.Timestamp) {
			return errSkipWrite
		}
		doc.LastMessage = &last
		return nil
	})
	switch {
	case errors.Is(err, errors.ErrRoomNotFound):
		return err
	case err != nil:
		return errors.Store("set last message", err)
	}
	return nil
}
