//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"chat-server/errors"
	"time"

	"github.com/samber/lo"
)

type IUserRepository interface {
	GetUser(userID string) (DiskUser, error)
	MergeProfile(userID string, patch ProfileFields, at time.Time) (DiskUser, error)
	SetPresence(userID, status string, at time.Time) error
	AddRoom(userID, roomID string) error
	RemoveRoom(userID, roomID string) error
}

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) IUserRepository {
	return &UserRepository{store: store}
}

// DiskUser is the stored profile document, keyed by "user:{id}".
type DiskUser struct {
	ID          string    `cbor:"id"`
	Username    string    `cbor:"username"`
	Description string    `cbor:"description"`
	Email       string    `cbor:"email"`
	Status      string    `cbor:"status"`
	LastSeen    time.Time `cbor:"lastSeen"`
	Rooms       []string  `cbor:"rooms"`
	Friends     []string  `cbor:"friends"`
	CreatedAt   time.Time `cbor:"createdAt"`
}

// ProfileFields is the set of profile fields a merge writes.
// Empty Username keeps the stored value. Nil Description keeps the stored value.
type ProfileFields struct {
	Username    string
	Email       string
	Description *string
}

const offline = "offline"

func userKey(userID string) string { return "user:" + userID }

// newDiskUser fills the defaults of a document that is created by a merge.
func newDiskUser(userID string, at time.Time) DiskUser {
	return DiskUser{
		ID:        userID,
		Status:    offline,
		LastSeen:  at,
		Rooms:     []string{},
		Friends:   []string{},
		CreatedAt: at,
	}
}

func (u *UserRepository) GetUser(userID string) (DiskUser, error) {
	user, found, err := get[DiskUser](u.store, userKey(userID))
	if err != nil {
		return DiskUser{}, errors.Store("get user", err)
	}
	if !found {
		return DiskUser{}, errors.ErrUserNotFound
	}
	return user, nil
}

// MergeProfile writes the given fields, creating the profile with defaults when absent.
// Rooms and friends already stored are never touched.
func (u *UserRepository) MergeProfile(userID string, fields ProfileFields, at time.Time) (DiskUser, error) {
	user, err := update(u.store, userKey(userID), func(doc *DiskUser, found bool) error {
		if !found {
			*doc = newDiskUser(userID, at)
		}
		if fields.Username != "" {
			doc.Username = fields.Username
		}
		if fields.Email != "" {
			doc.Email = fields.Email
		}
		if fields.Description != nil {
			doc.Description = *fields.Description
		}
		return nil
	})
	if err != nil {
		return DiskUser{}, errors.Store("merge profile", err)
	}
	return user, nil
}

// SetPresence records the status and the time it changed.
func (u *UserRepository) SetPresence(userID, status string, at time.Time) error {
	_, err := update(u.store, userKey(userID), func(doc *DiskUser, found bool) error {
		if !found {
			*doc = newDiskUser(userID, at)
		}
		doc.Status = status
		doc.LastSeen = at
		return nil
	})
	if err != nil {
		return errors.Store("set presence", err)
	}
	return nil
}

// AddRoom is an array union on the user's room list, so replaying it is harmless.
func (u *UserRepository) AddRoom(userID, roomID string) error {
	_, err := update(u.store, userKey(userID), func(doc *DiskUser, found bool) error {
		if !found {
			*doc = newDiskUser(userID, time.Now().UTC())
		}
		if lo.Contains(doc.Rooms, roomID) {
			return errSkipWrite
		}
		doc.Rooms = append(doc.Rooms, roomID)
		return nil
	})
	if err != nil {
		return errors.Store("add room", err)
	}
	return nil
}

// RemoveRoom is an array removal. Removing an absent room or from an absent profile is a no-op.
func (u *UserRepository) RemoveRoom(userID, roomID string) error {
	_, err := update(u.store, userKey(userID), func(doc *DiskUser, found bool) error {
		if !found || !lo.Contains(doc.Rooms, roomID) {
			return errSkipWrite
		}
		doc.Rooms = lo.Without(doc.Rooms, roomID)
		return nil
	})
	if err != nil {
		return errors.Store("remove room", err)
	}
	return nil
}
