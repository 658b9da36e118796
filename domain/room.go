// Package domain contains core concepts of the chat system.
// This file defines Room entities and their membership rules.
package domain

import (
	"time"

	"github.com/samber/lo"
)

type RoomID = string

type RoomType string

const (
	// RoomDirect is stored as "private" to stay compatible with existing clients.
	RoomDirect RoomType = "private"
	RoomGroup  RoomType = "group"
)

// LastMessage is the cached projection of the newest message of a room.
type LastMessage struct {
	Content   string    `json:"content"`
	SenderID  string    `json:"senderId"`
	Timestamp time.Time `json:"timestamp"`
}

// Room is a direct or group conversation.
// Members has set semantics: NewDirectRoom and NewGroupRoom remove duplicates.
type Room struct {
	ID          RoomID       `json:"id"`
	Type        RoomType     `json:"type"`
	Name        string       `json:"name,omitempty"`
	Description string       `json:"description,omitempty"`
	Admin       string       `json:"admin,omitempty"`
	Members     []string     `json:"members"`
	CreatedAt   time.Time    `json:"createdAt"`
	LastMessage *LastMessage `json:"lastMessage,omitempty"`
}

// NewDirectRoom builds a direct room between creator and recipient.
// A self chat collapses to a single member.
func NewDirectRoom(id RoomID, creatorID, recipientID string, at time.Time) Room {
	return Room{
		ID:        id,
		Type:      RoomDirect,
		Members:   lo.Uniq([]string{creatorID, recipientID}),
		CreatedAt: at,
	}
}

// NewGroupRoom builds a group room administrated by its creator, who is always a member.
func NewGroupRoom(id RoomID, creatorID, name, description string, members []string, at time.Time) Room {
	return Room{
		ID:          id,
		Type:        RoomGroup,
		Name:        name,
		Description: description,
		Admin:       creatorID,
		Members:     lo.Uniq(append([]string{creatorID}, members...)),
		CreatedAt:   at,
	}
}

func (r Room) IsGroup() bool { return r.Type == RoomGroup }

func (r Room) HasMember(userID string) bool {
	return lo.Contains(r.Members, userID)
}
