// Package domain contains core concepts of the chat system.
// This file defines Participant identities and their profiles.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"strings"
	"time"
)

// Identity is the authenticated principal attached to a connection at handshake time.
type Identity struct {
	ID    string
	Email string
}

// DefaultUsername derives a username from the email prefix.
func (i Identity) DefaultUsername() string {
	prefix, _, _ := strings.Cut(i.Email, "@")
	return prefix
}

type Presence string

const (
	Online  Presence = "online"
	Offline Presence = "offline"
)

type Profile struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Description string    `json:"description"`
	Email       string    `json:"email"`
	Status      Presence  `json:"status"`
	LastSeen    time.Time `json:"lastSeen"`
	Rooms       []RoomID  `json:"rooms"`
	Friends     []string  `json:"friends"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProfilePatch carries the fields a profile update may change.
// A nil Description leaves the stored one untouched.
type ProfilePatch struct {
	Username    string
	Description *string
}
