// Package domain contains core concepts of the chat system.
// This file defines Message events and related rules.
// Messages are immutable once persisted.
package domain

import (
	"time"
)

// Message represents an immutable chat event.
// Timestamp is assigned by the server when the message is accepted.
type Message struct {
	ID        string    `json:"id"`
	RoomID    RoomID    `json:"roomId"`
	SenderID  string    `json:"senderId"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

func (m Message) Projection() LastMessage {
	return LastMessage{
		Content:   m.Content,
		SenderID:  m.SenderID,
		Timestamp: m.Timestamp,
	}
}
