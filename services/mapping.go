package services

import (
	"chat-server/domain"
	"chat-server/repositories"

	"github.com/samber/lo"
)

func toRoom(r repositories.DiskRoom) domain.Room {
	room := domain.Room{
		ID:          r.ID,
		Type:        domain.RoomType(r.Type),
		Name:        r.Name,
		Description: r.Description,
		Admin:       r.Admin,
		Members:     lo.Ternary(r.Members == nil, []string{}, r.Members),
		CreatedAt:   r.CreatedAt,
	}
	if r.LastMessage != nil {
		room.LastMessage = &domain.LastMessage{
			Content:   r.LastMessage.Content,
			SenderID:  r.LastMessage.SenderID,
			Timestamp: r.LastMessage.Timestamp,
		}
	}
	return room
}

func fromRoom(room domain.Room) repositories.DiskRoom {
	return repositories.DiskRoom{
		ID:          room.ID,
		Type:        string(room.Type),
		Name:        room.Name,
		Description: room.Description,
		Admin:       room.Admin,
		Members:     room.Members,
		CreatedAt:   room.CreatedAt,
	}
}

func toMessage(m repositories.DiskMessage) domain.Message {
	return domain.Message{
		ID:        m.ID,
		RoomID:    m.RoomID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		Timestamp: m.At,
	}
}

func toProfile(u repositories.DiskUser) domain.Profile {
	return domain.Profile{
		ID:          u.ID,
		Username:    u.Username,
		Description: u.Description,
		Email:       u.Email,
		Status:      domain.Presence(u.Status),
		LastSeen:    u.LastSeen,
		Rooms:       lo.Ternary(u.Rooms == nil, []string{}, u.Rooms),
		Friends:     lo.Ternary(u.Friends == nil, []string{}, u.Friends),
		CreatedAt:   u.CreatedAt,
	}
}
