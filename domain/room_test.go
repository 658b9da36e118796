package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewGroupRoom_Includes_Creator_Once(t *testing.T) {
	req := require.New(t)

	room := NewGroupRoom("room-1", "alice", "G", "", []string{"bob", "alice", "clara", "bob"}, time.Now())

	req.Equal(RoomGroup, room.Type)
	req.Equal("alice", room.Admin)
	req.Equal([]string{"alice", "bob", "clara"}, room.Members)
}

func TestNewDirectRoom_Self_Chat_Collapses(t *testing.T) {
	req := require.New(t)

	room := NewDirectRoom("room-1", "alice", "alice", time.Now())

	req.Equal(RoomDirect, room.Type)
	req.Equal([]string{"alice"}, room.Members)
	req.Empty(room.Admin)
}

func TestRoom_IsGroup_And_HasMember(t *testing.T) {
	req := require.New(t)
	group := NewGroupRoom("room-1", "alice", "G", "", []string{"bob"}, time.Now())
	direct := NewDirectRoom("room-2", "alice", "bob", time.Now())

	req.True(group.IsGroup())
	req.False(direct.IsGroup())
	req.True(group.HasMember("bob"))
	req.False(group.HasMember("clara"))
}

func TestIdentity_DefaultUsername(t *testing.T) {
	req := require.New(t)

	req.Equal("alice", Identity{ID: "1", Email: "alice@example.com"}.DefaultUsername())
	req.Equal("", Identity{ID: "1"}.DefaultUsername())
}
