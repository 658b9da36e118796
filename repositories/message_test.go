package repositories

import (
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_Append_Then_List_In_Timestamp_Order(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(newTestStore(t), slog.Default())
	authors := []string{"alice", "bob", "clara"}

	for _, author := range authors {
		_, err := repository.AppendMessage(DiskMessage{
			ID:       uuid.NewString(),
			RoomID:   "room-1",
			SenderID: author,
			Content:  "hello from " + author,
		})
		req.NoError(err)
	}

	messages, err := repository.ListMessages("room-1")
	req.NoError(err)
	req.Len(messages, 3)
	for i, message := range messages {
		req.Equal(authors[i], message.SenderID)
		req.Equal("room-1", message.RoomID)
		if i > 0 {
			req.False(message.At.Before(messages[i-1].At))
		}
	}
}

func Test_List_Unknown_Room_Is_Empty(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(newTestStore(t), slog.Default())

	messages, err := repository.ListMessages("nobody-here")

	req.NoError(err)
	req.NotNil(messages)
	req.Empty(messages)
}

func Test_Rooms_Do_Not_Leak_Into_Each_Other(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(newTestStore(t), slog.Default())

	_, err := repository.AppendMessage(DiskMessage{ID: "1", RoomID: "room-1", SenderID: "alice", Content: "a"})
	req.NoError(err)
	_, err = repository.AppendMessage(DiskMessage{ID: "2", RoomID: "room-10", SenderID: "bob", Content: "b"})
	req.NoError(err)

	messages, err := repository.ListMessages("room-1")
	req.NoError(err)
	req.Len(messages, 1)
	req.Equal("1", messages[0].ID)
}

func Test_Clock_Never_Goes_Backwards(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(newTestStore(t), slog.Default())
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	ticks := []time.Time{base, base.Add(-time.Hour), base.Add(time.Second)}
	i := 0
	repository.now = func() time.Time {
		tick := ticks[i]
		i++
		return tick
	}

	// Given a wall clock that jumps back between two sends
	for n := range ticks {
		_, err := repository.AppendMessage(DiskMessage{ID: fmt.Sprint(n), RoomID: "room-1", SenderID: "alice", Content: "x"})
		req.NoError(err)
	}

	// Then the stored order still follows the append order
	messages, err := repository.ListMessages("room-1")
	req.NoError(err)
	req.Equal([]string{"0", "1", "2"}, []string{messages[0].ID, messages[1].ID, messages[2].ID})
	req.True(messages[1].At.Equal(base.Add(time.Nanosecond)))
	req.True(messages[2].At.Equal(base.Add(time.Second)))
}

func Test_Frozen_Clock_Keeps_Append_Order(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(newTestStore(t), slog.Default())
	frozen := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	repository.now = func() time.Time { return frozen }

	// Given random ids appended while the wall clock does not move
	var appended []string
	for n := 0; n < 20; n++ {
		message, err := repository.AppendMessage(DiskMessage{ID: uuid.NewString(), RoomID: "room-1", SenderID: "alice", Content: fmt.Sprint(n)})
		req.NoError(err)
		appended = append(appended, message.ID)
	}

	// When the room is listed
	messages, err := repository.ListMessages("room-1")
	req.NoError(err)

	// Then the history follows the append order with strictly increasing timestamps
	listed := make([]string, 0, len(messages))
	for i, message := range messages {
		listed = append(listed, message.ID)
		if i > 0 {
			req.True(message.At.After(messages[i-1].At))
		}
	}
	req.Equal(appended, listed)
}

func Test_Clock_Is_Seeded_From_Stored_Messages(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	future := time.Now().UTC().Add(24 * time.Hour)

	// Given a message stamped in the future by a previous run
	db, err := badger.Open(badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	first := NewMessageRepository(NewStore(db, slog.Default()), slog.Default())
	first.now = func() time.Time { return future }
	_, err = first.AppendMessage(DiskMessage{ID: "old", RoomID: "room-1", SenderID: "alice", Content: "x"})
	req.NoError(err)
	req.NoError(db.Close())

	// When a fresh repository appends with a wall clock behind it
	db, err = badger.Open(badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()
	second := NewMessageRepository(NewStore(db, slog.Default()), slog.Default())
	stored, err := second.AppendMessage(DiskMessage{ID: "new", RoomID: "room-1", SenderID: "bob", Content: "y"})
	req.NoError(err)

	// Then the new message is placed after the old one
	req.True(stored.At.After(future))
	messages, err := second.ListMessages("room-1")
	req.NoError(err)
	req.Len(messages, 2)
	req.Equal("new", messages[1].ID)
}

func Test_Concurrent_Appends_Are_All_Kept(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(newTestStore(t), slog.Default())
	var wg sync.WaitGroup

	for n := 0; n < 50; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := repository.AppendMessage(DiskMessage{ID: fmt.Sprint(n), RoomID: "room-1", SenderID: "alice", Content: "x"})
			req.NoError(err)
		}(n)
	}
	wg.Wait()

	messages, err := repository.ListMessages("room-1")
	req.NoError(err)
	req.Len(messages, 50)
	for i := 1; i < len(messages); i++ {
		req.True(messages[i].At.After(messages[i-1].At))
	}
}
