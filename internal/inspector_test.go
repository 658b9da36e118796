package internal

import (
	"chat-server/repositories"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *repositories.Store {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repositories.NewStore(db, logs.GetLoggerFromLevel(slog.LevelDebug))
}

func TestInspect_Describes_Each_Document_Type(t *testing.T) {
	req := require.New(t)
	store := newStore(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	// Given one room, one message and one user
	req.NoError(repositories.NewRoomRepository(store).CreateRoom(repositories.DiskRoom{
		ID: "room-1", Type: "group", Name: "Team", Members: []string{"alice", "bob"}, CreatedAt: time.Now().UTC(),
	}))
	_, err := repositories.NewMessageRepository(store, log).AppendMessage(repositories.DiskMessage{
		ID: "msg-1", RoomID: "room-1", SenderID: "alice", Content: "hello",
	})
	req.NoError(err)
	req.NoError(repositories.NewUserRepository(store).SetPresence("alice", "online", time.Now().UTC()))

	// When every prefix is inspected
	rooms, err := Inspect(store, "room:", nil)
	req.NoError(err)
	messages, err := Inspect(store, "msg:room-1:", nil)
	req.NoError(err)
	users, err := Inspect(store, "user:", nil)
	req.NoError(err)

	// Then each row is typed from its key
	req.Len(rooms, 1)
	req.Equal("ROOM", rooms[0].Type)
	req.Equal("group", rooms[0].Namespace)
	req.Equal("Team members=2", rooms[0].Detail)

	req.Len(messages, 1)
	req.Equal("MESSAGE", messages[0].Type)
	req.Equal("room-1", messages[0].Namespace)
	req.Equal("msg-1", messages[0].EntityID)
	req.Equal("alice: hello", messages[0].Detail)

	req.Len(users, 1)
	req.Equal("USER", users[0].Type)
	req.Equal("online", users[0].Namespace)
}

func TestInspectHandler_Serves_Rows_As_JSON(t *testing.T) {
	req := require.New(t)
	store := newStore(t)
	req.NoError(repositories.NewRoomRepository(store).CreateRoom(repositories.DiskRoom{ID: "room-1", Type: "private", Members: []string{"alice"}}))

	recorder := httptest.NewRecorder()
	InspectHandler(logs.GetLoggerFromLevel(slog.LevelDebug), store).
		ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/debug/store?prefix=room:", nil))

	req.Equal(http.StatusOK, recorder.Code)
	var rows []InspectRow
	req.NoError(json.Unmarshal(recorder.Body.Bytes(), &rows))
	req.Len(rows, 1)
	req.Equal("room:room-1", rows[0].Key)
}

func TestCharacterRune(t *testing.T) {
	req := require.New(t)
	r, err := CharacterRune("€")
	req.NoError(err)
	req.Equal('€', r)

	_, err = CharacterRune("**")
	req.Error(err)
}
