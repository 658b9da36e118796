package ws

import (
	"chat-server/auth"
	"chat-server/dispatch"
	"chat-server/domain"
	"chat-server/repositories"
	"chat-server/runtime"
	"chat-server/services"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

const testIssuer = "chat-server-test"

type rpcMessage struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type server struct {
	http     *httptest.Server
	registry *runtime.Registry
	handler  *Handler
	rooms    *services.RoomService
	users    repositories.IUserRepository
}

func newServer(t *testing.T) server {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	store := repositories.NewStore(db, log)
	roomRepository := repositories.NewRoomRepository(store)
	userRepository := repositories.NewUserRepository(store)
	messageRepository := repositories.NewMessageRepository(store, log)

	registry := runtime.NewRegistry()
	router := dispatch.NewRouter(log, registry, time.Second)
	rooms := services.NewRoomService(log, roomRepository, userRepository, nil, 4)
	profiles := services.NewProfileService(log, userRepository)
	dispatcher := dispatch.NewDispatcher(log,
		rooms,
		services.NewMessageService(log, roomRepository, messageRepository, nil, 100),
		profiles,
		router,
		dispatch.NewReporter(log, router),
	)
	gatekeeper := NewGatekeeper(log, auth.NewJWTVerifier(testSecret, testIssuer), time.Second)
	handler := NewHandler(log, gatekeeper, registry, dispatcher, profiles, HandlerConfig{DevMode: true, WriteTimeout: time.Second})

	httpServer := httptest.NewServer(handler)
	t.Cleanup(func() {
		httpServer.Close()
		_ = db.Close()
	})
	return server{http: httpServer, registry: registry, handler: handler, rooms: rooms, users: userRepository}
}

func (s server) url(token string) string {
	return "ws" + strings.TrimPrefix(s.http.URL, "http") + "?token=" + token
}

func (s server) dial(t *testing.T, userID string) *websocket.Conn {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, testIssuer, userID, userID+"@example.com", time.Hour)
	require.NoError(t, err)
	conn, _, err := websocket.Dial(context.Background(), s.url(token), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.CloseNow() })
	return conn
}

func notify(t *testing.T, conn *websocket.Conn, method string, params any) {
	t.Helper()
	raw, err := json.Marshal(params)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, wsjson.Write(ctx, conn, rpcMessage{JSONRPC: "2.0", Method: method, Params: raw}))
}

func read(t *testing.T, conn *websocket.Conn) rpcMessage {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	var msg rpcMessage
	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	return msg
}

func TestHandler_Message_Reaches_Online_Room_Members_Only(t *testing.T) {
	req := require.New(t)
	s := newServer(t)
	room, err := s.rooms.CreateGroup(context.Background(), "alice", "Team", "", []string{"bob"})
	req.NoError(err)

	// Given alice and bob in the room and clara outside of it, all connected
	alice := s.dial(t, "alice")
	bob := s.dial(t, "bob")
	clara := s.dial(t, "clara")
	req.Eventually(func() bool { return s.registry.Len() == 3 }, 2*time.Second, 10*time.Millisecond)

	// When alice sends a message
	notify(t, alice, "message:send", map[string]string{"roomId": room.ID, "content": "Hello team"})

	// Then alice and bob receive the same message
	gotAlice, gotBob := read(t, alice), read(t, bob)
	req.Equal("message:send:success", gotAlice.Method)
	req.Equal("message:send:success", gotBob.Method)
	var messageAlice, messageBob domain.Message
	req.NoError(json.Unmarshal(gotAlice.Params, &messageAlice))
	req.NoError(json.Unmarshal(gotBob.Params, &messageBob))
	req.Equal(messageAlice, messageBob)
	req.Equal("Hello team", messageBob.Content)
	req.Equal("alice", messageBob.SenderID)

	// And clara receives nothing
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	var unexpected rpcMessage
	req.Error(wsjson.Read(ctx, clara, &unexpected))
}

func TestHandler_Non_Member_Gets_An_Error_Event(t *testing.T) {
	req := require.New(t)
	s := newServer(t)
	room, err := s.rooms.CreateGroup(context.Background(), "alice", "Team", "", nil)
	req.NoError(err)
	clara := s.dial(t, "clara")

	notify(t, clara, "message:send", map[string]string{"roomId": room.ID, "content": "let me in"})

	got := read(t, clara)
	req.Equal("message:send:error", got.Method)
	var payload map[string]string
	req.NoError(json.Unmarshal(got.Params, &payload))
	req.Equal(dispatch.CodeMessageSend, payload["code"])
}

func TestHandler_Expired_Token_Is_Refused_Before_Upgrade(t *testing.T) {
	req := require.New(t)
	s := newServer(t)
	token, err := auth.GenerateToken(testSecret, testIssuer, "alice", "alice@example.com", -time.Minute)
	req.NoError(err)

	// When a client dials with an expired token
	_, resp, err := websocket.Dial(context.Background(), s.url(token), nil)

	// Then the upgrade is refused with 401 and no session exists
	req.Error(err)
	req.NotNil(resp)
	req.Equal(http.StatusUnauthorized, resp.StatusCode)
	req.Equal(0, s.registry.Len())
}

func TestHandler_Presence_Follows_The_Connection(t *testing.T) {
	req := require.New(t)
	s := newServer(t)

	// Given alice connected
	alice := s.dial(t, "alice")
	req.Eventually(func() bool {
		user, err := s.users.GetUser("alice")
		return err == nil && user.Status == string(domain.Online)
	}, 2*time.Second, 10*time.Millisecond)

	// When she closes the connection
	req.NoError(alice.Close(websocket.StatusNormalClosure, ""))

	// Then her session is gone and she is offline
	req.Eventually(func() bool {
		user, err := s.users.GetUser("alice")
		return s.registry.Len() == 0 && err == nil && user.Status == string(domain.Offline)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHandler_Request_Is_Replied_To(t *testing.T) {
	req := require.New(t)
	s := newServer(t)
	alice := s.dial(t, "alice")

	// When alice calls an unknown method as a request
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	req.NoError(wsjson.Write(ctx, alice, map[string]any{"jsonrpc": "2.0", "id": 1, "method": "room:delete"}))

	// Then she receives the error event and the error reply
	var sawEvent, sawReply bool
	for range 2 {
		var msg map[string]any
		readCtx, readCancel := context.WithTimeout(context.Background(), 2*time.Second)
		req.NoError(wsjson.Read(readCtx, alice, &msg))
		readCancel()
		if msg["method"] == "room:delete:error" {
			sawEvent = true
		}
		if errObj, ok := msg["error"].(map[string]any); ok {
			sawReply = true
			req.EqualValues(-32601, errObj["code"])
		}
	}
	req.True(sawEvent)
	req.True(sawReply)
}

func TestHandler_Wait_Covers_Open_Streams(t *testing.T) {
	req := require.New(t)
	s := newServer(t)

	// Given alice connected
	alice := s.dial(t, "alice")
	req.Eventually(func() bool { return s.registry.Len() == 1 }, 2*time.Second, 10*time.Millisecond)

	// Then waiting while her stream is open times out
	short, cancelShort := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancelShort()
	req.ErrorIs(s.handler.Wait(short), context.DeadlineExceeded)

	// When she disconnects
	req.NoError(alice.Close(websocket.StatusNormalClosure, ""))

	// Then Wait returns once her offline presence is written
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req.NoError(s.handler.Wait(ctx))
	user, err := s.users.GetUser("alice")
	req.NoError(err)
	req.Equal(string(domain.Offline), user.Status)
}
