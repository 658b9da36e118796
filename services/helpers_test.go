package services_test

import (
	"chat-server/domain"
	"chat-server/repositories"
	"chat-server/services"
	"log/slog"
	"sync"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	log      *slog.Logger
	store    *repositories.Store
	rooms    repositories.IRoomRepository
	users    repositories.IUserRepository
	messages *repositories.MessageRepository
	queue    *recordingQueue
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	store := repositories.NewStore(db, log)
	return fixture{
		log:      log,
		store:    store,
		rooms:    repositories.NewRoomRepository(store),
		users:    repositories.NewUserRepository(store),
		messages: repositories.NewMessageRepository(store, log),
		queue:    &recordingQueue{},
	}
}

func (f fixture) roomService() *services.RoomService {
	return services.NewRoomService(f.log, f.rooms, f.users, f.queue, 4)
}

// recordingQueue keeps every follow-up task it is given.
type recordingQueue struct {
	mu    sync.Mutex
	tasks []domain.MembershipTask
}

func (q *recordingQueue) Enqueue(task domain.MembershipTask) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, task)
	return true
}

func (q *recordingQueue) Tasks() []domain.MembershipTask {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]domain.MembershipTask(nil), q.tasks...)
}
