package workers

import (
	"chat-server/domain"
	"chat-server/repositories"
	"context"
	"log/slog"
	"time"
)

// MembershipSync replays room list updates that failed after their room write succeeded.
// A room and the room lists of its members are separate records, so a crash or a store
// hiccup between the two writes would leave them diverged until a task here succeeds.
//
// Tasks are kept in memory only. Both operations are idempotent so replaying a task
// that already went through is harmless.
type MembershipSync struct {
	log           *slog.Logger
	users         repositories.IUserRepository
	tasks         chan domain.MembershipTask
	retryInterval time.Duration
	maxAttempts   int
}

func NewMembershipSync(
	log *slog.Logger,
	users repositories.IUserRepository,
	queueSize int,
	retryInterval time.Duration,
	maxAttempts int,
) *MembershipSync {
	return &MembershipSync{
		log:           log,
		users:         users,
		tasks:         make(chan domain.MembershipTask, queueSize),
		retryInterval: retryInterval,
		maxAttempts:   maxAttempts,
	}
}

// Enqueue never blocks a handler. It reports false when the queue is full and the task is dropped.
func (w *MembershipSync) Enqueue(task domain.MembershipTask) bool {
	select {
	case w.tasks <- task:
		return true
	default:
		w.log.Error("Membership queue full, task dropped", "task", task.String())
		return false
	}
}

// Backlog reports the pending tasks and the queue capacity.
func (w *MembershipSync) Backlog() (int, int) {
	return len(w.tasks), cap(w.tasks)
}

func (w *MembershipSync) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping membership sync", "pending", len(w.tasks))
			return nil
		case task := <-w.tasks:
			w.apply(ctx, task)
		}
	}
}

func (w *MembershipSync) apply(ctx context.Context, task domain.MembershipTask) {
	var err error
	switch task.Op {
	case domain.JoinRoom:
		err = w.users.AddRoom(task.UserID, task.RoomID)
	case domain.LeaveRoom:
		err = w.users.RemoveRoom(task.UserID, task.RoomID)
	default:
		w.log.Warn("Unknown membership operation", "task", task.String())
		return
	}
	if err == nil {
		w.log.Debug("Membership task applied", "task", task.String(), "attempt", task.Attempt+1)
		return
	}

	task.Attempt++
	if task.Attempt >= w.maxAttempts {
		w.log.Error("Membership task abandoned", "task", task.String(), "attempts", task.Attempt, "error", err)
		return
	}
	w.log.Warn("Membership task failed, retrying", "task", task.String(), "attempt", task.Attempt, "error", err)
	time.AfterFunc(w.retryInterval, func() {
		if ctx.Err() == nil {
			w.Enqueue(task)
		}
	})
}
