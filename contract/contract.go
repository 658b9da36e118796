//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-server/domain"
	"chat-server/domain/event"
	"context"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink is the write side of one connection.
// Consume must be a no-op once the connection is gone.
type EventSink interface {
	Consume(ctx context.Context, e event.Outbound) error
}

// Session pairs an identity with its active connection.
type Session struct {
	UserID string
	ConnID string
	Sink   EventSink
}

type IRegistry interface {
	Register(userID, connID string, sink EventSink) (Session, bool)
	Unregister(connID string) (string, bool)
	Lookup(userID string) (Session, bool)
}

// IdentityVerifier validates a bearer credential and returns the identity it was issued for.
// Failures are classified as expired, invalid or identity provider errors.
type IdentityVerifier interface {
	Verify(ctx context.Context, credential string) (domain.Identity, error)
}

// FollowUpQueue accepts room list updates that failed and must be retried later.
type FollowUpQueue interface {
	Enqueue(task domain.MembershipTask) bool
}
