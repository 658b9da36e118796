// Package errors defines the error taxonomy shared by every layer of the chat server.
// Each sentinel carries a Kind so the transport can classify any wrapped failure
// without knowing which component produced it.
package errors

import (
	stderrors "errors"
	"fmt"
)

type Kind string

const (
	KindValidation   Kind = "VALIDATION"
	KindAuth         Kind = "AUTH"
	KindNotFound     Kind = "NOT_FOUND"
	KindConflict     Kind = "CONFLICT"
	KindCollaborator Kind = "COLLABORATOR"
	KindInternal     Kind = "INTERNAL"
)

// Sentinel is a comparable error value tagged with its Kind.
type Sentinel struct {
	kind Kind
	msg  string
}

func (s *Sentinel) Error() string { return s.msg }

func (s *Sentinel) Kind() Kind { return s.kind }

func newSentinel(kind Kind, msg string) *Sentinel {
	return &Sentinel{kind: kind, msg: msg}
}

var (
	ErrValidation = newSentinel(KindValidation, "validation failed")

	ErrMissingCredential = newSentinel(KindAuth, "authentication token is required")
	ErrInvalidCredential = newSentinel(KindAuth, "invalid token")
	ErrExpiredCredential = newSentinel(KindAuth, "token has expired")
	ErrUnauthenticated   = newSentinel(KindAuth, "connection is not authenticated")

	ErrRoomNotFound = newSentinel(KindNotFound, "room not found")
	ErrUserNotFound = newSentinel(KindNotFound, "user not found")

	ErrAlreadyMember = newSentinel(KindConflict, "member already in group")
	ErrNotAMember    = newSentinel(KindConflict, "not a member of the room")
	ErrNotAGroup     = newSentinel(KindConflict, "room is not a group")
	ErrAdminRemoval  = newSentinel(KindConflict, "the group admin cannot be removed")

	ErrStore            = newSentinel(KindCollaborator, "record store failure")
	ErrIdentityProvider = newSentinel(KindCollaborator, "identity provider failure")

	ErrWorkerPanic  = newSentinel(KindInternal, "worker panic")
	ErrHandlerPanic = newSentinel(KindInternal, "handler panic")
	ErrEmptyWords   = newSentinel(KindInternal, "no words have been found")
)

// Validation builds a validation failure with a human readable reason.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Store wraps a record store failure, keeping the cause text.
func Store(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStore, op, err)
}

// KindOf returns the Kind of the first Sentinel found in err's chain.
// Errors outside the taxonomy are INTERNAL.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var s *Sentinel
	if stderrors.As(err, &s) {
		return s.kind
	}
	return KindInternal
}

func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target any) bool { return stderrors.As(err, target) }

func Join(errs ...error) error { return stderrors.Join(errs...) }

func New(text string) error { return stderrors.New(text) }
