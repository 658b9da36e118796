package domain

import "fmt"

type MembershipOp string

const (
	JoinRoom  MembershipOp = "add"
	LeaveRoom MembershipOp = "remove"
)

// MembershipTask is a pending update of one user's room list.
// Both operations are idempotent, so a task can be replayed safely.
type MembershipTask struct {
	UserID  string
	RoomID  RoomID
	Op      MembershipOp
	Attempt int
}

func (t MembershipTask) String() string {
	return fmt.Sprintf("%s room %s for user %s", t.Op, t.RoomID, t.UserID)
}
