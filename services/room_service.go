//go:generate go run go.uber.org/mock/mockgen -source=room_service.go -destination=../mocks/mock_room_service.go -package=mocks
package services

import (
	"chat-server/contract"
	"chat-server/domain"
	"chat-server/errors"
	"chat-server/repositories"
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

type IRoomService interface {
	CreateGroup(ctx context.Context, creatorID, name, description string, members []string) (domain.Room, error)
	CreateDirect(ctx context.Context, creatorID, recipientID string) (domain.Room, error)
	AddMember(ctx context.Context, roomID, memberID string) (domain.Room, error)
	RemoveMember(ctx context.Context, roomID, memberID string) (domain.Room, error)
	ListRoomsFor(ctx context.Context, userID string) ([]domain.RoomID, error)
	FetchMetadata(ctx context.Context, roomID string) (domain.Room, error)
	FetchMetadataBatch(ctx context.Context, roomIDs []string) []RoomLookup
}

// RoomLookup is the outcome of one lookup in a batch: either a room or the error of that room alone.
type RoomLookup struct {
	RoomID domain.RoomID
	Room   domain.Room
	Err    error
}

type RoomService struct {
	log         *slog.Logger
	rooms       repositories.IRoomRepository
	users       repositories.IUserRepository
	followUp    contract.FollowUpQueue
	concurrency int
	newID       func() string
	now         func() time.Time
}

func NewRoomService(
	log *slog.Logger,
	rooms repositories.IRoomRepository,
	users repositories.IUserRepository,
	followUp contract.FollowUpQueue,
	concurrency int,
) *RoomService {
	return &RoomService{
		log:         log,
		rooms:       rooms,
		users:       users,
		followUp:    followUp,
		concurrency: max(concurrency, 1),
		newID:       uuid.NewString,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// CreateGroup persists a group administrated by its creator, then records the room
// in the room list of every member.
func (s *RoomService) CreateGroup(ctx context.Context, creatorID, name, description string, members []string) (domain.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Room{}, errors.Validation("invalid or missing group name")
	}
	room := domain.NewGroupRoom(s.newID(), creatorID, name, description, members, s.now())
	if err := s.rooms.CreateRoom(fromRoom(room)); err != nil {
		return domain.Room{}, err
	}
	s.linkMembers(ctx, room.ID, room.Members, domain.JoinRoom)
	s.log.Debug("Group created", "room_id", room.ID, "user_id", creatorID, "members", len(room.Members))
	return room, nil
}

// CreateDirect always creates a new room, even if one already exists for the same pair.
func (s *RoomService) CreateDirect(ctx context.Context, creatorID, recipientID string) (domain.Room, error) {
	recipientID = strings.TrimSpace(recipientID)
	if recipientID == "" {
		return domain.Room{}, errors.Validation("invalid or missing recipient id")
	}
	room := domain.NewDirectRoom(s.newID(), creatorID, recipientID, s.now())
	if err := s.rooms.CreateRoom(fromRoom(room)); err != nil {
		return domain.Room{}, err
	}
	s.linkMembers(ctx, room.ID, room.Members, domain.JoinRoom)
	s.log.Debug("Direct chat created", "room_id", room.ID, "user_id", creatorID)
	return room, nil
}

func (s *RoomService) AddMember(ctx context.Context, roomID, memberID string) (domain.Room, error) {
	if roomID == "" || memberID == "" {
		return domain.Room{}, errors.Validation("group id and member id are required")
	}
	room, err := s.FetchMetadata(ctx, roomID)
	if err != nil {
		return domain.Room{}, err
	}
	if !room.IsGroup() {
		return domain.Room{}, errors.ErrNotAGroup
	}
	if room.HasMember(memberID) {
		return domain.Room{}, errors.ErrAlreadyMember
	}

	updated, changed, err := s.rooms.AddMember(roomID, memberID)
	if err != nil {
		return domain.Room{}, err
	}
	if !changed {
		// Another add of the same member won the race.
		return domain.Room{}, errors.ErrAlreadyMember
	}
	s.linkMembers(ctx, roomID, []string{memberID}, domain.JoinRoom)
	return toRoom(updated), nil
}

func (s *RoomService) RemoveMember(ctx context.Context, roomID, memberID string) (domain.Room, error) {
	if roomID == "" || memberID == "" {
		return domain.Room{}, errors.Validation("group id and member id are required")
	}
	room, err := s.FetchMetadata(ctx, roomID)
	if err != nil {
		return domain.Room{}, err
	}
	if !room.IsGroup() {
		return domain.Room{}, errors.ErrNotAGroup
	}
	if !room.HasMember(memberID) {
		return domain.Room{}, errors.ErrNotAMember
	}
	if room.Admin == memberID {
		return domain.Room{}, errors.ErrAdminRemoval
	}

	updated, changed, err := s.rooms.RemoveMember(roomID, memberID)
	if err != nil {
		return domain.Room{}, err
	}
	if !changed {
		return domain.Room{}, errors.ErrNotAMember
	}
	s.linkMembers(ctx, roomID, []string{memberID}, domain.LeaveRoom)
	return toRoom(updated), nil
}

// ListRoomsFor returns the room ids recorded on the user's profile.
// A user without a profile simply has no room yet.
func (s *RoomService) ListRoomsFor(_ context.Context, userID string) ([]domain.RoomID, error) {
	user, err := s.users.GetUser(userID)
	if errors.Is(err, errors.ErrUserNotFound) {
		return []domain.RoomID{}, nil
	}
	if err != nil {
		return nil, err
	}
	return lo.Ternary(user.Rooms == nil, []domain.RoomID{}, user.Rooms), nil
}

func (s *RoomService) FetchMetadata(ctx context.Context, roomID string) (domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return domain.Room{}, err
	}
	room, err := s.rooms.GetRoom(roomID)
	if err != nil {
		return domain.Room{}, err
	}
	return toRoom(room), nil
}

// FetchMetadataBatch looks every room up with a bounded number of concurrent lookups.
// The result keeps the order of roomIDs and a failing lookup never hides the others.
func (s *RoomService) FetchMetadataBatch(ctx context.Context, roomIDs []string) []RoomLookup {
	lookups := make([]RoomLookup, len(roomIDs))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, roomID := range roomIDs {
		g.Go(func() error {
			room, err := s.FetchMetadata(ctx, roomID)
			lookups[i] = RoomLookup{RoomID: roomID, Room: room, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return lookups
}

// linkMembers applies the room list side of a membership change.
// The room record is already written at this point: a failing update is handed to the
// follow-up queue instead of being rolled back.
func (s *RoomService) linkMembers(_ context.Context, roomID string, members []string, op domain.MembershipOp) {
	for _, member := range members {
		var err error
		switch op {
		case domain.JoinRoom:
			err = s.users.AddRoom(member, roomID)
		case domain.LeaveRoom:
			err = s.users.RemoveRoom(member, roomID)
		}
		if err == nil {
			continue
		}
		task := domain.MembershipTask{UserID: member, RoomID: roomID, Op: op}
		s.log.Warn("Room list update failed, scheduling follow-up", "task", task.String(), "error", err)
		if s.followUp == nil || !s.followUp.Enqueue(task) {
			s.log.Error("Room list update lost", "task", task.String())
		}
	}
}
