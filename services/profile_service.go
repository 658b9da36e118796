//go:generate go run go.uber.org/mock/mockgen -source=profile_service.go -destination=../mocks/mock_profile_service.go -package=mocks
package services

import (
	"chat-server/domain"
	"chat-server/errors"
	"chat-server/repositories"
	"context"
	"log/slog"
	"strings"
	"time"
)

type IProfileService interface {
	Get(ctx context.Context, userID string) (domain.Profile, error)
	Update(ctx context.Context, identity domain.Identity, patch domain.ProfilePatch) (domain.Profile, error)
	SetPresence(ctx context.Context, userID string, presence domain.Presence) error
}

type ProfileService struct {
	log   *slog.Logger
	users repositories.IUserRepository
	now   func() time.Time
}

func NewProfileService(log *slog.Logger, users repositories.IUserRepository) *ProfileService {
	return &ProfileService{
		log:   log,
		users: users,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *ProfileService) Get(_ context.Context, userID string) (domain.Profile, error) {
	user, err := s.users.GetUser(userID)
	if err != nil {
		return domain.Profile{}, err
	}
	return toProfile(user), nil
}

// Update merges the patch into the identity's profile, creating it when absent.
// Without a username the stored one is kept; a profile without one, including a profile
// only created by a presence change, falls back to the email prefix.
// The email always comes from the credential, never from the patch.
func (s *ProfileService) Update(_ context.Context, identity domain.Identity, patch domain.ProfilePatch) (domain.Profile, error) {
	username := strings.TrimSpace(patch.Username)
	if username == "" {
		user, err := s.users.GetUser(identity.ID)
		if err != nil && !errors.Is(err, errors.ErrUserNotFound) {
			return domain.Profile{}, err
		}
		if user.Username == "" {
			username = identity.DefaultUsername()
			if username == "" {
				return domain.Profile{}, errors.Validation("invalid or missing username")
			}
		}
	}

	user, err := s.users.MergeProfile(identity.ID, repositories.ProfileFields{
		Username:    username,
		Email:       identity.Email,
		Description: patch.Description,
	}, s.now())
	if err != nil {
		return domain.Profile{}, err
	}
	return toProfile(user), nil
}

func (s *ProfileService) SetPresence(_ context.Context, userID string, presence domain.Presence) error {
	if err := s.users.SetPresence(userID, string(presence), s.now()); err != nil {
		s.log.Warn("Presence not recorded", "user_id", userID, "status", presence, "error", err)
		return err
	}
	return nil
}
