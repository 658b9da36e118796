package services_test

import (
	"chat-server/domain"
	"chat-server/errors"
	"chat-server/services"
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestProfileService_Get_Unknown(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	_, err := services.NewProfileService(f.log, f.users).Get(context.Background(), "ghost")

	req.ErrorIs(err, errors.ErrUserNotFound)
}

func TestProfileService_Update_Creates_With_Email_Prefix(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	svc := services.NewProfileService(f.log, f.users)
	identity := domain.Identity{ID: "u-1", Email: "alice@example.com"}

	profile, err := svc.Update(context.Background(), identity, domain.ProfilePatch{})

	req.NoError(err)
	req.Equal("alice", profile.Username)
	req.Equal("alice@example.com", profile.Email)
	req.Equal(domain.Offline, profile.Status)
	req.Empty(profile.Description)
	req.NotNil(profile.Friends)
}

func TestProfileService_Update_After_Presence_Falls_Back_To_Email_Prefix(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	svc := services.NewProfileService(f.log, f.users)
	ctx := context.Background()
	identity := domain.Identity{ID: "u-1", Email: "alice@example.com"}

	// Given a profile created by the connection going online
	req.NoError(svc.SetPresence(ctx, identity.ID, domain.Online))

	// When the first update carries no username
	profile, err := svc.Update(ctx, identity, domain.ProfilePatch{})

	// Then the email prefix is used and the presence is kept
	req.NoError(err)
	req.Equal("alice", profile.Username)
	req.Equal("alice@example.com", profile.Email)
	req.Equal(domain.Online, profile.Status)
}

func TestProfileService_Update_Keeps_Stored_Fields(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	svc := services.NewProfileService(f.log, f.users)
	ctx := context.Background()
	identity := domain.Identity{ID: "u-1", Email: "alice@example.com"}

	// Given a profile with a chosen username and a description
	_, err := svc.Update(ctx, identity, domain.ProfilePatch{Username: "ally", Description: lo.ToPtr("hello")})
	req.NoError(err)

	// When only the description changes
	profile, err := svc.Update(ctx, identity, domain.ProfilePatch{Description: lo.ToPtr("bye")})

	// Then the username is kept
	req.NoError(err)
	req.Equal("ally", profile.Username)
	req.Equal("bye", profile.Description)

	// And an update without description keeps it
	profile, err = svc.Update(ctx, identity, domain.ProfilePatch{Username: "al"})
	req.NoError(err)
	req.Equal("al", profile.Username)
	req.Equal("bye", profile.Description)
}

func TestProfileService_Update_Without_Any_Username(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	_, err := services.NewProfileService(f.log, f.users).Update(context.Background(), domain.Identity{ID: "u-1"}, domain.ProfilePatch{})

	req.ErrorIs(err, errors.ErrValidation)
}

func TestProfileService_SetPresence(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	svc := services.NewProfileService(f.log, f.users)
	ctx := context.Background()

	req.NoError(svc.SetPresence(ctx, "u-1", domain.Online))
	profile, err := svc.Get(ctx, "u-1")
	req.NoError(err)
	req.Equal(domain.Online, profile.Status)

	req.NoError(svc.SetPresence(ctx, "u-1", domain.Offline))
	profile, err = svc.Get(ctx, "u-1")
	req.NoError(err)
	req.Equal(domain.Offline, profile.Status)
}
