package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pinshelf/pinshelf-api/internal/domain/entity"
	"github.com/pinshelf/pinshelf-api/pkg/apperror"
)

func seedUser(t *testing.T, users *memRepo[entity.User], username string) *entity.User {
	t.Helper()
	u := entity.NewUser(username, username+"@example.com", "hash")
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestUpdateProfilePartial(t *testing.T) {
	users := newMemRepo[entity.User]()
	svc := NewUserService(users, nil)
	u := seedUser(t, users, "ada")
	ctx := context.Background()

	updated, err := svc.UpdateProfile(ctx, u.HexID(), UpdateProfileInput{Bio: "mathematician", Phone: "555"})
	require.NoError(t, err)
	assert.Equal(t, "mathematician", updated.Bio)
	assert.Equal(t, "555", updated.Phone)
	assert.Equal(t, "ada", updated.Username, "untouched fields survive")

	// Empty input is a no-op that still returns the current profile.
	same, err := svc.UpdateProfile(ctx, u.HexID(), UpdateProfileInput{})
	require.NoError(t, err)
	assert.Equal(t, "mathematician", same.Bio)
}

func TestFollowBothSides(t *testing.T) {
	users := newMemRepo[entity.User]()
	svc := NewUserService(users, nil)
	a := seedUser(t, users, "ada")
	b := seedUser(t, users, "grace")
	ctx := context.Background()

	ok, err := svc.Follow(ctx, a.HexID(), b.HexID())
	require.NoError(t, err)
	assert.True(t, ok)

	gotA, err := svc.Profile(ctx, a.HexID())
	require.NoError(t, err)
	gotB, err := svc.Profile(ctx, b.HexID())
	require.NoError(t, err)
	assert.True(t, gotA.IsFollowing(b.ID))
	assert.Contains(t, gotB.Followers, a.ID)

	// Following twice does not duplicate the relation.
	_, err = svc.Follow(ctx, a.HexID(), b.HexID())
	require.NoError(t, err)
	gotA, _ = svc.Profile(ctx, a.HexID())
	assert.Len(t, gotA.Following, 1)

	ok, err = svc.Unfollow(ctx, a.HexID(), b.HexID())
	require.NoError(t, err)
	assert.True(t, ok)
	gotA, _ = svc.Profile(ctx, a.HexID())
	gotB, _ = svc.Profile(ctx, b.HexID())
	assert.False(t, gotA.IsFollowing(b.ID))
	assert.NotContains(t, gotB.Followers, a.ID)
}

func TestFollowSelf(t *testing.T) {
	users := newMemRepo[entity.User]()
	svc := NewUserService(users, nil)
	a := seedUser(t, users, "ada")

	_, err := svc.Follow(context.Background(), a.HexID(), a.HexID())
	assert.ErrorIs(t, err, apperror.ErrDeclined)
}

func TestFollowMissingTarget(t *testing.T) {
	users := newMemRepo[entity.User]()
	svc := NewUserService(users, nil)
	a := seedUser(t, users, "ada")

	_, err := svc.Follow(context.Background(), a.HexID(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestByUsername(t *testing.T) {
	users := newMemRepo[entity.User]()
	svc := NewUserService(users, nil)
	seedUser(t, users, "ada")

	got, err := svc.ByUsername(context.Background(), "ada")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", got.Email)

	_, err = svc.ByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
