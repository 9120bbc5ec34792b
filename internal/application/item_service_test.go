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

func newItemService() (*ItemService, *memRepo[entity.Item], *memRepo[entity.Favorite]) {
	items := newMemRepo[entity.Item]()
	favs := newMemRepo[entity.Favorite]()
	return NewItemService(items, favs, nil, "", nil), items, favs
}

func seedItem(t *testing.T, svc *ItemService, owner primitive.ObjectID, title string) *entity.Item {
	t.Helper()
	item, err := svc.Create(context.Background(), CreateItemInput{
		URLName:     "u-" + primitive.NewObjectID().Hex(),
		Title:       title,
		TopCategory: "books",
		Image:       entity.ItemImage{Filename: "f.jpg", Mimetype: "image/jpeg"},
	}, owner.Hex())
	require.NoError(t, err)
	return item
}

func TestItemListPaginationDefaults(t *testing.T) {
	svc, _, _ := newItemService()
	owner := primitive.NewObjectID()
	for i := 0; i < 15; i++ {
		seedItem(t, svc, owner, "item")
	}

	first, err := svc.List(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, first, 10, "missing pagination params fall back to a 10-item window")

	second, err := svc.List(context.Background(), "1", "10")
	require.NoError(t, err)
	assert.Len(t, second, 5)

	// Garbage pagination input behaves like the defaults.
	garbage, err := svc.List(context.Background(), "abc", "-4")
	require.NoError(t, err)
	assert.Len(t, garbage, 10)
}

func TestItemCreatePreservesFields(t *testing.T) {
	svc, _, _ := newItemService()
	owner := primitive.NewObjectID()

	created, err := svc.Create(context.Background(), CreateItemInput{
		URLName:       "vintage-lamp",
		Title:         "Vintage Lamp",
		Description:   "brass, 1960s",
		TopCategory:   "home",
		SubCategories: []string{"lighting", "vintage"},
		Image:         entity.ItemImage{Filename: "lamp.jpg", Mimetype: "image/jpeg"},
	}, owner.Hex())
	require.NoError(t, err)
	require.False(t, created.ID.IsZero())
	assert.Equal(t, owner, created.CreatedBy)

	got, err := svc.Get(context.Background(), created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "vintage-lamp", got.URLName)
	assert.Equal(t, "Vintage Lamp", got.Title)
	assert.Equal(t, "brass, 1960s", got.Description)
	assert.Equal(t, []string{"lighting", "vintage"}, got.SubCategories)
	assert.Equal(t, "lamp.jpg", got.Image.Filename)
	assert.Nil(t, got.DeletedAt)
}

func TestItemDeleteOwnership(t *testing.T) {
	svc, _, _ := newItemService()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	item := seedItem(t, svc, owner, "guarded")

	_, err := svc.Delete(context.Background(), item.ID.Hex(), stranger.Hex())
	require.ErrorIs(t, err, apperror.ErrForbidden)

	// The failed attempt must not have touched the record.
	got, err := svc.Get(context.Background(), item.ID.Hex())
	require.NoError(t, err)
	assert.False(t, got.Deleted())

	deleted, err := svc.Delete(context.Background(), item.ID.Hex(), owner.Hex())
	require.NoError(t, err)
	assert.True(t, deleted.Deleted())
	require.NotNil(t, deleted.DeletedBy)
	assert.Equal(t, owner, *deleted.DeletedBy)
}

func TestItemDeleteIsTerminal(t *testing.T) {
	svc, _, _ := newItemService()
	owner := primitive.NewObjectID()
	item := seedItem(t, svc, owner, "gone")

	_, err := svc.Delete(context.Background(), item.ID.Hex(), owner.Hex())
	require.NoError(t, err)

	// Deleted records present as missing everywhere.
	_, err = svc.Get(context.Background(), item.ID.Hex())
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = svc.Delete(context.Background(), item.ID.Hex(), owner.Hex())
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	list, err := svc.List(context.Background(), "", "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestItemDeleteMissing(t *testing.T) {
	svc, _, _ := newItemService()
	actor := primitive.NewObjectID()

	_, err := svc.Delete(context.Background(), primitive.NewObjectID().Hex(), actor.Hex())
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	// An unparseable id can never match a record.
	_, err = svc.Delete(context.Background(), "not-a-hex-id", actor.Hex())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestToggleFavorite(t *testing.T) {
	svc, _, favs := newItemService()
	owner := primitive.NewObjectID()
	fan := primitive.NewObjectID()
	item := seedItem(t, svc, owner, "likeable")

	on, err := svc.ToggleFavorite(context.Background(), item.ID.Hex(), fan.Hex())
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, 1, favs.count())

	off, err := svc.ToggleFavorite(context.Background(), item.ID.Hex(), fan.Hex())
	require.NoError(t, err)
	assert.False(t, off)
	assert.Equal(t, 0, favs.count())
}

func TestDeleteCleansFavorites(t *testing.T) {
	svc, _, favs := newItemService()
	owner := primitive.NewObjectID()
	item := seedItem(t, svc, owner, "popular")

	for i := 0; i < 3; i++ {
		fan := primitive.NewObjectID()
		_, err := svc.ToggleFavorite(context.Background(), item.ID.Hex(), fan.Hex())
		require.NoError(t, err)
	}
	require.Equal(t, 3, favs.count())

	_, err := svc.Delete(context.Background(), item.ID.Hex(), owner.Hex())
	require.NoError(t, err)
	assert.Equal(t, 0, favs.count(), "favorites of a deleted item are dropped")
}

func TestToggleFavoriteDeletedItem(t *testing.T) {
	svc, _, _ := newItemService()
	owner := primitive.NewObjectID()
	item := seedItem(t, svc, owner, "fleeting")

	_, err := svc.Delete(context.Background(), item.ID.Hex(), owner.Hex())
	require.NoError(t, err)

	_, err = svc.ToggleFavorite(context.Background(), item.ID.Hex(), owner.Hex())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
