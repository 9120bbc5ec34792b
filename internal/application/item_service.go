package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pinshelf/pinshelf-api/internal/domain/entity"
	"github.com/pinshelf/pinshelf-api/internal/domain/repository"
	"github.com/pinshelf/pinshelf-api/pkg/apperror"
)

// ItemService owns the item family: catalog listing, creation, soft
// deletion with ownership enforcement, favorites, and the text-search index.
type ItemService struct {
	Items        repository.ItemRepository
	Favorites    repository.FavoriteRepository
	ES           *elasticsearch.Client
	ESItemsIndex string
	Logger       *logrus.Logger
}

func NewItemService(items repository.ItemRepository, favorites repository.FavoriteRepository, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *ItemService {
	return &ItemService{Items: items, Favorites: favorites, ES: es, ESItemsIndex: esIndex, Logger: logger}
}

type CreateItemInput struct {
	URLName       string
	Title         string
	Description   string
	TopCategory   string
	SubCategories []string
	Image         entity.ItemImage
}

func notDeleted() bson.M {
	return bson.M{"deletedAt": bson.M{"$exists": false}}
}

// List returns one catalog page. Pagination strings default to 0/10.
func (s *ItemService) List(ctx context.Context, pageIndex, pageSize string) ([]entity.Item, error) {
	page := pageFrom(pageIndex, pageSize)
	page.Sort = bson.D{{Key: "createdAt", Value: -1}}
	return s.Items.Find(ctx, notDeleted(), page)
}

func (s *ItemService) Get(ctx context.Context, idHex string) (*entity.Item, error) {
	id, err := parseID(idHex, "item")
	if err != nil {
		return nil, err
	}
	item, err := s.Items.FindOne(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("item", idHex)
	}
	if err != nil {
		return nil, err
	}
	if item.Deleted() {
		return nil, apperror.NotFound("item", idHex)
	}
	return item, nil
}

func (s *ItemService) Create(ctx context.Context, in CreateItemInput, actorHex string) (*entity.Item, error) {
	actor, err := parseActorID(actorHex)
	if err != nil {
		return nil, err
	}
	item := &entity.Item{
		URLName:       in.URLName,
		Title:         in.Title,
		Description:   in.Description,
		TopCategory:   in.TopCategory,
		SubCategories: in.SubCategories,
		Image:         in.Image,
	}
	item.Stamp(actor)
	if err := s.Items.Create(ctx, item); err != nil {
		return nil, err
	}
	s.indexItem(ctx, item)
	return item, nil
}

// Delete performs the soft state transition. Ownership is checked before
// anything is touched; a mismatched actor cannot delete someone else's item.
func (s *ItemService) Delete(ctx context.Context, idHex, actorHex string) (*entity.Item, error) {
	actor, err := parseActorID(actorHex)
	if err != nil {
		return nil, err
	}
	id, err := parseID(idHex, "item")
	if err != nil {
		return nil, err
	}
	item, err := s.Items.FindOne(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("item", idHex)
	}
	if err != nil {
		return nil, err
	}
	if item.Deleted() {
		// Second delete of the same id behaves like a missing record.
		return nil, apperror.NotFound("item", idHex)
	}
	if !item.OwnedBy(actor) {
		return nil, apperror.Forbidden("only the creator may delete an item")
	}

	item.MarkDeleted(actor)
	updated, err := s.Items.Update(ctx, id, bson.M{"$set": bson.M{
		"deletedAt": item.DeletedAt,
		"deletedBy": item.DeletedBy,
	}})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("item", idHex)
	}
	if err != nil {
		return nil, err
	}

	// Favorites referencing a deleted item are garbage; drop them.
	if _, err := s.Favorites.DeleteMany(ctx, bson.M{"itemId": id}); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("item_id", idHex).Warn("favorite cleanup failed")
	}
	s.deindexItem(ctx, id)
	return updated, nil
}

// ToggleFavorite flips the (user, item) favorite mark and reports the new state.
func (s *ItemService) ToggleFavorite(ctx context.Context, idHex, actorHex string) (bool, error) {
	actor, err := parseActorID(actorHex)
	if err != nil {
		return false, err
	}
	id, err := parseID(idHex, "item")
	if err != nil {
		return false, err
	}
	item, err := s.Items.FindOne(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return false, apperror.NotFound("item", idHex)
	}
	if err != nil {
		return false, err
	}
	if item.Deleted() {
		return false, apperror.NotFound("item", idHex)
	}

	existing, err := s.Favorites.FindOneBy(ctx, bson.M{"userId": actor, "itemId": id}, nil)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	if existing != nil {
		if _, err := s.Favorites.Delete(ctx, existing.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return false, err
		}
		return false, nil
	}
	if err := s.Favorites.Create(ctx, entity.NewFavorite(actor, id)); err != nil {
		return false, err
	}
	return true, nil
}

// ListWithFavorites returns a catalog page annotated with a per-caller
// favorite flag, computed in one aggregation pass.
func (s *ItemService) ListWithFavorites(ctx context.Context, actorHex, pageIndex, pageSize string) ([]bson.M, error) {
	actor, err := parseActorID(actorHex)
	if err != nil {
		return nil, err
	}
	page := pageFrom(pageIndex, pageSize)
	pipeline := []bson.M{
		{"$match": notDeleted()},
		{"$sort": bson.M{"createdAt": -1}},
		{"$skip": page.Skip()},
		{"$limit": page.Size},
		{"$lookup": bson.M{
			"from": "favorites",
			"let":  bson.M{"itemId": "$_id"},
			"pipeline": []bson.M{
				{"$match": bson.M{"$expr": bson.M{"$and": []bson.M{
					{"$eq": []any{"$itemId", "$$itemId"}},
					{"$eq": []any{"$userId", actor}},
				}}}},
			},
			"as": "favs",
		}},
		{"$addFields": bson.M{"favorite": bson.M{"$gt": []any{bson.M{"$size": "$favs"}, 0}}}},
		{"$project": bson.M{"favs": 0}},
	}
	return s.Items.Aggregate(ctx, pipeline)
}

// Search runs a text query against the item index.
func (s *ItemService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESItemsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description", "topCategory"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESItemsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

// indexItem is best-effort: the catalog never fails a write because the
// search index is down.
func (s *ItemService) indexItem(ctx context.Context, item *entity.Item) {
	if s.ES == nil || s.ESItemsIndex == "" {
		return
	}
	doc := map[string]any{
		"urlName":     item.URLName,
		"title":       item.Title,
		"description": item.Description,
		"topCategory": item.TopCategory,
		"createdBy":   item.CreatedBy.Hex(),
		"createdAt":   item.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESItemsIndex, DocumentID: item.ID.Hex(), Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("item_id", item.ID.Hex()).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("item_id", item.ID.Hex()).Warn("es index response error")
	}
}

func (s *ItemService) deindexItem(ctx context.Context, id primitive.ObjectID) {
	if s.ES == nil || s.ESItemsIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESItemsIndex, DocumentID: id.Hex()}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("item_id", id.Hex()).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}
