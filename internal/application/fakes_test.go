package application

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pinshelf/pinshelf-api/internal/domain/repository"
)

// memRepo is an in-memory Repository[T] backed by bson documents, so the
// same filters and update documents the services send to Mongo drive the
// tests. It understands the operator subset the services actually use.
type memRepo[T any] struct {
	mu    sync.Mutex
	docs  []bson.M
	aggFn func(pipeline []bson.M) ([]bson.M, error)
}

func newMemRepo[T any]() *memRepo[T] { return &memRepo[T]{} }

func encodeDoc[T any](v *T) bson.M {
	b, err := bson.Marshal(v)
	if err != nil {
		panic(err)
	}
	var m bson.M
	if err := bson.Unmarshal(b, &m); err != nil {
		panic(err)
	}
	return m
}

func decodeDoc[T any](m bson.M) *T {
	b, err := bson.Marshal(m)
	if err != nil {
		panic(err)
	}
	var v T
	if err := bson.Unmarshal(b, &v); err != nil {
		panic(err)
	}
	return &v
}

func looseEq(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func matchDoc(doc bson.M, filter bson.M) bool {
	for key, want := range filter {
		if key == "$or" {
			var branches []bson.M
			switch v := want.(type) {
			case []bson.M:
				branches = v
			case bson.A:
				for _, e := range v {
					branches = append(branches, e.(bson.M))
				}
			}
			hit := false
			for _, br := range branches {
				if matchDoc(doc, br) {
					hit = true
					break
				}
			}
			if !hit {
				return false
			}
			continue
		}
		got, present := doc[key]
		if cond, ok := want.(bson.M); ok {
			for op, arg := range cond {
				switch op {
				case "$exists":
					if arg.(bool) != present {
						return false
					}
				case "$ne":
					if present && looseEq(got, arg) {
						return false
					}
				default:
					panic("memRepo: unsupported operator " + op)
				}
			}
			continue
		}
		if !present || !looseEq(got, want) {
			return false
		}
	}
	return true
}

func sortKey(v any) string {
	switch t := v.(type) {
	case primitive.DateTime:
		return fmt.Sprintf("%020d", int64(t))
	case int32:
		return fmt.Sprintf("%020d", t)
	case int64:
		return fmt.Sprintf("%020d", t)
	default:
		return fmt.Sprint(v)
	}
}

func sortDocs(docs []bson.M, spec bson.D) {
	if len(spec) == 0 {
		return
	}
	field, dir := spec[0].Key, int64(1)
	switch d := spec[0].Value.(type) {
	case int:
		dir = int64(d)
	case int32:
		dir = int64(d)
	case int64:
		dir = d
	}
	sort.SliceStable(docs, func(i, j int) bool {
		a, b := sortKey(docs[i][field]), sortKey(docs[j][field])
		if dir < 0 {
			return a > b
		}
		return a < b
	})
}

func applyUpdate(doc bson.M, update bson.M) {
	for op, raw := range update {
		fields, ok := raw.(bson.M)
		if !ok {
			panic("memRepo: update fields must be bson.M")
		}
		switch op {
		case "$set":
			for k, v := range fields {
				nv := encodeValue(v)
				doc[k] = nv
			}
		case "$currentDate":
			for k := range fields {
				doc[k] = primitive.NewDateTimeFromTime(time.Now().UTC())
			}
		case "$addToSet":
			for k, v := range fields {
				arr, _ := doc[k].(bson.A)
				found := false
				for _, e := range arr {
					if looseEq(e, v) {
						found = true
						break
					}
				}
				if !found {
					doc[k] = append(arr, v)
				}
			}
		case "$pull":
			for k, v := range fields {
				arr, _ := doc[k].(bson.A)
				out := bson.A{}
				for _, e := range arr {
					if !looseEq(e, v) {
						out = append(out, e)
					}
				}
				doc[k] = out
			}
		default:
			panic("memRepo: unsupported update operator " + op)
		}
	}
}

// encodeValue round-trips a single value through bson so stored documents
// look like they came out of the driver (time.Time as DateTime and so on).
func encodeValue(v any) any {
	b, err := bson.Marshal(bson.M{"v": v})
	if err != nil {
		return v
	}
	var m bson.M
	if err := bson.Unmarshal(b, &m); err != nil {
		return v
	}
	return m["v"]
}

func (r *memRepo[T]) Find(_ context.Context, filter bson.M, page repository.Page) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var hits []bson.M
	for _, d := range r.docs {
		if matchDoc(d, filter) {
			hits = append(hits, d)
		}
	}
	sortDocs(hits, page.Sort)
	skip := page.Skip()
	if skip > int64(len(hits)) {
		skip = int64(len(hits))
	}
	hits = hits[skip:]
	if page.Size > 0 && int64(len(hits)) > page.Size {
		hits = hits[:page.Size]
	}
	out := make([]T, 0, len(hits))
	for _, d := range hits {
		out = append(out, *decodeDoc[T](d))
	}
	return out, nil
}

func (r *memRepo[T]) FindOne(_ context.Context, id primitive.ObjectID) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.docs {
		if looseEq(d["_id"], id) {
			return decodeDoc[T](d), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memRepo[T]) FindOneBy(_ context.Context, filter bson.M, sortSpec bson.D) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var hits []bson.M
	for _, d := range r.docs {
		if matchDoc(d, filter) {
			hits = append(hits, d)
		}
	}
	if len(hits) == 0 {
		return nil, repository.ErrNotFound
	}
	sortDocs(hits, sortSpec)
	return decodeDoc[T](hits[0]), nil
}

func (r *memRepo[T]) Aggregate(_ context.Context, pipeline []bson.M) ([]bson.M, error) {
	if r.aggFn != nil {
		return r.aggFn(pipeline)
	}
	return nil, fmt.Errorf("memRepo: aggregate not wired")
}

func (r *memRepo[T]) Create(_ context.Context, doc *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = append(r.docs, encodeDoc(doc))
	return nil
}

func (r *memRepo[T]) Update(_ context.Context, id primitive.ObjectID, update bson.M) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.docs {
		if looseEq(d["_id"], id) {
			applyUpdate(d, update)
			return decodeDoc[T](d), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memRepo[T]) Delete(_ context.Context, id primitive.ObjectID) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, d := range r.docs {
		if looseEq(d["_id"], id) {
			r.docs = append(r.docs[:i], r.docs[i+1:]...)
			return decodeDoc[T](d), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memRepo[T]) DeleteMany(_ context.Context, filter bson.M) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed []T
	var kept []bson.M
	for _, d := range r.docs {
		if matchDoc(d, filter) {
			removed = append(removed, *decodeDoc[T](d))
		} else {
			kept = append(kept, d)
		}
	}
	r.docs = kept
	return removed, nil
}

func (r *memRepo[T]) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.docs)
}

// recordingPublisher captures published jobs instead of touching a broker.
type recordingPublisher struct {
	mu   sync.Mutex
	jobs []any
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobs = append(p.jobs, body)
	return nil
}

func (p *recordingPublisher) published() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.jobs)
}
