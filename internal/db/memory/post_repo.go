// Package memory provides an in-process post store for local development
// and tests. Contents are lost on restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"Boardgames/internal/core/posts"
)

type memoryPostRepo struct {
	byID    map[string]*posts.Post
	byTitle map[string]string
	now     func() time.Time
	order   []string
	mu      sync.RWMutex
}

// NewPostRepository creates an empty in-memory post repository
func NewPostRepository() posts.Repository {
	return &memoryPostRepo{
		byID:    make(map[string]*posts.Post),
		byTitle: make(map[string]string),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *memoryPostRepo) List(ctx context.Context) ([]*posts.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*posts.Post, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, clonePost(r.byID[id]))
	}
	return result, nil
}

func (r *memoryPostRepo) GetByID(ctx context.Context, id string) (*posts.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, posts.NewNotFoundError("post", id)
	}
	return clonePost(p), nil
}

func (r *memoryPostRepo) GetByTitle(ctx context.Context, title string) (*posts.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byTitle[title]
	if !ok {
		return nil, posts.ErrNotFound
	}
	return clonePost(r.byID[id]), nil
}

// Create enforces the same title uniqueness the Mongo unique index does
func (r *memoryPostRepo) Create(ctx context.Context, post *posts.Post) (*posts.Post, error) {
	if missing := post.MissingFields(); len(missing) > 0 {
		return nil, posts.NewIncompleteFormError(missing)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byTitle[post.Title]; taken {
		return nil, posts.NewTitleExistsError()
	}

	now := r.now()
	post.ID = uuid.NewString()
	post.CreatedAt = now
	post.UpdatedAt = now

	r.byID[post.ID] = clonePost(post)
	r.byTitle[post.Title] = post.ID
	r.order = append(r.order, post.ID)
	return clonePost(post), nil
}

func (r *memoryPostRepo) UpdateByID(ctx context.Context, id string, in posts.PostInput) (*posts.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[id]
	if !ok {
		return nil, posts.NewNotFoundError("post", id)
	}
	if owner, taken := r.byTitle[in.Title]; taken && owner != id {
		return nil, posts.NewTitleExistsError()
	}

	delete(r.byTitle, existing.Title)
	in.ApplyTo(existing)
	existing.UpdatedAt = r.now()
	r.byTitle[existing.Title] = id

	return clonePost(existing), nil
}

func (r *memoryPostRepo) DeleteByID(ctx context.Context, id string) (*posts.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[id]
	if !ok {
		return nil, posts.NewNotFoundError("post", id)
	}

	delete(r.byID, id)
	delete(r.byTitle, existing.Title)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return existing, nil
}

func (r *memoryPostRepo) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := int64(len(r.order))
	r.byID = make(map[string]*posts.Post)
	r.byTitle = make(map[string]string)
	r.order = nil
	return count, nil
}

func clonePost(p *posts.Post) *posts.Post {
	c := *p
	return &c
}
