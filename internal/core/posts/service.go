package posts

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"Boardgames/internal/core/media"
)

// maxConcurrentMediaDeletes bounds the fan-out of bulk image deletion
const maxConcurrentMediaDeletes = 8

type postService struct {
	repo   Repository
	media  media.Service
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a post service
type Option func(*postService)

// WithClock overrides the wall clock used for submission stamps
func WithClock(now func() time.Time) Option {
	return func(s *postService) {
		s.now = now
	}
}

// WithLogger sets the logger; slog.Default() is used otherwise
func WithLogger(logger *slog.Logger) Option {
	return func(s *postService) {
		s.logger = logger
	}
}

// NewPostService creates a new post service
// mediaService can be nil when no media host is configured; posts with a
// publicId are then deleted without touching their image.
func NewPostService(repo Repository, mediaService media.Service, opts ...Option) Service {
	s := &postService{
		repo:   repo,
		media:  mediaService,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *postService) ListPosts(ctx context.Context) ([]*Post, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, NewUpstreamError("list posts", err)
	}
	return list, nil
}

func (s *postService) GetPost(ctx context.Context, id string) (*Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		return nil, NewUpstreamError("get post", err)
	}
	return post, nil
}

// CreatePost creates a new post
// Flow:
// 1. Reject missing required fields
// 2. Reject a title another post already uses
// 3. Stamp submission time and date from the clock
// 4. Persist (the store's unique index settles concurrent duplicates)
func (s *postService) CreatePost(ctx context.Context, in PostInput) (*Post, error) {
	if missing := in.MissingFields(); len(missing) > 0 {
		s.logger.Info("[POST-CREATE] rejected incomplete form",
			slog.String("missing", missingFieldsMessage(missing)))
		return nil, NewIncompleteFormError(missing)
	}

	existing, err := s.repo.GetByTitle(ctx, in.Title)
	switch {
	case err == nil && existing != nil:
		s.logger.Info("[POST-CREATE] rejected duplicate title", slog.String("title", in.Title))
		return nil, NewTitleExistsError()
	case err != nil && !IsNotFound(err):
		return nil, NewUpstreamError("check title", err)
	}

	post := NewPost(in, s.now())

	created, err := s.repo.Create(ctx, post)
	if err != nil {
		if IsValidationError(err) {
			return nil, err
		}
		return nil, NewUpstreamError("create post", err)
	}

	s.logger.Info("[POST-CREATE] post created",
		slog.String("id", created.ID),
		slog.String("title", created.Title))
	return created, nil
}

// UpdatePost replaces the post's mutable fields.
// Title uniqueness is only enforced at creation; the store's unique index
// still rejects a rename onto another post's title.
func (s *postService) UpdatePost(ctx context.Context, id string, in PostInput) (*Post, error) {
	if missing := in.MissingFields(); len(missing) > 0 {
		return nil, NewIncompleteFormError(missing)
	}

	updated, err := s.repo.UpdateByID(ctx, id, in)
	if err != nil {
		if IsNotFound(err) || IsValidationError(err) {
			return nil, err
		}
		return nil, NewUpstreamError("update post", err)
	}

	s.logger.Info("[POST-UPDATE] post updated", slog.String("id", id))
	return updated, nil
}

// DeletePost removes the post first; the hosted image is deleted afterwards
// and a failure there is logged, never returned.
func (s *postService) DeletePost(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return err
		}
		return NewUpstreamError("delete post", err)
	}

	if deleted.HasMedia() {
		s.destroyMedia(ctx, deleted)
	}

	s.logger.Info("[POST-DELETE] post deleted", slog.String("id", id))
	return nil
}

// DeleteAllPosts settles every hosted image deletion, concurrently, before
// clearing the store. Individual image failures do not abort the bulk delete.
func (s *postService) DeleteAllPosts(ctx context.Context) (int64, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return 0, NewUpstreamError("list posts", err)
	}

	var g errgroup.Group
	g.SetLimit(maxConcurrentMediaDeletes)
	for _, post := range all {
		if !post.HasMedia() {
			continue
		}
		g.Go(func() error {
			s.destroyMedia(ctx, post)
			return nil
		})
	}
	_ = g.Wait()

	count, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, NewUpstreamError("delete all posts", err)
	}

	s.logger.Info("[POST-DELETE] all posts deleted", slog.Int64("count", count))
	return count, nil
}

// DeletePostMedia deletes only the hosted image. A missing post or a post
// without a publicId means there is nothing to delete.
func (s *postService) DeletePostMedia(ctx context.Context, id string) (bool, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, NewUpstreamError("get post", err)
	}

	if !post.HasMedia() || s.media == nil {
		return false, nil
	}

	if err := s.media.Destroy(ctx, post.PublicID); err != nil {
		return false, NewUpstreamError("destroy media", err)
	}

	s.logger.Info("[MEDIA] image deleted",
		slog.String("post_id", post.ID),
		slog.String("public_id", post.PublicID))
	return true, nil
}

// destroyMedia is the best-effort half of post deletion
func (s *postService) destroyMedia(ctx context.Context, post *Post) {
	if s.media == nil {
		s.logger.Warn("[POST-DELETE] no media host configured, image left in place",
			slog.String("post_id", post.ID),
			slog.String("public_id", post.PublicID))
		return
	}

	if err := s.media.Destroy(ctx, post.PublicID); err != nil {
		s.logger.Error("[POST-DELETE] failed to delete image",
			slog.String("post_id", post.ID),
			slog.String("public_id", post.PublicID),
			slog.String("error", err.Error()))
	}
}
