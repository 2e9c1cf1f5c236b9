package posts

import "context"

// Service defines the business logic interface for posts
// Coordinates between Repository and the media host
type Service interface {
	// ListPosts returns every post in insertion order
	ListPosts(ctx context.Context) ([]*Post, error)

	// GetPost returns a single post or ErrNotFound
	GetPost(ctx context.Context, id string) (*Post, error)

	// CreatePost validates and stores a new post
	// Flow: required fields -> unique title -> stamp date/time -> persist
	CreatePost(ctx context.Context, in PostInput) (*Post, error)

	// UpdatePost replaces every mutable field of an existing post
	UpdatePost(ctx context.Context, id string, in PostInput) (*Post, error)

	// DeletePost removes a post, then best-effort deletes its hosted image
	DeletePost(ctx context.Context, id string) error

	// DeleteAllPosts removes every post after settling all hosted image deletions.
	// Returns the number of posts removed.
	DeleteAllPosts(ctx context.Context) (int64, error)

	// DeletePostMedia deletes a post's hosted image, leaving the post in place.
	// Returns false when there was nothing to delete.
	DeletePostMedia(ctx context.Context, id string) (bool, error)
}

// Repository defines the data access interface for posts
type Repository interface {
	// List returns all posts ordered by insertion
	List(ctx context.Context) ([]*Post, error)

	// GetByID returns ErrNotFound for both unknown and malformed ids
	GetByID(ctx context.Context, id string) (*Post, error)

	// GetByTitle is a case-sensitive exact match
	GetByTitle(ctx context.Context, title string) (*Post, error)

	// Create assigns ID, CreatedAt and UpdatedAt on the passed post and returns it.
	// Fails with a ValidationError when required fields are missing or the
	// title is already taken.
	Create(ctx context.Context, post *Post) (*Post, error)

	// UpdateByID replaces the mutable fields and returns the updated record
	UpdateByID(ctx context.Context, id string, in PostInput) (*Post, error)

	// DeleteByID removes the post and returns it as it was before deletion
	DeleteByID(ctx context.Context, id string) (*Post, error)

	// DeleteAll removes every post and returns how many were removed
	DeleteAll(ctx context.Context) (int64, error)
}
