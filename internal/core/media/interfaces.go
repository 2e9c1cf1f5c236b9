// Package media stores and deletes post images on an external media host.
//
// Two hosts are provided:
//   - CloudinaryService: images live on Cloudinary, addressed by public id
//   - LocalService: images live in a directory served under /uploads
//
// GuardedService wraps either with a per-call timeout. Uploads additionally
// fail fast through a circuit breaker while the host is unavailable.
package media

import (
	"context"
	"io"
)

// Asset identifies a stored image
type Asset struct {
	// URL is what gets saved as a post's img: an absolute URL or a relative storage path
	URL string `json:"img"`
	// PublicID is the opaque handle used later to delete the image
	PublicID string `json:"publicId"`
}

// Service defines the operations the post site needs from a media host
type Service interface {
	// Upload stores the image and returns where it lives
	Upload(ctx context.Context, file io.Reader, filename string) (*Asset, error)

	// Destroy deletes a previously stored image.
	// Deleting an image the host no longer has is not an error.
	Destroy(ctx context.Context, publicID string) error
}
