package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// allowedExtensions are the image types accepted for local storage
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// LocalService stores post images on local disk. The stored file name
// doubles as the public id, and the relative URL is servable by the
// static /uploads mount.
type LocalService struct {
	dir       string
	urlPrefix string
}

// NewLocalService creates the upload directory if needed.
// urlPrefix is the relative path images are served under, e.g. "uploads".
func NewLocalService(dir, urlPrefix string) (*LocalService, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: upload directory", ErrNilDependency)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalService{dir: dir, urlPrefix: strings.Trim(urlPrefix, "/")}, nil
}

// Upload writes the image under a fresh random name
func (s *LocalService) Upload(ctx context.Context, file io.Reader, filename string) (*Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}

	name := uuid.NewString() + ext
	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create image file: %w", err)
	}

	if _, err := io.Copy(dst, file); err != nil {
		_ = dst.Close()
		_ = os.Remove(dst.Name())
		return nil, fmt.Errorf("failed to write image file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return nil, fmt.Errorf("failed to close image file: %w", err)
	}

	slog.Debug("[MEDIA] stored image locally", "filename", filename, "public_id", name)
	return &Asset{URL: path.Join(s.urlPrefix, name), PublicID: name}, nil
}

// Destroy removes the stored file
func (s *LocalService) Destroy(ctx context.Context, publicID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if publicID == "" || publicID != filepath.Base(publicID) || strings.HasPrefix(publicID, ".") {
		return ErrInvalidPublicID
	}

	err := os.Remove(filepath.Join(s.dir, publicID))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove image file: %w", err)
	}
	return nil
}
