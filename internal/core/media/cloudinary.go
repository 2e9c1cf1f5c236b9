package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Destroy results reported by Cloudinary
const (
	destroyResultOK       = "ok"
	destroyResultNotFound = "not found"
)

// assetAPI is the subset of the Cloudinary upload API used here.
// *uploader.API satisfies it.
type assetAPI interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// CloudinaryService stores post images on Cloudinary
type CloudinaryService struct {
	api    assetAPI
	folder string
}

// NewCloudinaryService creates a Cloudinary-backed media service.
// folder is optional; uploads land in the account root when empty.
func NewCloudinaryService(cloudName, apiKey, apiSecret, folder string) (*CloudinaryService, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, ErrMissingCredentials
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}

	return newCloudinaryService(&cld.Upload, folder)
}

func newCloudinaryService(api assetAPI, folder string) (*CloudinaryService, error) {
	if api == nil {
		return nil, fmt.Errorf("%w: cloudinary upload api", ErrNilDependency)
	}
	return &CloudinaryService{api: api, folder: folder}, nil
}

// Upload sends the image to Cloudinary and returns its secure URL and public id
func (s *CloudinaryService) Upload(ctx context.Context, file io.Reader, filename string) (*Asset, error) {
	res, err := s.api.Upload(ctx, file, uploader.UploadParams{
		Folder: s.folder,
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload %q: %w", filename, err)
	}
	if res.Error.Message != "" {
		return nil, &HostError{Op: "upload", Message: res.Error.Message}
	}

	url := res.SecureURL
	if url == "" {
		url = res.URL
	}

	slog.Debug("[MEDIA] uploaded image to cloudinary",
		"filename", filename,
		"public_id", res.PublicID,
	)
	return &Asset{URL: url, PublicID: res.PublicID}, nil
}

// Destroy deletes the image from Cloudinary. An asset Cloudinary reports
// as already gone counts as deleted.
func (s *CloudinaryService) Destroy(ctx context.Context, publicID string) error {
	if strings.TrimSpace(publicID) == "" {
		return ErrInvalidPublicID
	}

	res, err := s.api.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy %q: %w", publicID, err)
	}
	if res.Error.Message != "" {
		return &HostError{Op: "destroy", Message: res.Error.Message}
	}

	switch res.Result {
	case destroyResultOK:
		return nil
	case destroyResultNotFound:
		slog.Debug("[MEDIA] cloudinary asset already gone", "public_id", publicID)
		return nil
	default:
		return &HostError{Op: "destroy", Message: res.Result}
	}
}
