package media

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAssetAPI is a mock implementation of the Cloudinary upload API
type MockAssetAPI struct {
	mock.Mock
}

func (m *MockAssetAPI) Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	args := m.Called(ctx, file, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*uploader.UploadResult), args.Error(1)
}

func (m *MockAssetAPI) Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*uploader.DestroyResult), args.Error(1)
}

func TestNewCloudinaryService_MissingCredentials(t *testing.T) {
	_, err := NewCloudinaryService("demo", "", "secret", "")
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestCloudinaryService_Upload(t *testing.T) {
	mockAPI := new(MockAssetAPI)
	svc, err := newCloudinaryService(mockAPI, "boardgames")
	require.NoError(t, err)

	mockAPI.On("Upload", mock.Anything, mock.Anything, uploader.UploadParams{Folder: "boardgames"}).
		Return(&uploader.UploadResult{
			PublicID:  "boardgames/catan",
			SecureURL: "https://res.cloudinary.com/demo/image/upload/boardgames/catan.jpg",
		}, nil)

	asset, err := svc.Upload(context.Background(), strings.NewReader("img"), "catan.jpg")
	require.NoError(t, err)
	assert.Equal(t, "boardgames/catan", asset.PublicID)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/boardgames/catan.jpg", asset.URL)
	mockAPI.AssertExpectations(t)
}

func TestCloudinaryService_UploadHostError(t *testing.T) {
	mockAPI := new(MockAssetAPI)
	svc, err := newCloudinaryService(mockAPI, "")
	require.NoError(t, err)

	mockAPI.On("Upload", mock.Anything, mock.Anything, mock.Anything).
		Return(&uploader.UploadResult{Error: api.ErrorResp{Message: "Invalid image file"}}, nil)

	_, err = svc.Upload(context.Background(), strings.NewReader("nope"), "x.png")
	var hostErr *HostError
	require.ErrorAs(t, err, &hostErr)
	assert.Equal(t, "upload", hostErr.Op)
}

func TestCloudinaryService_Destroy(t *testing.T) {
	tests := []struct {
		name    string
		result  *uploader.DestroyResult
		callErr error
		wantErr bool
	}{
		{name: "deleted", result: &uploader.DestroyResult{Result: "ok"}},
		{name: "already gone", result: &uploader.DestroyResult{Result: "not found"}},
		{name: "unexpected result", result: &uploader.DestroyResult{Result: "error"}, wantErr: true},
		{name: "host error", result: &uploader.DestroyResult{Error: api.ErrorResp{Message: "bad"}}, wantErr: true},
		{name: "transport failure", callErr: errors.New("connection reset"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAPI := new(MockAssetAPI)
			svc, err := newCloudinaryService(mockAPI, "")
			require.NoError(t, err)

			if tt.callErr != nil {
				mockAPI.On("Destroy", mock.Anything, uploader.DestroyParams{PublicID: "abc"}).Return(nil, tt.callErr)
			} else {
				mockAPI.On("Destroy", mock.Anything, uploader.DestroyParams{PublicID: "abc"}).Return(tt.result, nil)
			}

			err = svc.Destroy(context.Background(), "abc")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			mockAPI.AssertExpectations(t)
		})
	}
}

func TestCloudinaryService_DestroyEmptyID(t *testing.T) {
	mockAPI := new(MockAssetAPI)
	svc, err := newCloudinaryService(mockAPI, "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Destroy(context.Background(), "  "), ErrInvalidPublicID)
	mockAPI.AssertNotCalled(t, "Destroy", mock.Anything, mock.Anything)
}
