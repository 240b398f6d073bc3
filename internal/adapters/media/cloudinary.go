package media

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"devevent/internal/domain"
)

// UploaderConfig holds configuration for creating a media uploader.
type UploaderConfig struct {
	Provider  string
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// NewUploader creates a media uploader from config. Provider "cloudinary"
// uploads to Cloudinary; "noop" or unknown uses a no-op uploader that
// returns a placeholder URL, for development without credentials.
func NewUploader(config UploaderConfig) (domain.MediaUploader, error) {
	switch config.Provider {
	case "cloudinary":
		cld, err := cloudinary.NewFromParams(config.CloudName, config.APIKey, config.APISecret)
		if err != nil {
			return nil, fmt.Errorf("init cloudinary: %w", err)
		}
		return &cloudinaryUploader{cld: cld, folder: config.Folder}, nil
	case "noop":
		return &noopUploader{}, nil
	default:
		log.Printf("[MEDIA] Unknown media provider %q, using noop", config.Provider)
		return &noopUploader{}, nil
	}
}

type cloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func (u *cloudinaryUploader) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	params := uploader.UploadParams{
		PublicID:     uuid.NewString(),
		Folder:       u.folder,
		ResourceType: "image",
	}
	res, err := u.cld.Upload.Upload(ctx, bytes.NewReader(data), params)
	if err != nil {
		return "", fmt.Errorf("upload %q to cloudinary: %w", filename, err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("upload %q to cloudinary: %s", filename, res.Error.Message)
	}
	log.Printf("[MEDIA] Uploaded %q as %s", filename, res.PublicID)
	return res.SecureURL, nil
}

type noopUploader struct{}

func (n *noopUploader) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	url := fmt.Sprintf("https://media.example.invalid/%s/%s", uuid.NewString(), filename)
	log.Printf("[MEDIA] Image would be uploaded (noop), returning %s", url)
	return url, nil
}
