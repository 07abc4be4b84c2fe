package uploader

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	cldup "github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog/log"
)

type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinary(cloudName, apiKey, apiSecret string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("unable to configure cloudinary: %w", err)
	}
	return &CloudinaryUploader{cld: cld}, nil
}

func (v *CloudinaryUploader) Upload(ctx context.Context, file File, folder string) (string, error) {
	payload := fmt.Sprintf("data:%s;base64,%s", file.MimeType, base64.StdEncoding.EncodeToString(file.Data))

	resp, err := v.cld.Upload.Upload(ctx, payload, cldup.UploadParams{Folder: folder})
	if err != nil {
		return "", fmt.Errorf("unable to upload to cloudinary: %w", err)
	} else if len(resp.Error.Message) > 0 {
		return "", fmt.Errorf("cloudinary rejected the upload: %s", resp.Error.Message)
	}

	log.Debug().Str("name", file.Name).Str("url", resp.SecureURL).Msg("Uploaded a file to cloudinary.")
	return resp.SecureURL, nil
}
