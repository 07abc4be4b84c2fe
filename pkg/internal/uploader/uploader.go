package uploader

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/viper"
)

const (
	ProviderCloudinary = "cloudinary"
	ProviderLocal      = "local"
)

// File is an uploaded blob held in memory until it is handed to a provider.
type File struct {
	Name     string
	MimeType string
	Data     []byte
}

// Uploader stores a blob and returns the public https address it is reachable at.
type Uploader interface {
	Upload(ctx context.Context, file File, folder string) (string, error)
}

// NewFromSettings builds the uploader selected by uploads.provider.
func NewFromSettings() (Uploader, error) {
	switch provider := viper.GetString("uploads.provider"); provider {
	case ProviderCloudinary:
		return NewCloudinary(
			viper.GetString("cloudinary.cloud_name"),
			viper.GetString("cloudinary.api_key"),
			viper.GetString("cloudinary.api_secret"),
		)
	case ProviderLocal, "":
		return NewLocal(
			viper.GetString("uploads.local.path"),
			viper.GetString("uploads.local.url_prefix"),
		)
	default:
		return nil, fmt.Errorf("unsupported upload provider %q", provider)
	}
}

// DetectImage sniffs the content instead of trusting the client supplied type.
func DetectImage(data []byte) (string, bool) {
	mime := mimetype.Detect(data)
	return mime.String(), strings.HasPrefix(mime.String(), "image/")
}
