package uploader

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// LocalUploader writes blobs below Root, the http server exposes Root under URLPrefix.
type LocalUploader struct {
	Root      string
	URLPrefix string
}

func NewLocal(root, urlPrefix string) (*LocalUploader, error) {
	root = lo.Ternary(len(root) > 0, root, "./uploads")
	urlPrefix = lo.Ternary(len(urlPrefix) > 0, urlPrefix, "/uploads")
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("unable to prepare upload directory: %w", err)
	}
	return &LocalUploader{Root: root, URLPrefix: urlPrefix}, nil
}

func (v *LocalUploader) Upload(ctx context.Context, file File, folder string) (string, error) {
	var ext string
	if mime := mimetype.Lookup(file.MimeType); mime != nil {
		ext = mime.Extension()
	}
	name := uuid.NewString() + ext

	dir := filepath.Join(v.Root, filepath.Clean("/"+folder))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("unable to prepare upload folder: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), file.Data, 0o644); err != nil {
		return "", fmt.Errorf("unable to write uploaded file: %w", err)
	}

	return strings.TrimRight(v.URLPrefix, "/") + path.Join("/", folder, name), nil
}
