// Package storage uploads service images to the deployment's image host.
//
// Exactly one driver is active per deployment:
//   - "local"      files under a directory served at /uploads
//   - "s3"         an S3-compatible bucket (AWS S3, MinIO, R2)
//   - "cloudinary" the Cloudinary upload API
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DriverLocal      = "local"
	DriverS3         = "s3"
	DriverCloudinary = "cloudinary"
)

// ImageStore stores an uploaded image and returns its public URL.
// Delete removes an image by the URL Upload returned; a missing image is not an error.
type ImageStore interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
	Driver() string
}

// objectName builds a collision-free object key that keeps the original extension.
func objectName(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%s-%s%s", time.Now().Format("20060102150405"), uuid.NewString(), ext)
}
