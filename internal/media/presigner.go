// Package media issues pre-signed upload URLs for certificate assets
// stored in S3-compatible object storage.
package media

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/inovuslabs/certanchor/internal/config"
	"github.com/inovuslabs/certanchor/internal/platform"
)

// Presigner signs PUT URLs against the configured bucket. Clients upload
// the asset directly; the API never proxies the bytes.
type Presigner struct {
	presign *s3.PresignClient
	bucket  string
	expiry  time.Duration
}

func NewPresigner(cfg *config.Config) *Presigner {
	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(cfg.MediaEndpoint),
		Region:       cfg.MediaRegion,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.MediaAccessKey, cfg.MediaSecretKey, ""),
		UsePathStyle: true,
	})
	return &Presigner{
		presign: s3.NewPresignClient(client),
		bucket:  cfg.MediaBucket,
		expiry:  cfg.MediaURLExpiry,
	}
}

// UploadURL holds a signed PUT URL and the object key it writes to.
type UploadURL struct {
	URL       string    `json:"url"`
	ObjectKey string    `json:"object_key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PresignUpload returns a signed PUT URL for a new object. The object key
// is derived from a fresh ID so uploads can never overwrite each other.
func (p *Presigner) PresignUpload(ctx context.Context, fileName, contentType string) (*UploadURL, error) {
	key := objectKey(fileName)

	req, err := p.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(p.expiry))
	if err != nil {
		return nil, fmt.Errorf("presign upload for %s: %w", fileName, err)
	}

	return &UploadURL{
		URL:       req.URL,
		ObjectKey: key,
		ExpiresAt: time.Now().Add(p.expiry),
	}, nil
}

func objectKey(fileName string) string {
	base := strings.ToLower(path.Base(fileName))
	base = strings.ReplaceAll(base, " ", "_")
	return "certificates/" + platform.NewID() + "/" + base
}
