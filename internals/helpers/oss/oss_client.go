// file: internals/helpers/oss/oss_client.go
package helper

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"mime"
	"mime/multipart"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

// uploads are guarded to keep attachment blobs small
var maxUploadSize = int64(5 * 1024 * 1024)

type OSSService struct {
	bucket     *oss.Bucket
	bucketName string
	endpoint   string
	prefix     string // optional key prefix, e.g. "uploads/"
	publicBase string // override for CDN/custom domain; empty = bucket endpoint
}

// NewOSSServiceFromEnv builds a client from OSS_ENDPOINT, OSS_ACCESS_KEY_ID,
// OSS_ACCESS_KEY_SECRET, OSS_BUCKET and optional OSS_PUBLIC_BASE_URL.
func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	endpoint := getEnv("OSS_ENDPOINT")
	keyID := getEnv("OSS_ACCESS_KEY_ID")
	keySecret := getEnv("OSS_ACCESS_KEY_SECRET")
	bucketName := getEnv("OSS_BUCKET")
	if endpoint == "" || keyID == "" || keySecret == "" || bucketName == "" {
		return nil, fmt.Errorf("oss: incomplete configuration (endpoint/key/secret/bucket)")
	}

	client, err := oss.New(endpoint, keyID, keySecret)
	if err != nil {
		return nil, fmt.Errorf("oss: client init: %w", err)
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("oss: bucket %q: %w", bucketName, err)
	}

	return &OSSService{
		bucket:     bucket,
		bucketName: bucketName,
		endpoint:   endpoint,
		prefix:     strings.TrimPrefix(strings.TrimSpace(prefix), "/"),
		publicBase: strings.TrimRight(getEnv("OSS_PUBLIC_BASE_URL"), "/"),
	}, nil
}

// UploadFromFormFileToDir streams a multipart file into dir under the service
// prefix and returns the object key and detected content type. The file is
// stored as-is; attachments are not re-encoded.
func (s *OSSService) UploadFromFormFileToDir(ctx context.Context, dir string, fh *multipart.FileHeader) (string, string, error) {
	if fh == nil {
		return "", "", fmt.Errorf("oss: nil file header")
	}
	if fh.Size > maxUploadSize {
		return "", "", fmt.Errorf("oss: file exceeds %d bytes", maxUploadSize)
	}

	src, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("oss: open form file: %w", err)
	}
	defer src.Close()

	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = mime.TypeByExtension(filepath.Ext(fh.Filename))
	}
	if ct == "" {
		ct = "application/octet-stream"
	}

	key := s.buildKey(dir, fh.Filename)
	if err := s.bucket.PutObject(key, src, oss.ContentType(ct)); err != nil {
		return "", "", fmt.Errorf("oss: put %s: %w", key, err)
	}
	return key, ct, nil
}

func (s *OSSService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	key, err := s.KeyFromPublicURL(publicURL)
	if err != nil {
		return err
	}
	return s.bucket.DeleteObject(key)
}

// PublicURL returns the durable URL for an object key.
func (s *OSSService) PublicURL(key string) string {
	key = strings.TrimPrefix(key, "/")
	if s.publicBase != "" {
		return s.publicBase + "/" + key
	}
	return fmt.Sprintf("https://%s.%s/%s", s.bucketName, s.endpoint, key)
}

func (s *OSSService) KeyFromPublicURL(publicURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(publicURL))
	if err != nil || u.Path == "" {
		return "", fmt.Errorf("oss: invalid public URL %q", publicURL)
	}
	return strings.TrimPrefix(u.Path, "/"), nil
}

func (s *OSSService) buildKey(dir, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	name := randomHex(16) + ext
	dir = strings.Trim(strings.TrimSpace(dir), "/")
	return path.Join(s.prefix, dir, name)
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
