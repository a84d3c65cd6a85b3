package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"GuardTrack/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

var (
	ErrDisabled     = errors.New("media host is not configured")
	ErrNotAnImage   = errors.New("only jpeg, png, gif and webp images are accepted")
	ErrFileTooLarge = errors.New("file is too large")
)

// Store puts an object on the media host and returns its public URL.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

var (
	Default  Store
	MaxBytes int64 = 5 << 20
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type minioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

/*
* Build the minio client for the configured host, create the bucket on
* first use and install the store as Default
 */
func Connect(ctx context.Context, cfg config.Media) error {
	if !cfg.Enabled() {
		zap.L().Warn("media host not configured, avatar upload disabled")
		return nil
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("new minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return fmt.Errorf("check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("make bucket %q: %w", cfg.Bucket, err)
		}
		zap.L().Info("created media bucket", zap.String("bucket", cfg.Bucket))
	}

	publicURL := strings.TrimSuffix(cfg.PublicURL, "/")
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}
	Default = &minioStore{client: client, bucket: cfg.Bucket, publicURL: publicURL}
	if cfg.MaxBytes > 0 {
		MaxBytes = cfg.MaxBytes
	}
	return nil
}

func (s *minioStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	info, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object %q: %w", key, err)
	}
	zap.L().Info("uploaded to media host", zap.String("key", info.Key), zap.Int64("size", info.Size))
	return s.publicURL + "/" + key, nil
}

/*
* Validate the uploaded file is an image within the size limit and push it
* to the media host under avatars/YYYY/MM/
 */
func UploadAvatar(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if Default == nil {
		return "", ErrDisabled
	}
	if fh.Size > MaxBytes {
		return "", ErrFileTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	contentType, ext, err := DetectImage(head[:n])
	if err != nil {
		return "", err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	key := ObjectKey("avatars", fh.Filename, ext, time.Now().UTC())
	return Default.Put(ctx, key, f, fh.Size, contentType)
}

// DetectImage sniffs the content type from the first bytes of the file.
func DetectImage(head []byte) (contentType, ext string, err error) {
	contentType = http.DetectContentType(head)
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", "", ErrNotAnImage
	}
	return contentType, ext, nil
}

// ObjectKey builds prefix/YYYY/MM/<short uuid>-<clean name><ext>.
func ObjectKey(prefix, filename, ext string, now time.Time) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	name := sanitize(base)
	if name == "" {
		name = "file"
	}
	return path.Join(prefix,
		fmt.Sprintf("%04d", now.Year()),
		fmt.Sprintf("%02d", int(now.Month())),
		uuid.NewString()[:8]+"-"+name+ext)
}

func sanitize(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '.':
			b.WriteRune('-')
		}
	}
	out := b.String()
	if len(out) > 64 {
		out = out[:64]
	}
	return out
}
