package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Minio implements Store against a MinIO (or any S3-compatible) backend.
// Files are keyed "{xSystem}/{filename}", mirroring the local layout, so
// switching backends does not change the drop tree's shape.
type Minio struct {
	client *minio.Client
	bucket string
}

// NewMinio creates a MinIO client, ensures the bucket exists, and returns
// a ready-to-use store.
func NewMinio(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*Minio, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx := context.Background()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", bucket, err)
		}
		slog.Info("storage: created bucket", "bucket", bucket)
	}

	return &Minio{client: client, bucket: bucket}, nil
}

// Put uploads content under "{xSystem}/{filename}". S3 object replacement
// is atomic on the key, so no staging step is needed here.
func (s *Minio) Put(ctx context.Context, xSystem, filename string, content []byte) error {
	key := xSystem + "/" + filename
	contentType := mime.TypeByExtension(path.Ext(filename))
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(content),
		int64(len(content)), minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("put object %q: %w", key, err)
	}
	return nil
}

// Get downloads the object at "{xSystem}/{filename}".
func (s *Minio) Get(ctx context.Context, xSystem, filename string) ([]byte, error) {
	key := xSystem + "/" + filename
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %q: %w", key, err)
	}
	defer obj.Close()

	content, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read object %q: %w", key, err)
	}
	return content, nil
}

// ListXSystems enumerates the top-level prefixes of the bucket.
func (s *Minio) ListXSystems(ctx context.Context) ([]string, error) {
	var xSystems []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list bucket: %w", obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			xSystems = append(xSystems, strings.TrimSuffix(obj.Key, "/"))
		}
	}
	return xSystems, nil
}

// ListEntityTypes enumerates object names directly under one x-system prefix.
func (s *Minio) ListEntityTypes(ctx context.Context, xSystem string) ([]string, error) {
	prefix := xSystem + "/"
	var filenames []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list prefix %q: %w", prefix, obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, prefix)
		if name == "" || strings.Contains(name, "/") {
			continue
		}
		filenames = append(filenames, name)
	}
	if len(filenames) == 0 {
		return nil, ErrNotFound
	}
	return filenames, nil
}

// Stats aggregates object counts and newest modification times per
// top-level prefix.
func (s *Minio) Stats(ctx context.Context) ([]DirStats, error) {
	byXSystem := make(map[string]*DirStats)
	var order []string

	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list bucket: %w", obj.Err)
		}
		xSystem, _, ok := strings.Cut(obj.Key, "/")
		if !ok {
			continue
		}
		stats, seen := byXSystem[xSystem]
		if !seen {
			stats = &DirStats{Name: xSystem}
			byXSystem[xSystem] = stats
			order = append(order, xSystem)
		}
		stats.FileCount++
		if obj.LastModified.After(stats.LastModified) {
			stats.LastModified = obj.LastModified
		}
	}

	result := make([]DirStats, 0, len(order))
	for _, xSystem := range order {
		result = append(result, *byXSystem[xSystem])
	}
	return result, nil
}

var _ Store = (*Minio)(nil)
