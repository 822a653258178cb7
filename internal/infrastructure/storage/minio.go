package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"wrestling-admin/internal/config"
)

// MinIOStorage handles file uploads to MinIO.
// Service dùng access/secret key của server nên upload đi qua đường privileged,
// dashboard không bao giờ thấy credentials.
type MinIOStorage struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinIOStorage khởi tạo MinIO client; không gọi network, bucket được
// chuẩn bị riêng bằng EnsureBucket
func NewMinIOStorage(cfg config.MinIOConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = client.EndpointURL().Scheme + "://" + client.EndpointURL().Host
	}

	return &MinIOStorage{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: baseURL,
	}, nil
}

func (s *MinIOStorage) Bucket() string {
	return s.bucket
}

// ==================== BUCKET PROVISIONING ====================

type bucketPolicy struct {
	Version   string            `json:"Version"`
	Statement []policyStatement `json:"Statement"`
}

type policyStatement struct {
	Effect    string              `json:"Effect"`
	Principal map[string][]string `json:"Principal"`
	Action    []string            `json:"Action"`
	Resource  []string            `json:"Resource"`
}

// publicReadPolicy cho phép anonymous GET object, không cho list hay write
func publicReadPolicy(bucket string) (string, error) {
	p := bucketPolicy{
		Version: "2012-10-17",
		Statement: []policyStatement{{
			Effect:    "Allow",
			Principal: map[string][]string{"AWS": {"*"}},
			Action:    []string{"s3:GetObject"},
			Resource:  []string{"arn:aws:s3:::" + bucket + "/*"},
		}},
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// EnsureBucket kiểm tra bucket, tạo mới nếu chưa có và set public-read policy.
// Trả về true nếu bucket vừa được tạo.
func (s *MinIOStorage) EnsureBucket(ctx context.Context) (bool, error) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return false, fmt.Errorf("failed to check bucket: %w", err)
	}

	created := false
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return false, fmt.Errorf("failed to create bucket: %w", err)
		}
		created = true
		log.Info().Str("bucket", s.bucket).Msg("[MINIO] Bucket created")
	}

	policy, err := publicReadPolicy(s.bucket)
	if err != nil {
		return created, fmt.Errorf("failed to build bucket policy: %w", err)
	}
	if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		return created, fmt.Errorf("failed to set bucket policy: %w", err)
	}

	return created, nil
}

// HealthCheck chỉ kiểm tra bucket tồn tại
func (s *MinIOStorage) HealthCheck(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("minio unreachable: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", s.bucket)
	}
	return nil
}

// ==================== OBJECTS ====================

// Upload uploads a file to MinIO
// key: đường dẫn file trong bucket (vd: wrestlers/<uuid>_<ts>.png)
// Trả về public URL của object
func (s *MinIOStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType: contentType,
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload to minio: %w", err)
	}

	return s.PublicURL(key), nil
}

// PublicURL format: <base>/<bucket>/<key>
func (s *MinIOStorage) PublicURL(key string) string {
	return joinURL(s.baseURL, s.bucket, key)
}

func joinURL(base, bucket, key string) string {
	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return base + "/" + path.Join(bucket, key)
	}
	u.Path = path.Join("/", u.Path, bucket, key)
	return u.String()
}
