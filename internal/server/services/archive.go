package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dkovalenko/keywarden/internal/server/models"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
)

// ArchiveConfig carries the object-storage settings for the audit archive.
type ArchiveConfig struct {
	RootUser     string
	RootPassword string
	Bucket       string
	Region       string
	BaseEndpoint string
}

// ArchiveService copies audit events into S3-compatible object storage so the
// trail survives the database. Uploads are best-effort; the database row is
// the source of truth.
type ArchiveService struct {
	config ArchiveConfig
}

// NewArchiveService constructs an archiver for the given storage settings.
func NewArchiveService(cfg ArchiveConfig) *ArchiveService {
	return &ArchiveService{config: cfg}
}

// GetArchiveKey builds a date-partitioned object key for one event.
func GetArchiveKey() string {
	d := time.Now()
	return fmt.Sprintf("audit/%d/%d/%d/%v.json", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *ArchiveService) getClient() (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.RootUser,     // MINIO_ROOT_USER
			s.config.RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, nil
}

// ArchiveEvent uploads one audit event as a JSON object.
func (s *ArchiveService) ArchiveEvent(ctx context.Context, event *models.AuditEvent) error {
	client, err := s.getClient()
	if err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	bucket := s.config.Bucket
	key := GetArchiveKey()

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        strings.NewReader(string(body)),
		ContentType: aws.String("application/json"),
	})
	return err
}
