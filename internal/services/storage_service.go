// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"github.com/fanrewards/fanmarket-backend/internal/config"
)

// StorageService uploads token metadata blobs and hands back the URI that is
// stored immutably on the token at mint time.
type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

type UploadResult struct {
	URI      string `json:"uri"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

const maxMetadataSize = 1 << 20 // 1 MiB

func NewStorageService(config *config.Config) (*StorageService, error) {
	if config.AWS.AccessKeyID == "" {
		// Return service without S3 for local development
		return &StorageService{config: config}, nil
	}

	// Create AWS session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(config.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AWS.AccessKeyID,
			config.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   config,
	}, nil
}

// UploadMetadata stores a metadata document and returns its URI.
func (s *StorageService) UploadMetadata(data []byte, contentType string) (*UploadResult, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("metadata is empty")
	}
	if len(data) > maxMetadataSize {
		return nil, fmt.Errorf("metadata size %d bytes exceeds maximum %d bytes", len(data), maxMetadataSize)
	}
	if contentType == "" {
		contentType = "application/json"
	}

	key := fmt.Sprintf("token-metadata/%d/%s", time.Now().UTC().Year(), uuid.New().String())

	if s.s3Client == nil {
		// Local development: no object store, return an opaque local URI.
		return &UploadResult{
			URI:      "local://" + key,
			Key:      key,
			Size:     int64(len(data)),
			MimeType: contentType,
		}, nil
	}

	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	}

	if _, err := s.s3Client.PutObject(params); err != nil {
		return nil, fmt.Errorf("failed to upload metadata: %w", err)
	}

	uri := fmt.Sprintf("s3://%s/%s", s.config.AWS.S3Bucket, key)
	if s.config.AWS.CloudFrontURL != "" {
		uri = fmt.Sprintf("%s/%s", s.config.AWS.CloudFrontURL, key)
	}

	return &UploadResult{
		URI:      uri,
		Key:      key,
		Size:     int64(len(data)),
		MimeType: contentType,
	}, nil
}
