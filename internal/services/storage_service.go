// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/aurum-jewels/admin-console/internal/backend"
	"github.com/aurum-jewels/admin-console/internal/config"
)

// StorageService stores product images in S3 when configured and otherwise
// forwards them to the store backend's upload endpoint.
type StorageService struct {
	s3Client *s3.S3
	backend  Backend
	config   config.AWSConfig
	logger   *logrus.Entry
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key,omitempty"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
	Storage  string `json:"storage"`
}

type UploadOptions struct {
	Folder       string
	MaxSize      int64 // in bytes
	AllowedTypes []string
	IsPublic     bool
}

// ProductImageOptions matches what the product forms accept.
var ProductImageOptions = UploadOptions{
	Folder:       "products",
	MaxSize:      5 * 1024 * 1024, // 5MB
	AllowedTypes: []string{".jpg", ".jpeg", ".png", ".webp"},
	IsPublic:     true,
}

func NewStorageService(cfg config.AWSConfig, b Backend, logger *logrus.Logger) (*StorageService, error) {
	s := &StorageService{
		backend: b,
		config:  cfg,
		logger:  logger.WithField("service", "storage"),
	}
	if !cfg.S3Enabled() {
		return s, nil
	}

	awsConfig := &aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	}
	if cfg.S3Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.S3Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	s.s3Client = s3.New(sess)
	return s, nil
}

func (s *StorageService) UploadImage(ctx context.Context, sess backend.Session, header *multipart.FileHeader) (*UploadResult, error) {
	options := ProductImageOptions

	if options.MaxSize > 0 && header.Size > options.MaxSize {
		return nil, &backend.ValidationError{
			Message: fmt.Sprintf("file size %d bytes exceeds maximum allowed size %d bytes", header.Size, options.MaxSize),
			Fields:  []backend.FieldError{{Field: "image", Tag: "max_size", Message: "image is too large"}},
		}
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtension(ext, options.AllowedTypes) {
		return nil, &backend.ValidationError{
			Message: fmt.Sprintf("file type %s is not allowed", ext),
			Fields:  []backend.FieldError{{Field: "image", Tag: "file_type", Message: "images only"}},
		}
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if !isValidImageType(fileBytes) {
		return nil, &backend.ValidationError{
			Message: "invalid image file",
			Fields:  []backend.FieldError{{Field: "image", Tag: "file_type", Message: "file content is not an image"}},
		}
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(fileBytes)
	}

	if s.s3Client != nil {
		return s.uploadToS3(ctx, fileBytes, generateFileName(header.Filename, options.Folder), contentType, options.IsPublic)
	}
	return s.forwardToBackend(ctx, sess, header.Filename, contentType, fileBytes)
}

func (s *StorageService) uploadToS3(ctx context.Context, fileBytes []byte, key, contentType string, isPublic bool) (*UploadResult, error) {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
	}

	if isPublic {
		params.ACL = aws.String("public-read")
	}

	if _, err := s.s3Client.PutObjectWithContext(ctx, params); err != nil {
		return nil, &backend.FetchError{Method: http.MethodPut, Path: "s3://" + s.config.S3Bucket + "/" + key, Err: err}
	}

	s.logger.WithFields(logrus.Fields{"key": key, "size": len(fileBytes)}).Info("Image stored in S3")
	return &UploadResult{
		URL:      s.getS3URL(key),
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
		Storage:  "s3",
	}, nil
}

func (s *StorageService) forwardToBackend(ctx context.Context, sess backend.Session, filename, contentType string, fileBytes []byte) (*UploadResult, error) {
	url, err := s.backend.UploadImage(ctx, sess, filename, contentType, bytes.NewReader(fileBytes))
	if err != nil {
		return nil, err
	}

	s.logger.WithField("url", url).Info("Image forwarded to store backend")
	return &UploadResult{
		URL:      url,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
		Storage:  "backend",
	}, nil
}

func (s *StorageService) DeleteImage(ctx context.Context, key string) error {
	if s.s3Client == nil {
		return nil
	}

	_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

func allowedExtension(ext string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

func generateFileName(originalName, folder string) string {
	id := uuid.New()
	ext := strings.ToLower(filepath.Ext(originalName))

	timestamp := time.Now().Format("20060102")
	filename := fmt.Sprintf("%s_%s%s", timestamp, id.String()[:8], ext)

	if folder != "" {
		return fmt.Sprintf("%s/%s", folder, filename)
	}
	return filename
}

func (s *StorageService) getS3URL(key string) string {
	if s.config.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(s.config.CloudFrontURL, "/"), key)
	}
	if s.config.S3Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(s.config.S3Endpoint, "/"), s.config.S3Bucket, key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.S3Bucket, s.config.Region, key)
}

func isValidImageType(buffer []byte) bool {
	// JPEG
	if len(buffer) >= 3 && buffer[0] == 0xFF && buffer[1] == 0xD8 && buffer[2] == 0xFF {
		return true
	}

	// PNG
	if len(buffer) >= 8 && buffer[0] == 0x89 && buffer[1] == 0x50 && buffer[2] == 0x4E && buffer[3] == 0x47 {
		return true
	}

	// WEBP
	if len(buffer) >= 12 && string(buffer[0:4]) == "RIFF" && string(buffer[8:12]) == "WEBP" {
		return true
	}

	return false
}
