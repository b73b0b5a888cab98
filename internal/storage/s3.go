package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
	"github.com/lrn-oss/lrc/internal/utils"
)

var (
	ErrS3Op      = errors.New("operational error")
	ErrS3Unknown = errors.New("unknown error")
)

//go:generate mockery --name S3Client --outpkg s3mocks --output ../testutils/s3mocks
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyId     string
	SecretAccessKey string
}

// S3BlobStore implements BlobStore on an AWS S3 compatible bucket
type S3BlobStore struct {
	bucket string
	client S3Client
}

func NewS3BlobStore(ctx context.Context, cfg S3Config) (*S3BlobStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("invalid S3 config. bucket must not be empty")
	}
	if (cfg.AccessKeyId == "") != (cfg.SecretAccessKey == "") {
		return nil, errors.New("invalid S3 config. access key id and secret access key must be set both when setting credentials explicit")
	}

	optFns := []func(*config.LoadOptions) error{}
	if cfg.Region != "" {
		optFns = append(optFns, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyId != "" {
		optFns = append(optFns, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyId, cfg.SecretAccessKey, "")))
	}

	configS3, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("error loading S3 configuration: %w", err)
	}
	if cfg.Endpoint != "" {
		configS3.BaseEndpoint = aws.String(cfg.Endpoint)
	}

	c := s3.NewFromConfig(configS3, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return NewS3BlobStoreWithClient(c, cfg.Bucket), nil
}

func NewS3BlobStoreWithClient(client S3Client, bucket string) *S3BlobStore {
	return &S3BlobStore{
		bucket: bucket,
		client: client,
	}
}

func (s *S3BlobStore) Put(ctx context.Context, key string, content io.Reader, contentType string) (string, error) {
	if !validKey(key) {
		return "", fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}
	for {
		exists, err := s.exists(ctx, key)
		if err != nil {
			return "", err
		}
		if !exists {
			break
		}
		key = alternativeKey(key, uuid.NewString()[:8])
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	_, err = s.client.PutObject(ctx, in)
	if err != nil {
		utils.GetLogger(ctx, "S3BlobStore").Warn("failed to write object to S3", "object", key, "bucket", s.bucket, "error", err.Error())
		return "", s3Error(err, key)
	}
	utils.GetLogger(ctx, "S3BlobStore").Debug("object written to S3", "object", key, "bucket", s.bucket)
	return key, nil
}

func (s *S3BlobStore) Open(ctx context.Context, key string) (io.ReadCloser, BlobInfo, error) {
	if !validKey(key) {
		return nil, BlobInfo{}, fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		utils.GetLogger(ctx, "S3BlobStore").Warn("failed to read object from S3", "object", key, "bucket", s.bucket, "error", err.Error())
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, BlobInfo{}, fmt.Errorf("%w: %s", ErrBlobNotFound, key)
		}
		return nil, BlobInfo{}, s3Error(err, key)
	}
	info := BlobInfo{
		Key:         key,
		ContentType: aws.ToString(out.ContentType),
		Size:        aws.ToInt64(out.ContentLength),
		ModTime:     aws.ToTime(out.LastModified),
	}
	if info.ContentType == "" {
		info.ContentType = utils.DetectMediaType("", key, nil)
	}
	return out.Body, info, nil
}

func (s *S3BlobStore) Delete(ctx context.Context, key string) error {
	if !validKey(key) {
		return fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		utils.GetLogger(ctx, "S3BlobStore").Warn("failed to remove object from S3", "object", key, "bucket", s.bucket, "error", err.Error())
		return s3Error(err, key)
	}
	return nil
}

func (s *S3BlobStore) exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)})
	if err == nil {
		return true, nil
	}
	var ae smithy.APIError
	if errors.As(err, &ae) && ae.ErrorCode() == "NotFound" {
		return false, nil
	}
	utils.GetLogger(ctx, "S3BlobStore").Warn("failed to stat object from S3", "object", key, "bucket", s.bucket, "error", err.Error())
	return false, s3Error(err, key)
}

func s3Error(err error, key string) error {
	var oe *smithy.OperationError
	if errors.As(err, &oe) {
		return fmt.Errorf("%w, object: %s error: %s", ErrS3Op, key, err.Error())
	}
	return fmt.Errorf("%w, object: %s error: %s", ErrS3Unknown, key, err.Error())
}
