// Package archive keeps a copy of purged appointments.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type Archiver interface {
	Archive(ctx context.Context, ap models.Appointment) error
}

// Noop is used when no bucket is configured.
type Noop struct{}

func (Noop) Archive(context.Context, models.Appointment) error { return nil }

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// S3Archiver writes one JSON object per appointment under
// appointments/<date>/<id>.json.
type S3Archiver struct {
	client *s3.Client
	bucket string
}

func NewS3Archiver(cfg S3Config) *S3Archiver {
	awsCfg := aws.Config{
		Region: cfg.Region,
	}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Archiver{client: client, bucket: cfg.Bucket}
}

func ObjectKey(ap models.Appointment) string {
	return fmt.Sprintf("appointments/%s/%d.json", ap.Date, ap.ID)
}

func (a *S3Archiver) Archive(ctx context.Context, ap models.Appointment) error {
	body, err := json.Marshal(ap)
	if err != nil {
		return fmt.Errorf("marshal appointment %d: %w", ap.ID, err)
	}

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(ObjectKey(ap)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", ObjectKey(ap), err)
	}
	return nil
}
