package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"fiado-backend/internal/backup"
	"fiado-backend/internal/config"
	"fiado-backend/internal/metrics"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// BackupService copies the store file to the configured backup directory
// and, when configured, uploads the copy to an S3-compatible bucket for
// offsite recovery. A failed backup is reported, never fatal.
type BackupService struct {
	Cfg       *config.Config
	StorePath string
}

func NewBackupService(cfg *config.Config) *BackupService {
	return &BackupService{Cfg: cfg, StorePath: cfg.Database.Path}
}

// Run performs one backup. Returns the local backup path.
func (s *BackupService) Run(ctx context.Context) (string, error) {
	dest, err := backup.Copy(s.StorePath, s.Cfg.Backup.Dir)
	if err != nil {
		metrics.BackupsTotal.WithLabelValues("error").Inc()
		return "", err
	}
	log.Printf("[Backup] Store copied to %s", dest)

	if s.Cfg.Backup.S3.Enabled {
		if err := s.upload(ctx, dest); err != nil {
			// Offsite is best effort; the local copy already exists
			metrics.BackupsTotal.WithLabelValues("offsite_error").Inc()
			log.Printf("[Backup] Offsite upload failed: %v", err)
			return dest, nil
		}
		log.Printf("[Backup] Offsite copy uploaded to bucket %s", s.Cfg.Backup.S3.Bucket)
	}

	metrics.BackupsTotal.WithLabelValues("ok").Inc()
	return dest, nil
}

// upload pushes a backup file to the configured S3-compatible bucket.
func (s *BackupService) upload(ctx context.Context, path string) error {
	s3cfg := s.Cfg.Backup.S3

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	awscfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s3cfg.AccessKey,
			s3cfg.SecretKey,
			"",
		)),
		awsconfig.WithRegion(s3cfg.Region),
	)
	if err != nil {
		return fmt.Errorf("configure s3 client: %w", err)
	}

	client := s3.NewFromConfig(awscfg, func(o *s3.Options) {
		if s3cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(s3cfg.Endpoint)
		}
	})

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open backup file: %w", err)
	}
	defer f.Close()

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s3cfg.Bucket),
		Key:    aws.String("backups/" + filepath.Base(path)),
		Body:   f,
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}
