// Package backup periodically uploads the record files to S3-compatible
// object storage, so a lost disk costs at most one interval of changes.
package backup

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"billing-backend/internal/config"
)

// Scheduler uploads the data files on a fixed interval.
type Scheduler struct {
	cfg      *config.Config
	files    []string
	ticker   *time.Ticker
	stopChan chan bool
	mu       sync.Mutex
}

// NewScheduler builds a scheduler for the given record files.
func NewScheduler(cfg *config.Config, files ...string) *Scheduler {
	return &Scheduler{cfg: cfg, files: files}
}

// Start launches the backup loop. The first backup runs immediately.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker != nil {
		return // Already running
	}

	interval := time.Duration(s.cfg.Backup.IntervalMinutes) * time.Minute
	s.ticker = time.NewTicker(interval)
	s.stopChan = make(chan bool)

	go func() {
		log.Println("[Backup] Starting automatic backup scheduler")
		s.runBackup()

		for {
			select {
			case <-s.ticker.C:
				s.runBackup()
			case <-s.stopChan:
				log.Println("[Backup] Scheduler stopped")
				return
			}
		}
	}()

	log.Printf("[Backup] Scheduler started (interval: %v)", interval)
}

// Stop halts the backup loop.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker != nil {
		s.ticker.Stop()
		s.stopChan <- true
		s.ticker = nil
	}
}

// runBackup uploads one timestamped copy of each record file.
func (s *Scheduler) runBackup() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := s.newClient(ctx)
	if err != nil {
		log.Printf("[Backup] Failed to configure client: %v", err)
		return
	}

	stamp := time.Now().Format("20060102_150405")
	for _, path := range s.files {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue // Nothing saved yet
			}
			log.Printf("[Backup] Failed to read %s: %v", path, err)
			continue
		}

		key := fmt.Sprintf("records/%s_%s", stamp, filepath.Base(path))
		_, err = client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.cfg.Backup.Bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String("text/plain"),
		})
		if err != nil {
			log.Printf("[Backup] Failed to upload %s: %v", key, err)
			continue
		}

		log.Printf("[Backup] Success: %s (%d bytes)", key, len(data))
	}
}

func (s *Scheduler) newClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.Backup.AccessKey,
			s.cfg.Backup.SecretKey,
			"",
		)),
		awsconfig.WithRegion(s.cfg.Backup.Region),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s.cfg.Backup.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.Backup.Endpoint)
		}
	}), nil
}
