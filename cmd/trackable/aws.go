package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/trackable-go/trackable/pkg/collector"
)

// objectGetter is the part of the S3 client report needs.
type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// newS3Client is replaced in tests.
var newS3Client = func(ctx context.Context) (objectGetter, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

func parseS3URI(s string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(s, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

func openS3Object(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	client, err := newS3Client(ctx)
	if err != nil {
		return nil, err
	}
	obj, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", bucket, key, err)
	}
	return obj.Body, nil
}

// ArchiveFlags are shared by serve and lambda.
type ArchiveFlags struct {
	ArchiveBucket string   `help:"S3 bucket for event archival (optional)" env:"ARCHIVE_BUCKET"`
	ArchivePrefix string   `help:"S3 key prefix for event archival" env:"ARCHIVE_PREFIX" default:"events"`
	KafkaBrokers  []string `help:"Kafka brokers for event publishing (optional)" env:"KAFKA_BROKERS"`
	KafkaTopic    string   `help:"Kafka topic for events" env:"KAFKA_TOPIC" default:"trackable-events"`
}

// eventLogger returns a slog event logger, plus an S3 archiver and a Kafka
// publisher when they are configured. The returned func flushes them.
func (a ArchiveFlags) eventLogger(ctx context.Context, logger *slog.Logger) (collector.EventLogger, func(), error) {
	loggers := []collector.EventLogger{collector.NewSlogEventLogger(logger)}
	var closers []func()

	if len(a.KafkaBrokers) > 0 {
		publisher, err := collector.NewKafkaEventPublisher(collector.KafkaPublisherConfig{
			Brokers: a.KafkaBrokers,
			Topic:   a.KafkaTopic,
			Logger:  logger,
		})
		if err != nil {
			return nil, nil, err
		}
		logger.Info("event publishing enabled", "brokers", a.KafkaBrokers, "topic", a.KafkaTopic)
		loggers = append(loggers, publisher)
		closers = append(closers, func() {
			if err := publisher.Close(); err != nil {
				logger.Warn("kafka publisher did not close cleanly", "error", err)
			}
		})
	}

	if a.ArchiveBucket == "" {
		logger.Info("event archival disabled (no S3 bucket configured)")
	} else {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		archiver := collector.NewS3EventArchiver(collector.S3ArchiverConfig{
			Client:     s3.NewFromConfig(cfg),
			Bucket:     a.ArchiveBucket,
			KeyPrefix:  a.ArchivePrefix,
			Logger:     logger,
			BufferSize: 100,
		})
		logger.Info("event archival enabled", "bucket", a.ArchiveBucket, "prefix", a.ArchivePrefix)
		loggers = append(loggers, archiver)
		closers = append(closers, func() {
			if err := archiver.Shutdown(archiveShutdownTimeout); err != nil {
				logger.Warn("event archiver did not drain", "error", err)
			}
		})
	}

	shutdown := func() {
		for _, c := range closers {
			c()
		}
	}
	if len(loggers) == 1 {
		return loggers[0], shutdown, nil
	}
	return collector.NewMultiEventLogger(loggers...), shutdown, nil
}
