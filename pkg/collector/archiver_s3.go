package collector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectPutter is the subset of *s3.Client the archiver needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3EventArchiver archives events to S3 as JSON objects with date partitioning.
// Writes are asynchronous and best-effort: errors are logged, never returned
// to the caller of LogEvent.
type S3EventArchiver struct {
	client    ObjectPutter
	bucket    string
	keyPrefix string
	logger    *slog.Logger

	events chan *Event
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex // guards closed against sends racing Shutdown
	closed bool
}

// ErrArchiverClosed is returned by LogEvent after Shutdown.
var ErrArchiverClosed = errors.New("event archiver is shut down")

// S3ArchiverConfig configures the S3 event archiver.
type S3ArchiverConfig struct {
	Client     ObjectPutter
	Bucket     string
	KeyPrefix  string       // Optional prefix for S3 keys (e.g., "events")
	Logger     *slog.Logger // For logging archiver errors
	BufferSize int          // Channel buffer size (default: 100)
}

// NewS3EventArchiver creates a new S3 archiver with a background writer.
func NewS3EventArchiver(config S3ArchiverConfig) *S3EventArchiver {
	if config.BufferSize == 0 {
		config.BufferSize = 100
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	archiver := &S3EventArchiver{
		client:    config.Client,
		bucket:    config.Bucket,
		keyPrefix: config.KeyPrefix,
		logger:    config.Logger,
		events:    make(chan *Event, config.BufferSize),
		ctx:       ctx,
		cancel:    cancel,
	}

	archiver.wg.Add(1)
	go archiver.writer()

	return archiver
}

// LogEvent enqueues an event. It never blocks: when the buffer is full the
// event is dropped and an error returned. After Shutdown it returns
// ErrArchiverClosed.
func (a *S3EventArchiver) LogEvent(ctx context.Context, event *Event) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return ErrArchiverClosed
	}

	select {
	case a.events <- event:
		return nil
	default:
		a.logger.Warn("event archiver buffer full, dropping event",
			slog.String("url", event.URL))
		return fmt.Errorf("archiver buffer full")
	}
}

// Shutdown stops the writer after flushing pending events, or gives up after
// timeout.
func (a *S3EventArchiver) Shutdown(timeout time.Duration) error {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()
	a.cancel()

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("shutdown timeout after %v", timeout)
	}
}

func (a *S3EventArchiver) writer() {
	defer a.wg.Done()

	for {
		select {
		case event := <-a.events:
			a.write(event)
		case <-a.ctx.Done():
			a.drainEvents()
			return
		}
	}
}

func (a *S3EventArchiver) drainEvents() {
	for {
		select {
		case event := <-a.events:
			a.write(event)
		default:
			return
		}
	}
}

func (a *S3EventArchiver) write(event *Event) {
	if err := a.writeEvent(event); err != nil {
		a.logger.Error("failed to archive event to S3",
			slog.String("url", event.URL),
			slog.String("error", err.Error()))
	}
}

// writeEvent writes a single event as a one-line JSON object.
func (a *S3EventArchiver) writeEvent(event *Event) error {
	key := a.generateKey(event)

	jsonBytes, err := event.toJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	jsonBytes = append(jsonBytes, '\n')

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(jsonBytes),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to write to S3: %w", err)
	}

	a.logger.Debug("archived event to S3",
		slog.String("bucket", a.bucket),
		slog.String("key", key))

	return nil
}

// generateKey creates a date and app partitioned key.
// Format: [prefix/]year=YYYY/month=MM/day=DD/app=<app>/<unix-nanos>[-<id>].json
func (a *S3EventArchiver) generateKey(event *Event) string {
	ts := event.Timestamp.UTC()
	year, month, day := ts.Date()

	app := url.PathEscape(value(event.Tracking.App))
	if app == "" {
		app = "_"
	}

	name := strconv.FormatInt(ts.UnixNano(), 10)
	if event.ID != "" {
		name += "-" + event.ID
	}
	key := fmt.Sprintf("year=%04d/month=%02d/day=%02d/app=%s/%s.json",
		year, int(month), day, app, name)

	if a.keyPrefix != "" {
		key = a.keyPrefix + "/" + key
	}
	return key
}
