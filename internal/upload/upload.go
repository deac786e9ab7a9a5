package upload

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/smallbiznis/storefront/internal/config"
	"github.com/smallbiznis/storefront/internal/observability/metrics"
	"github.com/smallbiznis/storefront/internal/validation"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	FieldName       = "image"
	defaultMaxBytes = 5 << 20
)

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle `optional:"true"`
	Config    config.Config
	Log       *zap.Logger
	Metrics   *metrics.Metrics `optional:"true"`
}

// Store writes uploaded images into a single directory under generated names.
type Store struct {
	dir      string
	maxBytes int64
	log      *zap.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

func New(p Params) *Store {
	s := NewStore(p.Config.Upload.Dir, p.Config.Upload.MaxBytes, p.Log)
	s.metrics = p.Metrics
	if p.Lifecycle != nil {
		p.Lifecycle.Append(fx.Hook{
			OnStart: func(context.Context) error {
				return s.EnsureDir()
			},
		})
	}
	return s
}

func NewStore(dir string, maxBytes int64, log *zap.Logger) *Store {
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		dir:      dir,
		maxBytes: maxBytes,
		log:      log.Named("upload"),
		now:      time.Now,
	}
}

func (s *Store) Dir() string { return s.dir }

func (s *Store) MaxBytes() int64 { return s.maxBytes }

func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}
	return nil
}

// Save stores fh and returns the generated file name. Both the declared
// content type and the sniffed content must be images.
func (s *Store) Save(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	name, err := s.save(fh)
	result := "stored"
	if err != nil {
		result = "rejected"
		if !validation.IsValidation(err) {
			result = "error"
		}
	}
	s.metrics.RecordUpload(ctx, result)
	return name, err
}

func (s *Store) save(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", validation.NewError(FieldName, "required", "No file uploaded")
	}
	if fh.Size > s.maxBytes {
		return "", validation.NewError(FieldName, "max", fmt.Sprintf("File must be at most %d bytes", s.maxBytes))
	}
	if declared := fh.Header.Get("Content-Type"); declared != "" && !isRasterImage(declared) {
		return "", validation.NewError(FieldName, "mime", "Only image files are allowed")
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	detected, err := mimetype.DetectReader(src)
	if err != nil {
		return "", err
	}
	if !isRasterImage(detected.String()) {
		return "", validation.NewError(FieldName, "mime", "Only image files are allowed")
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext == "" || ext == ".svg" || ext == ".svgz" {
		ext = detected.Extension()
	}
	name := fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), uuid.NewString(), ext)

	if err := s.EnsureDir(); err != nil {
		return "", err
	}
	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	written, err := io.Copy(dst, io.LimitReader(src, s.maxBytes+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written > s.maxBytes {
		err = validation.NewError(FieldName, "max", fmt.Sprintf("File must be at most %d bytes", s.maxBytes))
	}
	if err != nil {
		_ = os.Remove(filepath.Join(s.dir, name))
		return "", err
	}

	s.log.Info("image stored",
		zap.String("file", name),
		zap.Int64("bytes", written),
		zap.String("mime", detected.String()),
	)
	return name, nil
}

// isRasterImage accepts image/* except SVG, which can carry script and is
// served from our own origin.
func isRasterImage(contentType string) bool {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	return strings.HasPrefix(contentType, "image/") && !strings.HasPrefix(contentType, "image/svg")
}
