package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"xraysim/internal/imaging"
	"xraysim/internal/model"
	"xraysim/internal/physics"
	"xraysim/internal/repository"
	"xraysim/internal/storage"
)

var (
	ErrIDRequired        = errors.New("id is required")
	ErrNotFound          = errors.New("radiograph not found")
	ErrInvalidShape      = errors.New("invalid image shape")
	ErrUnsupportedFormat = imaging.ErrUnsupportedFormat
)

var tracer = otel.Tracer("xraysim/internal/service")

// RenderRequest carries the acquisition parameters and output settings of one rendering.
type RenderRequest struct {
	Current float64 `json:"current_ma"`
	Voltage float64 `json:"voltage_kvp"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Format  string  `json:"format"`
	// Seed is accepted for future stochastic effects and is currently ignored.
	Seed *int64 `json:"seed,omitempty"`
}

// Summary describes a computed intensity field.
type Summary struct {
	Current float64 `json:"current_ma"`
	Voltage float64 `json:"voltage_kvp"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	I0      float64 `json:"i0"`
	Mu      float64 `json:"mu"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Mean    float64 `json:"mean"`
	Center  float64 `json:"center"`
}

// RenderResult is an encoded image plus the summary of the field it came from.
type RenderResult struct {
	Data        []byte
	Format      imaging.Format
	ContentType string
	Summary     Summary
}

// RadiographListResult is the service-level DTO for paginated radiographs.
type RadiographListResult struct {
	Items []model.Radiograph `json:"data"`
	Total int                `json:"total"`
}

// Limits bounds the work a single request may ask for.
type Limits struct {
	// MaxDimension caps width and height; zero or less disables the cap.
	MaxDimension  int
	PresignExpiry time.Duration
}

// RadiographService defines the simulation and export use cases.
type RadiographService interface {
	// Render computes the field for req and encodes it. Nothing is persisted.
	Render(ctx context.Context, req RenderRequest) (*RenderResult, error)

	// Summarize computes the field for req and reports I0, mu and field statistics.
	Summarize(ctx context.Context, req RenderRequest) (*Summary, error)

	// Export renders req, uploads the image to object storage and records it.
	// The uploaded object is removed again if the record cannot be saved.
	Export(ctx context.Context, req RenderRequest) (*model.Radiograph, error)

	// List returns radiographs using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*RadiographListResult, error)

	// Get returns a single radiograph by its ID.
	Get(ctx context.Context, id string) (*model.Radiograph, error)

	// Open streams the stored image of a radiograph. The caller closes the reader.
	Open(ctx context.Context, id string) (io.ReadCloser, *model.Radiograph, error)

	// DownloadURL returns a presigned URL for the stored image.
	DownloadURL(ctx context.Context, id string) (string, error)

	// Delete removes a radiograph from both storage and repository.
	Delete(ctx context.Context, id string) error
}

type radiographService struct {
	calc   *physics.Calculator
	store  storage.Storage
	repo   repository.RadiographRepository
	limits Limits
}

// NewRadiographService constructs a new RadiographService.
func NewRadiographService(calc *physics.Calculator, store storage.Storage, repo repository.RadiographRepository, limits Limits) RadiographService {
	if limits.PresignExpiry <= 0 {
		limits.PresignExpiry = 15 * time.Minute
	}
	return &radiographService{calc: calc, store: store, repo: repo, limits: limits}
}

func (s *radiographService) validate(req RenderRequest) (physics.Shape, imaging.Format, error) {
	shape := physics.Shape{Height: req.Height, Width: req.Width}
	if err := shape.Validate(); err != nil {
		return shape, "", fmt.Errorf("%w: %v", ErrInvalidShape, err)
	}
	if m := s.limits.MaxDimension; m > 0 && (req.Width > m || req.Height > m) {
		return shape, "", fmt.Errorf("%w: %dx%d exceeds %d", ErrInvalidShape, req.Width, req.Height, m)
	}
	format, err := imaging.ParseFormat(req.Format)
	if err != nil {
		return shape, "", err
	}
	return shape, format, nil
}

func (s *radiographService) compute(req RenderRequest, shape physics.Shape) (*physics.Field, Summary) {
	f := s.calc.Compute(req.Current, req.Voltage, shape, req.Seed)
	return f, Summary{
		Current: req.Current,
		Voltage: req.Voltage,
		Width:   shape.Width,
		Height:  shape.Height,
		I0:      s.calc.IncidentIntensity(req.Current),
		Mu:      s.calc.Mu(req.Voltage),
		Min:     f.Min(),
		Max:     f.Max(),
		Mean:    f.Mean(),
		Center:  f.At(shape.Height/2, shape.Width/2),
	}
}

func startSpan(ctx context.Context, name string, req RenderRequest) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(
		attribute.Float64("xray.current_ma", req.Current),
		attribute.Float64("xray.voltage_kvp", req.Voltage),
		attribute.Int("xray.width", req.Width),
		attribute.Int("xray.height", req.Height),
		attribute.String("xray.format", req.Format),
	))
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func (s *radiographService) Render(ctx context.Context, req RenderRequest) (*RenderResult, error) {
	_, span := startSpan(ctx, "RadiographService.Render", req)
	defer span.End()

	shape, format, err := s.validate(req)
	if err != nil {
		return nil, fail(span, err)
	}

	f, sum := s.compute(req, shape)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, f, format); err != nil {
		return nil, fail(span, fmt.Errorf("encode %s: %w", format, err))
	}

	return &RenderResult{
		Data:        buf.Bytes(),
		Format:      format,
		ContentType: format.ContentType(),
		Summary:     sum,
	}, nil
}

func (s *radiographService) Summarize(ctx context.Context, req RenderRequest) (*Summary, error) {
	_, span := startSpan(ctx, "RadiographService.Summarize", req)
	defer span.End()

	shape, _, err := s.validate(req)
	if err != nil {
		return nil, fail(span, err)
	}
	_, sum := s.compute(req, shape)
	return &sum, nil
}

func (s *radiographService) Export(ctx context.Context, req RenderRequest) (*model.Radiograph, error) {
	ctx, span := startSpan(ctx, "RadiographService.Export", req)
	defer span.End()

	res, err := s.Render(ctx, req)
	if err != nil {
		return nil, fail(span, err)
	}

	id := uuid.New().String()
	key := storage.ObjectKey(id, res.Format.Ext())

	objInfo, err := s.store.Put(ctx, key, bytes.NewReader(res.Data), storage.PutObjectOptions{
		Size:        int64(len(res.Data)),
		ContentType: res.ContentType,
		Metadata: map[string]string{
			"current-ma":  strconv.FormatFloat(req.Current, 'g', -1, 64),
			"voltage-kvp": strconv.FormatFloat(req.Voltage, 'g', -1, 64),
			"width":       strconv.Itoa(req.Width),
			"height":      strconv.Itoa(req.Height),
		},
	})
	if err != nil {
		return nil, fail(span, fmt.Errorf("upload to storage: %w", err))
	}

	rec := &model.Radiograph{
		ID:          id,
		Current:     req.Current,
		Voltage:     req.Voltage,
		Width:       req.Width,
		Height:      req.Height,
		Format:      string(res.Format),
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		ContentType: res.ContentType,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, rec)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fail(span, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr))
		}
		return nil, fail(span, fmt.Errorf("db save failed: %w", err))
	}
	span.SetAttributes(attribute.String("xray.radiograph_id", stored.ID))
	return stored, nil
}

func (s *radiographService) List(ctx context.Context, limit, offset int) (*RadiographListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &RadiographListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *radiographService) Get(ctx context.Context, id string) (*model.Radiograph, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *radiographService) Open(ctx context.Context, id string) (io.ReadCloser, *model.Radiograph, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, rec.StoragePath)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	return rc, rec, nil
}

func (s *radiographService) DownloadURL(ctx context.Context, id string) (string, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	u, err := s.store.PresignGet(ctx, rec.StoragePath, s.limits.PresignExpiry)
	if err != nil {
		return "", fmt.Errorf("presign: %w", err)
	}
	return u, nil
}

// Delete removes the stored object first; the row is kept if that fails so the
// object is never orphaned.
func (s *radiographService) Delete(ctx context.Context, id string) error {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, rec.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}
