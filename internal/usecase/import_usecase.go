package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/tripautostrade/area-directory/internal/domain"
	"github.com/tripautostrade/area-directory/internal/domain/repository"
	"github.com/tripautostrade/area-directory/internal/usecase/dto"
)

const (
	DefaultImportChunkSize = 500
	defaultAreaName        = "Area di Servizio"
)

// featureCollection is decoded by hand so that a single malformed feature
// does not reject the whole file.
type featureCollection struct {
	Type     string       `json:"type"`
	Features []rawFeature `json:"features"`
}

type rawFeature struct {
	Geometry   *geojson.Geometry      `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// ParsedAreas - результат разбора GeoJSON файла
type ParsedAreas struct {
	TotalFeatures int
	Rows          []domain.ServiceAreaRow
}

// ImportUseCase загружает areas di servizio из GeoJSON (экспорт OSM) в таблицу источника.
type ImportUseCase struct {
	writer    repository.AreaWriter
	logger    *zap.Logger
	chunkSize int
}

func NewImportUseCase(writer repository.AreaWriter, logger *zap.Logger, chunkSize int) *ImportUseCase {
	if chunkSize <= 0 {
		chunkSize = DefaultImportChunkSize
	}
	return &ImportUseCase{
		writer:    writer,
		logger:    logger.Named("import"),
		chunkSize: chunkSize,
	}
}

// ParseFeatures reads a FeatureCollection and keeps Point features only.
func ParseFeatures(r io.Reader) (*ParsedAreas, error) {
	var fc featureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("decode geojson: expected FeatureCollection, got %q", fc.Type)
	}

	parsed := &ParsedAreas{
		TotalFeatures: len(fc.Features),
		Rows:          make([]domain.ServiceAreaRow, 0, len(fc.Features)),
	}
	for _, f := range fc.Features {
		row, ok := featureToRow(f)
		if ok {
			parsed.Rows = append(parsed.Rows, row)
		}
	}
	return parsed, nil
}

func featureToRow(f rawFeature) (domain.ServiceAreaRow, bool) {
	if f.Geometry == nil || f.Geometry.Type != "Point" || f.Geometry.Coordinates == nil {
		return domain.ServiceAreaRow{}, false
	}

	g, err := f.Geometry.Decode()
	if err != nil {
		return domain.ServiceAreaRow{}, false
	}
	p, ok := g.(*geom.Point)
	if !ok || p.Empty() {
		return domain.ServiceAreaRow{}, false
	}

	props := f.Properties
	name := defaultAreaName
	if v, ok := stringProp(props, "name"); ok {
		name = v
	}

	row := domain.ServiceAreaRow{
		Name:      name,
		Brand:     string(brandFromProperties(props)),
		Longitude: p.X(),
		Latitude:  p.Y(),
	}

	if v, ok := firstStringProp(props, "highway", "ref"); ok {
		row.Highway = &v
	}
	if v, ok := firstStringProp(props, "direction", "destination"); ok {
		row.Direction = &v
	}
	if km, ok := floatProp(props, "km"); ok {
		row.Km = &km
	}

	return row, true
}

// brandFromProperties uses operator when present, brand otherwise.
func brandFromProperties(props map[string]interface{}) domain.Brand {
	if v, ok := stringProp(props, "operator"); ok {
		return domain.NormalizeBrand(v)
	}
	v, _ := stringProp(props, "brand")
	return domain.NormalizeBrand(v)
}

func stringProp(props map[string]interface{}, key string) (string, bool) {
	v, ok := props[key].(string)
	return v, ok
}

func firstStringProp(props map[string]interface{}, keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := stringProp(props, k); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// floatProp accepts both numbers and numeric strings ("260,5" included, as OSM tags often use it).
func floatProp(props map[string]interface{}, key string) (float64, bool) {
	switch v := props[key].(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(v), ",", "."), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Import inserts rows in chunks. A failed chunk is logged and skipped; the
// report counts only rows that were written.
func (uc *ImportUseCase) Import(ctx context.Context, parsed *ParsedAreas, dryRun bool) (*dto.ImportReport, error) {
	report := &dto.ImportReport{
		TotalFeatures: parsed.TotalFeatures,
		ValidRows:     len(parsed.Rows),
		Skipped:       parsed.TotalFeatures - len(parsed.Rows),
		Brands:        make(map[domain.Brand]int),
		DryRun:        dryRun,
	}
	for _, r := range parsed.Rows {
		report.Brands[domain.Brand(r.Brand)]++
	}

	uc.logger.Info("GeoJSON parsed",
		zap.Int("features", report.TotalFeatures),
		zap.Int("valid", report.ValidRows),
		zap.Any("brands", report.Brands))

	if dryRun || len(parsed.Rows) == 0 {
		return report, nil
	}

	chunks := 0
	for start := 0; start < len(parsed.Rows); start += uc.chunkSize {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		end := min(start+uc.chunkSize, len(parsed.Rows))
		chunks++

		n, err := uc.writer.InsertBatch(ctx, parsed.Rows[start:end])
		if err != nil {
			report.FailedChunks++
			uc.logger.Error("Chunk insert failed",
				zap.Int("chunk", chunks),
				zap.Int("rows", end-start),
				zap.Error(err))
			continue
		}

		report.Inserted += n
		uc.logger.Info("Chunk inserted",
			zap.Int("chunk", chunks),
			zap.Int("rows", n),
			zap.Int("progress", end),
			zap.Int("total", len(parsed.Rows)))
	}

	uc.logger.Info("Import completed",
		zap.Int("inserted", report.Inserted),
		zap.Int("valid", report.ValidRows),
		zap.Int("failed_chunks", report.FailedChunks))

	return report, nil
}
