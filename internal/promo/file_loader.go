package promo

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for coupon files on the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based coupon loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "coupon-loader").Logger(),
	}
}

// Load reads a coupon CSV file, transparently decompressing a .gz suffix.
func (l *fileLoader) Load(ctx context.Context, filePath string) ([]model.Coupon, error) {
	l.logger.Info().Str("file", filePath).Msg("loading coupon file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open coupon file")
		return nil, fmt.Errorf("failed to open coupon file %s: %w", filePath, err)
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(filePath, ".gz") {
		gzipReader, err := gzip.NewReader(file)
		if err != nil {
			l.logger.Error().Err(err).Str("file", filePath).Msg("failed to create gzip reader")
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", filePath, err)
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	coupons, err := parseCoupons(reader)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to parse coupon file")
		return nil, fmt.Errorf("failed to parse coupon file %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("coupons_loaded", len(coupons)).
		Msg("coupon file loaded")

	return coupons, nil
}
