// Package acquisition resolves raw event data: from the event dataset
// cache when a compatible entry exists, otherwise via a live download,
// with freshly downloaded events appended back to the cache.
package acquisition

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gwprep/internal/cache"
	"gwprep/internal/event"
	"gwprep/internal/logging"
)

// Downloader acquires raw event data from a live source. Implementations
// are parameterized entirely by the settings structure.
type Downloader interface {
	Download(ctx context.Context, gpsTime float64, settings event.Settings) (*event.Data, error)
}

// Loader implements the cache-or-download flow. The store is optional:
// without one every Load performs a live acquisition.
type Loader struct {
	downloader Downloader
	store      *cache.EventStore
	log        *zap.Logger
}

// NewLoader builds a loader. store may be nil.
func NewLoader(downloader Downloader, store *cache.EventStore) *Loader {
	return &Loader{
		downloader: downloader,
		store:      store,
		log:        logging.Get(logging.CategoryAcquisition),
	}
}

// Load returns the raw data for the event at gpsTime. A cache hit returns
// the stored payload without network access; on a miss the data is
// downloaded and, when a store is attached, appended to it. Download
// failures propagate without retry.
func (l *Loader) Load(ctx context.Context, gpsTime float64, settings event.Settings) (*event.Data, error) {
	key := event.ID(gpsTime)

	if l.store != nil {
		data, err := l.store.Lookup(ctx, key, settings)
		switch {
		case err == nil:
			l.log.Info("event data found in cache", zap.String("event", key))
			return data, nil
		case errors.Is(err, cache.ErrNotFound):
			l.log.Info("event data not cached, downloading", zap.String("event", key))
		default:
			return nil, err
		}
	}

	requestID := uuid.NewString()
	l.log.Info("downloading event data",
		zap.String("event", key),
		zap.Strings("detectors", settings.Detectors),
		zap.String("request_id", requestID))

	data, err := l.downloader.Download(ctx, gpsTime, settings)
	if err != nil {
		return nil, fmt.Errorf("download for event %s failed: %w", key, err)
	}
	if err := data.Validate(settings.Detectors); err != nil {
		return nil, fmt.Errorf("downloaded data for event %s is invalid: %w", key, err)
	}

	if l.store != nil {
		if err := l.store.Append(ctx, key, data, settings); err != nil {
			return nil, err
		}
	}
	return data, nil
}
