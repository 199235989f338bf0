package http

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/api/traffic"
)

// DatasetLoader provides the roster and trip log, e.g. *db.Store.
type DatasetLoader interface {
	LoadDataset(ctx context.Context) (traffic.Dataset, error)
}

// datasetHolder owns the loaded dataset and caches one snapshot per time
// filter. Snapshots are computed and cached under the read lock so Replace
// never races with a stale insert.
type datasetHolder struct {
	mu        sync.RWMutex
	ds        traffic.Dataset
	snapshots *lru.Cache[traffic.TimeFilter, traffic.Snapshot]
}

func newDatasetHolder(ds traffic.Dataset, cacheSize int) (*datasetHolder, error) {
	cache, err := lru.New[traffic.TimeFilter, traffic.Snapshot](cacheSize)
	if err != nil {
		return nil, err
	}
	return &datasetHolder{ds: ds, snapshots: cache}, nil
}

func (h *datasetHolder) Dataset() traffic.Dataset {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ds
}

// Snapshot returns the aggregation for filter and whether it came from the
// cache.
func (h *datasetHolder) Snapshot(filter traffic.TimeFilter) (traffic.Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if snap, ok := h.snapshots.Get(filter); ok {
		return snap, true
	}
	snap := traffic.Compute(h.ds.Stations, h.ds.Trips, filter)
	h.snapshots.Add(filter, snap)
	return snap, false
}

func (h *datasetHolder) Replace(ds traffic.Dataset) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ds = ds
	h.snapshots.Purge()
}
