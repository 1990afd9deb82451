package ports

import (
	"context"

	"quantix/domain/dataset"
	"quantix/domain/stats"
)

// DatasetSource is the ingestion collaborator. Each Load delivers one
// complete, immutable snapshot; there is no incremental update.
type DatasetSource interface {
	Load(ctx context.Context) (*dataset.Dataset, error)
	Describe() string
}

// BundleObserver is notified after every recompute with the bundle that is
// now current
type BundleObserver interface {
	BundleUpdated(bundle *stats.ResultBundle)
}

// BundleObserverFunc adapts a function to BundleObserver
type BundleObserverFunc func(bundle *stats.ResultBundle)

func (f BundleObserverFunc) BundleUpdated(bundle *stats.ResultBundle) { f(bundle) }
