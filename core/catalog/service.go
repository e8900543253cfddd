package catalog

import (
	"context"
	"sync"
)

// Service fetches catalog snapshots and shares them across screens of the
// same batch, instead of each screen refetching on mount. Cached snapshots
// live until explicitly invalidated.
type Service struct {
	gw Gateway

	mu    sync.Mutex
	cache map[string]Hierarchy
}

func NewService(gw Gateway) *Service {
	return &Service{gw: gw, cache: make(map[string]Hierarchy)}
}

// Hierarchy returns the catalog snapshot for batchID, fetching it once.
func (svc *Service) Hierarchy(ctx context.Context, batchID string) (Hierarchy, error) {
	svc.mu.Lock()
	if hier, ok := svc.cache[batchID]; ok {
		svc.mu.Unlock()
		return hier, nil
	}
	svc.mu.Unlock()

	hier, err := svc.gw.FetchHierarchy(ctx, batchID)
	if err != nil {
		return Hierarchy{}, err
	}
	hier.BatchID = batchID

	svc.mu.Lock()
	svc.cache[batchID] = hier
	svc.mu.Unlock()
	return hier, nil
}

// Invalidate drops the cached snapshot for batchID, forcing a refetch.
func (svc *Service) Invalidate(batchID string) {
	svc.mu.Lock()
	delete(svc.cache, batchID)
	svc.mu.Unlock()
}
