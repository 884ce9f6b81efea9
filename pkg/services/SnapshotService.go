package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/adampresley/workshopadmin/pkg/models"
)

/*
Snapshot is the most recent committed view of an entity's table. Rows
always hold the last successful list. Err is set when the most recent
committed refresh failed.
*/
type Snapshot struct {
	Entity      models.Entity
	Rows        []models.Row
	Err         error
	Generation  uint64
	RefreshedAt time.Time
}

func (s Snapshot) OK() bool {
	return s.Err == nil
}

type SnapshotServicer interface {
	Refresh(ctx context.Context, entity models.Entity) Snapshot
	Delete(ctx context.Context, entity models.Entity, id uint) (RemoveResult, Snapshot, bool)
}

type SnapshotServiceConfig struct {
	ResourceService ResourceServicer
}

/*
SnapshotService serializes refreshes per entity. Every refresh takes a
generation number when it starts, and its result is only committed if no
newer refresh has committed first. A slow response can therefore never
overwrite a fresher one.
*/
type SnapshotService struct {
	resourceService ResourceServicer

	mu        sync.Mutex
	issued    map[string]uint64
	snapshots map[string]Snapshot
}

func NewSnapshotService(config SnapshotServiceConfig) *SnapshotService {
	return &SnapshotService{
		resourceService: config.ResourceService,
		issued:          map[string]uint64{},
		snapshots:       map[string]Snapshot{},
	}
}

func (s *SnapshotService) Refresh(ctx context.Context, entity models.Entity) Snapshot {
	s.mu.Lock()
	s.issued[entity.Name]++
	generation := s.issued[entity.Name]
	s.mu.Unlock()

	result := s.resourceService.List(ctx, entity)

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.snapshots[entity.Name]

	if ok && current.Generation > generation {
		slog.Debug("discarding stale refresh", "entity", entity.Name, "generation", generation, "current", current.Generation)
		return current
	}

	/*
	 * A refresh abandoned by its caller says nothing about the backend,
	 * so it is handed back without being committed.
	 */
	if errors.Is(result.Err, context.Canceled) {
		slog.Debug("discarding cancelled refresh", "entity", entity.Name, "generation", generation)

		current.Entity = entity
		current.Err = result.Err

		if current.Rows == nil {
			current.Rows = []models.Row{}
		}

		return current
	}

	snapshot := Snapshot{
		Entity:      entity,
		Rows:        result.Rows,
		Generation:  generation,
		RefreshedAt: time.Now(),
	}

	if !result.OK() {
		snapshot.Err = result.Err
		snapshot.Rows = current.Rows

		if snapshot.Rows == nil {
			snapshot.Rows = []models.Row{}
		}
	}

	s.snapshots[entity.Name] = snapshot
	return snapshot
}

/*
Delete removes a record and, only when the backend confirms the deletion,
refreshes the entity once. The boolean reports whether a refresh happened.
*/
func (s *SnapshotService) Delete(ctx context.Context, entity models.Entity, id uint) (RemoveResult, Snapshot, bool) {
	result := s.resourceService.Remove(ctx, entity, id)

	if result.Outcome != RemoveDeleted {
		return result, Snapshot{}, false
	}

	return result, s.Refresh(ctx, entity), true
}
