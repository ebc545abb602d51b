package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/playgrid/gameroom-backend/internal/apperror"
	"github.com/playgrid/gameroom-backend/internal/entity"
)

// Registry is the in-memory catalog of rooms. Its lock only guards the map
// itself and is never held while a room's own lock is taken, so creating or
// listing rooms never contends with an in-progress move.
type Registry struct {
	logger *slog.Logger

	mu    sync.RWMutex
	rooms map[string]*entity.Room

	waitingTimeout time.Duration
	retention      time.Duration
}

func New(logger *slog.Logger, waitingTimeout, retention time.Duration) *Registry {
	return &Registry{
		logger:         logger.With("component", "registry"),
		rooms:          make(map[string]*entity.Room),
		waitingTimeout: waitingTimeout,
		retention:      retention,
	}
}

func (that *Registry) Add(room *entity.Room) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.rooms[room.ID] = room
}

func (that *Registry) Get(id string) (*entity.Room, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	room, ok := that.rooms[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, id)
	}

	return room, nil
}

func (that *Registry) Remove(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.rooms, id)
}

// List - summaries of joinable rooms, ordered by creation time so a single
// response is stable.
func (that *Registry) List() []entity.RoomSummary {
	that.mu.RLock()
	rooms := make([]*entity.Room, 0, len(that.rooms))
	for _, room := range that.rooms {
		rooms = append(rooms, room)
	}
	that.mu.RUnlock()

	summaries := make([]entity.RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		if !room.Joinable() {
			continue
		}
		summaries = append(summaries, room.Summary())
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].CreatedAt == summaries[j].CreatedAt {
			return summaries[i].RoomID < summaries[j].RoomID
		}
		return summaries[i].CreatedAt < summaries[j].CreatedAt
	})

	return summaries
}

// Sweep - removes abandoned waiting rooms and finished rooms past retention,
// returning the expired rooms so the caller can archive them.
func (that *Registry) Sweep(now time.Time) []*entity.Room {
	that.mu.RLock()
	rooms := make([]*entity.Room, 0, len(that.rooms))
	for _, room := range that.rooms {
		rooms = append(rooms, room)
	}
	that.mu.RUnlock()

	expired := make([]*entity.Room, 0)
	for _, room := range rooms {
		if room.Expired(now, that.waitingTimeout, that.retention) {
			expired = append(expired, room)
		}
	}

	that.mu.Lock()
	for _, room := range expired {
		delete(that.rooms, room.ID)
	}
	that.mu.Unlock()

	return expired
}

// Run - the background garbage-collection loop; not triggered by client
// requests. onExpired receives each removed room.
func (that *Registry) Run(ctx context.Context, interval time.Duration, onExpired func(*entity.Room)) {
	log := that.logger.With("method", "Run")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("garbage collection stopped")
			return
		case now := <-ticker.C:
			expired := that.Sweep(now)
			if len(expired) == 0 {
				continue
			}

			log.Info("collected expired rooms", "count", len(expired))

			if onExpired == nil {
				continue
			}
			for _, room := range expired {
				onExpired(room)
			}
		}
	}
}
