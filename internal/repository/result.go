package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/playgrid/gameroom-backend/internal/entity"
)

var ErrResultNotFound = errors.New("match result not found")

// ResultRepository archives finished matches. Live room state never touches
// redis; only terminal results are written, with a TTL.
type ResultRepository interface {
	Save(ctx context.Context, result *entity.MatchResult) error
	GetByRoomID(ctx context.Context, roomID string) (*entity.MatchResult, error)
}

type dbResult struct {
	client *redis.Client
	ttl    time.Duration
}

func NewResultRepository(client *redis.Client, ttl time.Duration) ResultRepository {
	return &dbResult{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbResult) Save(ctx context.Context, result *entity.MatchResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal match result: %w", err)
	}

	resultKey := "result:" + result.RoomID
	if err = that.client.Set(ctx, resultKey, resultJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set match result: %w", err)
	}

	return nil
}

func (that *dbResult) GetByRoomID(ctx context.Context, roomID string) (*entity.MatchResult, error) {
	resultKey := "result:" + roomID

	response, err := that.client.Get(ctx, resultKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrResultNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get match result: %w", err)
	}

	var result entity.MatchResult
	if err = json.Unmarshal([]byte(response), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match result: %w", err)
	}

	return &result, nil
}
