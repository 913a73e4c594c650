package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yalajobs/jobboard-api/internal/core/domain"
)

const (
	wizardPrefix = "wizard:"
	wizardTTL    = 7 * 24 * time.Hour
)

// WizardStore caches in-progress wizard state per user. The cache is the
// working copy of the form; the profile table only sees it on a step save.
type WizardStore struct {
	client *redis.Client
}

func NewWizardStore(client *redis.Client) *WizardStore {
	return &WizardStore{client: client}
}

func (s *WizardStore) Get(ctx context.Context, userID string) (domain.WizardState, bool, error) {
	data, err := s.client.Get(ctx, wizardPrefix+userID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.WizardState{}, false, nil
		}
		return domain.WizardState{}, false, fmt.Errorf("wizard get: %w", err)
	}

	var state domain.WizardState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return domain.WizardState{}, false, fmt.Errorf("unmarshal wizard state: %w", err)
	}
	return state, true, nil
}

func (s *WizardStore) Save(ctx context.Context, userID string, state domain.WizardState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal wizard state: %w", err)
	}
	return s.client.Set(ctx, wizardPrefix+userID, data, wizardTTL).Err()
}

func (s *WizardStore) Delete(ctx context.Context, userID string) error {
	return s.client.Del(ctx, wizardPrefix+userID).Err()
}
