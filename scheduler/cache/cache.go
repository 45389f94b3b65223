// Package cache memoizes schedule solves keyed by a canonical hash of
// their normalized inputs. Grounded on the replacement for the original's
// @cache_data decorator named in the Design Notes: "expose caching as an
// explicit layer around the pure solve function" rather than an implicit
// framework-level decorator, since this engine has no Streamlit-style
// rerun model to hook into.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shiftsat/shiftsat/pkg/model"
	"github.com/shiftsat/shiftsat/scheduler"
)

// Store is the minimal key-value contract a cache backend must satisfy.
// Get's second return value follows the comma-ok convention rather than a
// sentinel error, since "not cached" isn't a failure.
type Store interface {
	Get(ctx context.Context, key string) (*model.Schedule, bool, error)
	Put(ctx context.Context, key string, schedule *model.Schedule) error
}

// Key computes a stable identifier for (input, options) so that two
// requests describing the same scheduling problem hit the same cache
// entry regardless of map iteration order or the order of the Preferences
// rows. Employees are sorted by name and requirements by PositionID before
// hashing; PositionIDs follow the to-fill row order, so reordering the
// to-fill rows yields a different key. Each employee's fields, including
// the Availability slice, are hashed in the order they are held.
func Key(input scheduler.Input, opts scheduler.Options) string {
	h := sha256.New()
	enc := json.NewEncoder(h)

	names := make([]string, 0, len(input.Employees))
	for name := range input.Employees {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		enc.Encode(name)
		enc.Encode(input.Employees[name])
	}

	reqs := append([]model.CoverageRequirement(nil), input.Requirements...)
	sort.Slice(reqs, func(i, j int) bool {
		if reqs[i].PositionID != reqs[j].PositionID {
			return reqs[i].PositionID < reqs[j].PositionID
		}
		return reqs[i].Window.Start.Before(reqs[j].Window.Start)
	})
	for _, r := range reqs {
		enc.Encode(r)
	}

	enc.Encode(opts)

	return hex.EncodeToString(h.Sum(nil))
}

// Cached wraps scheduler.CreateSchedule with a memoizing lookup: a hit
// skips enumeration, model building, and solving entirely; a miss runs
// the pipeline once and stores the result before returning it.
func Cached(store Store) func(ctx context.Context, input scheduler.Input, opts scheduler.Options) (*model.Schedule, error) {
	return func(ctx context.Context, input scheduler.Input, opts scheduler.Options) (*model.Schedule, error) {
		key := Key(input, opts)

		if cached, ok, err := store.Get(ctx, key); err != nil {
			return nil, fmt.Errorf("cache: lookup: %w", err)
		} else if ok {
			return cached, nil
		}

		schedule, err := scheduler.CreateSchedule(input, opts)
		if err != nil {
			return nil, err
		}

		if err := store.Put(ctx, key, schedule); err != nil {
			return nil, fmt.Errorf("cache: store: %w", err)
		}
		return schedule, nil
	}
}
