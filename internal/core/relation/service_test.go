// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package relation_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidtube/internal/core/relation"
	"github.com/taibuivan/vidtube/internal/platform/apperr"
)

// memoryEdges enforces the same uniqueness rule as the database indexes.
type memoryEdges struct {
	mu      sync.Mutex
	edges   map[string]bool
	targets map[string]bool

	// staleReads makes Exists always report false, modelling two toggles
	// that both read before either writes.
	staleReads bool
}

func newMemoryEdges(targets ...string) *memoryEdges {
	known := make(map[string]bool)
	for _, target := range targets {
		known[target] = true
	}
	return &memoryEdges{edges: make(map[string]bool), targets: known}
}

func key(actorID string, target relation.Target) string {
	return actorID + "|" + string(target.Kind) + "|" + target.ID
}

func (m *memoryEdges) Exists(_ context.Context, actorID string, target relation.Target) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.staleReads {
		return false, nil
	}
	return m.edges[key(actorID, target)], nil
}

func (m *memoryEdges) Insert(_ context.Context, actorID string, target relation.Target) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.targets[target.ID] {
		return apperr.NotFound("Target")
	}
	k := key(actorID, target)
	if m.edges[k] {
		return apperr.Conflict("Edge already exists")
	}
	m.edges[k] = true
	return nil
}

func (m *memoryEdges) Remove(_ context.Context, actorID string, target relation.Target) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key(actorID, target)
	if !m.edges[k] {
		return 0, nil
	}
	delete(m.edges, k)
	return 1, nil
}

func (m *memoryEdges) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.edges)
}

func TestToggle_Oscillates(t *testing.T) {
	kinds := []relation.TargetKind{relation.KindChannel, relation.KindVideo, relation.KindComment, relation.KindTweet}

	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			service := relation.NewService(newMemoryEdges("target"), nil)
			target := relation.Target{Kind: kind, ID: "target"}
			ctx := context.Background()

			for _, want := range []relation.State{relation.Created, relation.Removed, relation.Created} {
				got, err := service.Toggle(ctx, "actor", target)
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}
		})
	}
}

func TestToggle_SubscribeScenario(t *testing.T) {
	service := relation.NewService(newMemoryEdges("B", "A"), nil)
	ctx := context.Background()

	state, err := service.Toggle(ctx, "A", relation.Target{Kind: relation.KindChannel, ID: "B"})
	require.NoError(t, err)
	assert.Equal(t, relation.Created, state)

	_, err = service.Toggle(ctx, "A", relation.Target{Kind: relation.KindChannel, ID: "A"})
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))

	state, err = service.Toggle(ctx, "A", relation.Target{Kind: relation.KindChannel, ID: "B"})
	require.NoError(t, err)
	assert.Equal(t, relation.Removed, state)
}

func TestToggle_SelfLikeIsAllowed(t *testing.T) {
	service := relation.NewService(newMemoryEdges("A"), nil)

	state, err := service.Toggle(context.Background(), "A", relation.Target{Kind: relation.KindVideo, ID: "A"})

	require.NoError(t, err)
	assert.Equal(t, relation.Created, state)
}

func TestToggle_Rejections(t *testing.T) {
	service := relation.NewService(newMemoryEdges("t"), nil)

	tests := []struct {
		name     string
		actor    string
		target   relation.Target
		wantCode string
	}{
		{"anonymous", "", relation.Target{Kind: relation.KindVideo, ID: "t"}, apperr.CodeUnauthorized},
		{"unknown_kind", "a", relation.Target{Kind: "playlist", ID: "t"}, apperr.CodeValidation},
		{"empty_target", "a", relation.Target{Kind: relation.KindVideo}, apperr.CodeValidation},
		{"absent_target", "a", relation.Target{Kind: relation.KindTweet, ID: "missing"}, apperr.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Toggle(context.Background(), tt.actor, tt.target)
			assert.Equal(t, tt.wantCode, apperr.CodeOf(err))
		})
	}
}

func TestToggle_LostRaceIsConflict(t *testing.T) {
	edges := newMemoryEdges("v")
	edges.staleReads = true
	service := relation.NewService(edges, nil)
	target := relation.Target{Kind: relation.KindVideo, ID: "v"}

	first, err := service.Toggle(context.Background(), "a", target)
	require.NoError(t, err)
	assert.Equal(t, relation.Created, first)

	_, err = service.Toggle(context.Background(), "a", target)
	assert.Equal(t, apperr.CodeConflict, apperr.CodeOf(err))
	assert.Equal(t, 1, edges.count(), "never more than one edge per pair")
}

func TestToggle_ConcurrentCreatesNeverDuplicate(t *testing.T) {
	edges := newMemoryEdges("v")
	edges.staleReads = true
	service := relation.NewService(edges, nil)
	target := relation.Target{Kind: relation.KindVideo, ID: "v"}

	var wg sync.WaitGroup
	var mu sync.Mutex
	created, conflicts := 0, 0

	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			state, err := service.Toggle(context.Background(), "a", target)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if apperr.IsCode(err, apperr.CodeConflict) {
					conflicts++
				}
				return
			}
			if state == relation.Created {
				created++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, 7, conflicts)
	assert.Equal(t, 1, edges.count())
}

func TestToggle_SubscriptionNotifiesHooks(t *testing.T) {
	var notified []string
	hook := func(_ context.Context, channelID string) { notified = append(notified, channelID) }
	service := relation.NewService(newMemoryEdges("B", "v"), nil, hook)
	ctx := context.Background()

	_, err := service.Toggle(ctx, "A", relation.Target{Kind: relation.KindChannel, ID: "B"})
	require.NoError(t, err)
	_, err = service.Toggle(ctx, "A", relation.Target{Kind: relation.KindVideo, ID: "v"})
	require.NoError(t, err)

	assert.Equal(t, []string{"B"}, notified)
}
