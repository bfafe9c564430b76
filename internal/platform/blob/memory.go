// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blob

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
)

// ErrInjected is the failure returned by [MemoryStore] when a failure flag is set.
var ErrInjected = errors.New("blob: injected failure")

// MemoryStore is an in-process [Store] used by service tests and local runs
// without object storage.
type MemoryStore struct {
	mu       sync.Mutex
	objects  map[string]Kind
	seq      int
	duration float64

	// FailUpload and FailDelete make the next calls return [ErrInjected].
	// FailUploadKind fails uploads of one kind only.
	FailUpload     bool
	FailUploadKind Kind
	FailDelete     bool

	// Deleted records every URL passed to a successful Delete, in order.
	Deleted []string
}

// NewMemoryStore creates an empty store. Video uploads report durationSeconds.
func NewMemoryStore(durationSeconds float64) *MemoryStore {
	return &MemoryStore{objects: make(map[string]Kind), duration: durationSeconds}
}

// Upload records a new object. The local file, if any, is removed.
func (store *MemoryStore) Upload(_ context.Context, localPath string, kind Kind) (Asset, error) {
	_ = os.Remove(localPath)

	store.mu.Lock()
	defer store.mu.Unlock()

	if store.FailUpload || (store.FailUploadKind != "" && store.FailUploadKind == kind) {
		return Asset{}, ErrInjected
	}

	store.seq++
	url := fmt.Sprintf("mem://%s/%d", prefixFor(kind), store.seq)
	store.objects[url] = kind

	asset := Asset{URL: url}
	if kind == KindVideo {
		asset.DurationSeconds = store.duration
	}
	return asset, nil
}

// Delete removes an object. Missing objects succeed.
func (store *MemoryStore) Delete(_ context.Context, url string, _ Kind) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.FailDelete {
		return ErrInjected
	}

	delete(store.objects, url)
	store.Deleted = append(store.Deleted, url)
	return nil
}

// Put seeds an existing object, as if uploaded earlier.
func (store *MemoryStore) Put(url string, kind Kind) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.objects[url] = kind
}

// Exists reports whether url is currently stored.
func (store *MemoryStore) Exists(url string) bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	_, ok := store.objects[url]
	return ok
}

// Len returns the number of stored objects.
func (store *MemoryStore) Len() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.objects)
}
