// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

// Package texture implements the weak LOD -> GPU texture association
// spec.md §3 calls the "Texture cache": entries live exactly as long as
// the LOD they were built for is reachable from some costume, and are
// dropped the moment it is not, via runtime.SetFinalizer rather than the
// explicit-invalidation-callback fallback the spec describes for
// languages without GC weak references.
package texture

import (
	"reflect"
	"runtime"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/FaZeKermit323/forkphorus/render"
)

// Deleter releases a GPU texture name. Supplied by the GPU backend so
// this package stays free of any particular GL binding.
type Deleter func(name uint32)

// Cache is a weak LOD -> texture-name association. The zero value is not
// usable; construct with New.
type Cache struct {
	mu      sync.Mutex
	entries map[uintptr]uint32
	delete  Deleter
}

// New constructs a Cache that releases evicted textures through del.
func New(del Deleter) *Cache {
	return &Cache{
		entries: make(map[uintptr]uint32),
		delete:  del,
	}
}

// lodKey returns lod's pointer identity without keeping lod itself
// reachable: entries is keyed by this uintptr rather than by lod so the
// map holds no strong reference that would block the finalizer set in
// Get from ever running.
func lodKey(lod render.LOD) uintptr {
	return reflect.ValueOf(lod).Pointer()
}

// Get returns the cached texture name for lod, uploading via upload on a
// miss. lod must be backed by a pointer (any ordinary struct pointer
// implementing render.LOD) so a finalizer can observe it becoming
// unreachable.
func (c *Cache) Get(lod render.LOD, upload func() uint32) uint32 {
	key := lodKey(lod)

	c.mu.Lock()
	if name, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return name
	}
	c.mu.Unlock()

	name := upload()

	c.mu.Lock()
	c.entries[key] = name
	c.mu.Unlock()

	runtime.SetFinalizer(lod, func(render.LOD) {
		c.evict(key, name)
	})
	return name
}

func (c *Cache) evict(key uintptr, name uint32) {
	c.mu.Lock()
	_, ok := c.entries[key]
	if ok {
		delete(c.entries, key)
	}
	c.mu.Unlock()
	if !ok {
		return
	}
	log.WithField("texture", name).Debug("releasing unreachable costume texture")
	if c.delete != nil {
		c.delete(name)
	}
}

// Len reports the number of live cache entries. For tests and diagnostics.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Prune forces GC cycles, giving any pending finalizers a chance to run,
// then reports the resulting entry count. For tests only — production
// code should rely on the finalizer firing on its own schedule.
func (c *Cache) Prune() int {
	for i := 0; i < 10; i++ {
		runtime.GC()
		runtime.Gosched()
		if c.Len() == 0 {
			break
		}
	}
	return c.Len()
}
