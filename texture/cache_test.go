// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package texture

import (
	"image"
	"testing"

	"github.com/FaZeKermit323/forkphorus/render"
)

type fakeLOD struct {
	img *image.NRGBA
}

func (f *fakeLOD) Image() *image.NRGBA { return f.img }

func TestGetCachesOnMiss(t *testing.T) {
	lod := &fakeLOD{img: image.NewNRGBA(image.Rect(0, 0, 2, 2))}
	uploads := 0
	c := New(nil)

	name1 := c.Get(render.LOD(lod), func() uint32 {
		uploads++
		return 42
	})
	name2 := c.Get(render.LOD(lod), func() uint32 {
		uploads++
		return 99
	})

	if name1 != 42 || name2 != 42 {
		t.Errorf("expected cached name 42 both times, got %d then %d", name1, name2)
	}
	if uploads != 1 {
		t.Errorf("expected exactly one upload, got %d", uploads)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 live entry, got %d", c.Len())
	}
}

func TestEvictReleasesAndRemoves(t *testing.T) {
	released := uint32(0)
	c := New(func(name uint32) { released = name })

	func() {
		lod := &fakeLOD{img: image.NewNRGBA(image.Rect(0, 0, 1, 1))}
		c.Get(render.LOD(lod), func() uint32 { return 7 })
		if c.Len() != 1 {
			t.Fatalf("expected 1 entry before evict")
		}
	}()

	if n := c.Prune(); n != 0 {
		t.Errorf("expected 0 entries after the LOD became unreachable, got %d", n)
	}
	if released != 7 {
		t.Errorf("expected deleter called with 7, got %d", released)
	}
}

func TestDistinctLODsGetDistinctEntries(t *testing.T) {
	c := New(nil)
	lodA := &fakeLOD{img: image.NewNRGBA(image.Rect(0, 0, 1, 1))}
	lodB := &fakeLOD{img: image.NewNRGBA(image.Rect(0, 0, 1, 1))}

	c.Get(render.LOD(lodA), func() uint32 { return 1 })
	c.Get(render.LOD(lodB), func() uint32 { return 2 })

	if c.Len() != 2 {
		t.Errorf("expected 2 entries for 2 distinct LODs, got %d", c.Len())
	}
}
