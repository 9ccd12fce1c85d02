// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package softgfx

import (
	"testing"

	"github.com/FaZeKermit323/forkphorus/render"
)

func TestSpriteTouchesPointInsideAndOutside(t *testing.T) {
	r, _ := newTestRenderer()
	sprite := newFakeSprite(newSquareCostume(10, nrgba(255, 0, 0, 255)))
	sprite.x, sprite.y = 0, 0

	if !r.SpriteTouchesPoint(sprite, 0, 0) {
		t.Errorf("expected point at sprite center to touch")
	}
	if r.SpriteTouchesPoint(sprite, 100, 100) {
		t.Errorf("expected far point to miss")
	}
}

func TestSpritesIntersectOverlappingAndSeparate(t *testing.T) {
	r, _ := newTestRenderer()
	a := newFakeSprite(newSquareCostume(20, nrgba(255, 0, 0, 255)))
	a.x, a.y = 0, 0
	b := newFakeSprite(newSquareCostume(20, nrgba(0, 255, 0, 255)))
	b.x, b.y = 5, 0 // overlapping a
	c := newFakeSprite(newSquareCostume(20, nrgba(0, 0, 255, 255)))
	c.x, c.y = 200, 200 // far away

	if !r.SpritesIntersect(a, []render.Sprite{b}) {
		t.Errorf("expected overlapping sprites to intersect")
	}
	if r.SpritesIntersect(a, []render.Sprite{c}) {
		t.Errorf("expected distant sprites not to intersect")
	}
}

func TestSpriteTouchesColorMatchesBackdrop(t *testing.T) {
	r, stage := newTestRenderer() // blue (0,0,255) backdrop
	sprite := newFakeSprite(newSquareCostume(10, nrgba(0, 255, 0, 128))) // translucent green
	sprite.x, sprite.y = 0, 0
	stage.children = []render.Sprite{sprite}

	blue := uint32(0x0000FF)
	if !r.SpriteTouchesColor(sprite, blue) {
		t.Errorf("expected translucent sprite over blue backdrop to report touching blue")
	}

	red := uint32(0xFF0000)
	if r.SpriteTouchesColor(sprite, red) {
		t.Errorf("expected sprite not to touch a color absent from the scene")
	}
}

func TestSpriteColorTouchesColor(t *testing.T) {
	r, stage := newTestRenderer()
	sprite := newFakeSprite(newSquareCostume(10, nrgba(0, 255, 0, 255)))
	sprite.x, sprite.y = 0, 0
	stage.children = []render.Sprite{sprite}

	green := uint32(0x00FF00)
	blue := uint32(0x0000FF)
	if !r.SpriteColorTouchesColor(sprite, green, blue) {
		t.Errorf("expected the sprite's own green to overlap the blue backdrop beneath it")
	}

	red := uint32(0xFF0000)
	if r.SpriteColorTouchesColor(sprite, green, red) {
		t.Errorf("expected no overlap against a color not present on the backdrop")
	}
}
