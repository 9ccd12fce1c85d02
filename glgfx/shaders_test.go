// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package glgfx

import (
	"strings"
	"testing"
)

func TestSortDefinesIsStableRegardlessOfInputOrder(t *testing.T) {
	a := sortDefines([]string{"WHIRL", "COLOR", "BRIGHTNESS"})
	b := sortDefines([]string{"COLOR", "BRIGHTNESS", "WHIRL"})
	if defineKey(a) != defineKey(b) {
		t.Errorf("expected matching keys, got %q vs %q", defineKey(a), defineKey(b))
	}
}

func TestDefineKeyEmptyDefines(t *testing.T) {
	if key := defineKey(sortDefines(nil)); key != "" {
		t.Errorf("expected empty key for no defines, got %q", key)
	}
}

func TestBuildFragmentSourceEmitsOneDefinePerEntry(t *testing.T) {
	src := buildFragmentSource([]string{"COLOR", "MOSAIC"})
	if !strings.Contains(src, "#define COLOR\n") {
		t.Errorf("expected #define COLOR in source")
	}
	if !strings.Contains(src, "#define MOSAIC\n") {
		t.Errorf("expected #define MOSAIC in source")
	}
	if strings.Contains(src, "#define WHIRL") {
		t.Errorf("expected WHIRL not to be defined")
	}
}

func TestBuildFragmentSourceWithNoDefinesStillCompilesBaseEffects(t *testing.T) {
	src := buildFragmentSource(nil)
	if strings.Contains(src, "#define ") {
		t.Errorf("expected no #define lines, got:\n%s", src)
	}
	if !strings.Contains(src, "color.a *= u_ghost;") {
		t.Errorf("expected the unconditional ghost multiply to remain present")
	}
}
