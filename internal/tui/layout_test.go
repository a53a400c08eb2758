package tui

import "testing"

func TestPageLayoutUpdate(t *testing.T) {
	cases := []struct {
		name           string
		width          int
		height         int
		sideBySide     bool
		overlayWidth   int
		viewportWidth  int
		viewportHeight int
	}{
		{name: "narrow", width: 80, height: 24, sideBySide: false, overlayWidth: 78, viewportWidth: 74, viewportHeight: 8},
		{name: "wide", width: 120, height: 40, sideBySide: true, overlayWidth: 72, viewportWidth: 68, viewportHeight: 32},
		{name: "tiny", width: 30, height: 6, sideBySide: false, overlayWidth: minOverlayWidth, viewportWidth: minOverlayWidth - 4, viewportHeight: 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			layout := newPageLayout()
			layout.Update(tc.width, tc.height)
			if layout.sideBySide != tc.sideBySide {
				t.Fatalf("sideBySide mismatch: got %t want %t", layout.sideBySide, tc.sideBySide)
			}
			if layout.overlayWidth != tc.overlayWidth {
				t.Fatalf("overlay width mismatch: got %d want %d", layout.overlayWidth, tc.overlayWidth)
			}
			if layout.viewportWidth != tc.viewportWidth {
				t.Fatalf("viewport width mismatch: got %d want %d", layout.viewportWidth, tc.viewportWidth)
			}
			if layout.viewportHeight != tc.viewportHeight {
				t.Fatalf("viewport height mismatch: got %d want %d", layout.viewportHeight, tc.viewportHeight)
			}
		})
	}
}

func TestFitHelpers(t *testing.T) {
	if got := fitRight("42", 5); got != "   42" {
		t.Fatalf("fitRight: %q", got)
	}
	if got := fitLeft("7 + ", 6); got != "7 +   " {
		t.Fatalf("fitLeft: %q", got)
	}
	if got := fitLeft("1 + 2 + 3 =", 5); got != "+ 3 =" {
		t.Fatalf("overflow should keep the tail, got %q", got)
	}
	if got := keepTail("abc", 10); got != "abc" {
		t.Fatalf("keepTail: %q", got)
	}
}
