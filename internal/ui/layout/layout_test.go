package layout

import "testing"

func TestCalculate_WideScreen(t *testing.T) {
	l := Calculate(160, 40, true)

	if l.Compact {
		t.Error("should not be compact at 160 cols")
	}
	if l.SidebarWidth < minSidebarWidth {
		t.Errorf("sidebar too narrow: %d < %d", l.SidebarWidth, minSidebarWidth)
	}
	if l.SidebarWidth > maxSidebarWidth {
		t.Errorf("sidebar too wide: %d > %d", l.SidebarWidth, maxSidebarWidth)
	}
	if total := l.SidebarWidth + l.ResultWidth; total != 160 {
		t.Errorf("panel widths should sum to 160, got %d", total)
	}
	if l.ContentHeight != 40-searchBarHeight-statusBarHeight {
		t.Errorf("ContentHeight = %d", l.ContentHeight)
	}
}

func TestCalculate_NarrowScreen(t *testing.T) {
	l := Calculate(50, 20, true)

	if !l.Compact {
		t.Error("should be compact at 50 cols")
	}
	if l.SidebarVisible {
		t.Error("sidebar should be hidden in compact mode")
	}
	if l.ResultWidth != 50 {
		t.Errorf("ResultWidth = %d, want 50", l.ResultWidth)
	}
}

func TestCalculate_SidebarHidden(t *testing.T) {
	l := Calculate(160, 40, false)

	if l.SidebarWidth != 0 {
		t.Error("sidebar width should be 0 when hidden")
	}
	if l.ResultWidth != 160 {
		t.Errorf("ResultWidth = %d, want 160", l.ResultWidth)
	}
}

func TestCalculate_TinyTerminal(t *testing.T) {
	l := Calculate(10, 2, false)

	if l.ContentHeight != 1 {
		t.Errorf("ContentHeight = %d, want 1", l.ContentHeight)
	}
}
