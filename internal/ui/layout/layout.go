package layout

// PanelLayout holds calculated dimensions for the search bar, history
// sidebar and result panel.
type PanelLayout struct {
	Width  int
	Height int

	SearchHeight  int
	SidebarWidth  int
	ResultWidth   int
	ContentHeight int // height below the search bar, minus the status bar

	SidebarVisible bool
	Compact        bool
}

const (
	searchBarHeight = 3
	statusBarHeight = 1
	minSidebarWidth = 24
	maxSidebarWidth = 40
	compactWidth    = 70
)

// Calculate computes the panel layout from terminal dimensions.
func Calculate(width, height int, sidebarVisible bool) PanelLayout {
	l := PanelLayout{
		Width:          width,
		Height:         height,
		SearchHeight:   searchBarHeight,
		SidebarVisible: sidebarVisible,
		ContentHeight:  height - searchBarHeight - statusBarHeight,
	}

	if l.ContentHeight < 1 {
		l.ContentHeight = 1
	}

	if width < compactWidth {
		l.Compact = true
		l.SidebarVisible = false
	}

	if l.SidebarVisible {
		l.SidebarWidth = clamp(width/4, minSidebarWidth, maxSidebarWidth)
		l.ResultWidth = width - l.SidebarWidth
	} else {
		l.ResultWidth = width
	}

	return l
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
