package ui

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the header drops the
	// service URL and rows drop their dates.
	LayoutCompactWidth = 70

	// LayoutWideWidth is the minimum width to show the theme name in the header.
	LayoutWideWidth = 110
)

// Chrome heights around the item list.
const (
	headerHeight = 1
	footerHeight = 1
	noticeHeight = 1
	inputHeight  = 1
	boxBorders   = 2
)

// LogTailLines is how many lines of the client log the diagnostics overlay keeps.
const LogTailLines = 500

// createdAtLayout renders item creation times, e.g. "Jan 2, 2006, 03:04 PM".
const createdAtLayout = "Jan 2, 2006, 03:04 PM"
