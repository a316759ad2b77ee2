package ui

import "time"

// Grid geometry.
const (
	// CardWidth is the outer width of one card, borders included.
	CardWidth = 24

	// CardHeight is the outer height of one card, borders included.
	CardHeight = 6

	// CardGap is the horizontal space between cards.
	CardGap = 1

	// ChromeHeight is the rows used by header, search line and footer.
	ChromeHeight = 4
)

// PageSizes are the page sizes +/- step through.
var PageSizes = []int{6, 9, 12, 20, 30, 50}

// Log display limits.
const (
	// LogTailLines is the number of log lines loaded into the log view.
	LogTailLines = 500
)

// Timing constants.
const (
	// ProgressInterval is how often the store is polled while a load runs.
	ProgressInterval = 120 * time.Millisecond
)

// SuggestionCount is how many "did you mean" names to offer.
const SuggestionCount = 3
