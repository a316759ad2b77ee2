// Package state provides thread-safe load state shared between catalog loads
// and the UI.
//
// # Overview
//
// Loads run as background commands; the UI renders from snapshots. The Store
// is the coordination point where a finished load meets rendering.
//
//	Load (tea.Cmd goroutine):      UI (Update/View):
//	┌────────────────────┐         ┌────────────────────┐
//	│ seq := Begin(n)    │         │                    │
//	│ ListPage()         │         │                    │
//	│ FetchDetail() ...  │         │                    │
//	│   Progress(seq, i) │────────→│ store.Snapshot()   │
//	│ Complete(seq, res) │ (mutex) │   render grid      │
//	└────────────────────┘         └────────────────────┘
//
// # Sequence Numbers
//
// Every load takes a number from Begin. Progress and Complete carry it back,
// and the Store ignores calls from any load that is not the latest. A slow
// load for page 2 therefore can never overwrite the results of a later load
// for page 3, whichever finishes first.
//
// # Status
//
//   - Idle: nothing loaded yet
//   - Loading: a load is in flight; previous entries remain visible
//   - Ready: the latest load finished with every detail present
//   - Partial: the latest load finished but dropped some details
//
// # Copying
//
// Complete and Snapshot copy the entry slice, so callers can hold a snapshot
// across renders without racing the next load.
//
// The zero Store is ready to use.
package state
