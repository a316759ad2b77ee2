// Package ui provides the terminal browser for the Pokédex catalog.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model holds all view state and is updated
// only from Update; loads run as tea.Cmds and report back with messages.
// While a load runs, a ticker re-reads the orchestrator's state.Store so the
// header can show "Loading x/y" progress.
//
// # Package Structure
//
//   - app.go: Model, Update/View, load dispatch and the Run entry point
//   - grid.go: card grid, cursor movement and the empty/no-results view
//   - search.go: live name search
//   - detail.go: detail modal for one entry
//   - header.go: status header, paginator and key hints
//   - logs.go: in-app view of the JSON log file
//   - help.go: help overlay
//   - theme.go, keys.go, layout.go: styling, bindings and geometry
//
// # Paging
//
// Every paging key becomes a catalog.Action. catalog.Reduce decides the next
// PageState and whether the page must be fetched or only re-sliced. Each
// fetch cancels the one before it, and results flagged stale are dropped.
//
// # Usage Example
//
//	err := ui.Run(ctx, ui.Options{
//		Orchestrator: orch,
//		PageSize:     9,
//		LogPath:      "~/.local/state/pokedex/pokedex.log",
//	})
package ui
