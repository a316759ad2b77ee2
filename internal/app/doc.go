// Package app is the composition root of the Pokédex.
//
// # Overview
//
// Build turns configuration into a Runtime: it loads config.toml (with flag
// and environment overrides), reads saved preferences, opens the JSON log
// file, and constructs the PokéAPI client and the catalog orchestrator. The
// TUI and every CLI subcommand start from the same Runtime.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Build()    │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()      config.toml + POKEDEX_BASE_URL + flags
//	       ├─────> logging.Setup()    JSON log file
//	       ├─────> prefs.Load()       theme and page size
//	       ├─────> pokeapi.NewClient()
//	       └─────> catalog.New()      orchestrator over a state.Store
//
//	Run() = Build() + ui.Run()
//
// # Error Handling
//
// A bad config file, an unwritable log path or an invalid base URL fail
// Build. Network trouble never does: the client swallows fetch failures and
// the catalog shows an empty or partial page instead.
//
// # Usage Example
//
//	if err := app.Run(ctx, app.Options{ConfigPath: path}); err != nil {
//		log.Fatalf("pokedex failed: %v", err)
//	}
package app
