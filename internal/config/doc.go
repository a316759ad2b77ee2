// Package config loads pokedex settings.
//
// # Overview
//
// Settings come from a TOML file read through a private viper instance.
// Every key has a default, so a missing file is not an error.
//
// # Resolution Order
//
// For each key, highest first:
//
//  1. A command-line flag the user actually set (--policy, --limit, --workers)
//  2. POKEDEX_BASE_URL, for api.base_url only
//  3. The config file (explicit path, else ~/.config/pokedex/config.toml)
//  4. Built-in defaults
//
// # TOML Format
//
//	[api]
//	base_url = "https://pokeapi.co/api/v2/"
//	user_agent = ""
//	requests_per_second = 0   # 0 disables the limiter
//
//	[catalog]
//	policy = "server"         # or "client"
//	page_size = 9
//	collection_limit = 1000   # client policy only
//	detail_workers = 1        # 1 fetches details one at a time
//
//	[logging]
//	file = "~/.local/share/pokedex/pokedex.log"
//	level = "info"
//
// # Normalization
//
// Strings are trimmed. Empty or non-positive values fall back to defaults,
// and tilde paths are expanded to absolute paths. An unknown policy is the
// only value that makes Load fail; malformed TOML fails with "parse config".
package config
