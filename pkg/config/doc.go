// Package config provides a type-safe, generic and cached way to load
// application configuration from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11` to
// deliver a convenient API that:
//
//   - Loads values from one or multiple `.env` files (falling back to the
//     default `.env` in the current working directory).
//   - Parses the environment into any Go struct using field tags.
//   - Caches each successfully loaded configuration type so it is only parsed
//     once for the lifetime of the process.
//   - Exposes helpers that panic on failure (`MustLoadEnv`, `MustLoad`) for
//     configuration the application cannot start without.
//   - Allows explicit cache reset or force reload, which is handy in tests.
//
// # Architecture
//
// Internally the package keeps a singleton cache that stores parsed struct
// copies keyed by their fully-qualified type name. Each key also holds a
// `sync.Once` guaranteeing the parsing work is executed at most once per
// configuration type even when accessed from multiple goroutines concurrently.
//
// The exported helpers interact with the cache in a thread-safe manner using
// `sync.RWMutex`, while low-level parsing is delegated to `env.Parse`.
//
// # Usage
//
// Create a struct describing your configuration and annotate its fields with
// `env` tags:
//
//	type StoreConfig struct {
//	    LogPath string        `env:"LOCKKIT_LOG_PATH" envDefault:"lock_events.log"`
//	    Timeout time.Duration `env:"LOCKKIT_STORE_TIMEOUT" envDefault:"5s"`
//	}
//
// Load optional `.env` files, then populate the struct:
//
//	import "github.com/dmitrymomot/lockkit/pkg/config"
//
//	func main() {
//	    // Optionally load one or many custom .env files before parsing.
//	    if err := config.LoadEnv("./config/.env"); err != nil {
//	        log.Fatalf("loading env: %v", err)
//	    }
//
//	    var store StoreConfig
//	    if err := config.Load(&store); err != nil {
//	        log.Fatalf("parsing env: %v", err)
//	    }
//
//	    // store is now populated and cached for future calls.
//	}
//
// Subsequent calls to `config.Load(&store)` will be served from the in-memory
// cache without re-parsing. Variables already present in the process
// environment always win over `.env` file values; when several files define
// the same key, the first file listed wins.
//
// # Error Handling
//
// The package defines sentinel errors that can be compared with `errors.Is`:
//
//   - `ErrParsingConfig`   – failed to parse env vars into struct.
//   - `ErrLoadingEnvFile`  – a named .env file could not be read.
//   - `ErrConfigNotLoaded` – requested config type has not been loaded yet.
//   - `ErrNilPointer`      – nil pointer passed to `Load`/`MustLoad`.
//
// # Testing Helpers
//
// Use `ResetCache()` to clear the global cache between tests or
// `ForceReloadConfig(&cfg)` to reload a particular struct after the process
// environment changes.
package config
