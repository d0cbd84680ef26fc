package config

// Config holds everything the fc binary reads from the environment.
// Parsed with github.com/caarlos0/env; an optional .env file is loaded first.
type Config struct {
	// DataDir is the root of the file-backed record store.
	DataDir string `env:"FC_DATA_DIR" envDefault:"~/.fightclub"`

	// StoreBackend selects where documents live: "file" or "sqlite".
	StoreBackend string `env:"FC_STORE" envDefault:"file"`

	// SQLitePath is used when StoreBackend is "sqlite".
	SQLitePath string `env:"FC_SQLITE_PATH" envDefault:"~/.fightclub.db"`

	LogLevel string `env:"FC_LOG_LEVEL" envDefault:"warn"`
}
