package content

import "context"

// Config selects which backend Open binds.
type Config struct {
	// DatabaseURL, when set, wins: the hosted Postgres backend is used.
	DatabaseURL string
	// Env is the deployment environment. "production" without a database
	// URL means an ephemeral filesystem, so the memory backend is used.
	Env string
	// DataDir is where the file backend keeps its JSON documents.
	DataDir string
}

// Open binds one of the three backends from configuration. The choice is
// made once per process; changing backends requires a restart.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch {
	case cfg.DatabaseURL != "":
		return NewPGStore(ctx, cfg.DatabaseURL)
	case cfg.Env == "production":
		return NewMemStore(), nil
	default:
		if cfg.DataDir == "" {
			cfg.DataDir = "data"
		}
		return NewFileStore(cfg.DataDir)
	}
}
