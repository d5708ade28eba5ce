package config

import (
	"log"
	"os"
	"path/filepath"
)

type Config struct {
	Port        string
	DBDSN       string
	LogFile     string
	LookupURL   string // barcode enrichment base URL; "" disables the remote call
	OpenBrowser bool
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "5002"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		// Keep the database in the user's home dir so a packaged binary
		// can always write it.
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dsn = filepath.Join(home, "smart_pantry.db")
	}
	logFile := os.Getenv("LOG_FILE")
	lookupURL := os.Getenv("LOOKUP_URL")

	cfg := Config{
		Port:        port,
		DBDSN:       dsn,
		LogFile:     logFile,
		LookupURL:   lookupURL,
		OpenBrowser: os.Getenv("OPEN_BROWSER") == "1",
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s OPEN_BROWSER=%v", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.OpenBrowser)
	return cfg
}
