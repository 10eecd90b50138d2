package config

// Optional .env bootstrap for local development. Call before the first
// logger/config read so LOG_* and module prefixes come from the file too.
// Values already present in the process environment win (godotenv does not
// override existing vars)

import (
	"os"

	"github.com/joho/godotenv"

	"leadhopper/internal/platform/logger"
)

// LoadDotenv loads the given dotenv files into the process environment.
// With no arguments it tries ".env". Missing files are skipped; a file that
// exists but cannot be parsed panics
func LoadDotenv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			logger.Get().Panic().Str("file", f).Err(err).Msg("cannot stat dotenv file")
		}
		if err := godotenv.Load(f); err != nil {
			logger.Get().Panic().Str("file", f).Err(err).Msg("invalid dotenv file")
		}
		logger.Get().Debug().Str("file", f).Msg("dotenv loaded")
	}
}
