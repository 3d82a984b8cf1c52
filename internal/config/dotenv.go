package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const defaultDotEnvFile = ".env"

// loadDotEnv loads KEY=VALUE pairs into the process environment.
//
// The file is taken from the DOTENV variable, falling back to ".env" in the
// working directory. A missing default file is not an error; a missing file
// named explicitly by DOTENV is. Variables already present in the
// environment are never overridden.
func loadDotEnv() error {
	path, explicit := os.LookupEnv("DOTENV")
	if !explicit || path == "" {
		path = defaultDotEnvFile
		explicit = false
	}

	err := godotenv.Load(path)
	if err == nil {
		return nil
	}

	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("error loading dotenv file %q: %w", path, err)
}
