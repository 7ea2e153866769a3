package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// DefaultDotEnvPath is the file loaded when no explicit path is given.
const DefaultDotEnvPath = ".env"

// LoadDotEnv loads variables from a dotenv file without overriding the process environment.
// A missing default file is not an error; a missing explicit file is.
func LoadDotEnv(path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultDotEnvPath
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("dotenv %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error loading dotenv file %s: %w", path, err)
	}
	return nil
}
