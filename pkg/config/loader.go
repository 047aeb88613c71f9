package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// AppEnvVar names the variable that selects the environment-specific env file.
const AppEnvVar = "APP_ENV"

var dotenvOnce sync.Once

// Load parses the environment into a new value of T.
//
// On the first call it loads `.<APP_ENV>.env` and `.env` from the working
// directory when they exist. Missing files are not an error.
func Load[T any]() (T, error) {
	dotenvOnce.Do(func() {
		_ = loadDefaultFiles()
	})

	cfg, err := env.ParseAs[T]()
	if err != nil {
		var zero T
		return zero, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad is like Load but panics on error. Intended for process bootstrap.
func MustLoad[T any]() T {
	cfg, err := Load[T]()
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}

// LoadFiles loads the given env files into the process environment.
// Unlike the implicit loading done by Load, every file must exist.
func LoadFiles(files ...string) error {
	if len(files) == 0 {
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

func loadDefaultFiles() error {
	files := make([]string, 0, 2)
	if appEnv := os.Getenv(AppEnvVar); appEnv != "" {
		files = append(files, "."+appEnv+".env")
	}
	files = append(files, ".env")

	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		// godotenv.Load never overrides variables that are already set,
		// so the first file wins for duplicated keys.
		if err := godotenv.Load(f); err != nil {
			return err
		}
	}
	return nil
}
