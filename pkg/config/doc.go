// Package config loads typed configuration from the process environment.
//
// Values are read from `.env` files first (optional) and then parsed into
// any struct annotated with `env` tags by github.com/caarlos0/env/v11. The
// environment-specific file `.<APP_ENV>.env` is tried before the plain `.env`
// so local, staging and test setups can keep separate secrets next to each
// other:
//
//	type Config struct {
//		DB  pg.Config
//		JWT jwt.Config
//	}
//
//	cfg, err := config.Load[Config]()
//
// Variables already present in the environment always win over file values.
package config
