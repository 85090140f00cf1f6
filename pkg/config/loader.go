package config

import (
	"errors"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Load reads the optional ".env" file of the working directory, parses the
// process environment into an App and validates it. Variables that are
// already set take precedence over the file.
func Load() (App, error) {
	// The default file is optional.
	_ = godotenv.Load()
	return Parse(env.ToMap(os.Environ()))
}

// Parse builds an App from the given variables, applying envDefault values
// for anything absent, and validates the result.
func Parse(environ map[string]string) (App, error) {
	if environ == nil {
		environ = map[string]string{}
	}

	var app App
	if err := env.ParseWithOptions(&app, env.Options{Environment: environ}); err != nil {
		return App{}, errors.Join(ErrParsingConfig, err)
	}
	if err := app.Validate(); err != nil {
		return App{}, err
	}
	return app, nil
}

// LoadEnv loads one or more .env files into the process environment without
// overriding variables that are already set. With no arguments it loads
// ".env" from the working directory. Missing files are an error.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}
