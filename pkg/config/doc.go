// Package config builds the promptmix configuration from environment
// variables.
//
// Values are parsed with github.com/caarlos0/env/v11 into App, whose fields
// carry `env` and `envDefault` tags, and then checked by App.Validate.
// github.com/joho/godotenv supplies .env file support:
//
//	if err := config.LoadEnv("deploy/.env"); err != nil { // optional
//	    log.Fatal(err)
//	}
//
//	app, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Parse does the same from an explicit variable map and never touches the
// process environment.
//
// App groups every setting of the binary: APP_ENV, APP_NAME, LOG_LEVEL,
// HTTP_*, SESSION_*, SAMPLER_*, UPLOAD_MAX_BYTES, RATE_LIMIT_* and ARCHIVE_*.
// Errors wrap ErrParsingConfig, ErrInvalidValue or ErrLoadingEnvFile.
package config
