package env

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const DefaultEnvFile = ".env"

// InitConfig loads dotenv files (DefaultEnvFile when none are given) and
// fills config from the process environment. Missing dotenv files are ignored;
// variables already set in the environment win over file values.
func InitConfig(config any, envFiles ...string) error {
	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}
	for _, f := range envFiles {
		// nolint:errcheck // dotenv files are optional
		_ = godotenv.Load(f)
	}

	if err := envconfig.Process("", config); err != nil {
		return errors.Wrap(err, "failed to envconfig.Process")
	}

	return nil
}
