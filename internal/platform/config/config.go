package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config is used to hold all runtime configuration.
type Config struct {
	Program struct {
		ID               string `default:"6z68wfurCMYkZG51s1Et9BJEd9nJGUusjHXNt4dGbNNF" envconfig:"PROGRAM_ID" json:"PROGRAM_ID"`
		RequirePoll      bool   `default:"false" envconfig:"REQUIRE_POLL" json:"REQUIRE_POLL"`
		EnforceWindow    bool   `default:"false" envconfig:"ENFORCE_WINDOW" json:"ENFORCE_WINDOW"`
		OneVotePerSigner bool   `default:"false" envconfig:"ONE_VOTE_PER_SIGNER" json:"ONE_VOTE_PER_SIGNER"`
	}
	Signer struct {
		Key string `envconfig:"SIGNER_KEY" json:"SIGNER_KEY"` // hex secp256k1 private key
	}
	Log struct {
		Development bool   `default:"true" envconfig:"DEVELOPMENT" json:"DEVELOPMENT"`
		Format      string `default:"text" envconfig:"LOG_FORMAT" json:"LOG_FORMAT"`
		FilePath    string `envconfig:"LOG_FILE_PATH" json:"LOG_FILE_PATH"`
	}
	Ledger struct {
		LockTimeout int `default:"0" envconfig:"LEDGER_LOCK_TIMEOUT" json:"LEDGER_LOCK_TIMEOUT"` // Milliseconds, 0 waits forever
	}
	API struct {
		Host            string `default:"0.0.0.0:8080" envconfig:"API_HOST" json:"API_HOST"`
		ReadTimeout     int    `default:"10000" envconfig:"API_READ_TIMEOUT" json:"API_READ_TIMEOUT"` // Milliseconds
		WriteTimeout    int    `default:"10000" envconfig:"API_WRITE_TIMEOUT" json:"API_WRITE_TIMEOUT"`
		ShutdownTimeout int    `default:"5000" envconfig:"API_SHUTDOWN_TIMEOUT" json:"API_SHUTDOWN_TIMEOUT"`
	}
	AWS struct {
		Region          string `default:"ap-southeast-2" envconfig:"AWS_REGION" json:"AWS_REGION"`
		AccessKeyID     string `envconfig:"AWS_ACCESS_KEY_ID" json:"AWS_ACCESS_KEY_ID"`
		SecretAccessKey string `envconfig:"AWS_SECRET_ACCESS_KEY" json:"AWS_SECRET_ACCESS_KEY"`
		MaxRetries      int    `default:"4" envconfig:"AWS_MAX_RETRIES" json:"AWS_MAX_RETRIES"`
	}
	Storage struct {
		Bucket string `default:"standalone" envconfig:"LEDGER_STORAGE_BUCKET" json:"LEDGER_STORAGE_BUCKET"`
		Root   string `default:"./tmp" envconfig:"LEDGER_STORAGE_ROOT" json:"LEDGER_STORAGE_ROOT"`
		DSN    string `envconfig:"LEDGER_STORAGE_DSN" json:"LEDGER_STORAGE_DSN"`
	}
}

// SafeConfig masks sensitive config values
func SafeConfig(cfg Config) *Config {
	cfgSafe := cfg

	if len(cfgSafe.Signer.Key) > 0 {
		cfgSafe.Signer.Key = "*** Masked ***"
	}
	if len(cfgSafe.AWS.AccessKeyID) > 0 {
		cfgSafe.AWS.AccessKeyID = "*** Masked ***"
	}
	if len(cfgSafe.AWS.SecretAccessKey) > 0 {
		cfgSafe.AWS.SecretAccessKey = "*** Masked ***"
	}
	if len(cfgSafe.Storage.DSN) > 0 {
		cfgSafe.Storage.DSN = "*** Masked ***"
	}

	return &cfgSafe
}

// Environment returns configuration sourced from environment variables. Values in a .env file
// are loaded first when one exists, without overriding the environment.
func Environment() (*Config, error) {
	envFile := os.Getenv("VOTING_ENV_FILE")
	if len(envFile) == 0 {
		envFile = ".env"
	}

	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, errors.Wrap(err, "load env file")
		}
	}

	var cfg Config

	if err := envconfig.Process("VOTING", &cfg); err != nil {
		return nil, errors.Wrap(err, "process env")
	}

	return &cfg, nil
}
