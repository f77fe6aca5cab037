package bootstrap

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/tokenized/pkg/logger"
	"github.com/tokenized/voting/internal/ledger"
	"github.com/tokenized/voting/internal/platform/config"
	"github.com/tokenized/voting/internal/platform/db"
	"github.com/tokenized/voting/internal/platform/node"
	"github.com/tokenized/voting/internal/runtime"
	"github.com/tokenized/voting/internal/voting"
	"github.com/tokenized/voting/pkg/address"

	"github.com/btcsuite/btcd/btcec"
	"github.com/pkg/errors"
)

// NewContextWithDevelopmentLogger returns a context with a text development logger. It is only
// used until the config is loaded.
func NewContextWithDevelopmentLogger() context.Context {
	return node.ContextWithLogger(context.Background(), true, true, "")
}

// LogOptions returns the logger settings from the Log section of the config.
func LogOptions(cfg *config.Config) (isDevelopment, isText bool, filePath string) {
	return cfg.Log.Development, strings.ToLower(cfg.Log.Format) != "json", cfg.Log.FilePath
}

// NewContextWithConfigLogger returns a context with the logger described by the config.
func NewContextWithConfigLogger(cfg *config.Config) context.Context {
	isDevelopment, isText, filePath := LogOptions(cfg)
	return node.ContextWithLogger(context.Background(), isDevelopment, isText, filePath)
}

func NewConfigFromEnv(ctx context.Context) *config.Config {
	cfg, err := config.Environment()
	if err != nil {
		logger.Fatal(ctx, "Parsing Config : %s", err)
	}

	// Mask sensitive values
	cfgSafe := config.SafeConfig(*cfg)
	cfgJSON, err := json.MarshalIndent(cfgSafe, "", "    ")
	if err != nil {
		logger.Fatal(ctx, "Marshalling Config to JSON : %s", err)
	}
	logger.Verbose(ctx, "Config : %v", string(cfgJSON))

	return cfg
}

func NewMasterDB(ctx context.Context, cfg *config.Config) *db.DB {
	masterDB, err := db.New(&db.StorageConfig{
		Region:     cfg.AWS.Region,
		AccessKey:  cfg.AWS.AccessKeyID,
		Secret:     cfg.AWS.SecretAccessKey,
		Bucket:     cfg.Storage.Bucket,
		Root:       cfg.Storage.Root,
		DSN:        cfg.Storage.DSN,
		MaxRetries: cfg.AWS.MaxRetries,
	})
	if err != nil {
		logger.Fatal(ctx, "Register DB : %s", err)
	}

	return masterDB
}

func NewProgramID(ctx context.Context, cfg *config.Config) address.Address {
	id, err := address.Decode(cfg.Program.ID)
	if err != nil {
		logger.Fatal(ctx, "Invalid program id : %s", err)
	}
	return id
}

// NewRuntime returns a runtime over the master DB with the voting program registered.
func NewRuntime(ctx context.Context, cfg *config.Config, masterDB *db.DB) *runtime.Runtime {
	programID := NewProgramID(ctx, cfg)

	ledger.ConfigureLocks(Timeout(cfg.Ledger.LockTimeout))

	rt := runtime.New(ledger.NewStore(masterDB))
	rt.Register(programID, voting.New(programID, voting.Options{
		RequirePoll:      cfg.Program.RequirePoll,
		EnforceWindow:    cfg.Program.EnforceWindow,
		OneVotePerSigner: cfg.Program.OneVotePerSigner,
	}))

	logger.Info(ctx, "Voting program %s", programID)
	return rt
}

// NewClient returns a client for the configured program.
func NewClient(ctx context.Context, cfg *config.Config, rt *runtime.Runtime) *voting.Client {
	return voting.NewClient(NewProgramID(ctx, cfg), rt)
}

// NewSigner returns the configured signer key and its address.
func NewSigner(cfg *config.Config) (*btcec.PrivateKey, address.Address, error) {
	if len(cfg.Signer.Key) == 0 {
		return nil, address.Zero, errors.New("Missing signer key")
	}

	b, err := hex.DecodeString(cfg.Signer.Key)
	if err != nil {
		return nil, address.Zero, errors.Wrap(err, "decode signer key")
	}
	if len(b) != btcec.PrivKeyBytesLen {
		return nil, address.Zero, errors.Errorf("Signer key must be %d bytes",
			btcec.PrivKeyBytesLen)
	}

	key, pub := btcec.PrivKeyFromBytes(btcec.S256(), b)
	return key, address.SignerAddress(pub), nil
}

// Timeout converts a millisecond config value.
func Timeout(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
