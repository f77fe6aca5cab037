package tests

import (
	"context"
	"os"
	"sync/atomic"
	"time"

	"github.com/tokenized/pkg/logger"
	"github.com/tokenized/voting/internal/ledger"
	"github.com/tokenized/voting/internal/platform/db"
	"github.com/tokenized/voting/internal/platform/node"
	"github.com/tokenized/voting/internal/runtime"
	"github.com/tokenized/voting/pkg/address"
	"github.com/tokenized/voting/pkg/storage"

	"github.com/btcsuite/btcd/btcec"
	"github.com/pkg/errors"
)

// Test is an in memory ledger with a controllable clock.
type Test struct {
	logConfig *logger.Config
	now       int64

	Storage *storage.MockStorage
	DB      *db.DB
	Ledger  *ledger.Store
	Runtime *runtime.Runtime
}

// Key is a signer key and its ledger address.
type Key struct {
	PrivateKey *btcec.PrivateKey
	Address    address.Address
}

// DefaultNow is the clock value of a new Test.
const DefaultNow = 1700000000

func (test *Test) Setup(ctx context.Context) error {
	test.logConfig = logger.NewDevelopmentConfig()
	test.logConfig.Main.SetWriter(os.Stdout)
	test.logConfig.Main.Format |= logger.IncludeSystem | logger.IncludeMicro
	test.logConfig.Main.MinLevel = logger.LevelInfo

	test.now = DefaultNow
	test.Storage = storage.NewMockStorage()
	test.DB = db.NewWithStorage(test.Storage)
	test.Ledger = ledger.NewStore(test.DB)
	test.Runtime = runtime.New(test.Ledger, runtime.WithClock(test.Now))

	if err := test.DB.StatusCheck(test.Context(ctx, "setup")); err != nil {
		return errors.Wrap(err, "Failed to check DB")
	}

	return nil
}

func (test *Test) Close(ctx context.Context) {
	if test.DB != nil {
		test.DB.Close()
	}
}

// Context returns a context with the test logger and transaction values.
func (test *Test) Context(ctx context.Context, traceID string) context.Context {
	v := node.Values{
		TraceID: traceID,
		Now:     test.Now(),
	}
	ctx = node.ContextWithValues(ctx, &v)

	return logger.ContextWithLogConfig(ctx, test.logConfig)
}

// Now is the clock handed to the runtime.
func (test *Test) Now() time.Time {
	return time.Unix(atomic.LoadInt64(&test.now), 0)
}

// SetNow moves the clock to a unix time in seconds.
func (test *Test) SetNow(unix int64) {
	atomic.StoreInt64(&test.now, unix)
}

func (test *Test) GenerateKey() (*Key, error) {
	key, err := btcec.NewPrivateKey(btcec.S256())
	if err != nil {
		return nil, errors.Wrap(err, "Failed to generate key")
	}

	return &Key{
		PrivateKey: key,
		Address:    address.SignerAddress(key.PubKey()),
	}, nil
}
