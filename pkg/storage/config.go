package storage

import "fmt"

const (
	// DefaultMaxRetries is the number of retries for a write operation
	DefaultMaxRetries = 4

	// DefaultTable is the PostgreSQL table that holds values.
	DefaultTable = "storage_values"
)

// Config holds all configuration for the Storage.
//
// Config is geared towards "bucket" style storage, where you have a
// specific root (the Bucket).
type Config struct {
	Region     string
	AccessKey  string
	Secret     string
	Bucket     string
	Root       string
	MaxRetries int

	// DSN selects the PostgreSQL backend when set.
	DSN   string
	Table string
}

// NewConfig returns a new Config with AWS style options.
func NewConfig(bucket, root string) Config {
	return Config{
		Bucket:     bucket,
		Root:       root,
		MaxRetries: DefaultMaxRetries,
		Table:      DefaultTable,
	}
}

func (c Config) String() string {
	root := ""
	if len(c.Root) > 0 {
		root = fmt.Sprintf("Root:%s", c.Root)
	}

	dsn := ""
	if len(c.DSN) > 0 {
		dsn = "DSN:*** Masked ***"
	}

	return fmt.Sprintf("{Region:%v Bucket:%v %s %s MaxRetries:%v}",
		c.Region,
		c.Bucket,
		root,
		dsn,
		c.MaxRetries)
}
