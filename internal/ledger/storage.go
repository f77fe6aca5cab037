package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tokenized/voting/internal/platform/db"
	"github.com/tokenized/voting/pkg/address"

	"github.com/pkg/errors"
)

const storageKey = "accounts"

// Reader loads accounts by address. Missing accounts are returned empty, not as errors.
type Reader interface {
	Get(ctx context.Context, a address.Address) (*Account, error)
}

// ReadWriter is the ledger state the runtime commits to.
type ReadWriter interface {
	Reader
	Put(ctx context.Context, account *Account) error
	Delete(ctx context.Context, a address.Address) error
}

// Store keeps accounts in the platform DB, one value per address.
type Store struct {
	dbConn *db.DB
}

// NewStore returns a Store on the DB.
func NewStore(dbConn *db.DB) *Store {
	return &Store{dbConn: dbConn}
}

// Get fetches a single account.
func (s *Store) Get(ctx context.Context, a address.Address) (*Account, error) {
	data, err := s.dbConn.Fetch(ctx, buildStoragePath(a))
	if err != nil {
		if err == db.ErrNotFound {
			return NewAccount(a), nil
		}
		return nil, errors.Wrap(err, "fetch account")
	}

	result := Account{}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errors.Wrap(err, "unmarshal account")
	}

	if !result.Address.Equal(a) {
		return nil, errors.Errorf("Stored account address mismatch : %s != %s", result.Address, a)
	}

	return &result, nil
}

// Put saves a single account.
func (s *Store) Put(ctx context.Context, account *Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return errors.Wrap(err, "marshal account")
	}

	return s.dbConn.Put(ctx, buildStoragePath(account.Address), data)
}

// Delete removes an account. Removing a missing account is not an error.
func (s *Store) Delete(ctx context.Context, a address.Address) error {
	if err := s.dbConn.Remove(ctx, buildStoragePath(a)); err != nil && err != db.ErrNotFound {
		return err
	}
	return nil
}

// Returns the storage path for an account.
func buildStoragePath(a address.Address) string {
	return fmt.Sprintf("%s/%s", storageKey, a.String())
}
