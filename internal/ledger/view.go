package ledger

import (
	"context"

	"github.com/tokenized/pkg/logger"
	"github.com/tokenized/voting/pkg/address"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"
)

var (
	ErrAccountNotInView = errors.New("Account not loaded in view")
	ErrViewClosed       = errors.New("View already committed or discarded")
)

// View is the staging copy of the accounts one transaction touches. Programs mutate the
// staged accounts. Nothing reaches the ledger until Commit.
type View struct {
	staged    map[address.Address]*Account
	originals map[address.Address]*Account
	order     []address.Address
	closed    bool
}

// NewView loads each address once from the reader.
func NewView(ctx context.Context, r Reader, addresses []address.Address) (*View, error) {
	ctx, span := trace.StartSpan(ctx, "ledger.NewView")
	defer span.End()

	result := &View{
		staged:    make(map[address.Address]*Account, len(addresses)),
		originals: make(map[address.Address]*Account, len(addresses)),
	}

	for _, a := range addresses {
		if _, exists := result.staged[a]; exists {
			continue
		}

		account, err := r.Get(ctx, a)
		if err != nil {
			return nil, errors.Wrapf(err, "load %s", a)
		}

		result.originals[a] = account
		result.staged[a] = account.Copy()
		result.order = append(result.order, a)
	}

	return result, nil
}

// Account returns the staged account.
func (v *View) Account(a address.Address) (*Account, error) {
	account, exists := v.staged[a]
	if !exists {
		return nil, errors.Wrap(ErrAccountNotInView, a.String())
	}
	return account, nil
}

// Original returns the account as it was loaded.
func (v *View) Original(a address.Address) (*Account, error) {
	account, exists := v.originals[a]
	if !exists {
		return nil, errors.Wrap(ErrAccountNotInView, a.String())
	}
	return account, nil
}

// Changed returns the staged accounts that differ from their originals, in load order.
func (v *View) Changed() []*Account {
	var result []*Account
	for _, a := range v.order {
		if !v.staged[a].Equal(v.originals[a]) {
			result = append(result, v.staged[a])
		}
	}
	return result
}

// Commit writes every changed account. If a write fails the accounts already written are
// restored to their originals before the error is returned.
func (v *View) Commit(ctx context.Context, rw ReadWriter) error {
	ctx, span := trace.StartSpan(ctx, "ledger.View.Commit")
	defer span.End()

	if v.closed {
		return ErrViewClosed
	}
	v.closed = true

	var written []*Account
	for _, account := range v.Changed() {
		if err := rw.Put(ctx, account); err != nil {
			v.restore(ctx, rw, written)
			return errors.Wrapf(err, "commit %s", account.Address)
		}
		written = append(written, account)
	}

	return nil
}

// Discard drops every staged change.
func (v *View) Discard() {
	v.closed = true
	for a, original := range v.originals {
		v.staged[a] = original.Copy()
	}
}

func (v *View) restore(ctx context.Context, rw ReadWriter, written []*Account) {
	for _, account := range written {
		original := v.originals[account.Address]

		var err error
		if original.IsInitialized() {
			err = rw.Put(ctx, original)
		} else {
			err = rw.Delete(ctx, original.Address)
		}

		if err != nil {
			logger.Error(ctx, "Failed to restore account %s : %s", account.Address, err)
		}
	}
}
