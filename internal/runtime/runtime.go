package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/tokenized/pkg/logger"
	"github.com/tokenized/voting/internal/ledger"
	"github.com/tokenized/voting/internal/platform/node"
	"github.com/tokenized/voting/pkg/address"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"
)

// Program processes the instructions addressed to its id.
type Program interface {
	Process(ctx context.Context, ictx *InstructionContext) error
}

// Runtime applies transactions to the ledger. It is the boundary every program runs inside:
// accounts are locked and staged, each instruction is checked against the ownership rules, and
// the staged accounts are committed only if every instruction succeeds.
type Runtime struct {
	store    ledger.ReadWriter
	locker   *ledger.Locker
	programs map[address.Address]Program
	clock    func() time.Time
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithClock replaces the wall clock handed to programs.
func WithClock(clock func() time.Time) Option {
	return func(r *Runtime) {
		r.clock = clock
	}
}

// New returns a Runtime over the ledger store.
func New(store ledger.ReadWriter, opts ...Option) *Runtime {
	r := &Runtime{
		store:    store,
		locker:   ledger.NewLocker(),
		programs: make(map[address.Address]Program),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register mounts a program at its id.
func (r *Runtime) Register(id address.Address, p Program) {
	r.programs[id] = p
}

// Get returns the committed state of an account. Runtime satisfies ledger.Reader.
func (r *Runtime) Get(ctx context.Context, a address.Address) (*ledger.Account, error) {
	return r.store.Get(ctx, a)
}

// Submit executes every instruction of the transaction and commits the result. On any error
// no account is changed.
func (r *Runtime) Submit(ctx context.Context, tx *Transaction) error {
	ctx, span := trace.StartSpan(ctx, "runtime.Submit")
	defer span.End()

	v := &node.Values{
		TraceID: span.SpanContext().TraceID.String(),
		Now:     r.clock(),
	}
	ctx = node.ContextWithValues(ctx, v)

	if len(tx.Instructions) == 0 {
		return ErrNoInstructions
	}

	if err := r.checkSignatures(tx); err != nil {
		logger.Warn(ctx, "%s : Rejected transaction : %s", v.TraceID, err)
		return err
	}

	for i, ix := range tx.Instructions {
		if _, exists := r.programs[ix.ProgramID]; !exists {
			return errors.Wrapf(ErrProgramNotFound, "instruction %d : %s", i, ix.ProgramID)
		}
	}

	writable, readOnly := tx.Addresses()
	unlock := r.locker.Lock(writable, readOnly)
	defer unlock()

	view, err := ledger.NewView(ctx, r.store, append(writable, readOnly...))
	if err != nil {
		return errors.Wrap(err, "stage accounts")
	}

	for i := range tx.Instructions {
		if err := r.execute(ctx, view, &tx.Instructions[i], v.Now); err != nil {
			view.Discard()
			logger.Warn(ctx, "%s : Instruction %d failed : %s", v.TraceID, i, err)
			return errors.Wrap(err, fmt.Sprintf("instruction %d", i))
		}
	}

	changed := len(view.Changed())
	if err := view.Commit(ctx, r.store); err != nil {
		logger.Error(ctx, "%s : Failed to commit : %s", v.TraceID, err)
		return errors.Wrap(err, "commit")
	}

	logger.Verbose(ctx, "%s : Committed %d instruction(s), %d account(s) changed", v.TraceID,
		len(tx.Instructions), changed)
	return nil
}

func (r *Runtime) checkSignatures(tx *Transaction) error {
	signed := make(map[address.Address]bool, len(tx.Signers))
	for _, s := range tx.Signers {
		if !address.IsOnCurve(s) {
			return errors.Wrap(ErrInvalidSigner, s.String())
		}
		signed[s] = true
	}

	for _, ix := range tx.Instructions {
		for _, meta := range ix.Accounts {
			if meta.IsSigner && !signed[meta.Address] {
				return errors.Wrap(ErrMissingSignature, meta.Address.String())
			}
		}
	}

	return nil
}

func (r *Runtime) execute(ctx context.Context, view *ledger.View, ix *Instruction,
	now time.Time) error {

	ictx := &InstructionContext{
		ProgramID: ix.ProgramID,
		Data:      ix.Data,
		Now:       now,
	}

	before := make(map[address.Address]*ledger.Account, len(ix.Accounts))
	writable := make(map[address.Address]bool, len(ix.Accounts))
	for _, meta := range ix.Accounts {
		account, err := view.Account(meta.Address)
		if err != nil {
			return err
		}

		if _, exists := before[meta.Address]; !exists {
			before[meta.Address] = account.Copy()
		}
		writable[meta.Address] = writable[meta.Address] || meta.IsWritable

		ictx.Accounts = append(ictx.Accounts, &AccountInfo{
			Account:    account,
			IsSigner:   meta.IsSigner,
			IsWritable: meta.IsWritable,
		})
	}

	if err := r.programs[ix.ProgramID].Process(ctx, ictx); err != nil {
		return err
	}

	for a, prior := range before {
		account, _ := view.Account(a)
		if account.Equal(prior) {
			continue
		}

		if !writable[a] {
			return errors.Wrap(ErrReadonlyModified, a.String())
		}

		if prior.Owner.IsZero() {
			if !ictx.assigned[a] || !account.Owner.Equal(ix.ProgramID) {
				return errors.Wrap(ErrUnauthorizedAssign, a.String())
			}
			continue
		}

		if !account.Owner.Equal(prior.Owner) {
			return errors.Wrap(ErrOwnerModified, a.String())
		}

		if !prior.Owner.Equal(ix.ProgramID) {
			return errors.Wrap(ErrExternalAccountModified, a.String())
		}
	}

	return nil
}
