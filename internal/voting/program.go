package voting

import (
	"context"

	"github.com/tokenized/pkg/logger"
	"github.com/tokenized/voting/internal/platform/node"
	"github.com/tokenized/voting/internal/platform/protomux"
	"github.com/tokenized/voting/internal/runtime"
	"github.com/tokenized/voting/pkg/address"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"
)

// Options turn on checks the base program leaves out. All are off by default.
type Options struct {
	// RequirePoll rejects candidates for polls that were never created.
	RequirePoll bool

	// EnforceWindow rejects polls that end before they start and votes outside the poll window.
	EnforceWindow bool

	// OneVotePerSigner records a receipt per voter and poll and rejects a second vote.
	OneVotePerSigner bool
}

// Program is the voting program. It implements runtime.Program.
type Program struct {
	ID      address.Address
	Options Options

	mux *protomux.ProtoMux
}

// New returns the voting program mounted at id.
func New(id address.Address, opts Options) *Program {
	result := &Program{
		ID:      id,
		Options: opts,
		mux:     protomux.New(),
	}

	result.mux.Handle(initializePollTag, InstructionInitializePoll, result.initializePoll)
	result.mux.Handle(initializeCandidateTag, InstructionInitializeCandidate,
		result.initializeCandidate)
	result.mux.Handle(voteTag, InstructionVote, result.vote)

	return result
}

// Process routes the instruction to its handler.
func (p *Program) Process(ctx context.Context, ictx *runtime.InstructionContext) error {
	ctx, span := trace.StartSpan(ctx, "voting.Process")
	defer span.End()

	if !ictx.ProgramID.Equal(p.ID) {
		return errors.Wrapf(ErrInvalidAccount, "program id %s", ictx.ProgramID)
	}

	if err := p.mux.Trigger(ctx, ictx); err != nil {
		v := node.ValuesFromContext(ctx)
		name, _ := p.mux.Name(ictx.Data)
		logger.Warn(ctx, "%s : Rejected %s : %s", v.TraceID, name, err)
		return err
	}

	return nil
}

// InstructionName returns the name of the instruction encoded in data.
func (p *Program) InstructionName(data []byte) (string, bool) {
	return p.mux.Name(data)
}

func requireAccounts(ictx *runtime.InstructionContext, count int) ([]*runtime.AccountInfo, error) {
	if len(ictx.Accounts) < count {
		return nil, errors.Wrapf(ErrInvalidAccount, "%d accounts, need %d", len(ictx.Accounts),
			count)
	}
	return ictx.Accounts[:count], nil
}

func requireSigner(info *runtime.AccountInfo) error {
	if !info.IsSigner {
		return errors.Wrap(ErrMissingSigner, info.Address.String())
	}
	return nil
}

// checkDerived verifies the account sits at the address derived from seeds and returns the
// seeds with the bump appended.
func checkDerived(info *runtime.AccountInfo, expected address.Address, seeds [][]byte,
	bump uint8) ([][]byte, error) {

	if !info.Address.Equal(expected) {
		return nil, errors.Wrapf(ErrInvalidAccount, "%s != %s", info.Address, expected)
	}
	return append(seeds, []byte{bump}), nil
}

func requireWritable(info *runtime.AccountInfo) error {
	if !info.IsWritable {
		return errors.Wrapf(ErrInvalidAccount, "%s not writable", info.Address)
	}
	return nil
}
