package voting

import (
	"context"

	"github.com/tokenized/pkg/logger"
	"github.com/tokenized/voting/internal/platform/node"
	"github.com/tokenized/voting/internal/platform/state"
	"github.com/tokenized/voting/internal/runtime"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"
)

// initializePoll creates the poll account derived from the poll id.
//
// Accounts: [signer, poll (writable)]
func (p *Program) initializePoll(ctx context.Context, ictx *runtime.InstructionContext,
	data []byte) error {
	ctx, span := trace.StartSpan(ctx, "voting.InitializePoll")
	defer span.End()

	v := node.ValuesFromContext(ctx)

	var args InitializePollArgs
	if err := args.deserialize(data); err != nil {
		return err
	}

	accounts, err := requireAccounts(ictx, 2)
	if err != nil {
		return err
	}
	signer, pollInfo := accounts[0], accounts[1]

	if err := requireSigner(signer); err != nil {
		return err
	}

	if len(args.Description) > state.MaxDescriptionLength {
		return errors.Wrapf(ErrInvalidInput, "description length %d > %d",
			len(args.Description), state.MaxDescriptionLength)
	}

	if p.Options.EnforceWindow && args.PollStart > args.PollEnd {
		return errors.Wrapf(ErrInvalidInput, "poll start %d after end %d", args.PollStart,
			args.PollEnd)
	}

	pollAddress, bump, err := PollAddress(ictx.ProgramID, args.PollID)
	if err != nil {
		return errors.Wrap(err, "derive poll")
	}

	seeds, err := checkDerived(pollInfo, pollAddress, PollSeeds(args.PollID), bump)
	if err != nil {
		return err
	}

	if err := requireWritable(pollInfo); err != nil {
		return err
	}

	if pollInfo.IsInitialized() {
		return errors.Wrapf(ErrAlreadyInitialized, "poll %d", args.PollID)
	}

	if err := ictx.Assign(pollInfo, seeds); err != nil {
		return errors.Wrap(err, "assign poll")
	}

	poll := &state.Poll{
		PollID:      args.PollID,
		Description: args.Description,
		PollStart:   args.PollStart,
		PollEnd:     args.PollEnd,
	}

	b, err := poll.Serialize()
	if err != nil {
		return errors.Wrap(err, "serialize poll")
	}
	pollInfo.Data = b

	logger.Info(ctx, "%s : Initialized poll %d at %s by %s", v.TraceID, args.PollID,
		pollInfo.Address, signer.Address)
	return nil
}
