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

// initializeCandidate creates the candidate account derived from the poll id and name. When the
// poll exists its candidate count is incremented.
//
// Accounts: [signer, poll (writable), candidate (writable)]
func (p *Program) initializeCandidate(ctx context.Context, ictx *runtime.InstructionContext,
	data []byte) error {
	ctx, span := trace.StartSpan(ctx, "voting.InitializeCandidate")
	defer span.End()

	v := node.ValuesFromContext(ctx)

	var args CandidateArgs
	if err := args.deserialize(data); err != nil {
		return err
	}

	accounts, err := requireAccounts(ictx, 3)
	if err != nil {
		return err
	}
	signer, pollInfo, candidateInfo := accounts[0], accounts[1], accounts[2]

	if err := requireSigner(signer); err != nil {
		return err
	}

	if err := checkCandidateName(args.CandidateName); err != nil {
		return err
	}

	pollAddress, _, err := PollAddress(ictx.ProgramID, args.PollID)
	if err != nil {
		return errors.Wrap(err, "derive poll")
	}
	if !pollInfo.Address.Equal(pollAddress) {
		return errors.Wrapf(ErrInvalidAccount, "poll %s != %s", pollInfo.Address, pollAddress)
	}

	candidateAddress, bump, err := CandidateAddress(ictx.ProgramID, args.PollID,
		args.CandidateName)
	if err != nil {
		return errors.Wrap(err, "derive candidate")
	}

	seeds, err := checkDerived(candidateInfo, candidateAddress,
		CandidateSeeds(args.PollID, args.CandidateName), bump)
	if err != nil {
		return err
	}

	if err := requireWritable(candidateInfo); err != nil {
		return err
	}

	if candidateInfo.IsInitialized() {
		return errors.Wrapf(ErrAlreadyInitialized, "candidate %q in poll %d",
			args.CandidateName, args.PollID)
	}

	var poll *state.Poll
	if pollInfo.IsInitialized() {
		if !pollInfo.Owner.Equal(ictx.ProgramID) {
			return errors.Wrapf(ErrInvalidAccount, "poll owned by %s", pollInfo.Owner)
		}

		poll, err = state.DeserializePoll(pollInfo.Data)
		if err != nil {
			return errors.Wrap(ErrInvalidAccount, err.Error())
		}

		if err := requireWritable(pollInfo); err != nil {
			return err
		}
	} else if p.Options.RequirePoll {
		return errors.Wrapf(ErrNotFound, "poll %d", args.PollID)
	}

	if err := ictx.Assign(candidateInfo, seeds); err != nil {
		return errors.Wrap(err, "assign candidate")
	}

	candidate := &state.Candidate{
		CandidateName: args.CandidateName,
		PollID:        args.PollID,
	}

	b, err := candidate.Serialize()
	if err != nil {
		return errors.Wrap(err, "serialize candidate")
	}
	candidateInfo.Data = b

	if poll != nil {
		poll.CandidateAmount++
		pb, err := poll.Serialize()
		if err != nil {
			return errors.Wrap(err, "serialize poll")
		}
		pollInfo.Data = pb
	}

	logger.Info(ctx, "%s : Initialized candidate %q for poll %d at %s", v.TraceID,
		args.CandidateName, args.PollID, candidateInfo.Address)
	return nil
}
