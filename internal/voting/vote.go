package voting

import (
	"context"
	"math"

	"github.com/tokenized/pkg/logger"
	"github.com/tokenized/voting/internal/platform/node"
	"github.com/tokenized/voting/internal/platform/state"
	"github.com/tokenized/voting/internal/runtime"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"
)

// vote adds one to the tally of an existing candidate.
//
// Accounts: [signer, poll, candidate (writable), receipt (writable)]
// The receipt account is only used when OneVotePerSigner is set and may be omitted otherwise.
func (p *Program) vote(ctx context.Context, ictx *runtime.InstructionContext,
	data []byte) error {
	ctx, span := trace.StartSpan(ctx, "voting.Vote")
	defer span.End()

	v := node.ValuesFromContext(ctx)

	var args CandidateArgs
	if err := args.deserialize(data); err != nil {
		return err
	}

	count := 3
	if p.Options.OneVotePerSigner {
		count = 4
	}
	accounts, err := requireAccounts(ictx, count)
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

	candidateAddress, _, err := CandidateAddress(ictx.ProgramID, args.PollID,
		args.CandidateName)
	if err != nil {
		return errors.Wrap(err, "derive candidate")
	}
	if !candidateInfo.Address.Equal(candidateAddress) {
		return errors.Wrapf(ErrInvalidAccount, "candidate %s != %s", candidateInfo.Address,
			candidateAddress)
	}

	if !candidateInfo.IsInitialized() {
		return errors.Wrapf(ErrNotFound, "candidate %q in poll %d", args.CandidateName,
			args.PollID)
	}
	if !candidateInfo.Owner.Equal(ictx.ProgramID) {
		return errors.Wrapf(ErrInvalidAccount, "candidate owned by %s", candidateInfo.Owner)
	}

	if err := requireWritable(candidateInfo); err != nil {
		return err
	}

	candidate, err := state.DeserializeCandidate(candidateInfo.Data)
	if err != nil {
		return errors.Wrap(ErrInvalidAccount, err.Error())
	}

	if p.Options.EnforceWindow {
		if err := p.checkWindow(ictx, pollInfo, args.PollID); err != nil {
			return err
		}
	}

	if candidate.CandidateVotes == math.MaxUint64 {
		return errors.Wrapf(ErrInvalidInput, "candidate %q vote count overflow",
			args.CandidateName)
	}

	if p.Options.OneVotePerSigner {
		if err := p.recordReceipt(ictx, accounts[3], signer, &args); err != nil {
			return err
		}
	}

	candidate.CandidateVotes++
	b, err := candidate.Serialize()
	if err != nil {
		return errors.Wrap(err, "serialize candidate")
	}
	candidateInfo.Data = b

	logger.Verbose(ctx, "%s : Vote for %q in poll %d by %s, tally %d", v.TraceID,
		args.CandidateName, args.PollID, signer.Address, candidate.CandidateVotes)
	return nil
}

// checkWindow requires the poll to exist and the instruction time to be inside its window.
func (p *Program) checkWindow(ictx *runtime.InstructionContext, pollInfo *runtime.AccountInfo,
	pollID uint64) error {

	pollAddress, _, err := PollAddress(ictx.ProgramID, pollID)
	if err != nil {
		return errors.Wrap(err, "derive poll")
	}
	if !pollInfo.Address.Equal(pollAddress) {
		return errors.Wrapf(ErrInvalidAccount, "poll %s != %s", pollInfo.Address, pollAddress)
	}

	if !pollInfo.IsInitialized() {
		return errors.Wrapf(ErrNotFound, "poll %d", pollID)
	}
	if !pollInfo.Owner.Equal(ictx.ProgramID) {
		return errors.Wrapf(ErrInvalidAccount, "poll owned by %s", pollInfo.Owner)
	}

	poll, err := state.DeserializePoll(pollInfo.Data)
	if err != nil {
		return errors.Wrap(ErrInvalidAccount, err.Error())
	}

	now := ictx.Now.Unix()
	if now < 0 || !poll.IsOpen(uint64(now)) {
		return errors.Wrapf(ErrPollNotActive, "now %d, window %d to %d", now, poll.PollStart,
			poll.PollEnd)
	}

	return nil
}

// recordReceipt creates the receipt of the signer for the poll, failing if one exists.
func (p *Program) recordReceipt(ictx *runtime.InstructionContext, receiptInfo,
	signer *runtime.AccountInfo, args *CandidateArgs) error {

	receiptAddress, bump, err := ReceiptAddress(ictx.ProgramID, args.PollID, signer.Address)
	if err != nil {
		return errors.Wrap(err, "derive receipt")
	}

	seeds, err := checkDerived(receiptInfo, receiptAddress,
		ReceiptSeeds(args.PollID, signer.Address), bump)
	if err != nil {
		return err
	}

	if err := requireWritable(receiptInfo); err != nil {
		return err
	}

	if receiptInfo.IsInitialized() {
		return errors.Wrapf(ErrAlreadyVoted, "%s in poll %d", signer.Address, args.PollID)
	}

	if err := ictx.Assign(receiptInfo, seeds); err != nil {
		return errors.Wrap(err, "assign receipt")
	}

	receipt := &state.VoteReceipt{
		PollID:    args.PollID,
		Voter:     signer.Address,
		Candidate: args.CandidateName,
	}

	b, err := receipt.Serialize()
	if err != nil {
		return errors.Wrap(err, "serialize receipt")
	}
	receiptInfo.Data = b
	return nil
}
