package voting

import (
	"github.com/tokenized/voting/internal/platform/state"
	"github.com/tokenized/voting/internal/runtime"
	"github.com/tokenized/voting/pkg/address"

	"github.com/pkg/errors"
)

const (
	InstructionInitializePoll      = "initialize_poll"
	InstructionInitializeCandidate = "initialize_candidate"
	InstructionVote                = "vote"

	// maxArgString bounds strings in instruction data. Text fields are checked against their
	// own limits by the handlers so oversized input is reported as InvalidInput.
	maxArgString = 1232
)

var (
	initializePollTag      = state.Discriminator("global:" + InstructionInitializePoll)
	initializeCandidateTag = state.Discriminator("global:" + InstructionInitializeCandidate)
	voteTag                = state.Discriminator("global:" + InstructionVote)
)

// InitializePollArgs are the arguments of initialize_poll.
type InitializePollArgs struct {
	PollID      uint64
	Description string
	PollStart   uint64
	PollEnd     uint64
}

// CandidateArgs are the arguments of initialize_candidate and vote.
type CandidateArgs struct {
	CandidateName string
	PollID        uint64
}

func (a *InitializePollArgs) Serialize() ([]byte, error) {
	var e state.Encoder
	e.Tag(initializePollTag)
	e.U64(a.PollID)
	if err := e.String(a.Description, maxArgString); err != nil {
		return nil, err
	}
	e.U64(a.PollStart)
	e.U64(a.PollEnd)
	return e.Result(0)
}

func (a *InitializePollArgs) deserialize(b []byte) error {
	d := state.NewDecoder(b)
	a.PollID = d.U64()
	a.Description = d.String(maxArgString)
	a.PollStart = d.U64()
	a.PollEnd = d.U64()
	return finish(d)
}

func (a *CandidateArgs) serialize(tag [state.DiscriminatorSize]byte) ([]byte, error) {
	var e state.Encoder
	e.Tag(tag)
	if err := e.String(a.CandidateName, maxArgString); err != nil {
		return nil, err
	}
	e.U64(a.PollID)
	return e.Result(0)
}

func (a *CandidateArgs) deserialize(b []byte) error {
	d := state.NewDecoder(b)
	a.CandidateName = d.String(maxArgString)
	a.PollID = d.U64()
	return finish(d)
}

func finish(d *state.Decoder) error {
	if err := d.Err(); err != nil {
		return errors.Wrap(ErrInvalidInput, err.Error())
	}
	if len(d.Remaining()) > 0 {
		return errors.Wrapf(ErrInvalidInput, "%d trailing bytes", len(d.Remaining()))
	}
	return nil
}

// NewInitializePollInstruction builds initialize_poll with its derived accounts.
func NewInitializePollInstruction(programID, signer address.Address,
	args InitializePollArgs) (*runtime.Instruction, error) {

	poll, _, err := PollAddress(programID, args.PollID)
	if err != nil {
		return nil, errors.Wrap(err, "derive poll")
	}

	data, err := args.Serialize()
	if err != nil {
		return nil, errors.Wrap(err, "serialize args")
	}

	return &runtime.Instruction{
		ProgramID: programID,
		Accounts: []runtime.AccountMeta{
			{Address: signer, IsSigner: true, IsWritable: true},
			{Address: poll, IsWritable: true},
		},
		Data: data,
	}, nil
}

// NewInitializeCandidateInstruction builds initialize_candidate with its derived accounts.
func NewInitializeCandidateInstruction(programID, signer address.Address,
	args CandidateArgs) (*runtime.Instruction, error) {

	poll, _, err := PollAddress(programID, args.PollID)
	if err != nil {
		return nil, errors.Wrap(err, "derive poll")
	}

	candidate, _, err := CandidateAddress(programID, args.PollID, args.CandidateName)
	if err != nil {
		return nil, errors.Wrap(err, "derive candidate")
	}

	data, err := args.serialize(initializeCandidateTag)
	if err != nil {
		return nil, errors.Wrap(err, "serialize args")
	}

	return &runtime.Instruction{
		ProgramID: programID,
		Accounts: []runtime.AccountMeta{
			{Address: signer, IsSigner: true, IsWritable: true},
			{Address: poll, IsWritable: true},
			{Address: candidate, IsWritable: true},
		},
		Data: data,
	}, nil
}

// NewVoteInstruction builds vote with its derived accounts, including the signer's receipt.
func NewVoteInstruction(programID, signer address.Address,
	args CandidateArgs) (*runtime.Instruction, error) {

	poll, _, err := PollAddress(programID, args.PollID)
	if err != nil {
		return nil, errors.Wrap(err, "derive poll")
	}

	candidate, _, err := CandidateAddress(programID, args.PollID, args.CandidateName)
	if err != nil {
		return nil, errors.Wrap(err, "derive candidate")
	}

	receipt, _, err := ReceiptAddress(programID, args.PollID, signer)
	if err != nil {
		return nil, errors.Wrap(err, "derive receipt")
	}

	data, err := args.serialize(voteTag)
	if err != nil {
		return nil, errors.Wrap(err, "serialize args")
	}

	return &runtime.Instruction{
		ProgramID: programID,
		Accounts: []runtime.AccountMeta{
			{Address: signer, IsSigner: true, IsWritable: true},
			{Address: poll},
			{Address: candidate, IsWritable: true},
			{Address: receipt, IsWritable: true},
		},
		Data: data,
	}, nil
}
