package voting

import (
	"context"

	"github.com/tokenized/voting/internal/ledger"
	"github.com/tokenized/voting/internal/platform/state"
	"github.com/tokenized/voting/pkg/address"

	"github.com/pkg/errors"
)

var receiptSeed = []byte("receipt")

// PollSeeds returns the derivation seeds of a poll account, without the bump.
func PollSeeds(pollID uint64) [][]byte {
	return [][]byte{address.U64Seed(pollID)}
}

// CandidateSeeds returns the derivation seeds of a candidate account, without the bump.
func CandidateSeeds(pollID uint64, candidateName string) [][]byte {
	return [][]byte{address.U64Seed(pollID), []byte(candidateName)}
}

// ReceiptSeeds returns the derivation seeds of a vote receipt account, without the bump.
func ReceiptSeeds(pollID uint64, voter address.Address) [][]byte {
	return [][]byte{receiptSeed, address.U64Seed(pollID), voter.Bytes()}
}

// PollAddress derives the poll account address and bump.
func PollAddress(programID address.Address, pollID uint64) (address.Address, uint8, error) {
	return address.FindProgramAddress(PollSeeds(pollID), programID)
}

// CandidateAddress derives the candidate account address and bump.
func CandidateAddress(programID address.Address, pollID uint64,
	candidateName string) (address.Address, uint8, error) {

	if err := checkCandidateName(candidateName); err != nil {
		return address.Zero, 0, err
	}
	return address.FindProgramAddress(CandidateSeeds(pollID, candidateName), programID)
}

// checkCandidateName bounds a candidate name. An empty name is rejected because seeds are
// concatenated, so [pollID, ""] derives the same address as the poll [pollID].
func checkCandidateName(name string) error {
	if len(name) == 0 {
		return errors.Wrap(ErrInvalidInput, "empty candidate name")
	}
	if len(name) > state.MaxCandidateNameLength {
		return errors.Wrapf(ErrInvalidInput, "candidate name length %d > %d", len(name),
			state.MaxCandidateNameLength)
	}
	return nil
}

// ReceiptAddress derives the vote receipt address of a voter in a poll.
func ReceiptAddress(programID address.Address, pollID uint64,
	voter address.Address) (address.Address, uint8, error) {

	return address.FindProgramAddress(ReceiptSeeds(pollID, voter), programID)
}

// FetchPoll reads a poll by id. ErrNotFound is returned if the account is uninitialized.
func FetchPoll(ctx context.Context, r ledger.Reader, programID address.Address,
	pollID uint64) (*state.Poll, error) {

	a, _, err := PollAddress(programID, pollID)
	if err != nil {
		return nil, err
	}

	account, err := fetchOwned(ctx, r, programID, a)
	if err != nil {
		return nil, err
	}

	return state.DeserializePoll(account.Data)
}

// FetchCandidate reads a candidate by poll id and name.
func FetchCandidate(ctx context.Context, r ledger.Reader, programID address.Address,
	pollID uint64, candidateName string) (*state.Candidate, error) {

	a, _, err := CandidateAddress(programID, pollID, candidateName)
	if err != nil {
		return nil, err
	}

	account, err := fetchOwned(ctx, r, programID, a)
	if err != nil {
		return nil, err
	}

	return state.DeserializeCandidate(account.Data)
}

// FetchVoteReceipt reads the receipt of a voter in a poll.
func FetchVoteReceipt(ctx context.Context, r ledger.Reader, programID address.Address,
	pollID uint64, voter address.Address) (*state.VoteReceipt, error) {

	a, _, err := ReceiptAddress(programID, pollID, voter)
	if err != nil {
		return nil, err
	}

	account, err := fetchOwned(ctx, r, programID, a)
	if err != nil {
		return nil, err
	}

	return state.DeserializeVoteReceipt(account.Data)
}

func fetchOwned(ctx context.Context, r ledger.Reader, programID,
	a address.Address) (*ledger.Account, error) {

	account, err := r.Get(ctx, a)
	if err != nil {
		return nil, err
	}

	if !account.IsInitialized() {
		return nil, errors.Wrap(ErrNotFound, a.String())
	}

	if !account.Owner.Equal(programID) {
		return nil, errors.Wrapf(ErrInvalidAccount, "%s owned by %s", a, account.Owner)
	}

	return account, nil
}

// Account type names returned by DecodeAccount.
const (
	AccountTypePoll        = "Poll"
	AccountTypeCandidate   = "Candidate"
	AccountTypeVoteReceipt = "VoteReceipt"
)

// DecodeAccount returns the type and value of an account owned by the program.
func DecodeAccount(programID address.Address, account *ledger.Account) (string, interface{},
	error) {

	if !account.IsInitialized() {
		return "", nil, errors.Wrap(ErrNotFound, account.Address.String())
	}

	if !account.Owner.Equal(programID) {
		return "", nil, errors.Wrapf(ErrInvalidAccount, "%s owned by %s", account.Address,
			account.Owner)
	}

	if p, err := state.DeserializePoll(account.Data); err == nil {
		return AccountTypePoll, p, nil
	}
	if c, err := state.DeserializeCandidate(account.Data); err == nil {
		return AccountTypeCandidate, c, nil
	}
	if r, err := state.DeserializeVoteReceipt(account.Data); err == nil {
		return AccountTypeVoteReceipt, r, nil
	}

	return "", nil, errors.Wrapf(ErrInvalidAccount, "%s unknown account type", account.Address)
}
