package voting

import (
	"context"

	"github.com/tokenized/voting/internal/ledger"
	"github.com/tokenized/voting/internal/platform/state"
	"github.com/tokenized/voting/internal/runtime"
	"github.com/tokenized/voting/pkg/address"
)

// Submitter applies transactions and reads committed accounts. *runtime.Runtime implements it.
type Submitter interface {
	ledger.Reader
	Submit(ctx context.Context, tx *runtime.Transaction) error
}

// Client builds voting instructions from business keys and submits each as a one instruction
// transaction.
type Client struct {
	ProgramID address.Address
	Ledger    Submitter
}

func NewClient(programID address.Address, s Submitter) *Client {
	return &Client{
		ProgramID: programID,
		Ledger:    s,
	}
}

// InitializePoll creates a poll signed by signer.
func (c *Client) InitializePoll(ctx context.Context, signer address.Address,
	args InitializePollArgs) error {

	ix, err := NewInitializePollInstruction(c.ProgramID, signer, args)
	if err != nil {
		return err
	}
	return c.submit(ctx, signer, ix)
}

// InitializeCandidate registers a candidate signed by signer.
func (c *Client) InitializeCandidate(ctx context.Context, signer address.Address,
	args CandidateArgs) error {

	ix, err := NewInitializeCandidateInstruction(c.ProgramID, signer, args)
	if err != nil {
		return err
	}
	return c.submit(ctx, signer, ix)
}

// Vote casts one vote by signer.
func (c *Client) Vote(ctx context.Context, signer address.Address, args CandidateArgs) error {
	ix, err := NewVoteInstruction(c.ProgramID, signer, args)
	if err != nil {
		return err
	}
	return c.submit(ctx, signer, ix)
}

func (c *Client) Poll(ctx context.Context, pollID uint64) (*state.Poll, error) {
	return FetchPoll(ctx, c.Ledger, c.ProgramID, pollID)
}

func (c *Client) Candidate(ctx context.Context, pollID uint64,
	candidateName string) (*state.Candidate, error) {
	return FetchCandidate(ctx, c.Ledger, c.ProgramID, pollID, candidateName)
}

func (c *Client) VoteReceipt(ctx context.Context, pollID uint64,
	voter address.Address) (*state.VoteReceipt, error) {
	return FetchVoteReceipt(ctx, c.Ledger, c.ProgramID, pollID, voter)
}

func (c *Client) submit(ctx context.Context, signer address.Address,
	ix *runtime.Instruction) error {

	return c.Ledger.Submit(ctx, &runtime.Transaction{
		Instructions: []runtime.Instruction{*ix},
		Signers:      []address.Address{signer},
	})
}
