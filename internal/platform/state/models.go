package state

import (
	"github.com/tokenized/voting/pkg/address"
)

const (
	// MaxDescriptionLength bounds a poll description so the account has a fixed size.
	MaxDescriptionLength = 280

	// MaxCandidateNameLength bounds a candidate name. Names are also derivation seeds, so this
	// can not exceed address.MaxSeedLength.
	MaxCandidateNameLength = address.MaxSeedLength

	// PollSpace is the allocated size of a Poll account.
	PollSpace = DiscriminatorSize + 8 + 4 + MaxDescriptionLength + 8 + 8 + 8

	// CandidateSpace is the allocated size of a Candidate account.
	CandidateSpace = DiscriminatorSize + 4 + MaxCandidateNameLength + 8 + 8

	// VoteReceiptSpace is the allocated size of a VoteReceipt account.
	VoteReceiptSpace = DiscriminatorSize + 8 + address.Size + 4 + MaxCandidateNameLength
)

var (
	pollTag        = Discriminator("account:Poll")
	candidateTag   = Discriminator("account:Candidate")
	voteReceiptTag = Discriminator("account:VoteReceipt")
)

// Poll is the record kept for each poll id.
type Poll struct {
	PollID          uint64 `json:"PollID"`
	Description     string `json:"Description"`
	PollStart       uint64 `json:"PollStart"`
	PollEnd         uint64 `json:"PollEnd"`
	CandidateAmount uint64 `json:"CandidateAmount"`
}

// Candidate is the record kept for each candidate of a poll.
type Candidate struct {
	CandidateName  string `json:"CandidateName"`
	PollID         uint64 `json:"PollID"`
	CandidateVotes uint64 `json:"CandidateVotes"`
}

// VoteReceipt records that a voter has voted in a poll.
type VoteReceipt struct {
	PollID    uint64          `json:"PollID"`
	Voter     address.Address `json:"Voter"`
	Candidate string          `json:"Candidate"`
}

// IsOpen returns true if the timestamp is within the poll window, inclusive.
func (p *Poll) IsOpen(now uint64) bool {
	return p.PollStart <= now && now <= p.PollEnd
}

// Serialize returns the full account data for the poll.
func (p *Poll) Serialize() ([]byte, error) {
	var e Encoder
	e.Tag(pollTag)
	e.U64(p.PollID)
	if err := e.String(p.Description, MaxDescriptionLength); err != nil {
		return nil, err
	}
	e.U64(p.PollStart)
	e.U64(p.PollEnd)
	e.U64(p.CandidateAmount)
	return e.Result(PollSpace)
}

// DeserializePoll reads a Poll from account data.
func DeserializePoll(data []byte) (*Poll, error) {
	d := NewDecoder(data)
	d.Tag(pollTag)
	result := &Poll{
		PollID:      d.U64(),
		Description: d.String(MaxDescriptionLength),
	}
	result.PollStart = d.U64()
	result.PollEnd = d.U64()
	result.CandidateAmount = d.U64()
	if err := d.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Serialize returns the full account data for the candidate.
func (c *Candidate) Serialize() ([]byte, error) {
	var e Encoder
	e.Tag(candidateTag)
	if err := e.String(c.CandidateName, MaxCandidateNameLength); err != nil {
		return nil, err
	}
	e.U64(c.PollID)
	e.U64(c.CandidateVotes)
	return e.Result(CandidateSpace)
}

// DeserializeCandidate reads a Candidate from account data.
func DeserializeCandidate(data []byte) (*Candidate, error) {
	d := NewDecoder(data)
	d.Tag(candidateTag)
	result := &Candidate{
		CandidateName: d.String(MaxCandidateNameLength),
	}
	result.PollID = d.U64()
	result.CandidateVotes = d.U64()
	if err := d.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Serialize returns the full account data for the receipt.
func (r *VoteReceipt) Serialize() ([]byte, error) {
	var e Encoder
	e.Tag(voteReceiptTag)
	e.U64(r.PollID)
	e.Bytes32(r.Voter)
	if err := e.String(r.Candidate, MaxCandidateNameLength); err != nil {
		return nil, err
	}
	return e.Result(VoteReceiptSpace)
}

// DeserializeVoteReceipt reads a VoteReceipt from account data.
func DeserializeVoteReceipt(data []byte) (*VoteReceipt, error) {
	d := NewDecoder(data)
	d.Tag(voteReceiptTag)
	result := &VoteReceipt{
		PollID: d.U64(),
		Voter:  address.Address(d.Bytes32()),
	}
	result.Candidate = d.String(MaxCandidateNameLength)
	if err := d.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
