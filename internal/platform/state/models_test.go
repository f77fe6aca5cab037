package state

import (
	"strings"
	"testing"

	"github.com/tokenized/voting/pkg/address"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func TestPoll_Serialize(t *testing.T) {
	want := &Poll{
		PollID:          1,
		Description:     "What is your favorite type of peanut butter?",
		PollStart:       0,
		PollEnd:         1821246480,
		CandidateAmount: 2,
	}

	data, err := want.Serialize()
	if err != nil {
		t.Fatalf("Failed to serialize : %s", err)
	}
	if len(data) != PollSpace {
		t.Errorf("got %d bytes, want %d", len(data), PollSpace)
	}

	got, err := DeserializePoll(data)
	if err != nil {
		t.Fatalf("Failed to deserialize : %s", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Poll mismatch (-want +got):\n%s", diff)
	}
}

func TestPoll_DescriptionBound(t *testing.T) {
	p := &Poll{Description: strings.Repeat("x", MaxDescriptionLength)}
	if _, err := p.Serialize(); err != nil {
		t.Errorf("Failed to serialize max description : %s", err)
	}

	p.Description += "x"
	if _, err := p.Serialize(); errors.Cause(err) != ErrStringTooLong {
		t.Errorf("got %v, want %v", err, ErrStringTooLong)
	}
}

func TestCandidate_Serialize(t *testing.T) {
	want := &Candidate{
		CandidateName:  strings.Repeat("n", MaxCandidateNameLength),
		PollID:         7,
		CandidateVotes: 1 << 40,
	}

	data, err := want.Serialize()
	if err != nil {
		t.Fatalf("Failed to serialize : %s", err)
	}
	if len(data) != CandidateSpace {
		t.Errorf("got %d bytes, want %d", len(data), CandidateSpace)
	}

	got, err := DeserializeCandidate(data)
	if err != nil {
		t.Fatalf("Failed to deserialize : %s", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Candidate mismatch (-want +got):\n%s", diff)
	}
}

func TestVoteReceipt_Serialize(t *testing.T) {
	want := &VoteReceipt{
		PollID:    3,
		Voter:     address.MustDecode("6z68wfurCMYkZG51s1Et9BJEd9nJGUusjHXNt4dGbNNF"),
		Candidate: "Smooth",
	}

	data, err := want.Serialize()
	if err != nil {
		t.Fatalf("Failed to serialize : %s", err)
	}

	got, err := DeserializeVoteReceipt(data)
	if err != nil {
		t.Fatalf("Failed to deserialize : %s", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Receipt mismatch (-want +got):\n%s", diff)
	}
}

func TestDeserialize_WrongType(t *testing.T) {
	c := &Candidate{CandidateName: "Smooth", PollID: 1}
	data, err := c.Serialize()
	if err != nil {
		t.Fatalf("Failed to serialize : %s", err)
	}

	if _, err := DeserializePoll(data); errors.Cause(err) != ErrInvalidDiscriminator {
		t.Errorf("got %v, want %v", err, ErrInvalidDiscriminator)
	}

	if _, err := DeserializeCandidate(data[:DiscriminatorSize+2]); errors.Cause(err) != ErrDataTooShort {
		t.Errorf("got %v, want %v", err, ErrDataTooShort)
	}

	if _, err := DeserializeCandidate(nil); errors.Cause(err) != ErrDataTooShort {
		t.Errorf("got %v, want %v", err, ErrDataTooShort)
	}
}

func TestPoll_IsOpen(t *testing.T) {
	p := Poll{PollStart: 100, PollEnd: 200}

	tests := []struct {
		now  uint64
		want bool
	}{
		{now: 99, want: false},
		{now: 100, want: true},
		{now: 150, want: true},
		{now: 200, want: true},
		{now: 201, want: false},
	}

	for _, tt := range tests {
		if got := p.IsOpen(tt.now); got != tt.want {
			t.Errorf("IsOpen(%d) got %v, want %v", tt.now, got, tt.want)
		}
	}
}
