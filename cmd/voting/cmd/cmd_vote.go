package cmd

import (
	"fmt"

	"github.com/tokenized/voting/cmd/votingd/bootstrap"
	"github.com/tokenized/voting/internal/voting"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var cmdVote = &cobra.Command{
	Use:     "vote poll_id name",
	Short:   "Cast one vote for a candidate.",
	Example: "voting vote 1 Smooth",
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) != 2 {
			return errors.New("Incorrect argument count")
		}

		pollID, err := parsePollID(args[0])
		if err != nil {
			return err
		}

		s := newSession()
		defer s.Close()

		_, signer, err := bootstrap.NewSigner(s.cfg)
		if err != nil {
			return err
		}

		if err := s.client.Vote(s.ctx, signer, voting.CandidateArgs{
			CandidateName: args[1],
			PollID:        pollID,
		}); err != nil {
			return printError(err)
		}

		candidate, err := s.client.Candidate(s.ctx, pollID, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Candidate %q : %d votes\n", candidate.CandidateName, candidate.CandidateVotes)
		return nil
	},
}
