package cmd

import (
	"fmt"

	"github.com/tokenized/voting/cmd/votingd/bootstrap"
	"github.com/tokenized/voting/internal/voting"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var cmdInitCandidate = &cobra.Command{
	Use:     "init-candidate poll_id name",
	Short:   "Register a candidate for a poll.",
	Example: "voting init-candidate 1 Smooth",
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

		if err := s.client.InitializeCandidate(s.ctx, signer, voting.CandidateArgs{
			CandidateName: args[1],
			PollID:        pollID,
		}); err != nil {
			return printError(err)
		}

		a, _, err := voting.CandidateAddress(s.client.ProgramID, pollID, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Candidate %q : %s\n", args[1], a)
		return nil
	},
}

var cmdCandidate = &cobra.Command{
	Use:   "candidate poll_id name",
	Short: "Print a candidate and its tally.",
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

		candidate, err := s.client.Candidate(s.ctx, pollID, args[1])
		if err != nil {
			return printError(err)
		}

		fmt.Printf("# Candidate %q\n\n", args[1])
		return dumpJSON(candidate)
	},
}
