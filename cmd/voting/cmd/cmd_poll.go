package cmd

import (
	"fmt"
	"strconv"

	"github.com/tokenized/voting/cmd/votingd/bootstrap"
	"github.com/tokenized/voting/internal/voting"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var cmdInitPoll = &cobra.Command{
	Use:     "init-poll poll_id description poll_start poll_end",
	Short:   "Create a poll signed by the configured signer key.",
	Example: "voting init-poll 1 \"What is your favorite type of peanut butter?\" 0 1821246480",
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) != 4 {
			return errors.New("Incorrect argument count")
		}

		pollID, err := parsePollID(args[0])
		if err != nil {
			return err
		}

		start, err := strconv.ParseUint(args[2], 10, 64)
		if err != nil {
			return errors.Wrap(err, "poll start")
		}

		end, err := strconv.ParseUint(args[3], 10, 64)
		if err != nil {
			return errors.Wrap(err, "poll end")
		}

		s := newSession()
		defer s.Close()

		_, signer, err := bootstrap.NewSigner(s.cfg)
		if err != nil {
			return err
		}

		if err := s.client.InitializePoll(s.ctx, signer, voting.InitializePollArgs{
			PollID:      pollID,
			Description: args[1],
			PollStart:   start,
			PollEnd:     end,
		}); err != nil {
			return printError(err)
		}

		a, _, err := voting.PollAddress(s.client.ProgramID, pollID)
		if err != nil {
			return err
		}
		fmt.Printf("Poll %d : %s\n", pollID, a)
		return nil
	},
}

var cmdPoll = &cobra.Command{
	Use:   "poll poll_id",
	Short: "Print a poll.",
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New("Incorrect argument count")
		}

		pollID, err := parsePollID(args[0])
		if err != nil {
			return err
		}

		s := newSession()
		defer s.Close()

		poll, err := s.client.Poll(s.ctx, pollID)
		if err != nil {
			return printError(err)
		}

		fmt.Printf("# Poll %d\n\n", pollID)
		return dumpJSON(poll)
	},
}
