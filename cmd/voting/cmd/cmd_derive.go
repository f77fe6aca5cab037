package cmd

import (
	"fmt"

	"github.com/tokenized/voting/internal/platform/config"
	"github.com/tokenized/voting/internal/voting"
	"github.com/tokenized/voting/pkg/address"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var cmdDerive = &cobra.Command{
	Use:   "derive poll_id [name | receipt voter]",
	Short: "Derives the account address of a poll, candidate or vote receipt",
	Example: "voting derive 1\n" +
		"voting derive 1 Smooth\n" +
		"voting derive 1 receipt <voter address>",
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) < 1 || len(args) > 3 {
			return errors.New("Incorrect argument count")
		}

		cfg, err := config.Environment()
		if err != nil {
			return err
		}

		programID, err := address.Decode(cfg.Program.ID)
		if err != nil {
			return errors.Wrap(err, "program id")
		}

		pollID, err := parsePollID(args[0])
		if err != nil {
			return err
		}

		var a address.Address
		var bump uint8
		switch len(args) {
		case 1:
			a, bump, err = voting.PollAddress(programID, pollID)
		case 2:
			a, bump, err = voting.CandidateAddress(programID, pollID, args[1])
		case 3:
			if args[1] != "receipt" {
				return errors.New("Expected receipt voter")
			}
			voter, verr := address.Decode(args[2])
			if verr != nil {
				return errors.Wrap(verr, "voter")
			}
			a, bump, err = voting.ReceiptAddress(programID, pollID, voter)
		}
		if err != nil {
			return printError(err)
		}

		fmt.Printf("Program : %s\n", programID)
		fmt.Printf("Address : %s\n", a)
		fmt.Printf("Bump : %d\n", bump)
		return nil
	},
}
