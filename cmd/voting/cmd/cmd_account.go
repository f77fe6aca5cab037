package cmd

import (
	"fmt"

	"github.com/tokenized/voting/internal/voting"
	"github.com/tokenized/voting/pkg/address"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var cmdAccount = &cobra.Command{
	Use:   "account address",
	Short: "Load and print a program account.",
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New("Missing address")
		}

		a, err := address.Decode(args[0])
		if err != nil {
			return err
		}

		s := newSession()
		defer s.Close()

		account, err := s.client.Ledger.Get(s.ctx, a)
		if err != nil {
			return err
		}

		typ, value, err := voting.DecodeAccount(s.client.ProgramID, account)
		if err != nil {
			return printError(err)
		}

		fmt.Printf("# %s %s\n\n", typ, a)
		fmt.Printf("Owner : %s\n", account.Owner)
		fmt.Printf("Size : %d\n\n", len(account.Data))
		return dumpJSON(value)
	},
}
