package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tokenized/voting/cmd/votingd/bootstrap"
	"github.com/tokenized/voting/internal/platform/config"
	"github.com/tokenized/voting/internal/platform/db"
	"github.com/tokenized/voting/internal/voting"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var votingCmd = &cobra.Command{
	Use:   "voting",
	Short: "Voting program CLI",
}

func Execute() {
	votingCmd.AddCommand(cmdInitPoll)
	votingCmd.AddCommand(cmdInitCandidate)
	votingCmd.AddCommand(cmdVote)
	votingCmd.AddCommand(cmdPoll)
	votingCmd.AddCommand(cmdCandidate)
	votingCmd.AddCommand(cmdDerive)
	votingCmd.AddCommand(cmdAccount)
	votingCmd.Execute()
}

// session is the ledger state a command works against.
type session struct {
	ctx      context.Context
	cfg      *config.Config
	masterDB *db.DB
	client   *voting.Client
}

func newSession() *session {
	ctx := bootstrap.NewContextWithDevelopmentLogger()
	cfg := bootstrap.NewConfigFromEnv(ctx)
	ctx = bootstrap.NewContextWithConfigLogger(cfg)
	masterDB := bootstrap.NewMasterDB(ctx, cfg)
	rt := bootstrap.NewRuntime(ctx, cfg, masterDB)

	return &session{
		ctx:      ctx,
		cfg:      cfg,
		masterDB: masterDB,
		client:   bootstrap.NewClient(ctx, cfg, rt),
	}
}

func (s *session) Close() {
	s.masterDB.Close()
}

func parsePollID(s string) (uint64, error) {
	pollID, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "poll id")
	}
	return pollID, nil
}

func dumpJSON(o interface{}) error {
	js, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}

	fmt.Printf("```\n%s\n```\n\n", js)
	return nil
}

// printError reports program errors with their code.
func printError(err error) error {
	if pe, ok := voting.ProgramError(err); ok {
		fmt.Printf("Rejected : %s (%d)\n", pe.Name, pe.Code)
	}
	return err
}
