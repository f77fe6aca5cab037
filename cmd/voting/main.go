package main

import "github.com/tokenized/voting/cmd/voting/cmd"

// Voting CLI
//
func main() {
	cmd.Execute()
}
