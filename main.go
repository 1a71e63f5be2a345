package main

import (
	"os"

	"github.com/fzft/go-hashset/cmd"
)

func main() {
	if err := cmd.Execute(cmd.Version(gitSHA1, gitDirty)); err != nil {
		os.Exit(1)
	}
}
