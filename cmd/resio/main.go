package main

import (
	"os"

	"github.com/resio/resio-cli/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
