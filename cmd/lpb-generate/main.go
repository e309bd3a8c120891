// Command lpb-generate writes a CSV of synthetic fiber optic links.
package main

import (
	"os"

	"lpbcli/internal/cli"
)

func main() {
	os.Exit(cli.Execute(cli.NewGenerateCommand()))
}
