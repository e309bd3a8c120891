// Command lpb-analyze summarizes link power budget results per scenario
// and renders the margin charts.
package main

import (
	"os"

	"lpbcli/internal/cli"
)

func main() {
	os.Exit(cli.Execute(cli.NewAnalyzeCommand()))
}
