// medfinder queries the pharmacy stock directory from a terminal.
package main

import (
	"os"

	"github.com/medrelive/medfinder-backend/cmd/medfinder/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
