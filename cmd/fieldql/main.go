// Command fieldql parses field selections, plans query trees and compiles
// field functions into SQL.
package main

import (
	"os"

	"github.com/leapstack-labs/fieldql/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
