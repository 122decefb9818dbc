// Command maca normalizes cell type annotations in single-cell atlas tables.
package main

import (
	"os"

	"github.com/czbiohub-sf/maca/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
