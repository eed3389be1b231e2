// Command levelsetcli is a command-line interface for the fast level-set
// image segmentation engine.
package main

import (
	"fmt"
	"os"

	"github.com/shikarl/levelset/internal/cmd"
)

func main() {
	if err := cmd.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
