// Command okverify inspects the OkHi verification setup of a project.
package main

import (
	"os"

	"github.com/okhi/okverify/cmd/okverify/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
