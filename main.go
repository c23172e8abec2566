// Entrypoint that delegates to the Cobra root command in cmd/root.go.

package main

import (
	"github.com/aalborg-palloc/palloc/cmd"
)

func main() {
	cmd.Execute()
}
