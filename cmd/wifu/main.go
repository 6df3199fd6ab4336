// Command wifu supervises the host's Wi-Fi connection: it keeps one
// wireless adapter and one whitelisted network chosen and connected,
// reselecting automatically as adapters and networks come and go.
package main

import (
	"fmt"
	"os"

	"github.com/kerdl/wifu-go/cmd/wifu/commands"
)

func main() {
	if err := commands.NewCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
