// version.go implements the version command.

package core

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/seek/cmd"
	"github.com/jpl-au/seek/internal/version"
)

func (e *Extension) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print detailed version information including build date, git commit, Go version,
platform, and the ripgrep executable searches will use.`,
		Args: cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			info := version.Get()
			info.Ripgrep = e.ripgrep
			if cmd.JSON() {
				_ = cmd.PrintJSON(info)
				return
			}
			fmt.Fprint(cmd.Out(), info.String())
		},
	}
}
