// verify.go implements the "seek verify" command for backend comparison.
//
// Separated from search.go because verify runs every backend rather than the
// preferred one. It checks the installed ripgrep against the in-process
// search: exit-status convention, binary detection, ordering and output
// format all show up as a diff when they disagree.

package search

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jpl-au/seek/cmd"
	"github.com/jpl-au/seek/extension"
	"github.com/jpl-au/seek/internal/log"
	"github.com/jpl-au/seek/internal/progress"
	"github.com/jpl-au/seek/internal/verify"
)

// ErrMismatch is returned when the backends produce different output.
var ErrMismatch = errors.New("search backends disagree")

func (e *Extension) newVerifyCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "verify <keyword> [directory]",
		Short: "Compare ripgrep with the in-process search",
		Long: `Run the same search through ripgrep and the in-process search and diff
the results. Exits 1 when they differ.

  seek verify TODO             # compare in the current directory
  seek verify hello /tmp/t     # compare in /tmp/t
  seek verify --raw TODO | less

Requires ripgrep; see 'seek version' for the executable in use.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runVerify,
	}
	c.Flags().Bool(extension.FlagRaw, false, "Output diff without colour")
	return c
}

func (e *Extension) runVerify(c *cobra.Command, args []string) error {
	ctx := c.Context()
	keyword := args[0]
	dir := "."
	if len(args) > 1 {
		dir = args[1]
	}
	raw, _ := c.Flags().GetBool(extension.FlagRaw)

	spin := progress.NewSpinner("comparing")
	spin.Start()
	rep, err := verify.Run(ctx, e.svc, dir, keyword)
	spin.Stop()

	b := log.Event("search:verify", "verify").Path(dir).Detail("keyword", keyword)
	if err == nil {
		b = b.Detail("equal", rep.Equal)
	}
	b.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("verify %q: %w", keyword, err))
	}

	if cmd.JSON() {
		if err := cmd.PrintJSON(map[string]any{
			"equal":    rep.Equal,
			"outcomes": rep.Outcomes,
			"diff":     rep.Diff.Format(false),
		}); err != nil {
			return err
		}
	} else if rep.Equal {
		fmt.Fprintf(cmd.Out(), "%s and %s agree (%d matches)\n",
			rep.Outcomes[0].Backend, rep.Outcomes[1].Backend, rep.Outcomes[0].Result.Count)
	} else {
		colour := !raw && term.IsTerminal(int(os.Stdout.Fd()))
		fmt.Fprint(cmd.Out(), rep.Diff.Format(colour))
	}

	if !rep.Equal {
		// The diff is the report; only the exit status remains.
		c.SilenceErrors = true
		return ErrMismatch
	}
	return nil
}
