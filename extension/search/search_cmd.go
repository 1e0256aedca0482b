// search_cmd.go implements the "seek search" command for keyword searching.
//
// Separated from search.go to isolate flag handling and output selection.
// Matching is a case-sensitive literal substring match, the same as the
// MCP search tool; the flags only change how results are printed.

package search

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/seek/cmd"
	"github.com/jpl-au/seek/extension"
	"github.com/jpl-au/seek/internal/grep"
	"github.com/jpl-au/seek/internal/log"
	"github.com/jpl-au/seek/internal/progress"
)

func (e *Extension) newSearchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "search <keyword> [directory]",
		Short: "Search files for a keyword",
		Long: `Search every text file under a directory for lines containing a keyword.

  seek search TODO              # search the current directory
  seek search "func main" cmd/  # search a subdirectory
  seek search -l TODO           # list matching paths only
  seek search -c TODO           # count matches per file
  seek search -C 2 TODO         # two lines of context around matches
  seek search -o json TODO      # same JSON the MCP search tool returns

The keyword is matched literally and case-sensitively. Binary files and
files that are not valid UTF-8 are skipped.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runSearch,
	}
	c.Flags().BoolP(extension.FlagFilesWithMatch, "l", false, "Only output paths of matching files")
	c.Flags().BoolP(extension.FlagCount, "c", false, "Only print count of matches per file")
	c.Flags().IntP(extension.FlagContext, "C", 0, "Print N lines of context around matches")
	return c
}

func (e *Extension) runSearch(c *cobra.Command, args []string) error {
	ctx := c.Context()
	keyword := args[0]
	dir := "."
	if len(args) > 1 {
		dir = args[1]
	}

	pathsOnly, _ := c.Flags().GetBool(extension.FlagFilesWithMatch)
	countOnly, _ := c.Flags().GetBool(extension.FlagCount)
	context, _ := c.Flags().GetInt(extension.FlagContext)

	if context < 0 {
		return cmd.PrintJSONError(fmt.Errorf("context lines (-C) must be >= 0, got %d", context))
	}

	spin := progress.NewSpinner("searching")
	spin.Start()
	result, err := e.svc.Search(ctx, dir, keyword)
	spin.Stop()

	log.Event("search:search", "search").
		Path(dir).
		Backend(result.Backend).
		Count(result.Count).
		Detail("keyword", keyword).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("search %q: %w", keyword, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(result)
	}

	opts := grep.Options{
		PathsOnly: pathsOnly,
		CountOnly: countOnly,
		Context:   context,
	}
	if err := grep.Write(ctx, cmd.Out(), e.svc, result, opts); err != nil {
		return fmt.Errorf("search %q: %w", keyword, err)
	}
	return nil
}
