// read.go implements the "seek read" command for reading file contents.
//
// Separated from search.go to isolate output formatting logic including
// line numbering, line range extraction, and terminal rendering with glamour.
//
// Design: Read behaves like Unix cat restricted to text files. Markdown
// files on a terminal get glamour rendering; everything else, and any
// pipe/redirect, gets the raw content. The -l flag uses colon syntax (10:20)
// matching sed/awk conventions.

package search

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jpl-au/seek/cmd"
	"github.com/jpl-au/seek/extension"
	"github.com/jpl-au/seek/internal/cat"
	"github.com/jpl-au/seek/internal/log"
)

func (e *Extension) newReadCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "read <file>",
		Short: "Read a text file",
		Long: `Output the contents of a text file to stdout.

  seek read README.md          # whole file (rendered on a terminal)
  seek read -n main.go         # with line numbers
  seek read -l 10:20 main.go   # lines 10 to 20
  seek read -o json notes.txt  # same JSON the MCP read_file tool returns

Binary files and files that are not valid UTF-8 are refused.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runRead,
	}
	c.Flags().BoolP(extension.FlagNumber, "n", false, "Number all output lines")
	c.Flags().StringP(extension.FlagLines, "l", "", "Line range (e.g., 10:20, 5:, :15)")
	c.Flags().Bool(extension.FlagRaw, false, "Output raw markdown without rendering")
	return c
}

func (e *Extension) runRead(c *cobra.Command, args []string) error {
	ctx := c.Context()
	lineNums, _ := c.Flags().GetBool(extension.FlagNumber)
	lineRange, _ := c.Flags().GetString(extension.FlagLines)
	raw, _ := c.Flags().GetBool(extension.FlagRaw)

	opts := cat.Options{
		LineNumbers:   lineNums,
		MaxLineLength: e.cfg.MaxLineLength(),
	}

	// Parse line range (e.g., "10:20", "5:", ":15")
	if lineRange != "" {
		start, end, err := parseLineRange(lineRange)
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		opts.StartLine = start
		opts.EndLine = end
	}

	p := args[0]
	var result cat.Result
	var err error

	defer func() {
		b := log.Event("search:read", "read").Path(p)
		if result.Refused {
			b = b.Detail("refused", result.Reason)
		}
		b.Write(err)
	}()

	if cmd.JSON() {
		var buf bytes.Buffer
		opts.LineNumbers = false
		result, err = cat.Run(ctx, &buf, e.svc, p, opts)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("read %q: %w", p, err))
		}
		if !result.Refused {
			result.Content = buf.String()
		}
		return cmd.PrintJSON(result)
	}

	// Render markdown with glamour if TTY and not --raw
	if !raw && !lineNums && isMarkdown(p) && term.IsTerminal(int(os.Stdout.Fd())) {
		var buf bytes.Buffer
		result, err = cat.Run(ctx, &buf, e.svc, p, opts)
		if err == nil {
			err = result.Err()
		}
		if err != nil {
			return fmt.Errorf("read %q: %w", p, err)
		}
		rendered, renderErr := glamour.Render(buf.String(), "dark")
		if renderErr == nil {
			fmt.Fprint(cmd.Out(), rendered)
			return nil
		}
		_, err = io.Copy(cmd.Out(), &buf)
		return err
	}

	result, err = cat.Run(ctx, cmd.Out(), e.svc, p, opts)
	if err == nil {
		err = result.Err()
	}
	if err != nil {
		return fmt.Errorf("read %q: %w", p, err)
	}
	return nil
}

func isMarkdown(p string) bool {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// parseLineRange parses a line range string like "10:20", "5:", or ":15".
// Returns start and end line numbers (1-indexed), where 0 means unspecified.
func parseLineRange(s string) (start, end int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid line range %q: expected format START:END", s)
	}

	if parts[0] != "" {
		_, err := fmt.Sscanf(parts[0], "%d", &start)
		if err != nil || start < 1 {
			return 0, 0, fmt.Errorf("invalid start line %q", parts[0])
		}
	}

	if parts[1] != "" {
		_, err := fmt.Sscanf(parts[1], "%d", &end)
		if err != nil || end < 1 {
			return 0, 0, fmt.Errorf("invalid end line %q", parts[1])
		}
	}

	if start > 0 && end > 0 && start > end {
		return 0, 0, fmt.Errorf("start line %d is greater than end line %d", start, end)
	}

	return start, end, nil
}
