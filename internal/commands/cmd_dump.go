package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/fragmede/hackerterm/internal/api"
	"github.com/fragmede/hackerterm/internal/render"
	"github.com/fragmede/hackerterm/internal/thread"
)

const defaultDumpWidth = 80

type DumpCmd struct {
	flags *Flags
	rt    *Runtime

	// flags
	width int
}

// NewDumpCmd creates a new dump command
func NewDumpCmd(flags *Flags, rt *Runtime) *DumpCmd {
	return &DumpCmd{flags: flags, rt: rt}
}

// Register adds the dump command to the application
func (cmd *DumpCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "dump",
		Usage:     "Print a story's comment thread",
		UsageText: "hackerterm dump [--width N] <story-id>",
		Description: `Fetches the full comment tree of a story and prints it as indented
plain text, one comment after another in reading order.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "width",
				Usage:       "wrap comment text at this many columns (defaults to the terminal width)",
				Destination: &cmd.width,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *DumpCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one story id")
	}
	id, err := strconv.Atoi(c.Args().First())
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid story id %q", c.Args().First())
	}

	story, err := cmd.rt.Client.GetStory(ctx, id)
	if err != nil {
		return fmt.Errorf("fetching story %d: %w", id, err)
	}

	roots, err := cmd.rt.Resolver.Resolve(ctx, story.Kids, 0)
	if err != nil {
		return fmt.Errorf("resolving comments: %w", err)
	}

	return writeThread(os.Stdout, story, thread.Flatten(roots), cmd.wrapWidth())
}

func (cmd *DumpCmd) wrapWidth() int {
	if cmd.width > 0 {
		return cmd.width
	}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	return defaultDumpWidth
}

func writeThread(w io.Writer, story *api.Story, nodes []thread.FlatNode, width int) error {
	url := story.URL
	if url == "" {
		url = "No URL Provided"
	}
	if _, err := fmt.Fprintf(w, "%s\n%s\n%d points by %s, %d comments\n\n",
		story.Title, url, story.Score, story.By, len(nodes)); err != nil {
		return err
	}

	for _, n := range nodes {
		indent := strings.Repeat("  ", n.Depth)
		c := n.Comment

		var body string
		if c.Unavailable() {
			body = fmt.Sprintf("[comment unavailable: %v]", c.Err)
		} else {
			header := c.By
			if ago := render.TimeAgo(c.Time); ago != "" {
				header += " " + ago
			}
			body = header + "\n" + render.Wrap(c.Text, max(width-len(indent), 20))
		}

		for _, line := range strings.Split(body, "\n") {
			if _, err := fmt.Fprintln(w, indent+line); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
