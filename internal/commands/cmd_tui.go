package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/fragmede/hackerterm/internal/platform"
	"github.com/fragmede/hackerterm/internal/ui"
	"github.com/fragmede/hackerterm/internal/ui/keys"
)

type TuiCmd struct {
	flags *Flags
	rt    *Runtime
}

// NewTuiCmd creates the interactive command.
func NewTuiCmd(flags *Flags, rt *Runtime) *TuiCmd {
	return &TuiCmd{flags: flags, rt: rt}
}

// Run executes the TUI. Exported for use as the default action.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	app := ui.NewApp(ui.Deps{
		Stories:    cmd.rt.Client,
		Resolver:   cmd.rt.Resolver,
		History:    cmd.rt.History,
		Browser:    platform.Browser{},
		Clipboard:  platform.Clipboard{},
		Keys:       keys.New(cmd.rt.Config.Keys),
		StoryLimit: cmd.rt.Config.StoryLimit,
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return app.Err()
}
