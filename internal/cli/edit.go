package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// editCommand creates the interactive terminal editor.
func (c *CLI) editCommand() *cobra.Command {
	var (
		fill    bool
		logFile string
	)

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a layout interactively in the terminal",
		Long: `Edit a layout interactively in the terminal.

The terminal is the window: mouse motion and clicks drive the leaves and split
handles, and keys restructure the leaf under the pointer.

  h / v        split horizontally / vertically
  x            close
  s            close split
  o            close others
  tab          next view (shift+tab: previous)
  0-9          view by catalog index (0: none)
  q            quit

Drag a split handle to change the split ratio.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(cmd.Context(), fill, logFile)
		},
	}

	cmd.Flags().BoolVar(&fill, "fill", true, "root fills the terminal instead of using the configured root geometry")
	cmd.Flags().StringVar(&logFile, "log", "", "write logs to this file while the editor runs")
	return cmd
}

func (c *CLI) runEdit(ctx context.Context, fill bool, logFile string) error {
	cfg, err := c.loadConfig(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if fill {
		explicit := false
		cfg.Root.Explicit = &explicit
	}

	// The editor owns the terminal, so logs go to a file or nowhere.
	var w io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		w = f
	}
	logger := newLogger(w, c.Logger.GetLevel())
	installHooks(logger)

	t, err := newTree(cfg, logger)
	if err != nil {
		return err
	}
	if err := t.run(cfg.Startup); err != nil {
		return fmt.Errorf("startup: %w", err)
	}

	p := tea.NewProgram(
		newEditorModel(t, cfg.Editor.CellWidth, cfg.Editor.CellHeight, logger),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("editor: %w", err)
	}
	logger.Debug("editor closed")
	return nil
}
