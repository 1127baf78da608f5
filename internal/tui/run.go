package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smokyabdulrahman/ramazon/internal/app"
)

// DebugEnv names a file that receives log output while the interface runs.
const DebugEnv = "RAMAZON_DEBUG"

// Run starts the interface and blocks until the user quits or ctx ends.
func Run(ctx context.Context, state *app.State, opts Options) error {
	if path := os.Getenv(DebugEnv); path != "" {
		f, err := tea.LogToFile(path, "ramazon")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer f.Close()
	}

	opts.Context = ctx
	p := tea.NewProgram(NewModel(state, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running interface: %w", err)
	}
	return nil
}
