package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/handling-analyzer/internal/flags"
)

// RunFlagEditor opens the editor and blocks until the user accepts or
// cancels. It returns the edited set and whether it was accepted.
func RunFlagEditor(ctx context.Context, catalog *flags.Catalog, initial flags.Set, opts ...Option) (flags.Set, bool, error) {
	m := NewModel(catalog, initial, opts...)

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if m.config.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if m.config.Input != nil {
		programOpts = append(programOpts, tea.WithInput(m.config.Input))
	}
	if m.config.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(m.config.Output))
	}

	final, err := tea.NewProgram(m, programOpts...).Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("flag editor failed: %w", err)
	}

	result, ok := final.(Model)
	if !ok {
		return nil, false, fmt.Errorf("flag editor returned unexpected model %T", final)
	}
	if !result.Accepted() {
		return initial, false, nil
	}
	return result.Selected(), true, nil
}
