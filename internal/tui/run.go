package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive dashboard and blocks until the user quits.
func Run(ctx context.Context, p Provider) error {
	prog := tea.NewProgram(New(ctx, p, nil), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := prog.Run()
	return err
}
