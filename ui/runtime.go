package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/thanhnguyen2187/mt-dti/dti"
)

func Start(forest *dti.Forest) error {
	browser := CreateBrowser(forest)
	if err := tea.NewProgram(browser).Start(); err != nil {
		return errors.Wrap(err, "Start error running browser")
	}
	return nil
}
