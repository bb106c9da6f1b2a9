package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/ytakahashi/habit-tracker/internal/models"
)

var (
	doneStyle     = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	idStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func renderHabits(w io.Writer, habits []models.Habit) {
	if len(habits) == 0 {
		fmt.Fprintln(w, "No habits.")
		return
	}
	for _, h := range habits {
		box, name := "[ ]", h.Name
		if h.Completed {
			box, name = "[x]", doneStyle.Render(h.Name)
		}
		fmt.Fprintf(w, "%s %s  %s  %s\n", box, name, categoryStyle.Render(h.Category), idStyle.Render(h.ID))
	}
}
