package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/JonMunkholm/searchtable/internal/core"
)

// Styles defines the lipgloss styles used in command output.
var Styles = struct {
	Dim    lipgloss.Style
	Error  lipgloss.Style
	Header lipgloss.Style
}{
	Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	Header: lipgloss.NewStyle().Bold(true).Padding(0, 1),
}

// renderTable draws headers and rows with a normal border.
func renderTable(headers []string, rows [][]string) string {
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return Styles.Header
			}
			return cell
		}).
		String()
}

// printUserError writes err in the user-facing form with its support code.
func printUserError(w io.Writer, err error) {
	fmt.Fprintln(w, Styles.Error.Render("✗ "+core.FormatUserError(err)))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
