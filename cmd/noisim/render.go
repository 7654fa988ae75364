package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"noisim"
)

// View renders the UI: program panel, result panel, controls, overlays.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	resultWidth := m.width / 2
	programWidth := m.width - resultWidth - 4
	controlsHeight := 6
	panelHeight := max(m.height-controlsHeight-2, 6)

	programPanel := programStyle.Width(programWidth).Height(panelHeight).
		Render(m.renderProgram(panelHeight - 2))
	resultPanel := resultStyle.Width(resultWidth - 4).Height(panelHeight).
		Render(m.renderResult(resultWidth-8, panelHeight-2))
	controlsPanel := controlsStyle.Width(m.width - 4).Render(m.renderControls())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, programPanel, resultPanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	switch m.focus {
	case focusMenu:
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	case focusParam:
		frame = overlayAt(frame, m.renderInput("Parameters",
			fmt.Sprintf("%s (%s)", m.pending.token, m.pending.paramHint), m.paramInput.View()), 2, 2)
	case focusQubits:
		frame = overlayAt(frame, m.renderInput("Qubits",
			fmt.Sprintf("%s on %d qubit(s), e.g. 0, 1", m.pending.token, m.pending.arity), m.qubitInput.View()), 2, 2)
	case focusShots:
		frame = overlayAt(frame, m.renderInput("Run", "Number of shots", m.shotsInput.View()), 2, 2)
	}

	return frame
}

// renderProgram lists the noisy opcode stream, noise lines in their own color.
func (m Model) renderProgram(maxLines int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Program — %d qubits, %s", m.numQubits, noisePresets[m.preset].name)))
	sb.WriteString("\n\n")

	text := noisim.FormatProgram(m.numQubits, m.sim.Opcodes())
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) <= 1 {
		sb.WriteString(dimStyle.Render("empty — press 'a' to add a gate"))
		return sb.String()
	}
	lines = lines[1:] // drop the qubits header; the title shows it
	start := max(len(lines)-maxLines+3, 0)
	if start > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("… %d earlier ops", start)))
		sb.WriteString("\n")
	}
	for _, line := range lines[start:] {
		if strings.HasPrefix(line, "#") {
			sb.WriteString(noiseStyle.Render(line))
		} else {
			sb.WriteString(gateStyle.Render(line))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderResult draws the last shot histogram as horizontal bars.
func (m Model) renderResult(width, maxLines int) string {
	var sb strings.Builder
	if m.hist == nil {
		sb.WriteString(titleStyle.Render("Results"))
		sb.WriteString("\n\n")
		sb.WriteString(dimStyle.Render("press 'r' to run shots"))
		return sb.String()
	}

	sb.WriteString(titleStyle.Render(fmt.Sprintf("Results — %d shots", m.shots)))
	sb.WriteString("\n\n")

	outcomes := noisim.SortedOutcomes(m.hist)
	barSpace := max(width-m.numQubits-10, 8)
	shown := 0
	for _, outcome := range outcomes {
		if shown >= maxLines-3 {
			sb.WriteString(dimStyle.Render(fmt.Sprintf("… %d more outcomes", len(outcomes)-shown)))
			break
		}
		count := m.hist[outcome]
		frac := float64(count) / float64(m.shots)
		bar := strings.Repeat("█", max(int(frac*float64(barSpace)), 1))
		label := fmt.Sprintf("%0*b", m.numQubits, outcome)
		fmt.Fprintf(&sb, "%s %s %d\n", label, barStyle.Render(bar), count)
		shown++
	}
	return sb.String()
}

func (m Model) renderControls() string {
	help := "a add gate  r run  n noise  +/- qubits  ctrl+r clear  s save  l load  q quit"
	if m.statusMsg != "" {
		style := dimStyle
		if strings.Contains(m.statusMsg, "error") || strings.Contains(m.statusMsg, "noisim:") {
			style = errorStyle
		}
		return help + "\n" + style.Render(m.statusMsg)
	}
	return help
}

// renderMenu draws the gate picker overlay.
func (m Model) renderMenu() string {
	var sb strings.Builder

	tabs := make([]string, len(gateMenu))
	for i, cat := range gateMenu {
		if i == m.menuCat {
			tabs[i] = menuTabActiveStyle.Render(cat.name)
		} else {
			tabs[i] = menuTabStyle.Render(cat.name)
		}
	}
	sb.WriteString(strings.Join(tabs, "  "))
	sb.WriteString("\n\n")

	for i, item := range gateMenu[m.menuCat].items {
		line := item.name
		if item.numParams > 0 {
			line += dimStyle.Render(" (" + item.paramHint + ")")
		}
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render("▸ " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("←→ Category  ↑↓ Select  ⏎ Ok  Esc ✕"))
	return menuBorderStyle.Render(sb.String())
}

// renderInput draws a one-line text input overlay.
func (m Model) renderInput(title, hint, input string) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(input)
	sb.WriteString("\n\n")
	sb.WriteString(dimStyle.Render(hint))
	return menuBorderStyle.Render(sb.String())
}

// overlayAt places an overlay box on top of the frame at the given offset.
func overlayAt(frame, overlay string, x, y int) string {
	frameLines := strings.Split(frame, "\n")
	overlayLines := strings.Split(overlay, "\n")
	for i, line := range overlayLines {
		row := y + i
		if row >= len(frameLines) {
			break
		}
		prefix := frameLines[row]
		if lipgloss.Width(prefix) > x {
			prefix = truncateVisual(prefix, x)
		}
		pad := x - lipgloss.Width(prefix)
		if pad < 0 {
			pad = 0
		}
		frameLines[row] = prefix + strings.Repeat(" ", pad) + line
	}
	return strings.Join(frameLines, "\n")
}

// truncateVisual cuts a styled line to a visual width, dropping any escape
// sequences past the cut.
func truncateVisual(s string, width int) string {
	var sb strings.Builder
	w := 0
	inEscape := false
	for _, r := range s {
		if inEscape {
			sb.WriteRune(r)
			if r == 'm' {
				inEscape = false
			}
			continue
		}
		if r == '\x1b' {
			inEscape = true
			sb.WriteRune(r)
			continue
		}
		if w >= width {
			break
		}
		sb.WriteRune(r)
		w++
	}
	return sb.String()
}
