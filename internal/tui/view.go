package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vancomm/minesweeper-pad/internal/game"
	"github.com/vancomm/minesweeper-pad/internal/mines"
)

var (
	focusedColor = lipgloss.Color("205")
	focusedStyle = lipgloss.NewStyle().Foreground(focusedColor)
	faintStyle   = lipgloss.NewStyle().Faint(true)

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	statusPanelStyle = lipgloss.NewStyle().
				Padding(0, 2).
				Width(38)

	hiddenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	flagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	mineStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	wrongStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Strikethrough(true)
	numberStyles = [9]lipgloss.Style{
		lipgloss.NewStyle(),
		lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}

	wonStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	lostStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	leaderboardHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("236")).
				Padding(0, 1)
	leaderboardRowStyle = lipgloss.NewStyle().Padding(0, 1)
)

func cellStyle(s mines.CellStatus) lipgloss.Style {
	switch {
	case s == mines.Unknown:
		return hiddenStyle
	case s == mines.Flag || s == mines.CorrectFlag:
		return flagStyle
	case s == mines.ExplodedMine || s == mines.UnflaggedMine:
		return mineStyle
	case s == mines.WrongFlag:
		return wrongStyle
	case s >= 0 && s <= 8:
		return numberStyles[s]
	}
	return lipgloss.NewStyle()
}

func renderBoard(snap game.Snapshot, showCursor bool) string {
	var b strings.Builder
	for y := range snap.Side {
		for x := range snap.Side {
			i := y*snap.Side + x
			glyph := " " + snap.Grid[i].String() + " "
			style := cellStyle(snap.Grid[i])
			if showCursor && i == snap.Selection {
				style = style.Reverse(true)
			}
			b.WriteString(style.Render(glyph))
		}
		if y < snap.Side-1 {
			b.WriteByte('\n')
		}
	}
	return boardStyle.Render(b.String())
}

func formatElapsed(d time.Duration) string {
	d = d.Truncate(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func (m Model) renderStatus(snap game.Snapshot) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("MINESWEEPER") + "\n\n")
	fmt.Fprintf(&b, "Mines:  %d\n", snap.MineCount)
	fmt.Fprintf(&b, "Flags:  %d left\n", snap.FlagsLeft)
	fmt.Fprintf(&b, "Time:   %s\n", formatElapsed(snap.Elapsed))
	fmt.Fprintf(&b, "Cell:   %d,%d\n", snap.Selection%snap.Side, snap.Selection/snap.Side)

	switch snap.Status {
	case game.Won:
		b.WriteString("\n" + wonStyle.Render("YOU WIN!") + "\n")
	case game.Lost:
		b.WriteString("\n" + lostStyle.Render("BOOM! GAME OVER") + "\n")
		fmt.Fprintf(&b, "Correctly flagged: %d/%d\n", snap.CorrectFlags, snap.MineCount)
	}

	switch m.screen {
	case naming:
		b.WriteString("\nSave your time as:\n" + m.name.View() + "\n")
		b.WriteString(faintStyle.Render("enter to save, esc to skip") + "\n")
	case over:
		if m.saved != nil {
			b.WriteString("\n" + faintStyle.Render("score saved") + "\n")
		}
		if len(m.top) > 0 {
			b.WriteString("\n" + m.renderLeaderboard() + "\n")
		}
		b.WriteString("\n" + faintStyle.Render("press r or n for a new game") + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + lostStyle.Render(m.err.Error()) + "\n")
	}
	return statusPanelStyle.Render(b.String())
}

func (m Model) renderLeaderboard() string {
	rows := []string{leaderboardHeaderStyle.Render(fmt.Sprintf("%-3s %-12s %6s", "#", "NAME", "TIME"))}
	for i, s := range m.top {
		name := s.PlayerName
		if len(name) > 12 {
			name = name[:12]
		}
		row := fmt.Sprintf("%-3d %-12s %6s", i+1, name, formatElapsed(s.Elapsed()))
		if m.saved != nil && s.SessionKey == m.saved.SessionKey {
			row = focusedStyle.Render(row)
		}
		rows = append(rows, leaderboardRowStyle.Render(row))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) View() string {
	snap := m.session.Snapshot()
	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		renderBoard(snap, m.screen == playing),
		m.renderStatus(snap),
	)
	view := lipgloss.JoinVertical(lipgloss.Left, body, m.help.View(m.keys))
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view)
	}
	return view
}
