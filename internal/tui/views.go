package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/trace/internal/history"
	"github.com/verte-zerg/trace/internal/model"
	"github.com/verte-zerg/trace/internal/stats"
	"github.com/verte-zerg/trace/internal/window"
)

const (
	appTitle       = "trace"
	recentRuns     = 5
	minChartHeight = 4
	chartHeight    = 12
)

type menuButton struct {
	activator string
	rest      string
}

var menuButtons = []menuButton{
	{activator: "p", rest: "ractice"},
	{activator: "s", rest: "tatistics"},
	{activator: "u", rest: "sername"},
	{activator: "e", rest: "xit"},
}

func renderMenu(snap window.Snapshot) string {
	buttons := make([]string, 0, len(menuButtons))
	for _, b := range menuButtons {
		buttons = append(buttons, buttonStyle.Render(activatorStyle.Render(b.activator)+b.rest))
	}
	lines := []string{
		titleStyle.Render(appTitle),
		"",
		fmt.Sprintf("Welcome, %s", accentStyle.Render(snap.Username)),
		"",
		lipgloss.JoinVertical(lipgloss.Center, buttons...),
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func (m *Model) renderPractice(snap window.Snapshot, width int) string {
	if !snap.HasSession {
		return ""
	}
	view := snap.Session
	contentWidth := int(float64(width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	paragraph := lipgloss.NewStyle().Width(contentWidth).Render(wrapStyledRunes(buildStyledRunes(view.Cells), contentWidth))

	half := lipgloss.NewStyle().Width(contentWidth / 2).Align(lipgloss.Center)
	live := lipgloss.JoinHorizontal(lipgloss.Top,
		half.Render(labelValue("WPM: ", fmt.Sprintf("%.2f", view.LiveWPM))),
		half.Render(labelValue("Accuracy: ", fmt.Sprintf("%.2f %%", view.Accuracy*100))),
	)

	m.progress.Width = contentWidth
	gauge := lipgloss.JoinVertical(lipgloss.Left,
		footerStyle.Render(snap.Username),
		m.progress.ViewAs(view.Progress),
	)
	return lipgloss.JoinVertical(lipgloss.Left, paragraph, "", live, "", gauge)
}

func labelValue(label, value string) string {
	return label + valueStyle.Render(value)
}

func renderResults(snap window.Snapshot) string {
	run := snap.LastRun
	p := snap.Session.Paragraph
	rows := []table.Row{
		{"Player", snap.Username},
		{"WPM", fmt.Sprintf("%.2f", run.WPM)},
		{"Accuracy", fmt.Sprintf("%.2f %%", run.Accuracy*100)},
		{"Points", fmt.Sprintf("%.2f", run.TotalPoints)},
		{"Time", fmt.Sprintf("%.2f s", run.Seconds)},
	}
	t := newTable([]table.Column{{Title: "Result", Width: 10}, {Title: "Value", Width: 16}}, rows)

	lines := []string{"Thank you for playing!", ""}
	if p.Title != "" {
		lines = append(lines, accentStyle.Render(p.Title))
	}
	if credit := paragraphCredit(p); credit != "" {
		lines = append(lines, cardTitleStyle.Render(credit))
	}
	lines = append(lines, "", t.View())
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func paragraphCredit(p model.Paragraph) string {
	parts := make([]string, 0, 2)
	if p.Author != "" {
		parts = append(parts, p.Author)
	}
	if p.Date != "" {
		parts = append(parts, p.Date)
	}
	return strings.Join(parts, ", ")
}

func (m *Model) renderStatistics(snap window.Snapshot, width int) string {
	if len(snap.Runs) == 0 {
		return boxStyle.Render("No runs yet. Finish a practice to see statistics.")
	}
	cards := renderSummaryCards(stats.Summarize(snap.Runs), width)
	height := chartHeight
	if m.height > 0 {
		height = maxInt(minChartHeight, minInt(chartHeight, m.height-lipgloss.Height(cards)-recentRuns-8))
	}
	var chart string
	if snap.ShowBars {
		chart = renderBarCharts(snap.Runs, width, height)
	} else {
		chart = renderLineChart(snap.Runs, width, height)
	}
	parts := []string{cards, chart}
	if m.height == 0 || m.height > lipgloss.Height(cards)+lipgloss.Height(chart)+recentRuns+4 {
		parts = append(parts, renderRecentRuns(snap.Runs))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderSummaryCards(s stats.Summary, width int) string {
	cards := []string{
		metricCard("Runs", fmt.Sprintf("%d", s.Runs)),
		metricCard("Avg WPM", fmt.Sprintf("%.1f", s.AvgWPM)),
		metricCard("Best WPM", fmt.Sprintf("%.1f", s.BestWPM)),
		metricCard("Avg Acc", fmt.Sprintf("%.1f%%", s.AvgAccuracy*100)),
		metricCard("Best Points", fmt.Sprintf("%.1f", s.BestPoints)),
	}
	if width < 80 {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4])
		return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderLineChart(runs []model.RunRecord, width, height int) string {
	var buf bytes.Buffer
	series := stats.CurveSeries(runs, 1)
	bounds := stats.SharedBounds(series, stats.ChartFloor)
	err := stats.PlotSeries(&buf, "Statistics  # run →", series, stats.PlotOptions{
		Width:      stats.PlotWidthFor(width - 2),
		Height:     height,
		Color:      true,
		Shared:     &bounds,
		XLabelStep: history.LabelStep(len(runs)),
	})
	if err != nil {
		return errorStyle.Render(fmt.Sprintf("Failed to render chart: %v", err))
	}
	return strings.TrimRight(buf.String(), "\n")
}

func renderBarCharts(runs []model.RunRecord, width, height int) string {
	perChart := maxInt(1, (height-len(history.Fields)*2)/len(history.Fields))
	charts := make([]string, 0, len(history.Fields))
	for i, field := range history.Fields {
		var buf bytes.Buffer
		bars := history.Bars(history.Series(runs, field))
		err := stats.RenderBars(&buf, field.String(), bars, stats.BarOptions{
			Width:      width - 2,
			Height:     perChart,
			Color:      true,
			ColorIndex: i,
		})
		if err != nil {
			return errorStyle.Render(fmt.Sprintf("Failed to render chart: %v", err))
		}
		charts = append(charts, strings.TrimRight(buf.String(), "\n"))
	}
	return strings.Join(charts, "\n")
}

func renderRecentRuns(runs []model.RunRecord) string {
	offset := 0
	if len(runs) > recentRuns {
		offset = len(runs) - recentRuns
	}
	headers, cells := stats.RunRows(runs[offset:], offset)
	columns := make([]table.Column, len(headers))
	for i, h := range headers {
		columns[i] = table.Column{Title: h, Width: maxInt(len(h), 9)}
	}
	rows := make([]table.Row, 0, len(cells))
	for i := len(cells) - 1; i >= 0; i-- {
		rows = append(rows, table.Row(cells[i]))
	}
	return newTable(columns, rows).View()
}

func newTable(columns []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)
	t.SetStyles(tableStyles())
	t.Blur()
	return t
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell
	return styles
}

func (m *Model) renderUsername(snap window.Snapshot, width int) string {
	m.input.SetValue(snap.Draft)
	m.input.CursorEnd()
	m.input.Width = maxInt(10, minInt(width-12, 40))
	lines := []string{
		titleStyle.Render("Who is typing?"),
		"",
		m.input.View(),
		"",
		footerStyle.Render("Press enter to save your username"),
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func renderError(snap window.Snapshot, width int) string {
	boxWidth := maxInt(20, minInt(width-4, 80))
	return boxStyle.
		BorderForeground(lipgloss.Color("#FF4D4F")).
		Width(boxWidth).
		Render(errorStyle.Render(snap.Message))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
