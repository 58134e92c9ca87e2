package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/prevsim/internal/tui/tuistyles"
)

// MetricCard displays a single metric with label, value, and optional trend
type MetricCard struct {
	Label       string
	Value       string
	Trend       *Trend
	Description string
	Width       int
}

// Trend represents a metric's change direction and amount
type Trend struct {
	IsPositive bool
	Change     string // e.g. "R$ 120.00"
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 30,
	}
}

// WithTrend adds a trend indicator to the metric card
func (m *MetricCard) WithTrend(isPositive bool, change string) *MetricCard {
	m.Trend = &Trend{IsPositive: isPositive, Change: change}
	return m
}

// WithDescription adds a description line
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the bordered card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + tuistyles.MetricValueStyle.Render(m.Value)

	if m.Trend != nil {
		content += "\n" + tuistyles.MetricTrendStyle(m.Trend.IsPositive).
			Render(fmt.Sprintf("%s %s", tuistyles.TrendIndicator(m.Trend.IsPositive), m.Trend.Change))
	}
	if m.Description != "" {
		content += "\n" + tuistyles.InfoStyle.Render(m.Description)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// MetricGrid renders cards in rows of the given number of columns
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	rows := []string{}
	currentRow := []string{}
	for i, card := range cards {
		currentRow = append(currentRow, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, currentRow...))
			currentRow = []string{}
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
