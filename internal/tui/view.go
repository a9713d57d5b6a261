package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"netwatch/internal/models"
)

var (
	tabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("245"))
	activeTabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(lipgloss.Color("212"))
	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			MarginBottom(1)
	chartStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))
	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true).
			Padding(1, 2)
)

var sparks = []rune("▁▂▃▄▅▆▇█")

func (m Model) View() string {
	var b strings.Builder

	var tabs []string
	for i, title := range tabTitles {
		if tab(i) == m.active {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, tabStyle.Render(title))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	b.WriteString(m.summaryLine())
	b.WriteString("\n")
	b.WriteString(m.bandwidthChart())
	b.WriteString("\n\n")

	b.WriteString(m.activeBody())
	b.WriteString("\n")
	b.WriteString(summaryStyle.Render("Page 1 of 1"))
	b.WriteString("\n")

	if m.lastErr != nil {
		b.WriteString(errStyle.Render("error: " + m.lastErr.Error()))
		b.WriteString("\n")
	}
	if m.pending {
		b.WriteString(helpStyle.Render("working..."))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("tab: switch · 1-8: sort · f: filter · e: toggle rule · x: delete · g: mock data · q: quit"))
	return b.String()
}

func (m Model) summaryLine() string {
	snap := m.cache.Get("/api/system-metrics/latest")
	if !snap.Loaded() {
		return summaryStyle.Render("loading system metrics...")
	}
	metric, _ := snap.Data.(*models.SystemMetric)
	if metric == nil {
		return summaryStyle.Render("no system metrics yet")
	}
	line := fmt.Sprintf("active devices: %d · total bandwidth: %.1f GB/s · warnings: %d · uptime: %.1f%%",
		metric.ActiveDevices, metric.TotalBandwidth, metric.Warnings, metric.Uptime)
	if m.active == tabDevices && m.statusFilter != "all" {
		line += " · filter: " + m.statusFilter
	}
	if m.active == tabAlerts && m.severityFilter != "all" {
		line += " · filter: " + m.severityFilter
	}
	return summaryStyle.Render(line)
}

// bandwidthChart draws the system bandwidth history as a sparkline. The
// API returns newest-first; reverse for a left-to-right time axis.
func (m Model) bandwidthChart() string {
	history, ok := cacheData[[]models.SystemMetric](m.cache, "/api/system-metrics/history")
	if !ok || len(history) == 0 {
		return chartStyle.Render("bandwidth 24h: (no data)")
	}

	values := make([]float64, len(history))
	for i, h := range history {
		values[len(history)-1-i] = h.TotalBandwidth
	}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	var line strings.Builder
	for _, v := range values {
		idx := 0
		if maxV > minV {
			idx = int((v - minV) / (maxV - minV) * float64(len(sparks)-1))
		}
		line.WriteRune(sparks[idx])
	}
	return chartStyle.Render(fmt.Sprintf("bandwidth 24h: %s (%.1f - %.1f GB/s)", line.String(), minV, maxV))
}

func (m Model) activeBody() string {
	key := map[tab]string{
		tabDevices: "/api/devices",
		tabAlerts:  "/api/security-events",
		tabRules:   "/api/ids-rules",
		tabVaults:  "/api/password-vaults",
	}[m.active]

	snap := m.cache.Get(key)
	if !snap.Loaded() {
		return emptyStyle.Render("loading...")
	}
	if len(m.tables[m.active].Rows()) == 0 {
		if m.active == tabDevices && m.statusFilter != "all" {
			return emptyStyle.Render("nothing matches the current filter")
		}
		if m.active == tabAlerts && m.severityFilter != "all" {
			return emptyStyle.Render("nothing matches the current filter")
		}
		return emptyStyle.Render("no records yet")
	}
	return m.tables[m.active].View()
}
