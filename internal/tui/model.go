// Package tui renders the polled API snapshots as a tabbed terminal
// dashboard. All state here is view-local: sort direction, filter choice,
// which tab is open. The data itself always comes from the client cache.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"netwatch/internal/client"
	"netwatch/internal/models"
)

type tab int

const (
	tabDevices tab = iota
	tabAlerts
	tabRules
	tabVaults
	tabCount
)

var tabTitles = [tabCount]string{"Devices", "Alerts", "IDS Rules", "Vaults"}

var statusCycle = []string{"all", "online", "warning", "offline", "maintenance"}
var severityCycle = []string{"all", "low", "medium", "high", "critical"}

type tickMsg time.Time

type mutationMsg struct{ err error }

type Model struct {
	api   *client.Client
	cache *client.Cache

	active tab
	tables [tabCount]table.Model

	deviceSort SortState
	alertSort  SortState
	ruleSort   SortState

	statusFilter   string
	severityFilter string

	pending bool // a mutation is in flight; actions are disabled
	lastErr error

	width  int
	height int
}

func NewModel(api *client.Client, cache *client.Cache) Model {
	registerQueries(api, cache)

	m := Model{
		api:            api,
		cache:          cache,
		deviceSort:     SortState{Field: "id", Ascending: true},
		alertSort:      SortState{Field: "id", Ascending: true},
		ruleSort:       SortState{Field: "id", Ascending: true},
		statusFilter:   "all",
		severityFilter: "all",
	}

	m.tables[tabDevices] = newTable([]table.Column{
		{Title: "ID", Width: 4},
		{Title: "Name", Width: 22},
		{Title: "Type", Width: 13},
		{Title: "IP Address", Width: 15},
		{Title: "Status", Width: 12},
		{Title: "MB/s", Width: 8},
		{Title: "Max", Width: 8},
		{Title: "Last Activity", Width: 19},
	})
	m.tables[tabAlerts] = newTable([]table.Column{
		{Title: "ID", Width: 4},
		{Title: "Time", Width: 19},
		{Title: "Type", Width: 18},
		{Title: "Severity", Width: 9},
		{Title: "Source IP", Width: 15},
		{Title: "Status", Width: 14},
	})
	m.tables[tabRules] = newTable([]table.Column{
		{Title: "ID", Width: 4},
		{Title: "Name", Width: 30},
		{Title: "Severity", Width: 9},
		{Title: "Enabled", Width: 8},
		{Title: "Updated", Width: 19},
	})
	m.tables[tabVaults] = newTable([]table.Column{
		{Title: "ID", Width: 4},
		{Title: "Name", Width: 24},
		{Title: "Description", Width: 40},
		{Title: "Entries", Width: 8},
	})

	return m
}

func newTable(cols []table.Column) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	return t
}

func registerQueries(api *client.Client, cache *client.Cache) {
	cache.Register("/api/system-metrics/latest", client.SnapshotInterval, func(ctx context.Context) (any, error) {
		return api.LatestSystemMetric(ctx)
	})
	cache.Register("/api/system-metrics/history", client.ListInterval, func(ctx context.Context) (any, error) {
		return api.SystemMetricHistory(ctx, 24)
	})
	cache.Register("/api/devices", client.ListInterval, func(ctx context.Context) (any, error) {
		return api.Devices(ctx)
	})
	cache.Register("/api/security-events", client.ListInterval, func(ctx context.Context) (any, error) {
		return api.SecurityEvents(ctx, "", 0)
	})
	cache.Register("/api/ids-rules", client.SlowInterval, func(ctx context.Context) (any, error) {
		return api.IdsRules(ctx)
	})
	cache.Register("/api/password-vaults", client.SlowInterval, func(ctx context.Context) (any, error) {
		return api.PasswordVaults(ctx)
	})
	cache.Register("/api/password-entries", client.SlowInterval, func(ctx context.Context) (any, error) {
		return api.PasswordEntries(ctx, nil)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for i := range m.tables {
			m.tables[i].SetHeight(max(6, m.height-12))
		}
		return m, nil

	case tickMsg:
		m.refreshRows()
		return m, tick()

	case mutationMsg:
		m.pending = false
		m.lastErr = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.cache.Close()
		return m, tea.Quit

	case "tab":
		m.active = (m.active + 1) % tabCount
		return m, nil
	case "shift+tab":
		m.active = (m.active + tabCount - 1) % tabCount
		return m, nil

	case "1", "2", "3", "4", "5", "6", "7", "8":
		col, _ := strconv.Atoi(msg.String())
		m.sortByColumn(col - 1)
		m.refreshRows()
		return m, nil

	case "f":
		switch m.active {
		case tabDevices:
			m.statusFilter = cycle(statusCycle, m.statusFilter)
		case tabAlerts:
			m.severityFilter = cycle(severityCycle, m.severityFilter)
		}
		m.refreshRows()
		return m, nil

	case "e":
		if m.active == tabRules && !m.pending {
			if id, ok := selectedID(m.tables[tabRules]); ok {
				m.pending = true
				return m, m.toggleRule(id)
			}
		}
		return m, nil

	case "x":
		if m.pending {
			return m, nil
		}
		if id, ok := selectedID(m.tables[m.active]); ok {
			m.pending = true
			return m, m.deleteSelected(m.active, id)
		}
		return m, nil

	case "g":
		if !m.pending {
			m.pending = true
			return m, m.generateMockData()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.tables[m.active], cmd = m.tables[m.active].Update(msg)
	return m, cmd
}

func cycle(values []string, current string) string {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

func selectedID(t table.Model) (uint, bool) {
	row := t.SelectedRow()
	if row == nil {
		return 0, false
	}
	id, err := strconv.Atoi(row[0])
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func (m *Model) sortByColumn(col int) {
	switch m.active {
	case tabDevices:
		fields := []string{"id", "name", "type", "ipAddress", "status", "bandwidth", "maxBandwidth", "lastActivity"}
		if col < len(fields) {
			m.deviceSort.Toggle(fields[col])
		}
	case tabAlerts:
		fields := []string{"id", "timestamp", "eventType", "severity", "sourceIp", "status"}
		if col < len(fields) {
			m.alertSort.Toggle(fields[col])
		}
	case tabRules:
		fields := []string{"id", "name", "severity", "enabled", "updatedAt"}
		if col < len(fields) {
			m.ruleSort.Toggle(fields[col])
		}
	}
}

func (m *Model) toggleRule(id uint) tea.Cmd {
	api, cache := m.api, m.cache
	var current *models.IdsRule
	if rules, ok := cacheData[[]models.IdsRule](cache, "/api/ids-rules"); ok {
		for i := range rules {
			if rules[i].ID == id {
				current = &rules[i]
				break
			}
		}
	}
	return func() tea.Msg {
		if current == nil {
			return mutationMsg{}
		}
		enabled := !current.Enabled
		err := cache.Mutate("/api/ids-rules", func(ctx context.Context) error {
			_, err := api.UpdateIdsRule(ctx, id, models.IdsRuleUpdate{Enabled: &enabled})
			return err
		})
		return mutationMsg{err: err}
	}
}

func (m *Model) deleteSelected(t tab, id uint) tea.Cmd {
	api, cache := m.api, m.cache
	return func() tea.Msg {
		var err error
		switch t {
		case tabDevices:
			err = cache.Mutate("/api/devices", func(ctx context.Context) error {
				return api.DeleteDevice(ctx, id)
			})
		case tabAlerts:
			err = cache.Mutate("/api/security-events", func(ctx context.Context) error {
				return api.DeleteSecurityEvent(ctx, id)
			})
		case tabRules:
			err = cache.Mutate("/api/ids-rules", func(ctx context.Context) error {
				return api.DeleteIdsRule(ctx, id)
			})
		case tabVaults:
			err = cache.Mutate("/api/password-vaults", func(ctx context.Context) error {
				return api.DeletePasswordVault(ctx, id)
			})
		}
		return mutationMsg{err: err}
	}
}

func (m *Model) generateMockData() tea.Cmd {
	api, cache := m.api, m.cache
	return func() tea.Msg {
		err := api.GenerateMockData(context.Background())
		if err == nil {
			cache.Invalidate("/api/bandwidth-metrics")
			cache.Invalidate("/api/system-metrics")
		}
		return mutationMsg{err: err}
	}
}

// cacheData extracts a typed value from a snapshot; ok is false until the
// first successful fetch.
func cacheData[T any](c *client.Cache, key string) (T, bool) {
	var zero T
	snap := c.Get(key)
	if !snap.Loaded() || snap.Data == nil {
		return zero, false
	}
	v, ok := snap.Data.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

func (m *Model) refreshRows() {
	if devices, ok := cacheData[[]models.Device](m.cache, "/api/devices"); ok {
		devices = FilterBy(devices, m.statusFilter, func(d models.Device) string { return string(d.Status) })
		SortBy(devices, deviceSortKey(m.deviceSort.Field), m.deviceSort.Ascending)
		rows := make([]table.Row, len(devices))
		for i, d := range devices {
			rows[i] = table.Row{
				strconv.FormatUint(uint64(d.ID), 10),
				d.Name,
				string(d.Type),
				d.IPAddress,
				string(d.Status),
				fmt.Sprintf("%.0f", d.Bandwidth),
				fmt.Sprintf("%.0f", d.MaxBandwidth),
				d.LastActivity.Format("2006-01-02 15:04:05"),
			}
		}
		m.tables[tabDevices].SetRows(rows)
	}

	if events, ok := cacheData[[]models.SecurityEvent](m.cache, "/api/security-events"); ok {
		events = FilterBy(events, m.severityFilter, func(e models.SecurityEvent) string { return string(e.Severity) })
		SortBy(events, alertSortKey(m.alertSort.Field), m.alertSort.Ascending)
		rows := make([]table.Row, len(events))
		for i, e := range events {
			rows[i] = table.Row{
				strconv.FormatUint(uint64(e.ID), 10),
				e.Timestamp.Format("2006-01-02 15:04:05"),
				e.EventType,
				string(e.Severity),
				e.SourceIP,
				string(e.Status),
			}
		}
		m.tables[tabAlerts].SetRows(rows)
	}

	if rules, ok := cacheData[[]models.IdsRule](m.cache, "/api/ids-rules"); ok {
		SortBy(rules, ruleSortKey(m.ruleSort.Field), m.ruleSort.Ascending)
		rows := make([]table.Row, len(rules))
		for i, r := range rules {
			enabled := "no"
			if r.Enabled {
				enabled = "yes"
			}
			rows[i] = table.Row{
				strconv.FormatUint(uint64(r.ID), 10),
				r.Name,
				string(r.Severity),
				enabled,
				r.UpdatedAt.Format("2006-01-02 15:04:05"),
			}
		}
		m.tables[tabRules].SetRows(rows)
	}

	if vaults, ok := cacheData[[]models.PasswordVault](m.cache, "/api/password-vaults"); ok {
		counts := map[uint]int{}
		if entries, ok := cacheData[[]models.PasswordEntry](m.cache, "/api/password-entries"); ok {
			for _, e := range entries {
				counts[e.VaultID]++
			}
		}
		rows := make([]table.Row, len(vaults))
		for i, v := range vaults {
			desc := ""
			if v.Description != nil {
				desc = *v.Description
			}
			rows[i] = table.Row{
				strconv.FormatUint(uint64(v.ID), 10),
				v.Name,
				desc,
				strconv.Itoa(counts[v.ID]),
			}
		}
		m.tables[tabVaults].SetRows(rows)
	}
}

func deviceSortKey(field string) func(models.Device) any {
	switch field {
	case "name":
		return func(d models.Device) any { return d.Name }
	case "type":
		return func(d models.Device) any { return string(d.Type) }
	case "ipAddress":
		return func(d models.Device) any { return d.IPAddress }
	case "status":
		return func(d models.Device) any { return string(d.Status) }
	case "bandwidth":
		return func(d models.Device) any { return d.Bandwidth }
	case "maxBandwidth":
		return func(d models.Device) any { return d.MaxBandwidth }
	case "lastActivity":
		return func(d models.Device) any { return d.LastActivity.UnixNano() }
	default:
		return func(d models.Device) any { return d.ID }
	}
}

func alertSortKey(field string) func(models.SecurityEvent) any {
	switch field {
	case "timestamp":
		return func(e models.SecurityEvent) any { return e.Timestamp.UnixNano() }
	case "eventType":
		return func(e models.SecurityEvent) any { return e.EventType }
	case "severity":
		return func(e models.SecurityEvent) any { return string(e.Severity) }
	case "sourceIp":
		return func(e models.SecurityEvent) any { return e.SourceIP }
	case "status":
		return func(e models.SecurityEvent) any { return string(e.Status) }
	default:
		return func(e models.SecurityEvent) any { return e.ID }
	}
}

func ruleSortKey(field string) func(models.IdsRule) any {
	switch field {
	case "name":
		return func(r models.IdsRule) any { return r.Name }
	case "severity":
		return func(r models.IdsRule) any { return string(r.Severity) }
	case "enabled":
		return func(r models.IdsRule) any {
			if r.Enabled {
				return 1
			}
			return 0
		}
	case "updatedAt":
		return func(r models.IdsRule) any { return r.UpdatedAt.UnixNano() }
	default:
		return func(r models.IdsRule) any { return r.ID }
	}
}
