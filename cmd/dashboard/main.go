package main

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"netwatch/internal/client"
	"netwatch/internal/config"
	"netwatch/internal/tui"
)

func main() {
	cfg := config.Load()

	api := client.New(cfg.APIBaseURL)
	cache := client.NewCache()
	defer cache.Close()

	m := tui.NewModel(api, cache)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("dashboard error: %v", err)
	}
}
