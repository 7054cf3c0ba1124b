package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/stayprice/internal/api"
	"github.com/jask/stayprice/internal/config"
	"github.com/jask/stayprice/internal/database"
	"github.com/jask/stayprice/internal/database/repository"
	"github.com/jask/stayprice/internal/service"
	"github.com/jask/stayprice/internal/session"
	"github.com/jask/stayprice/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := database.RunMigrations(cfg.Database.Path, "internal/database/migrations"); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	client := api.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)

	historyRepo := repository.NewHistoryRepo(db)

	sess := session.New(time.Now())

	p := tea.NewProgram(tui.New(ctx, cfg, sess, client,
		tui.Services{
			Recommender: &service.Recommender{API: client},
			Simulator:   &service.Simulator{API: client},
			History:     &service.HistoryService{History: historyRepo},
		},
	), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
