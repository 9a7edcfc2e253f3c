// Manual check-in reminder sweep.
//
// The server already nudges owners of pending bets from its background
// loop, matching each bet's notification time. This script fires one
// catch-up sweep immediately, for example after the server was down
// over a notification window.
//
// Usage: go run scripts/send_reminders.go
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rajpalpavitra-beep/HaBet-app3/internal/config"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/model"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/repository"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/scoring"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/service"
	"github.com/rajpalpavitra-beep/HaBet-app3/pkg/database"
	"github.com/rajpalpavitra-beep/HaBet-app3/pkg/logger"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("cannot read config file: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("cannot parse config file: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	betRepo := repository.NewBetRepository(db)
	checkinRepo := repository.NewCheckinRepository(db)
	notification := service.NewNotificationService(repository.NewNotificationRepository(db, nil))

	bets, err := betRepo.FindPending()
	if err != nil {
		log.Fatalf("loading pending bets failed: %v", err)
	}

	today := scoring.DateOnly(time.Now())
	sent := 0
	for i := range bets {
		bet := &bets[i]
		if bet.StartDate != nil && today.Before(scoring.DateOnly(*bet.StartDate)) {
			continue
		}
		if bet.TargetDate != nil && today.After(scoring.DateOnly(*bet.TargetDate)) {
			continue
		}
		if checkin, err := checkinRepo.FindByBetAndDate(bet.ID, bet.UserID, today); err == nil && checkin.Completed {
			continue
		}
		notification.Notify(bet.UserID, model.NotifyReminder,
			fmt.Sprintf("Don't forget to check in on %q today", bet.Title),
			&bet.ID, nil)
		sent++
	}

	log.Printf("reminder sweep done, %d reminders sent", sent)
}
