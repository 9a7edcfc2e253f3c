package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rajpalpavitra-beep/HaBet-app3/internal/config"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/controller"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/model"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/repository"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/scoring"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/service"
	"github.com/rajpalpavitra-beep/HaBet-app3/pkg/configwatcher"
	"github.com/rajpalpavitra-beep/HaBet-app3/pkg/database"
	"github.com/rajpalpavitra-beep/HaBet-app3/pkg/logger"
	"github.com/rajpalpavitra-beep/HaBet-app3/pkg/monitoring"
	"github.com/rajpalpavitra-beep/HaBet-app3/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type repositories struct {
	user         *repository.UserRepository
	bet          *repository.BetRepository
	checkin      *repository.CheckinRepository
	friend       *repository.FriendRepository
	room         *repository.RoomRepository
	notification *repository.NotificationRepository
}

type services struct {
	auth         *service.AuthService
	user         *service.UserService
	bet          *service.BetService
	checkin      *service.CheckinService
	friend       *service.FriendService
	room         *service.RoomService
	leaderboard  *service.LeaderboardService
	notification *service.NotificationService
	mail         *service.MailService
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	bet          *controller.BetController
	checkin      *controller.CheckinController
	friend       *controller.FriendController
	room         *controller.RoomController
	leaderboard  *controller.LeaderboardController
	notification *controller.NotificationController
	invite       *controller.InviteController
	health       *controller.HealthController
}

type App struct {
	cfg    *config.Config
	db     *gorm.DB
	rdb    *redis.Client
	engine *gin.Engine

	repos       repositories
	services    services
	controllers controllers

	stopReminders chan struct{}
}

func NewApp(cfg *config.Config) (*App, error) {
	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	// Redis is optional: leaderboard and unread-count caches degrade to
	// direct queries without it.
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, caching disabled", zap.Error(err))
		rdb = nil
	}

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("habet-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Warn("Tracing init failed", zap.Error(err))
		}
	}

	monitoring.Init()

	a := &App{
		cfg:           cfg,
		db:            db,
		rdb:           rdb,
		stopReminders: make(chan struct{}),
	}
	if err := a.wire(); err != nil {
		return nil, err
	}
	a.engine = a.setupRouter()
	return a, nil
}

func (a *App) wire() error {
	a.repos = repositories{
		user:         repository.NewUserRepository(a.db),
		bet:          repository.NewBetRepository(a.db),
		checkin:      repository.NewCheckinRepository(a.db),
		friend:       repository.NewFriendRepository(a.db),
		room:         repository.NewRoomRepository(a.db),
		notification: repository.NewNotificationRepository(a.db, a.rdb),
	}

	storage, err := service.NewStorageService(a.cfg)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	mail := service.NewMailService(a.cfg)
	notification := service.NewNotificationService(a.repos.notification)

	a.services = services{
		auth:         service.NewAuthService(a.repos.user, a.repos.room, a.cfg),
		user:         service.NewUserService(a.repos.user, storage),
		bet:          service.NewBetService(a.repos.bet, a.repos.friend, a.repos.room, a.repos.user, notification),
		checkin:      service.NewCheckinService(a.repos.checkin, a.repos.bet, a.repos.user, notification),
		friend:       service.NewFriendService(a.repos.friend, a.repos.user, notification, mail, a.cfg),
		room:         service.NewRoomService(a.repos.room, a.repos.bet, a.repos.user, mail, a.cfg),
		leaderboard:  service.NewLeaderboardService(a.repos.user, a.repos.bet, a.repos.checkin, a.repos.room, a.rdb),
		notification: notification,
		mail:         mail,
	}

	a.controllers = controllers{
		auth:         controller.NewAuthController(a.services.auth),
		user:         controller.NewUserController(a.services.user),
		bet:          controller.NewBetController(a.services.bet, a.services.checkin),
		checkin:      controller.NewCheckinController(a.services.checkin),
		friend:       controller.NewFriendController(a.services.friend),
		room:         controller.NewRoomController(a.services.room),
		leaderboard:  controller.NewLeaderboardController(a.services.leaderboard),
		notification: controller.NewNotificationController(a.services.notification),
		invite:       controller.NewInviteController(a.services.mail),
		health:       controller.NewHealthController(a.db),
	}
	return nil
}

func (a *App) Run() error {
	go a.watchConfig()
	go a.reminderLoop()

	srv := &http.Server{
		Addr:    ":" + a.cfg.Server.Port,
		Handler: a.engine,
	}

	go func() {
		logger.Log.Info("Server starting", zap.String("port", a.cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down server")
	close(a.stopReminders)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	if a.rdb != nil {
		a.rdb.Close()
	}
	logger.Log.Info("Server stopped")
	return nil
}

// watchConfig hot-reloads the settings that are safe to swap at
// runtime: SMTP credentials and the app base URL.
func (a *App) watchConfig() {
	configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		a.cfg.Mail = newCfg.Mail
		a.cfg.App = newCfg.App
		logger.Log.Info("Config reloaded",
			zap.Bool("mail_configured", a.cfg.MailConfigured()))
	})
}

// reminderLoop wakes every minute and nudges owners of pending daily
// bets whose notification time matches the current minute and who have
// not completed today's check-in yet.
func (a *App) reminderLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-a.stopReminders:
			return
		case now := <-ticker.C:
			a.sweepReminders(now)
		}
	}
}

func (a *App) sweepReminders(now time.Time) {
	minute := now.UTC().Format("15:04")

	bets, err := a.repos.bet.FindPending()
	if err != nil {
		logger.Log.Warn("Reminder sweep failed", zap.Error(err))
		return
	}

	today := scoring.DateOnly(now)
	for i := range bets {
		bet := &bets[i]
		if bet.NotificationFrequency != "daily" || bet.NotificationTime != minute {
			continue
		}
		if bet.StartDate != nil && today.Before(scoring.DateOnly(*bet.StartDate)) {
			continue
		}
		if bet.TargetDate != nil && today.After(scoring.DateOnly(*bet.TargetDate)) {
			continue
		}
		if checkin, err := a.repos.checkin.FindByBetAndDate(bet.ID, bet.UserID, today); err == nil && checkin.Completed {
			continue
		}
		a.services.notification.Notify(bet.UserID, model.NotifyReminder,
			fmt.Sprintf("Don't forget to check in on %q today", bet.Title),
			&bet.ID, nil)
	}
}
