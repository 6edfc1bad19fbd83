package main

import (
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"ieltslearn/internal/config"
	"ieltslearn/internal/content"
	"ieltslearn/internal/domain"
	"ieltslearn/internal/handler"
	"ieltslearn/internal/middleware"
	"ieltslearn/internal/reminder"
	"ieltslearn/internal/repository"
	pgstore "ieltslearn/internal/repository/postgres"
	"ieltslearn/internal/repository/sqlite"
	"ieltslearn/internal/service"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting IELTS Learn Bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully")

	// Connect to the remote (account-scoped) database with retries
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Database migrations completed")

	// Open the device-local key-value store
	if err := os.MkdirAll(filepath.Dir(cfg.LocalDBPath), 0o755); err != nil {
		logger.Fatal("Failed to create local data directory", zap.Error(err))
	}
	localDB, err := sqlite.Open(cfg.LocalDBPath)
	if err != nil {
		logger.Fatal("Failed to open local store", zap.Error(err))
	}
	defer localDB.Close()

	logger.Info("Local store opened", zap.String("path", cfg.LocalDBPath))

	// Load word content
	words := loadWords(cfg, logger)
	library := content.NewLibrary(words)

	// Initialize session management: local scope by default, remote
	// scope after sign-in
	auth := service.NewPasswordAuthenticator(cfg.BotPassword)
	newLocal := func(chatID int64) repository.Store {
		return sqlite.NewKVStore(localDB, fmt.Sprintf("chat-%d", chatID), logger)
	}
	newRemote := func(account domain.Account) (repository.Store, repository.ProfileStore) {
		store := pgstore.NewStore(db, account.ID)
		return store, store
	}
	sessions := service.NewSessionManager(auth, newLocal, newRemote, logger)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	bot.Use(middleware.SessionMiddleware(sessions, logger))

	// Initialize handler
	h := handler.NewHandler(bot, sessions, library, content.DefaultPodcasts, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Start daily reminder job
	daily := reminder.New(sessions, h, cfg.ReminderHour, logger)
	if err := daily.Start(); err != nil {
		logger.Fatal("Failed to start reminder", zap.Error(err))
	}
	defer daily.Stop()

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()

	logger.Info("Bot stopped gracefully")
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		// Connection successful
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Migrations applied")
	return nil
}

// loadWords loads the word list from the configured spreadsheet, falling
// back to the built-in list
func loadWords(cfg *config.Config, logger *zap.Logger) []content.Word {
	if cfg.WordsFile == "" {
		return nil
	}

	words, err := content.ImportWords(cfg.WordsFile, content.DefaultImportConfig())
	if err != nil {
		logger.Warn("Failed to import word list, using built-in words",
			zap.String("file", cfg.WordsFile),
			zap.Error(err),
		)
		return nil
	}

	logger.Info("Word list imported",
		zap.String("file", cfg.WordsFile),
		zap.Int("words", len(words)),
	)
	return words
}
