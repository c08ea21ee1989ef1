package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"dispatch/cmd"
	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	config, err := loadConfig(logger)
	if err != nil {
		return err
	}

	gormDB, err := openDatabase(config)
	if err != nil {
		return err
	}

	if err = postgres.Migrate(gormDB); err != nil {
		return err
	}

	root, err := cmd.NewCompositionRoot(config, gormDB, logger)
	if err != nil {
		return err
	}
	defer func() { _ = root.Close() }()

	jobManager := jobs.NewJobManager(
		root.CreateAssignOrdersCommandHandler(),
		root.CreateMoveCouriersCommandHandler(),
		root.CreateProcessOutboxMessagesCommandHandler(),
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	consumer, err := root.CreateBasketConfirmedConsumer()
	if err != nil {
		return err
	}
	defer func() { _ = consumer.Close() }()

	e := newEchoServer(root)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("http server starting", "port", config.HTTPPort)
		if err := e.Start(":" + config.HTTPPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		logger.Info("basket confirmed consumer starting")
		return consumer.Run(groupCtx)
	})

	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return e.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

func newEchoServer(root *cmd.CompositionRoot) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(
		root.CreateCreateCourierCommandHandler(),
		root.CreateAddStoragePlaceCommandHandler(),
		root.CreateCreateOrderCommandHandler(),
		root.CreateGetAllCouriersQueryHandler(),
		root.CreateGetUncompletedOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	return e
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser,
		config.DBPassword, config.DBName, config.DBSslMode,
	)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return gormDB, nil
}

func loadConfig(logger *slog.Logger) (cmd.Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("no .env file, using process environment")
	}

	var missing []string
	env := func(key string) string {
		value := os.Getenv(key)
		if value == "" {
			missing = append(missing, key)
		}
		return value
	}

	config := cmd.Config{
		HTTPPort:                     env("HTTP_PORT"),
		DBHost:                       env("DB_HOST"),
		DBPort:                       env("DB_PORT"),
		DBUser:                       env("DB_USER"),
		DBPassword:                   env("DB_PASSWORD"),
		DBName:                       env("DB_NAME"),
		DBSslMode:                    env("DB_SSLMODE"),
		GeoServiceURL:                env("GEO_SERVICE_URL"),
		KafkaBrokers:                 strings.Split(env("KAFKA_BROKERS"), ","),
		KafkaBasketConfirmedTopic:    env("KAFKA_BASKET_CONFIRMED_TOPIC"),
		KafkaOrderStatusChangedTopic: env("KAFKA_ORDER_STATUS_CHANGED_TOPIC"),
		RedisAddr:                    env("REDIS_ADDR"),
	}

	if len(missing) > 0 {
		return cmd.Config{}, fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}

	return config, nil
}
