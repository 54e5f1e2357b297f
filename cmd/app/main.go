package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"fooddelivery/cmd"
	httpin "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/rabbitmq"
	"fooddelivery/internal/core/ports"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	dsn := postgresDSN(configs)
	waitForPostgres(dsn, logger)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	var notifier ports.NotificationGateway
	if configs.AmqpURL != "" {
		rabbit, rErr := rabbitmq.NewNotifier(configs.AmqpURL)
		if rErr != nil {
			log.Fatalf("connect to RabbitMQ: %v", rErr)
		}
		defer func() { _ = rabbit.Close() }()
		notifier = rabbit
	} else {
		logger.Warn("AMQP_URL is empty, notifications disabled")
	}

	root, err := cmd.NewCompositionRoot(configs, gormDB, notifier)
	if err != nil {
		log.Fatalf("build composition root: %v", err)
	}

	redispatch := root.CreateRedispatchJob(configs.RedispatchSchedule, logger)
	if err = redispatch.Start(); err != nil {
		log.Fatalf("start redispatch job: %v", err)
	}
	defer redispatch.Stop()

	startWebServer(&root, configs)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("no .env file loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort:   envOr("HTTP_PORT", "8080"),
		DBHost:     envOr("DB_HOST", "localhost"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     envOr("DB_USER", "postgres"),
		DBPassword: envOr("DB_PASSWORD", "postgres"),
		DBName:     envOr("DB_NAME", "fooddelivery"),
		DBSslMode:  envOr("DB_SSLMODE", "disable"),

		AmqpURL:   os.Getenv("AMQP_URL"),
		JWTSecret: envOr("JWT_SECRET", ""),

		RedispatchSchedule: envOr("REDISPATCH_CRON", "*/5 * * * * *"),

		TariffBaseFee:        envFloat("TARIFF_BASE_FEE", 120),
		TariffPerKmRate:      envFloat("TARIFF_PER_KM_RATE", 10),
		TariffBaseDistanceKm: envFloat("TARIFF_BASE_DISTANCE_KM", 1),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return value
}

func postgresDSN(configs cmd.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)
}

// waitForPostgres pings the database until it answers. Container setups
// regularly start the app before the database accepts connections.
func waitForPostgres(dsn string, logger *slog.Logger) {
	const attempts = 30

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	defer func() { _ = db.Close() }()

	for i := range attempts {
		if err = db.Ping(); err == nil {
			return
		}
		logger.Info("waiting for postgres", "attempt", i+1, "error", err)
		time.Sleep(time.Second)
	}

	log.Fatalf("postgres did not come up: %v", err)
}

func startWebServer(root *cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	server := httpin.NewServer(root.CreateServerHandlers(), root.UserDirectory())
	server.RegisterRoutes(e, []byte(configs.JWTSecret))

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
