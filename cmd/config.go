package cmd

// Config carries everything the composition root needs, loaded from the
// environment by the entry point.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	AmqpURL   string
	JWTSecret string

	// RedispatchSchedule is a six-field cron expression with seconds,
	// e.g. "*/5 * * * * *".
	RedispatchSchedule string

	TariffBaseFee        float64
	TariffPerKmRate      float64
	TariffBaseDistanceKm float64
}
