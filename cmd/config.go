package cmd

// Config carries every setting the application reads from the environment.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	GeoServiceURL string

	KafkaBrokers                 []string
	KafkaBasketConfirmedTopic    string
	KafkaOrderStatusChangedTopic string

	RedisAddr string
}
