package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Port        int    `envconfig:"PORT" default:"8080"`
	PostgresURL string `envconfig:"POSTGRES_URL" required:"true"`
	JWTSecret   string `envconfig:"JWT_SECRET" required:"true"`

	PolarAccessToken       string `envconfig:"POLAR_ACCESS_TOKEN"`
	PolarAPIBaseURL        string `envconfig:"POLAR_API_BASE_URL" default:"https://api.polar.sh"`
	PolarProductProID      string `envconfig:"POLAR_PRODUCT_PRO_ID"`
	PolarProductLifetimeID string `envconfig:"POLAR_PRODUCT_LIFETIME_ID"`

	SlackWebhookURL string `envconfig:"SLACK_WEBHOOK_URL"`
	PosthogAPIKey   string `envconfig:"POSTHOG_API_KEY"`

	AWSRegion string `envconfig:"AWS_REGION" default:"us-east-2"`
	EmailFrom string `envconfig:"EMAIL_FROM"`
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}

	log.Info("config parsed")
	return cfg, nil
}
