package main

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/posthog/posthog-go"
	log "github.com/sirupsen/logrus"

	"github.com/videolighter/videolighter/go/cmd/lib"
	"github.com/videolighter/videolighter/go/config"
	"github.com/videolighter/videolighter/go/db"
	"github.com/videolighter/videolighter/go/licensing"
	"github.com/videolighter/videolighter/go/portal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	gdb, err := db.Open(cfg.PostgresURL)
	if err != nil {
		log.Fatal(err)
	}

	issuer := &licensing.Issuer{
		DB:                gdb,
		Resolver:          &licensing.Resolver{DB: gdb},
		MonthlyProductID:  cfg.PolarProductProID,
		LifetimeProductID: cfg.PolarProductLifetimeID,
	}

	server := &Server{
		Config: cfg,
		DB:     gdb,
		Router: &licensing.Router{
			Issuer:  issuer,
			Revoker: &licensing.Revoker{DB: gdb},
		},
		Broker: &portal.Broker{
			DB:          gdb,
			HTTPClient:  &http.Client{},
			AccessToken: cfg.PolarAccessToken,
			APIBase:     cfg.PolarAPIBaseURL,
		},
	}

	if cfg.PosthogAPIKey != "" {
		client, err := posthog.NewWithConfig(cfg.PosthogAPIKey, posthog.Config{
			Endpoint: "https://app.posthog.com",
		})
		if err != nil {
			log.Fatal(err)
		}
		defer client.Close()
		server.Posthog = client
	}

	if cfg.EmailFrom != "" {
		mailer, err := lib.NewMailer(cfg.AWSRegion, cfg.EmailFrom)
		if err != nil {
			// license emails are a nicety, the webhook must still run
			log.Warnf("mailer disabled: %v", err)
		} else {
			server.Mailer = mailer
		}
	}

	r := gin.Default()
	r.Use(cors.Default())
	r.POST("/polar-webhook", server.PostPolarWebhook)
	r.POST("/customer-portal", server.PostCustomerPortal)
	if err := r.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatal(err)
	}
}
