package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/posthog/posthog-go"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/videolighter/videolighter/go/cmd/lib"
	"github.com/videolighter/videolighter/go/config"
	"github.com/videolighter/videolighter/go/licensing"
	"github.com/videolighter/videolighter/go/models"
	"github.com/videolighter/videolighter/go/portal"
)

// Server holds every dependency the handlers need. Nothing lives in package
// globals; tests build a Server around an in-memory store.
type Server struct {
	Config *config.Config
	DB     *gorm.DB
	Router *licensing.Router
	Broker *portal.Broker

	Posthog posthog.Client // optional
	Mailer  *lib.Mailer    // optional
}

func sendError(c *gin.Context, status int, errmsg string) {
	c.JSON(status, &models.ErrorResponse{Error: errmsg})
}

// sendServerError logs the real failure and hands the caller a generic 500.
func sendServerError(c *gin.Context, format string, args ...interface{}) {
	log.Errorf("server error: %s", fmt.Sprintf(format, args...))
	sendError(c, 500, "An unknown server error occurred.")
}
