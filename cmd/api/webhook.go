package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/videolighter/videolighter/go/licensing"
	"github.com/videolighter/videolighter/go/models"
)

// PostPolarWebhook receives payment lifecycle events from Polar. Unknown
// event types are acknowledged, not rejected, so the provider doesn't keep
// redelivering them.
func (s *Server) PostPolarWebhook(c *gin.Context) {
	var event models.WebhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid data.")
		return
	}

	result, err := s.Router.HandleEvent(event)
	if err != nil {
		var validation *licensing.ValidationError
		var notFound *licensing.NotFoundError
		switch {
		case errors.As(err, &validation):
			sendError(c, http.StatusBadRequest, validation.Error())
		case errors.As(err, &notFound):
			sendError(c, http.StatusNotFound, notFound.Error())
		default:
			sendServerError(c, "webhook %s: %v", event.Type, err)
		}
		return
	}

	if result.Issued != nil {
		s.notifyIssued(result.Issued)
	}

	c.JSON(http.StatusOK, result.Body)
}

// notifyIssued fires the post-issuance side effects. None of them may fail
// the webhook: the license row is already committed.
func (s *Server) notifyIssued(issued *licensing.IssueResult) {
	license := issued.License

	s.SendSlackMessage("new %s license %s issued to %s", license.ProductType, license.LicenseKey, license.UserEmail)
	s.PosthogCapture(license.UserID, "license issued", PosthogProps{
		"product_type":   license.ProductType,
		"polar_order_id": license.PolarOrderID,
	})
	s.sendLicenseEmail(license)
}
