package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/videolighter/videolighter/go/models"
	"github.com/videolighter/videolighter/go/portal"
)

// authUser verifies the bearer token and returns the caller's profile id.
func (s *Server) authUser(c *gin.Context) (uuid.UUID, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return uuid.Nil, false
	}
	tokenStr := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.Config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, false
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}

// PostCustomerPortal brokers a Polar self-service billing session for the
// authenticated caller.
func (s *Server) PostCustomerPortal(c *gin.Context) {
	userID, ok := s.authUser(c)
	if !ok {
		sendError(c, http.StatusUnauthorized, "Unauthorized user")
		return
	}

	// body is optional
	var req models.PortalRequest
	_ = c.ShouldBindJSON(&req)
	returnURL := req.ReturnURL
	if returnURL == "" {
		returnURL = requestOrigin(c) + "/"
	}

	portalURL, err := s.Broker.CreateSession(userID, returnURL)
	if err != nil {
		var noCustomer *portal.NoCustomerError
		var upstream *portal.UpstreamError
		switch {
		case errors.Is(err, portal.ErrNotConfigured):
			sendError(c, http.StatusInternalServerError, err.Error())
		case errors.As(err, &noCustomer):
			sendError(c, http.StatusNotFound, noCustomer.Error())
		case errors.As(err, &upstream):
			sendError(c, upstream.Status, upstream.Detail)
		default:
			sendServerError(c, "customer portal for %s: %v", userID, err)
		}
		return
	}

	c.JSON(http.StatusOK, &models.PortalResponse{PortalURL: portalURL})
}

func requestOrigin(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}
