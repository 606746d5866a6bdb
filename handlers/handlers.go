package handlers

import (
	"context"
	"log"
	"net/http"

	"ecommerce-api/events"
	"ecommerce-api/payment"

	"github.com/gin-gonic/gin"
)

// Events and Gateway are wired by main at startup. Both are optional:
// a nil publisher drops events, a nil gateway disables card payments.
var (
	Events  *events.Publisher
	Gateway payment.Gateway
)

// internalError hides the raw error from the caller and logs it server-side.
func internalError(c *gin.Context, err error) {
	log.Printf("internal error: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// publish fires a domain event without failing the request.
func publish(key string, payload any) {
	if err := Events.PublishJSON(context.Background(), key, payload); err != nil {
		log.Printf("publish %s: %v", key, err)
	}
}
