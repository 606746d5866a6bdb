package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"ecommerce-api/config"
	"ecommerce-api/events"
	"ecommerce-api/handlers"
	"ecommerce-api/payment"
	"ecommerce-api/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	if err := config.Load(); err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize database
	config.InitDB()

	// Optional event publisher
	if config.C.AMQPURL != "" {
		pub, err := events.NewPublisher(config.C.AMQPURL, config.C.AMQPExchange)
		if err != nil {
			log.Fatal("Failed to connect to message broker:", err)
		}
		defer pub.Close()
		handlers.Events = pub
		log.Println("Event publisher connected")
	}

	// Optional payment gateway
	if config.C.OmiseSecretKey != "" {
		gw, err := payment.NewOmiseGateway(config.C.OmisePublicKey, config.C.OmiseSecretKey)
		if err != nil {
			log.Fatal("Failed to initialize payment gateway:", err)
		}
		handlers.Gateway = gw
		log.Println("Payment gateway configured")
	}

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"message":   "E-commerce API is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"region":    config.C.Region,
		})
	})

	// Register all routes
	routes.SetupRoutes(r)

	// Start server
	log.Printf("Server running on http://localhost:%s", config.C.Port)
	if err := r.Run(":" + config.C.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
