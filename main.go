package main

import (
	"log"
	"net/http"
	"os"

	"quickbite/config"
	"quickbite/handlers"
	"quickbite/routes"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

func main() {
	config.LoadEnv()

	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	config.InitDB()
	handlers.RegisterValidations()

	// Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "QuickBite Marketplace API",
			"version": "1.0.0",
		})
	})

	routes.SetupRoutes(r)

	// CORS for browser clients
	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}).Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on http://localhost:%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
