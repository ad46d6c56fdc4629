package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/bagasramadhana99/Glucosense/config"
	"github.com/bagasramadhana99/Glucosense/controllers"
	"github.com/bagasramadhana99/Glucosense/ml"
	"github.com/bagasramadhana99/Glucosense/routes"
	"github.com/bagasramadhana99/Glucosense/security"
)

const (
	riskModelPath  = "artifacts/risk_model.json"
	trendModelPath = "artifacts/trend_model.json"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()
	config.ConnectDB(cfg)

	predict := loadModels()

	r := gin.Default()
	r.Use(security.CORSMiddleware())
	r.Use(security.RequestID())

	routes.Register(r, predict)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Glucosense backend starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// loadModels reads the inference artifacts once. A missing artifact is logged
// and leaves its endpoint answering 503; it does not prevent startup, unlike
// missing database or signing configuration.
func loadModels() *controllers.PredictController {
	predict := &controllers.PredictController{}

	risk, err := ml.LoadRiskModel(riskModelPath)
	if err != nil {
		log.Printf("WARNING: risk model not loaded: %v", err)
	} else {
		predict.Risk = risk
		log.Println("Risk prediction model loaded")
	}

	trend, err := ml.LoadTrendModel(trendModelPath)
	if err != nil {
		log.Printf("WARNING: trend model not loaded: %v", err)
	} else {
		predict.Trend = trend
		log.Println("Glucose trend model loaded")
	}

	return predict
}
