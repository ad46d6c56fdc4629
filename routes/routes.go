package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/bagasramadhana99/Glucosense/config"
	"github.com/bagasramadhana99/Glucosense/controllers"
	"github.com/bagasramadhana99/Glucosense/security"
)

// Register wires every route group under /api. Protected groups verify the
// bearer token before the handler (and therefore before any database work)
// runs.
func Register(r *gin.Engine, predict *controllers.PredictController) {
	api := r.Group("/api")

	// Health check endpoint
	api.GET("/health", controllers.HealthCheck)

	AuthRoutes(api.Group("/auth"))
	UserRoutes(api)
	MonitoringRoutes(api)
	SensorRoutes(api.Group("/sensors"))
	FaqRoutes(api)
	PredictRoutes(api, predict)
}

func AuthRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", controllers.Login)
}

func UserRoutes(rg *gin.RouterGroup) {
	// Registration is public
	rg.POST("/users", controllers.CreateUser)

	protected := rg.Group("")
	protected.Use(security.AuthMiddleware(config.C.JWTSecret))
	{
		protected.GET("/users", controllers.GetUsers)
		protected.GET("/users/:id", controllers.GetUser)
		protected.PUT("/users/:id", controllers.UpdateUser)
		protected.DELETE("/users/:id", controllers.DeleteUser)
		protected.GET("/patients", controllers.GetPatients)
	}
}

func MonitoringRoutes(rg *gin.RouterGroup) {
	protected := rg.Group("")
	protected.Use(security.AuthMiddleware(config.C.JWTSecret))
	{
		protected.GET("/monitoring", controllers.GetMonitoring)
		protected.POST("/monitoring", controllers.SaveMonitoring)
		protected.POST("/monitoring/save", controllers.SaveMonitoring)
		protected.GET("/monitoring/me", controllers.GetMyMonitoring)
		protected.DELETE("/monitoring/:id", controllers.DeleteMonitoring)
	}
}

// Sensor endpoints stay public: device firmware pushes readings without a
// token.
func SensorRoutes(rg *gin.RouterGroup) {
	rg.PATCH("/update", controllers.UpdateBatchSensors)
	rg.PATCH("/:id", controllers.UpdateSensorValue)
	rg.GET("/latest", controllers.GetLatestSensorValues)
}

func FaqRoutes(rg *gin.RouterGroup) {
	rg.GET("/faq", controllers.GetFaqs)
	rg.POST("/faq", controllers.AddFaq)
	rg.PUT("/faq/:id", controllers.UpdateFaq)
	rg.DELETE("/faq/:id", controllers.DeleteFaq)
}

func PredictRoutes(rg *gin.RouterGroup, predict *controllers.PredictController) {
	rg.POST("/ml/predict", predict.PredictRisk)
	rg.POST("/predict/glucose-trend", predict.PredictGlucoseTrend)
}
