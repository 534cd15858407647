package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"miaoyou/cmd/fx/core_fx"
	"miaoyou/cmd/fx/planner_fx"
	"miaoyou/cmd/fx/poi_fx"
	"miaoyou/internal/api/controllers"
	"miaoyou/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := fx.New(
		core_fx.Module,
		poi_fx.Module,
		planner_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := getEnvWithDefault("PORT", "8080")
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	planController *controllers.PlanController,
	poiController *controllers.POIController) *gin.Engine {

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, planController, poiController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	planController *controllers.PlanController,
	poiController *controllers.POIController) {

	plansGroup := r.Group("/plans")
	plansGroup.POST("/generate", planController.GenerateTripPlan)

	poisGroup := r.Group("/pois")
	poisGroup.POST("/batch", poiController.BatchQuery)
	poisGroup.GET("/search", poiController.Search)
	poisGroup.GET("/:id", poiController.Detail)
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
