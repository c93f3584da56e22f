package main

import (
	"context"
	"log"
	"time"

	"MediBook/config"
	"MediBook/jobs"
	"MediBook/middleware"
	"MediBook/routes"
	"MediBook/seed"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	startServer = func(r *gin.Engine) error {
		return r.Run(":" + config.Getenv("PORT", "8080"))
	}
	isTest = false
)

func main() {
	run()
}

func buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	routes.Routes(r)
	return r
}

func run() {
	if err := godotenv.Load(); err != nil {
		log.Println("Error in loading the ENV")
	}
	if err := config.InitLogger(); err != nil {
		log.Fatal("Error initializing logger: ", err)
	}

	if !isTest {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := config.ConnectDB(ctx); err != nil {
			config.Log.Fatal("Error connecting to mongo: ", err)
		}
		if err := config.EnsureIndexes(ctx); err != nil {
			config.Log.Fatal("Error ensuring indexes: ", err)
		}
		if err := config.ConnectRedis(ctx); err != nil {
			config.Log.Warn("Redis unavailable, caching disabled: ", err)
		}
		seed.EnsureAdmin(ctx)
		jobs.RunStartupSweep()
		jobs.StartScheduler()
	}

	gin.SetMode(config.Getenv("GIN_MODE", "debug"))
	if err := startServer(buildRouter()); err != nil {
		config.Log.Fatal("Error starting server: ", err)
	}
}
