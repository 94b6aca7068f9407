package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"godrive/internal/blobstore"
	"godrive/internal/config"
	"godrive/internal/database"
	"godrive/internal/domain/auth"
	"godrive/internal/domain/file"
	"godrive/internal/middleware"
	jwtsvc "godrive/internal/pkg/jwt"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.AutoMigrate(&auth.User{}, &file.File{}); err != nil {
		log.Fatal(err)
	}

	blobs, err := blobstore.NewMinio(cfg.Blob)
	if err != nil {
		log.Fatal(err)
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	userRepo := auth.NewRepository(db)
	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	fileRepo := file.NewRepository(db)
	hub := file.NewHub(fileRepo)
	fileService := file.NewService(fileRepo, blobs, hub, cfg.MaxUpload, cfg.QuotaBytes)
	fileHandler := file.NewHandler(fileService, hub)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		auth.RegisterRoutes(v1, authHandler)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			auth.RegisterProtectedRoutes(protected, authHandler)
			file.RegisterRoutes(protected, fileHandler)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
