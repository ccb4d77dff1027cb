package main

import (
	"context"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/tagdeck/tagdeck/pkg/tagdeck/auth"
	"github.com/tagdeck/tagdeck/pkg/tagdeck/config"
	"github.com/tagdeck/tagdeck/pkg/tagdeck/database"
	"github.com/tagdeck/tagdeck/pkg/tagdeck/importexport"
	"github.com/tagdeck/tagdeck/pkg/tagdeck/metadata"
	"github.com/tagdeck/tagdeck/pkg/tagdeck/models"
	"github.com/tagdeck/tagdeck/pkg/tagdeck/tags"
)

func main() {
	cfg, err := config.Load(context.Background())
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	auth.Configure(cfg.JWTSecret, cfg.TokenDuration)

	if err := database.Connect(cfg.DBPath); err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	if err := models.AutoMigrate(database.GetDB()); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}
	log.Info("Database migrations completed")

	if err := ensureAdminExists(database.GetDB(), cfg); err != nil {
		log.WithError(err).Fatal("Failed to ensure admin user exists")
	}

	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		authHandler := auth.NewHandler(database.GetDB())
		authHandler.RegisterRoutes(api.Group("/auth"))

		repo := tags.NewRepository(database.GetDB())

		// Reads and clicks are public; a valid admin token upgrades the view
		tagsHandler := tags.NewHandler(repo)
		tagsHandler.RegisterRoutes(api.Group("", auth.OptionalAuthMiddleware()))

		// Mutations require the admin role
		adminGroup := api.Group("", auth.AuthMiddleware(), auth.RequireAdmin())
		tagsHandler.RegisterAdminRoutes(adminGroup)

		resolver := metadata.NewResolver(cfg.Metadata)
		metadataHandler := metadata.NewHandler(resolver)
		metadataHandler.RegisterRoutes(adminGroup)

		importExportHandler := importexport.NewHandler(repo)
		importExportHandler.RegisterRoutes(adminGroup)
	}

	log.WithField("port", cfg.Port).Info("Starting tagdeck server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}

// ensureAdminExists creates the bootstrapped admin user if no admin exists
// in the database.
func ensureAdminExists(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:        cfg.AdminEmail,
		Name:         "Admin",
		PasswordHash: hashedPassword,
		Role:         models.RoleAdmin,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.WithField("email", cfg.AdminEmail).Info("Created default admin user")
	return nil
}
