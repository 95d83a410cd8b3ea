package cmd

import (
	"log/slog"

	"planets-api/internal/auth"
	"planets-api/internal/mail"
	"planets-api/internal/planet"
	"planets-api/internal/server"
	"planets-api/internal/shared/config"
	"planets-api/internal/shared/database"
	"planets-api/internal/shared/logger"
	"planets-api/internal/shared/redis"
	"planets-api/internal/user"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the planets API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		logger.Init(cfg.Logging)
		log := slog.Default()

		db, err := database.Connect(cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close database", "error", err)
			}
		}()

		redisClient, err := redis.Connect(cfg.Redis)
		if err != nil {
			return err
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close redis", "error", err)
			}
		}()

		var resetTokens auth.ResetTokenStore
		if redisClient != nil {
			resetTokens = auth.NewRedisTokenStore(redisClient)
		} else {
			resetTokens = auth.NewMemoryTokenStore()
		}

		planetRepo := planet.NewRepository(db, log)
		planetService := planet.NewService(planetRepo, log)

		userRepo := user.NewRepository(db, log)
		userService := user.NewService(userRepo, log)

		issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		mailer := mail.NewSMTPSender(cfg.Mail, log)
		authService := auth.NewService(userService, issuer, resetTokens, mailer, cfg.Auth.ResetTokenTTL, cfg.Mail.ResetBaseURL, log)

		routes := server.NewRoutes(db, planetService, userService, authService, issuer, log)
		srv := server.New(cfg, routes, log)

		return srv.Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
