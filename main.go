package main

import (
	"context"

	"github.com/meinhoongagan/household-services/config"
	"github.com/meinhoongagan/household-services/cron"
	"github.com/meinhoongagan/household-services/db"
	"github.com/meinhoongagan/household-services/redis"
	"github.com/meinhoongagan/household-services/routes"
	"github.com/meinhoongagan/household-services/services"
	"github.com/meinhoongagan/household-services/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.Log.WithError(err).Fatal("load config")
	}
	utils.InitLogger(cfg.LogLevel)

	conn, err := db.Open(cfg)
	if err != nil {
		utils.Log.WithError(err).Fatal("open database")
	}
	if err := db.Migrate(conn); err != nil {
		utils.Log.WithError(err).Fatal("migrate database")
	}
	if err := db.SeedRoles(conn); err != nil {
		utils.Log.WithError(err).Fatal("seed roles")
	}

	hasher := utils.NewPasswordHasher(cfg.BcryptCost)
	if err := db.SeedAdmin(conn, hasher, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		utils.Log.WithError(err).Fatal("seed admin")
	}

	store, err := documentStore(cfg)
	if err != nil {
		utils.Log.WithError(err).Fatal("document storage")
	}

	var events services.EventSink
	if cfg.RedisAddr != "" {
		client, err := redis.Connect(context.Background(), cfg.RedisAddr)
		if err != nil {
			utils.Log.WithError(err).Fatal("booking events")
		}
		defer client.Close()
		events = redis.NewPublisher(client, cfg.RedisChannel)
	}

	bookings := services.NewBookingService(conn, events)

	if cfg.DigestCron != "" {
		var mailer utils.Mailer = utils.NoopMailer{}
		if cfg.MailEnabled() {
			mailer = utils.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass)
		}
		c, err := cron.Start(cfg.DigestCron, &cron.PendingDigest{
			Bookings: bookings,
			Mailer:   mailer,
			To:       cfg.AdminEmail,
		})
		if err != nil {
			utils.Log.WithError(err).Fatal("start digest")
		}
		defer c.Stop()
	}

	app := routes.New(routes.Deps{
		JWTSecret:     cfg.JWTSecret,
		Gate:          services.NewGate(conn),
		Auth:          services.NewAuthService(conn, hasher, utils.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL), store),
		Catalog:       services.NewCatalogService(conn),
		Professionals: services.NewProfessionalService(conn),
		Customers:     services.NewCustomerService(conn),
		Bookings:      bookings,
		Reviews:       services.NewReviewService(conn),
	})

	utils.Log.WithField("port", cfg.Port).Info("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		utils.Log.WithError(err).Error("server stopped")
	}
}

func documentStore(cfg *config.Config) (utils.DocumentStore, error) {
	if cfg.StorageBackend == "cloudinary" {
		return utils.NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
	}
	return utils.NewLocalStore(cfg.UploadDir), nil
}
