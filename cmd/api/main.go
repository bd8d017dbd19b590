package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"rentacar/internal/config"
	"rentacar/internal/database"
	"rentacar/internal/mail"
	"rentacar/internal/server"
	"rentacar/internal/storage"
	"rentacar/internal/store"
	"rentacar/internal/store/mongostore"
	"rentacar/internal/store/mysqlstore"
)

func main() {
	cfg := config.Load()

	ctx := context.Background()

	var users store.UserStore
	var listings store.ListingStore
	var closeStore func()

	switch cfg.DBBackend {
	case "mongo":
		client, err := database.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			logrus.Fatalf("mongo connect error: %v", err)
		}
		db := client.Database(cfg.MongoDB)
		users, err = mongostore.NewUserStore(ctx, db)
		if err != nil {
			logrus.Fatalf("mongo index error: %v", err)
		}
		listings = mongostore.NewListingStore(db)
		closeStore = func() { _ = client.Disconnect(context.Background()) }
	default:
		db, err := database.Connect(cfg.DSN)
		if err != nil {
			logrus.Fatalf("DB connect error: %v", err)
		}
		// RunMigrations is tolerant if the directory is empty
		if err := database.RunMigrations(db, "migrations"); err != nil {
			logrus.Fatalf("migrations error: %v", err)
		}
		users = mysqlstore.NewUserStore(db)
		listings = mysqlstore.NewListingStore(db)
		closeStore = func() { _ = db.Close() }
	}
	defer closeStore()

	uploader, err := storage.NewS3Uploader(ctx, storage.S3Config{
		Region:       cfg.S3Region,
		Bucket:       cfg.S3Bucket,
		AccessKey:    cfg.S3AccessKey,
		SecretKey:    cfg.S3SecretKey,
		BaseEndpoint: cfg.S3Endpoint,
	})
	if err != nil {
		logrus.Fatalf("s3 init error: %v", err)
	}

	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)

	srv := &server.Server{
		Addr:       ":" + cfg.Port,
		Users:      users,
		Listings:   listings,
		Mailer:     mailer,
		Uploader:   uploader,
		JWTSecret:  cfg.JWTSecret,
		CORSOrigin: cfg.CORSOrigin,
		AppBaseURL: cfg.AppBaseURL,
	}

	go func() {
		if err := srv.Run(); err != nil {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("shutdown error: %v", err)
	}
}
