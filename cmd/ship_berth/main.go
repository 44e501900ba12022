package main

// go run cmd/ship_berth/main.go

import (
	"context"
	"time"

	"ship_berth/internal/app/config"
	"ship_berth/internal/app/dsn"
	"ship_berth/internal/app/handler"
	"ship_berth/internal/app/handler/api"
	"ship_berth/internal/app/pkg"
	"ship_berth/internal/app/repository"
	"ship_berth/internal/app/tracing"
	"ship_berth/internal/app/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	_ "ship_berth/docs" // Swagger docs
)

// @title Ship Berth API
// @version 1.0
// @description Berth, ship and reservation management for a port.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	conf, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("error loading config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	shutdownTracing, err := tracing.Init(ctx, conf.OtelEndpoint, conf.OtelServiceName)
	if err != nil {
		logrus.Fatalf("error initializing tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logrus.Warnf("tracing shutdown: %v", err)
		}
	}()

	tokens, err := utils.NewTokenManager(conf.JwtKey, conf.JwtIssuer, conf.JwtAudience, conf.JwtTTL)
	if err != nil {
		logrus.Fatalf("error initializing tokens: %v", err)
	}

	rep, err := repository.New(dsn.FromEnv(), tokens)
	if err != nil {
		logrus.Fatalf("error initializing repository: %v", err)
	}

	var revoked *utils.TokenStore
	if conf.RedisEndpoint != "" {
		client, err := utils.NewRedisClient(ctx, conf.RedisEndpoint, conf.RedisPassword, conf.RedisDB)
		if err != nil {
			logrus.Warnf("redis unavailable, token revocation disabled: %v", err)
		} else {
			revoked = utils.NewTokenStore(client)
			defer client.Close()
		}
	}

	var photos api.PhotoStorage
	if conf.MinioEndpoint != "" {
		client, err := utils.NewMinioClient(conf.MinioEndpoint, conf.MinioAccessKey, conf.MinioSecretKey, conf.MinioUseSSL)
		if err == nil {
			var store *utils.PhotoStore
			store, err = utils.NewPhotoStore(ctx, client, conf.MinioBucket)
			if err == nil {
				photos = store
			}
		}
		if err != nil {
			logrus.Warnf("minio unavailable, ship photo upload disabled: %v", err)
		}
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	hand := handler.NewHandler(rep, revoked, photos)
	hand.CORSOrigins = conf.CORSOrigins

	application := pkg.NewApp(conf, router, hand)
	if err := application.RunApp(); err != nil {
		logrus.Fatalf("server error: %v", err)
	}
}
