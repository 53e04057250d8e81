package main

import (
	"context"
	"fmt"
	"log"

	"nhatro-chat/config"
	"nhatro-chat/internal/assistant"
	"nhatro-chat/internal/auth"
	"nhatro-chat/internal/domain/booking"
	"nhatro-chat/internal/domain/chat"
	"nhatro-chat/internal/domain/listing"
	"nhatro-chat/internal/handler"
	"nhatro-chat/internal/realtime"
	internalredis "nhatro-chat/internal/redis"
	"nhatro-chat/internal/repository"
	"nhatro-chat/internal/services"
	"nhatro-chat/internal/storage"
	"nhatro-chat/pkg/database"
	"nhatro-chat/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	appLogger := logger.New(cfg.AppMode)
	defer appLogger.Sync()
	logger.SetGlobalLogger(appLogger)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&chat.Conversation{},
		&chat.Message{},
		&chat.MessageReaction{},
		&listing.Listing{},
		&booking.Booking{},
	); err != nil {
		log.Fatalf("Failed to apply GORM migrations: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient := internalredis.NewClient(internalredis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()

	hub := realtime.NewHub()
	go hub.Run(ctx)

	bridge := realtime.NewRedisBridge(internalredis.NewSubscriber(redisClient), hub)
	go func() {
		if err := bridge.Run(ctx); err != nil && ctx.Err() == nil {
			appLogger.Errorf("redis bridge stopped: %v", err)
		}
	}()

	dispatcher := realtime.NewRedisDispatcher(internalredis.NewPublisher(redisClient), appLogger)

	var uploads *services.UploadService
	if cfg.S3Bucket != "" {
		s3Client, err := storage.NewClient(ctx, storage.S3Config{
			Region:     cfg.S3Region,
			Bucket:     cfg.S3Bucket,
			AccessKey:  cfg.S3AccessKey,
			SecretKey:  cfg.S3SecretKey,
			Endpoint:   cfg.S3Endpoint,
			PublicBase: cfg.S3PublicBase,
		})
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		uploads = services.NewUploadService(s3Client)
	}

	conversationRepo := repository.NewConversationRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	listingRepo := repository.NewListingRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	var generation *assistant.GenerationClient
	if cfg.OpenAIKey != "" {
		generation = assistant.NewGenerationClient(cfg.OpenAIKey, cfg.OpenAIModel)
	}
	composer := assistant.NewComposer(generation, appLogger)

	conversationService := services.NewConversationService(conversationRepo, messageRepo, listingRepo, uploads, dispatcher, appLogger)
	messageService := services.NewMessageService(conversationRepo, messageRepo, uploads, dispatcher, appLogger, cfg.MessagePageSize)
	assistantService := services.NewAssistantService(listingRepo, composer, appLogger)
	bookingService := services.NewBookingService(bookingRepo, listingRepo, dispatcher, appLogger)

	verifier := auth.NewTokenVerifier(cfg.JWTSecret)

	router := handler.Router{
		Conversations: handler.NewConversationHandler(conversationService),
		Messages:      handler.NewMessageHandler(messageService, uploads),
		Assistant:     handler.NewAssistantHandler(assistantService),
		Bookings:      handler.NewBookingHandler(bookingService),
		Websocket:     realtime.NewHandler(verifier, hub),
		Verifier:      verifier,
		Log:           appLogger,
	}
	engine := router.Setup(cfg.AppMode)

	appLogger.Infof("Starting server on port %s", cfg.AppPort)
	if err := engine.Run(fmt.Sprintf(":%s", cfg.AppPort)); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
