package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"collabdelta/internal/cache"
	"collabdelta/internal/collab"
	"collabdelta/internal/config"
	"collabdelta/internal/httpapi/handlers"
	"collabdelta/internal/httpapi/middleware"
	"collabdelta/internal/mq"
	"collabdelta/internal/store"
	"collabdelta/internal/ws"
)

func main() {
	cfg, err := config.LoadCollab()
	if err != nil {
		log.Fatalf("init config failed: %v", err)
	}

	rdb := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    cfg.Redis.Addrs,
		Password: cfg.Redis.Password,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer rdb.Close()

	db, err := store.OpenMySQL(cfg.Mysql.DSN)
	if err != nil {
		log.Fatalf("failed to connect to mysql: %v", err)
	}

	kafkaCfg := sarama.NewConfig()
	kafkaCfg.Producer.Return.Successes = true
	kafkaCfg.Producer.RequiredAcks = sarama.WaitForLocal
	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, kafkaCfg)
	if err != nil {
		log.Fatalf("failed to connect to kafka: %v", err)
	}
	defer producer.Close()

	presenceCache := cache.NewRedisPresence(rdb)
	hub := ws.NewHub(presenceCache)
	snapshotStore := store.NewSnapshotStore(db)
	documentStore := store.NewDocumentStore(db)
	userStore := store.NewUserStore(db)

	kafkaSem := mq.NewSemaphore()
	wsSem := collab.NewSemaphoreControl()

	dispatcher := mq.NewDispatcher(producer, cfg.Kafka.Topic, kafkaSem, mq.DispatcherOptions{
		QueueSize:   10_000,
		Workers:     4,
		MaxRetry:    3,
		BaseBackoff: 50 * time.Millisecond,
		MaxBackoff:  1 * time.Second,
	})

	svc := collab.NewInMemoryService(snapshotStore, documentStore, userStore, dispatcher)
	manager := ws.NewManager(hub, svc, wsSem)
	docHandlers := handlers.NewDocumentHandlers(svc)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	collabGroup := r.Group("/collab")
	collabGroup.Use(middleware.AuthMiddleware(cfg.Auth.Path))
	collabGroup.GET("/ws", func(c *gin.Context) { manager.WebSocketConnect(c, hub) })
	collabGroup.POST("/documents", docHandlers.CreateDocument)
	collabGroup.GET("/documents/:title", docHandlers.GetDocument)
	collabGroup.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"message": "ok"}) })

	_ = r.Run(fmt.Sprintf(":%d", cfg.Running.Port))
}
