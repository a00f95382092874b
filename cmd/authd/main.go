package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"collabdelta/internal/authn"
	"collabdelta/internal/config"
	"collabdelta/internal/store"
)

func main() {
	cfg, err := config.LoadAuth()
	if err != nil {
		log.Fatalf("init config failed: %v", err)
	}

	db, err := store.OpenMySQL(cfg.Mysql.DSN)
	if err != nil {
		log.Fatalf("open mysql: %v", err)
	}

	users := authn.NewUserRepository(db)
	h := authn.NewHandlers(users)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	v1 := r.Group("/v1")
	auth := v1.Group("/auth")
	auth.POST("/login", h.Login)
	auth.POST("/register", h.Register)
	auth.POST("/verify", h.Verify)
	auth.POST("/refresh", h.Refresh)
	auth.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"message": "ok"}) })

	_ = r.Run(fmt.Sprintf(":%d", cfg.Running.Port))
}
