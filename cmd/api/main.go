package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ardlogistics/backoffice/internal/api"
	"github.com/ardlogistics/backoffice/internal/authz"
	"github.com/ardlogistics/backoffice/internal/config"
	"github.com/ardlogistics/backoffice/internal/database"
	"github.com/ardlogistics/backoffice/internal/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("Connect to database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database successfully")

	var publisher *events.Publisher
	if cfg.Messaging.Enabled {
		client := events.NewRabbitMQClient(cfg.Messaging)
		if err := client.Connect(); err != nil {
			log.Fatalf("Connect to RabbitMQ: %v", err)
		}
		defer client.Close()
		publisher = events.NewPublisher(client, cfg.Messaging.Exchange)
	} else {
		log.Printf("Event publishing disabled")
	}

	gate := authz.NewGate(db)
	server := api.NewServer(db, gate, publisher)
	app := server.App()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Printf("Shutting down")
		if err := app.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Server starting on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
