//go:generate pkger
package main

import (
	"log"
	"strings"

	"github.com/asaskevich/EventBus"
	"github.com/kelseyhightower/envconfig"

	"github.com/abocci/phrasepush/models"
	"github.com/abocci/phrasepush/phrases"
	"github.com/abocci/phrasepush/routes"
	"github.com/abocci/phrasepush/services"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	var config models.Config
	config = config.New()

	err := envconfig.Process("", &config)
	if err != nil {
		log.Fatal(err.Error())
	}
	config.Verify()

	var db *gorm.DB
	var dbErr error

	switch strings.ToLower(config.DbType) {
	case "sqlite":
		db, dbErr = gorm.Open(sqlite.Open(config.DbDSN), &gorm.Config{})
	case "postgres":
		db, dbErr = gorm.Open(postgres.Open(config.DbDSN), &gorm.Config{})
	case "mysql":
		db, dbErr = gorm.Open(mysql.Open(config.DbDSN), &gorm.Config{})
	default:
		log.Fatalf("Unknown DbType '%s'", config.DbType)
	}
	if dbErr != nil {
		log.Fatalf("Failed to connect to database: %s", dbErr)
	}

	// Migrate the schema
	if err := db.AutoMigrate(&models.Subscription{}); err != nil {
		log.Fatalf("Failed to run database migrations for Subscription model: %s", err)
	}
	if err := db.AutoMigrate(&models.Notification{}); err != nil {
		log.Fatalf("Failed to run database migrations for Notification model: %s", err)
	}

	bus := EventBus.New()
	selector := phrases.NewSelector()

	senders := []services.Sender{services.NewWebPushSender(&config)}
	if config.HasAPNS() {
		apnsSender, err := services.NewAPNSSender(&config)
		if err != nil {
			log.Fatalf("Failed to configure APNs sending: %s", err)
		}
		senders = append(senders, apnsSender)
	}

	dispatcher := services.NewDispatcher(db, &config, selector, senders, &bus)

	listener := services.NewDeliveryListener(&bus)
	if err := listener.Start(); err != nil {
		log.Fatalf("Failed to subscribe delivery listener: %s", err)
	}

	if config.BroadcastInterval > 0 {
		scheduler := services.NewBroadcastScheduler(dispatcher, config.BroadcastInterval)
		scheduler.Start()
	}

	startServer(&config, routes.New(&config, db, dispatcher))
}
