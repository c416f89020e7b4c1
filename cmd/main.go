package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Quick-coder123/zvit/db"
	"github.com/Quick-coder123/zvit/internal/appmanager"
)

func main() {
	// .env for local dev; ignored when the env is already set
	_ = godotenv.Load("../.env")
	_ = godotenv.Load(".env")

	ctx := context.Background()

	pool, err := db.OpenPool(ctx)
	if err != nil {
		log.Fatal("failed to connect to DB: ", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatal("failed to run migrations: ", err)
	}

	authDB, err := db.OpenAuthDB()
	if err != nil {
		log.Fatal("failed to open auth DB: ", err)
	}
	defer authDB.Close()

	appmanager.SetPgxPool(pool)
	appmanager.SetAuthDB(authDB)

	manager := appmanager.NewAppManager()

	servicesPath := os.Getenv("SERVICES_CONFIG")
	if servicesPath == "" {
		servicesPath = "services.yaml"
	}
	servicesCfg, err := appmanager.LoadServiceSequence(servicesPath)
	if err != nil {
		log.Fatal("failed to load service sequence: ", err)
	}

	manager.AutoRegisterServices(servicesCfg)

	if err := manager.StartAll(); err != nil {
		log.Fatal("failed to start: ", err)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	if err := manager.StopAll(); err != nil {
		log.Fatal("failed to stop: ", err)
	}
}
