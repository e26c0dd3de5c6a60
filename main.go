package main

import (
	"context"
	"flag"
	"foodgram/cmd/config"
	migration "foodgram/cmd/database/migrate"
	"foodgram/cmd/database/seed"
	"foodgram/internal/utils"
	"log"
)

func main() {
	migrate := flag.Bool("migrate", false, "run database migrations and exit")
	seedPath := flag.String("seed", "", "load tags and ingredients from a YAML fixture and exit")
	flag.Parse()

	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if *migrate || *seedPath != "" {
		if err := migration.Migrate(db); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}
		if *seedPath != "" {
			if err := seed.SeedFile(context.Background(), db, *seedPath); err != nil {
				log.Fatalf("failed to seed database: %v", err)
			}
		}
		return
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to create app: %v", err)
	}

	port := utils.GetConfig("APP_PORT")
	if port == "" {
		port = "8080"
	}
	log.Fatal(app.Listen(":" + port))
}
