package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"github.com/osse101/FrizzlenShop_Go/internal/bootstrap"
	"github.com/osse101/FrizzlenShop_Go/internal/config"
	"github.com/osse101/FrizzlenShop_Go/internal/database"
)

func main() {
	reset := flag.Bool("reset", false, "drop the database before creating it")
	catalogPath := flag.String("catalog", "", "catalog file to seed after migrating (.json or .toml)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	if dbname == "" {
		log.Fatal("DB_NAME must be set")
	}

	ctx := context.Background()

	// Manage the target database from the default 'postgres' database
	serverConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", user, password, host, port)
	conn, err := pgx.Connect(ctx, serverConnString)
	if err != nil {
		log.Fatalf("Unable to connect to postgres database: %v", err)
	}
	ident := pgx.Identifier{dbname}.Sanitize()

	if *reset {
		log.Printf("Terminating existing connections to database %s...\n", dbname)
		if _, err := conn.Exec(ctx, `
			SELECT pg_terminate_backend(pid)
			FROM pg_stat_activity
			WHERE datname = $1 AND pid <> pg_backend_pid()`, dbname); err != nil {
			log.Printf("Warning: Failed to terminate connections: %v\n", err)
		}
		if _, err := conn.Exec(ctx, "DROP DATABASE IF EXISTS "+ident); err != nil {
			log.Fatalf("Failed to drop database: %v", err)
		}
		log.Printf("Database %s dropped.\n", dbname)
	}

	var exists bool
	if err := conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", dbname).Scan(&exists); err != nil {
		log.Fatalf("Failed to check if database exists: %v", err)
	}
	if !exists {
		log.Printf("Creating database %s...\n", dbname)
		if _, err := conn.Exec(ctx, "CREATE DATABASE "+ident); err != nil {
			log.Fatalf("Failed to create database: %v", err)
		}
	} else {
		log.Printf("Database %s already exists.\n", dbname)
	}
	conn.Close(ctx)

	targetConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbname)
	pool, err := database.NewPool(targetConnString, config.DefaultDBMaxConns, config.DefaultDBMaxConnIdleTime, time.Hour)
	if err != nil {
		log.Fatalf("Unable to connect to %s database: %v", dbname, err)
	}
	defer pool.Close()

	version, err := database.Migrate(ctx, pool)
	if err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}
	log.Printf("Schema at version %d.\n", version)

	if *catalogPath != "" {
		repos := bootstrap.InitializeRepositories(pool)
		if err := bootstrap.SyncCatalog(ctx, &config.Config{CatalogPath: *catalogPath}, repos.Listing); err != nil {
			log.Fatalf("Failed to seed catalog: %v", err)
		}
	}

	log.Println("✅ Setup complete")
}
