package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	"github.com/nroshan/chirper-server/cmd/api"
	"github.com/nroshan/chirper-server/db"
	"github.com/nroshan/chirper-server/seed"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			runMigrations()
			return
		case "seed":
			runSeed()
			return
		default:
			log.Fatalf("Unknown command: %s", os.Args[1])
		}
	}

	startServer()
}

func openDatabase() *gorm.DB {
	DB, err := db.NewStorage()
	if err != nil {
		log.Fatalf("Database initialization error: %v", err)
	}
	return DB
}

func closeDatabase(DB *gorm.DB) {
	sqlDB, _ := DB.DB()
	sqlDB.Close()
	log.Println("Database connection closed")
}

func mediaRoot() string {
	root := os.Getenv("MEDIA_ROOT")
	if root == "" {
		root = "static/images"
	}
	return root
}

func runMigrations() {
	DB := openDatabase()
	defer closeDatabase(DB)
	log.Println("Connected to the database for migrations")

	if err := db.Migrate(DB); err != nil {
		log.Fatalf("Migration error: %v", err)
	}

	root := mediaRoot()
	if err := os.MkdirAll(root, 0755); err != nil {
		log.Fatalf("Error creating media directory %s: %v", root, err)
	}
	log.Printf("Media directory %s created/verified", root)

	log.Println("Migrations completed successfully")
}

func runSeed() {
	DB := openDatabase()
	defer closeDatabase(DB)

	if err := db.Migrate(DB); err != nil {
		log.Fatalf("Migration error: %v", err)
	}

	if err := seed.Run(DB, mediaRoot(), seed.DefaultCounts()); err != nil {
		log.Fatalf("Seeding error: %v", err)
	}
	log.Println("Seeding completed successfully")
}

func startServer() {
	DB := openDatabase()
	defer closeDatabase(DB)
	log.Println("Connected to the database")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}
	server := api.NewApiServer(":"+port, DB, mediaRoot())

	go func() {
		if err := server.Run(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()
	log.Printf("Server running on port %s", port)

	<-quit
	log.Println("Shutting down server...")
}
