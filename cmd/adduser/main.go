package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/burakcan/atelier/internal/auth"
	"github.com/burakcan/atelier/internal/db"
	"github.com/burakcan/atelier/pkg"
)

// adds a user account directly to the database, there is no signup endpoint
func main() {
	email := flag.String("email", "", "email of the new user")
	name := flag.String("name", "", "display name of the new user (optional)")
	dbHost := flag.String("db-host", "localhost", "postgres host")
	dbPort := flag.String("db-port", "5432", "postgres port")
	dbName := flag.String("db-name", "atelier", "postgres database name")
	flag.Parse()

	if *email == "" {
		log.Fatalln("email not set, use -email")
	}

	password := os.Getenv("ATELIER_NEW_USER_PASSWORD")
	if password == "" {
		log.Fatalln("password not set, use ATELIER_NEW_USER_PASSWORD env var")
	}

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost: *dbHost,
		DBPort: *dbPort,
		DBName: *dbName,
	})
	if err != nil {
		log.Fatalf("new db pool: %s", err)
	}
	defer dbPool.Close()

	passwordHash, err := pkg.HashPassword(password)
	if err != nil {
		log.Fatalf("hash password: %s", err)
	}

	usersRepo := auth.NewUsersRepo(dbPool)
	user, err := usersRepo.Add(ctx, *email, passwordHash, *name)
	if errors.Is(err, auth.ErrEmailTaken) {
		log.Fatalf("user with email [%s] already exists", *email)
	}
	if err != nil {
		log.Fatalf("add user: %s", err)
	}

	fmt.Printf("user [%s] created, id: %s\n", user.Email, user.ID)
}
