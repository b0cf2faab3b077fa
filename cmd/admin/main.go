package main

import (
	"context"
	"database/sql"
	"log"
	"os"

	"github.com/dmitrijs2005/folio/internal/admin"
	"github.com/dmitrijs2005/folio/internal/flagx"
	"github.com/dmitrijs2005/folio/internal/server/auth"
	"github.com/dmitrijs2005/folio/internal/server/config"
	"github.com/dmitrijs2005/folio/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/folio/internal/server/services"
)

func main() {

	ctx := context.Background()

	cfg, err := config.LoadAdminConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	users := services.NewUserService(db, m, auth.NewPasswordHasher(cfg.BcryptCost), nil, nil)

	app := admin.NewApp(users, os.Stdin, os.Stdout)
	if err := app.Run(ctx, flagx.StripArgs(os.Args[1:], flagx.ConfigFlags)); err != nil {
		log.Printf("%v", err)
		db.Close()
		os.Exit(1)
	}

}
