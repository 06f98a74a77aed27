// migrate aplica las migraciones goose embebidas sobre la base configurada.
//
// Uso: go run ./cmd/migrate -cmd up|down|status|versions|version -version 20260301100200
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/taller-inventario/internal/infrastructure/postgres"
	"github.com/jhoicas/taller-inventario/pkg/config"
	"github.com/jhoicas/taller-inventario/pkg/logger"
)

func main() {
	cmd := flag.String("cmd", "up", "comando: up|down|status|versions|version")
	version := flag.String("version", "", "versión destino (YYYYMMDDHHMMSS) para -cmd=version")
	flag.Parse()

	// versions no necesita base de datos
	if *cmd == "versions" {
		versions, err := postgres.MigrationVersions()
		if err != nil {
			fmt.Fprintf(os.Stderr, "listar migraciones: %v\n", err)
			os.Exit(1)
		}
		for _, v := range versions {
			fmt.Println(v)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "migrate"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	db := postgres.OpenDB(pool)
	defer db.Close()

	log.Info().Str("cmd", *cmd).Msg("migrate listo")

	switch *cmd {
	case "up", "down", "status":
		err = postgres.Migrate(ctx, db, *cmd)
	case "version":
		if *version == "" {
			fmt.Fprintln(os.Stderr, "falta -version para -cmd=version")
			os.Exit(1)
		}
		err = postgres.MigrateTo(ctx, db, *version)
	default:
		fmt.Fprintln(os.Stderr, "valor de -cmd desconocido:", *cmd)
		os.Exit(1)
	}
	if err != nil {
		log.Error().Err(err).Str("cmd", *cmd).Msg("migración fallida")
		os.Exit(1)
	}
	log.Info().Str("cmd", *cmd).Msg("migración completada")
}
