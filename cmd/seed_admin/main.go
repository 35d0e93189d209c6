// seed_admin crea el usuario administrador inicial si todavía no existe.
//
// Uso: ADMIN_PASSWORD=... go run ./cmd/seed_admin
// Lee ADMIN_USERNAME, ADMIN_EMAIL y ADMIN_FULL_NAME (con valores por defecto) y la
// configuración de base de datos habitual. Es idempotente.
package main

import (
	"context"
	"os"
	"time"

	"github.com/mida-panama/inventario-quimicos-api/internal/application/usecase"
	"github.com/mida-panama/inventario-quimicos-api/internal/infrastructure/postgres"
	"github.com/mida-panama/inventario-quimicos-api/pkg/config"
	"github.com/mida-panama/inventario-quimicos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if cfg.Seed.Password == "" {
		log.Error().Msg("ADMIN_PASSWORD es obligatorio")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if _, err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	created, err := usecase.NewUserUseCase(postgres.NewUserRepository(pool)).
		EnsureAdmin(ctx, cfg.Seed.Username, cfg.Seed.Password, cfg.Seed.FullName, cfg.Seed.Email)
	if err != nil {
		log.Fatal().Err(err).Msg("crear administrador")
	}
	if created {
		log.Info().Str("username", cfg.Seed.Username).Msg("administrador creado")
		return
	}
	log.Info().Str("username", cfg.Seed.Username).Msg("el administrador ya existe, sin cambios")
}
