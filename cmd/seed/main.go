// seed crea (o actualiza) un usuario administrador con rol admin en todas las
// aplicaciones del portal y publica una novedad de bienvenida.
//
// Uso: go run ./cmd/seed <email> <password> [nombre]
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/portal-intranet/internal/domain/permission"
	"github.com/jhoicas/portal-intranet/internal/infrastructure/postgres"
	"github.com/jhoicas/portal-intranet/pkg/config"
	"github.com/jhoicas/portal-intranet/pkg/logger"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "uso: seed <email> <password> [nombre]")
		os.Exit(1)
	}
	email := strings.ToLower(strings.TrimSpace(os.Args[1]))
	password := os.Args[2]
	name := "Administrador"
	if len(os.Args) > 3 {
		name = os.Args[3]
	}
	if len(password) < 8 {
		fmt.Fprintln(os.Stderr, "el password debe tener al menos 8 caracteres")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "seed"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash de password")
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("iniciar transacción")
	}
	defer tx.Rollback(ctx)

	var userID string
	err = tx.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, status)
		VALUES ($1, $2, $3, 'active')
		ON CONFLICT ((lower(email))) DO UPDATE SET password_hash = EXCLUDED.password_hash, updated_at = now()
		RETURNING id`, email, string(hash), name).Scan(&userID)
	if err != nil {
		log.Fatal().Err(err).Msg("crear usuario")
	}

	for _, app := range permission.Apps {
		_, err := tx.Exec(ctx, `
			INSERT INTO user_roles (user_id, role, app) VALUES ($1, $2, $3)
			ON CONFLICT DO NOTHING`, userID, permission.RoleAdmin, app)
		if err != nil {
			log.Fatal().Err(err).Str("app", app).Msg("asignar rol")
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO announcements (title, body)
		SELECT $1, $2
		WHERE NOT EXISTS (SELECT 1 FROM announcements WHERE title = $1)`,
		"Bienvenidos al portal", "Consulte aquí los procesos, indicadores y facturas de proveedores.")
	if err != nil {
		log.Fatal().Err(err).Msg("crear novedad")
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatal().Err(err).Msg("confirmar transacción")
	}
	log.Info().Str("user_id", userID).Str("email", email).Int("apps", len(permission.Apps)).Msg("usuario administrador listo")
}
