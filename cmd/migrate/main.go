// Command migrate aplica o muestra las migraciones embebidas de PostgreSQL.
//
//	migrate up      aplica las pendientes
//	migrate status  lista versiones y fecha de aplicación
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventaris-api/internal/infrastructure/postgres"
	"github.com/jhoicas/inventaris-api/pkg/config"
	"github.com/jhoicas/inventaris-api/pkg/logger"
)

// migrator es lo que usan los subcomandos; *postgres.Migrator lo implementa.
type migrator interface {
	Up(ctx context.Context) ([]string, error)
	Status(ctx context.Context) ([]postgres.Migration, error)
}

// openFunc abre la conexión y devuelve el migrator y su cierre.
type openFunc func(ctx context.Context) (migrator, func(), error)

func openPostgres(ctx context.Context) (migrator, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	return postgres.NewMigrator(pool), pool.Close, nil
}

func newRootCmd(open openFunc, log *logger.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Migraciones de la base de datos de inventaris-api",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Aplica las migraciones pendientes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, closeFn, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			applied, err := m.Up(cmd.Context())
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				log.Info().Msg("no hay migraciones pendientes")
				return nil
			}
			for _, v := range applied {
				log.Info().Str("version", v).Msg("migración aplicada")
			}
			return nil
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Muestra el estado de cada migración",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, closeFn, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			list, err := m.Status(cmd.Context())
			if err != nil {
				return err
			}
			return printStatus(cmd.OutOrStdout(), list)
		},
	})
	return root
}

func printStatus(out io.Writer, list []postgres.Migration) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tAPLICADA")
	for _, m := range list {
		applied := "pendiente"
		if m.AppliedAt != nil {
			applied = m.AppliedAt.Format(time.RFC3339)
		}
		fmt.Fprintf(tw, "%s\t%s\n", m.Version, applied)
	}
	return tw.Flush()
}

func main() {
	log := logger.New(logger.Config{Env: os.Getenv("APP_ENV"), Level: os.Getenv("LOG_LEVEL"), Service: "migrate"})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := newRootCmd(openPostgres, log).ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("migrate")
		cancel()
		os.Exit(1)
	}
}
