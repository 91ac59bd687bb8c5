package main

import (
	"github.com/spf13/cobra"

	"github.com/ramcignex-del/TalentBid/internal/config"
	"github.com/ramcignex-del/TalentBid/internal/db"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return db.RunMigrations(cfg.MigrationURL, cfg.PostgresConn)
		},
	}
}
