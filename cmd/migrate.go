package main

import (
	"HandballStats/internal/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "创建数据库（如配置了 auto_create）与表结构后退出",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(*cfgFile)
			if err != nil {
				return err
			}
			db, err := database.Open(&cfg.Database, log)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			if err := database.Migrate(db); err != nil {
				return err
			}
			log.Info("数据库表结构检查完成（不存在则已创建）")
			return nil
		},
	}
}
