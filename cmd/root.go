package main

import (
	"fmt"

	"HandballStats/internal/config"
	"HandballStats/internal/logger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// newRootCmd 根命令：不带子命令时等同于 serve
func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "handball",
		Short:         "Handball Stats API",
		Version:       fmt.Sprintf("%s (%s, %s)", Version, GitHash, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfgFile)
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径（默认 ./config/config.yaml）")

	root.AddCommand(newServeCmd(&cfgFile), newMigrateCmd(&cfgFile))
	return root
}

// bootstrap 加载配置并初始化日志
func bootstrap(cfgFile string) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置文件失败: %w", err)
	}
	log := logger.New(cfg.Log)
	log.Info("配置文件加载成功")
	return cfg, log, nil
}
