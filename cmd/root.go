package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smhjw/daily-telegram-brief/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "brief",
	Short: "Daily multi-topic brief pusher",
	Long:  "Assembles a daily brief (weather, A-shares, gold, crypto) from multiple upstream providers and delivers it to Telegram, WeChat, and DingTalk.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "执行失败:", err)
		os.Exit(1)
	}
}
