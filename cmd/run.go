package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smhjw/daily-telegram-brief/internal/brief"
	"github.com/smhjw/daily-telegram-brief/internal/delivery"
	"github.com/smhjw/daily-telegram-brief/internal/fetch"
	"github.com/smhjw/daily-telegram-brief/pkg/binance"
	"github.com/smhjw/daily-telegram-brief/pkg/coingecko"
	"github.com/smhjw/daily-telegram-brief/pkg/dingtalk"
	"github.com/smhjw/daily-telegram-brief/pkg/eastmoney"
	"github.com/smhjw/daily-telegram-brief/pkg/erapi"
	"github.com/smhjw/daily-telegram-brief/pkg/gateio"
	"github.com/smhjw/daily-telegram-brief/pkg/goldapi"
	"github.com/smhjw/daily-telegram-brief/pkg/openmeteo"
	"github.com/smhjw/daily-telegram-brief/pkg/serverchan"
	"github.com/smhjw/daily-telegram-brief/pkg/swissquote"
	"github.com/smhjw/daily-telegram-brief/pkg/telegram"
)

var dryRun bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build the daily brief and deliver it to configured channels",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Channel configuration is checked before any network I/O.
		if !dryRun {
			if err := cfg.ValidateChannels(); err != nil {
				return err
			}
		}

		fetcher := fetch.New(fetch.Options{
			Timeout:    time.Duration(cfg.HTTP.TimeoutSecs) * time.Second,
			MaxRetries: cfg.HTTP.MaxRetries,
		})

		loc, zoneName := brief.ResolveZone(cfg.Timezone)

		builders := []brief.Builder{
			brief.NewWeatherBuilder(
				openmeteo.NewClient(openmeteo.WithFetcher(fetcher)),
				cfg.Weather, zoneName,
			),
			brief.NewGoldBuilder(
				goldapi.NewClient(goldapi.WithFetcher(fetcher)),
				swissquote.NewClient(swissquote.WithFetcher(fetcher)),
				erapi.NewClient(erapi.WithFetcher(fetcher)),
				cfg.Gold,
			),
			brief.NewCryptoBuilder(
				coingecko.NewClient(coingecko.WithFetcher(fetcher)),
				binance.NewClient(binance.WithFetcher(fetcher)),
				gateio.NewClient(gateio.WithFetcher(fetcher)),
			),
			brief.NewStocksBuilder(
				eastmoney.NewClient(eastmoney.WithFetcher(fetcher)),
				cfg.Stocks.Codes,
			),
		}

		sections := brief.BuildSections(ctx, builders)
		report := brief.Assemble(sections, time.Now().In(loc), zoneName)

		fmt.Println(report)

		if dryRun {
			zap.L().Info("dry run, delivery skipped")
			return nil
		}

		var channels []delivery.Channel
		if cfg.HasTelegram() {
			channels = append(channels, &delivery.TelegramChannel{
				Client: telegram.NewClient(cfg.Telegram.BotToken, telegram.WithFetcher(fetcher)),
				ChatID: cfg.Telegram.ChatID,
			})
		}
		if cfg.HasServerChan() {
			channels = append(channels, &delivery.ServerChanChannel{
				Client: serverchan.NewClient(cfg.ServerChan.SendKey, serverchan.WithFetcher(fetcher)),
			})
		}
		if cfg.HasDingTalk() {
			channels = append(channels, &delivery.DingTalkChannel{
				Client: dingtalk.NewClient(cfg.DingTalk.WebhookURL, cfg.DingTalk.Secret, dingtalk.WithFetcher(fetcher)),
			})
		}

		return delivery.Dispatch(ctx, report, channels)
	},
}

func init() {
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the report without delivering it")
	rootCmd.AddCommand(runCmd)
}
