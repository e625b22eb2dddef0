// Package delivery fans a canonical report out to the configured
// notification channels.
package delivery

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/smhjw/daily-telegram-brief/internal/brief"
	"github.com/smhjw/daily-telegram-brief/pkg/dingtalk"
	"github.com/smhjw/daily-telegram-brief/pkg/serverchan"
	"github.com/smhjw/daily-telegram-brief/pkg/telegram"
)

// Channel delivers one rendering of the canonical report.
type Channel interface {
	Name() string
	Send(ctx context.Context, report string) error
}

// TelegramChannel sends the plain-text rendering via the Bot API.
type TelegramChannel struct {
	Client telegram.Client
	ChatID string
}

// Name implements Channel.
func (c *TelegramChannel) Name() string { return "Telegram" }

// Send implements Channel.
func (c *TelegramChannel) Send(ctx context.Context, report string) error {
	sections, timestamp := brief.Parse(report)
	return c.Client.SendMessage(ctx, c.ChatID, brief.RenderTelegram(sections, timestamp))
}

// ServerChanChannel sends the WeChat markdown rendering.
type ServerChanChannel struct {
	Client serverchan.Client
}

// Name implements Channel.
func (c *ServerChanChannel) Name() string { return "微信" }

// Send implements Channel.
func (c *ServerChanChannel) Send(ctx context.Context, report string) error {
	sections, timestamp := brief.Parse(report)
	title, body := brief.RenderServerChan(sections, timestamp)
	return c.Client.Send(ctx, title, body)
}

// DingTalkChannel sends the DingTalk markdown rendering through the
// signed robot webhook.
type DingTalkChannel struct {
	Client dingtalk.Client
}

// Name implements Channel.
func (c *DingTalkChannel) Name() string { return "钉钉" }

// Send implements Channel.
func (c *DingTalkChannel) Send(ctx context.Context, report string) error {
	sections, timestamp := brief.Parse(report)
	title, body := brief.RenderDingTalk(sections, timestamp)
	return c.Client.SendMarkdown(ctx, title, body)
}

// Dispatch attempts every channel. One channel's failure never prevents
// the others; all failures are collected and reported together.
func Dispatch(ctx context.Context, report string, channels []Channel) error {
	if len(channels) == 0 {
		return nil
	}

	errs := make([]error, len(channels))

	eg, gctx := errgroup.WithContext(ctx)
	for i, ch := range channels {
		eg.Go(func() error {
			if err := ch.Send(gctx, report); err != nil {
				errs[i] = err
				zap.L().Error("delivery failed",
					zap.String("channel", ch.Name()),
					zap.Error(err),
				)
				return nil
			}
			zap.L().Info("delivery sent", zap.String("channel", ch.Name()))
			return nil
		})
	}
	_ = eg.Wait()

	var parts []string
	for i, err := range errs {
		if err != nil {
			parts = append(parts, channels[i].Name()+"发送失败: "+err.Error())
		}
	}
	if len(parts) > 0 {
		return eris.New(strings.Join(parts, "；"))
	}
	return nil
}
