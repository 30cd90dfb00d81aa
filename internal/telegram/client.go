// Package telegram provides a chat front-end for the dashboard via the Telegram Bot API.
// It answers commands from the configured chat with dashboard counts and a rendered
// pie chart, and handles delivery with retry logic.
//
// Supported commands: /start, /help, /topics, /sources, /summary <topic> [source].
// Source names containing spaces can be quoted: /summary 3 "Field Team".
package telegram

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/rewired-gh/surveyboard/internal/dashboard"
	"github.com/rewired-gh/surveyboard/internal/logger"
	"github.com/rewired-gh/surveyboard/internal/models"
	"github.com/rewired-gh/surveyboard/internal/render"
)

// blankLabel names the rows whose source cell is empty
const blankLabel = "(blank)"

// sender is the subset of *tgbotapi.BotAPI the client needs
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Client handles Telegram commands
type Client struct {
	bot            *tgbotapi.BotAPI
	sender         sender
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration

	service  *dashboard.Service
	renderer *render.Renderer
}

// NewClient creates a new Telegram client
func NewClient(botToken, chatID string, maxRetries int, retryDelayBase time.Duration, service *dashboard.Service, renderer *render.Renderer) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	c, err := newClient(bot, chatID, maxRetries, retryDelayBase, service, renderer)
	if err != nil {
		return nil, err
	}
	c.bot = bot
	return c, nil
}

func newClient(s sender, chatID string, maxRetries int, retryDelayBase time.Duration, service *dashboard.Service, renderer *render.Renderer) (*Client, error) {
	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}

	return &Client{
		sender:         s,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
		service:        service,
		renderer:       renderer,
	}, nil
}

// ListenForCommands polls for updates until ctx is cancelled. It returns immediately;
// polling runs in its own goroutine.
func (c *Client) ListenForCommands(ctx context.Context) {
	if c.bot == nil {
		return
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := c.bot.GetUpdatesChan(u)

	go func() {
		defer c.bot.StopReceivingUpdates()
		for {
			select {
			case <-ctx.Done():
				logger.Debug("Telegram command listener stopped")
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				if update.Message == nil {
					continue
				}
				c.handleMessage(update.Message)
			}
		}
	}()
	logger.Info("Listening for Telegram commands")
}

// handleMessage answers a single command from the configured chat
func (c *Client) handleMessage(msg *tgbotapi.Message) {
	if msg.Chat == nil || msg.Chat.ID != c.chatID {
		logger.Debug("Ignoring message from unauthorized chat")
		return
	}
	if !msg.IsCommand() {
		return
	}

	var err error
	switch msg.Command() {
	case "start", "help":
		err = c.sendText(helpText())
	case "topics":
		err = c.sendText(formatList("Topics", c.service.Dataset().Topics()))
	case "sources":
		err = c.sendText(formatList("Sources", c.service.Options().Sources))
	case "summary":
		err = c.sendSummary(parseArgs(msg.CommandArguments()))
	default:
		err = c.sendText(escapeMarkdownV2("Unknown command. Send /help for the list of commands."))
	}
	if err != nil {
		logger.Warn("Failed to answer /%s: %v", msg.Command(), err)
	}
}

// sendSummary sends the four counts followed by the pie chart for the selection
func (c *Client) sendSummary(args []string) error {
	var topic string
	source := models.AllSources
	if len(args) > 0 {
		topic = args[0]
	}
	if len(args) > 1 {
		source = args[1]
	}

	sel := c.service.Resolve(topic, source)
	d := c.service.Update(sel)
	if err := c.sendText(formatSummary(d)); err != nil {
		return err
	}
	if d.Counts.Total == 0 {
		return nil
	}

	var buf bytes.Buffer
	if err := c.renderer.Pie(&buf, d.Pie, render.FormatPNG); err != nil {
		return fmt.Errorf("failed to render pie chart: %w", err)
	}
	photo := tgbotapi.NewPhoto(c.chatID, tgbotapi.FileBytes{Name: "responses.png", Bytes: buf.Bytes()})
	photo.Caption = d.Pie.Title
	return c.send(photo)
}

func (c *Client) sendText(text string) error {
	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ParseMode = "MarkdownV2"
	return c.send(msg)
}

// send delivers a message with linear backoff between attempts
func (c *Client) send(msg tgbotapi.Chattable) error {
	var lastErr error

	for i := 0; i < c.maxRetries; i++ {
		_, err := c.sender.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		time.Sleep(c.retryDelayBase * time.Duration(i+1))
	}

	return fmt.Errorf("failed to send message after %d retries: %w", c.maxRetries, lastErr)
}

// formatSummary formats the counts of one dashboard as a MarkdownV2 message
func formatSummary(d dashboard.Dashboard) string {
	source := d.Selection.Source
	if source == "" {
		source = blankLabel
	}

	var b strings.Builder
	b.WriteString("📊 *Survey Summary*\n\n")
	fmt.Fprintf(&b, "Topic: *%s*\n", escapeMarkdownV2(d.Selection.TopicID))
	fmt.Fprintf(&b, "Source: *%s*\n\n", escapeMarkdownV2(source))

	if d.Counts.Total == 0 {
		b.WriteString(escapeMarkdownV2("No responses match this selection."))
		return b.String()
	}

	fmt.Fprintf(&b, "Total: *%d*\n", d.Counts.Total)
	fmt.Fprintf(&b, "✅ Yes: *%d* %s\n", d.Counts.Yes, share(d.Counts.Yes, d.Counts.Total))
	fmt.Fprintf(&b, "❌ No: *%d* %s\n", d.Counts.No, share(d.Counts.No, d.Counts.Total))
	fmt.Fprintf(&b, "🤔 Maybe: *%d* %s\n", d.Counts.Maybe, share(d.Counts.Maybe, d.Counts.Total))
	return b.String()
}

// share formats value/total as an escaped parenthesised percentage
func share(value, total int) string {
	if total <= 0 {
		return ""
	}
	return escapeMarkdownV2(fmt.Sprintf("(%.1f%%)", 100*float64(value)/float64(total)))
}

func formatList(title string, items []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n", escapeMarkdownV2(title))
	if len(items) == 0 {
		b.WriteString(escapeMarkdownV2("(none)"))
		return b.String()
	}
	for _, item := range items {
		if item == "" {
			item = blankLabel
		}
		fmt.Fprintf(&b, "• %s\n", escapeMarkdownV2(item))
	}
	return b.String()
}

func helpText() string {
	return escapeMarkdownV2("Commands:\n"+
		"/topics - list topic ids\n"+
		"/sources - list sources\n"+
		"/summary <topic> [source] - counts and pie chart\n") +
		escapeMarkdownV2(`Quote sources with spaces: /summary 3 "Field Team"`)
}

// parseArgs splits command arguments on whitespace, keeping double-quoted runs together
func parseArgs(s string) []string {
	var (
		args    []string
		current strings.Builder
		quoted  bool
		inArg   bool
	)
	for _, r := range s {
		switch {
		case r == '"':
			quoted = !quoted
			inArg = true
		case (r == ' ' || r == '\t' || r == '\n') && !quoted:
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}
	if inArg {
		args = append(args, current.String())
	}
	return args
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2
func escapeMarkdownV2(text string) string {
	// Characters that need escaping in MarkdownV2:
	// _ * [ ] ( ) ~ ` > # + - = | { } . !
	var b strings.Builder
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(char)
	}
	return b.String()
}
