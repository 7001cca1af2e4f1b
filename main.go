package main

import (
	"context"
	"gadgetbot/internal/adapters/analyzer"
	"gadgetbot/internal/adapters/encyclopedia"
	"gadgetbot/internal/adapters/exchange"
	"gadgetbot/internal/adapters/generator"
	"gadgetbot/internal/adapters/handler"
	"gadgetbot/internal/adapters/renderer"
	"gadgetbot/internal/adapters/sender"
	"gadgetbot/internal/core/domain/command"
	"gadgetbot/internal/core/service"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func main() {
	log.Info().Msg("starting gadgetbot...")

	viper.AddConfigPath(".")
	viper.SetConfigType("toml")
	setDefaults()

	log.Info().Msg("reading config file...")
	err := viper.ReadInConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("could not read config file")
	}

	var logLevel zerolog.Level

	switch viper.GetString("bot.log_level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	metrics := service.NewMetrics(prometheus.DefaultRegisterer)
	if addr := viper.GetString("bot.metrics_address"); addr != "" {
		go service.ServeMetrics(ctx, addr)
	}

	token := viper.GetString("telegram.bot_token")
	opts := []bot.Option{
		bot.WithDefaultHandler(noOpHandler),
	}

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing telegram bot")
	}

	s := sender.NewTelegram(b)

	auth, err := service.NewAuthorizer(s)
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing authorizer")
	}

	gate := service.NewGate(
		viper.GetDuration("generate.min_interval"),
		viper.GetInt("generate.daily_limit"),
		service.WithMetrics(metrics),
	)

	scheduler := service.NewReminderScheduler(ctx, metrics)

	wordCloudRenderer, err := renderer.NewWordCloud()
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing word cloud renderer")
	}

	textGenerator := generator.NewOpenRouter(
		viper.GetString("generate.api_key"),
		viper.GetString("generate.model"),
		viper.GetString("generate.system_prompt"))

	answerer := generator.NewHuggingFace(viper.GetString("ask.endpoint"), viper.GetString("ask.api_key"))

	commandRegistry := &command.Registry{}

	commandRegistry.Register(command.NewJoke(s, "/joke"))
	commandRegistry.Register(command.NewFlip(s, "/flip"))
	commandRegistry.Register(command.NewRoll(s, "/roll"))
	commandRegistry.Register(command.NewCurrency(
		exchange.NewFrankfurter(viper.GetString("currency.endpoint"), viper.GetDuration("currency.cache_ttl")),
		s, "/currency"))
	commandRegistry.Register(command.NewSentiment(analyzer.NewVader(), s, "/sentiment"))
	commandRegistry.Register(command.NewWordCloud(wordCloudRenderer, s, s, "/wordcloud"))
	commandRegistry.Register(command.NewVisualize(renderer.NewChart(), s, s, "/visualize"))
	commandRegistry.Register(command.NewWiki(
		encyclopedia.NewWikipedia(viper.GetString("wiki.endpoint")), s, viper.GetInt("wiki.sentences"), "/wiki"))
	commandRegistry.Register(command.NewQR(renderer.NewQR(), s, s, "/qr"))
	commandRegistry.Register(command.NewReminder(scheduler, s, viper.GetDuration("reminder.max_duration"),
		"/reminder"))
	commandRegistry.Register(command.NewAsk(answerer, s, auth, viper.GetString("ask.context"), "/ask"))
	commandRegistry.Register(command.NewGenerate(command.GenerateParams{
		Generator:  textGenerator,
		Gate:       gate,
		TextSender: s,
		Auth:       auth,
		MaxTokens:  viper.GetInt("generate.max_tokens"),
		Command:    "/generate",
	}))
	commandRegistry.Register(command.NewHelp(commandRegistry, s, "/help"))
	commandRegistry.Register(command.NewDebug(s, gate, scheduler, "/debug"))

	handlerTimeout, err := time.ParseDuration(viper.GetString("handler.timeout"))
	if err != nil {
		log.Panic().Err(err).Msg("invalid timeout for handler in config")
	}

	commandHandler := handler.NewCommand(commandRegistry, handlerTimeout, metrics)

	b.RegisterHandler(bot.HandlerTypeMessageText, "/", bot.MatchTypePrefix, commandHandler.Handle)

	log.Info().Msg("bot listening")
	b.Start(ctx)

	log.Info().Msg("shutting down, waiting for running commands")
	commandHandler.Wait()
	scheduler.Wait()
}

func setDefaults() {
	viper.SetDefault("bot.log_level", "info")
	viper.SetDefault("handler.timeout", "60s")
	viper.SetDefault("generate.min_interval", service.DefaultMinInterval)
	viper.SetDefault("generate.daily_limit", service.DefaultDailyLimit)
	viper.SetDefault("generate.max_tokens", command.DefaultMaxTokens)
	viper.SetDefault("generate.model", generator.DefaultModel)
	viper.SetDefault("currency.endpoint", exchange.DefaultEndpoint)
	viper.SetDefault("currency.cache_ttl", exchange.DefaultCacheTTL)
	viper.SetDefault("wiki.endpoint", encyclopedia.DefaultEndpoint)
	viper.SetDefault("wiki.sentences", command.DefaultSummarySentences)
	viper.SetDefault("ask.endpoint", generator.DefaultQAEndpoint)
	viper.SetDefault("reminder.max_duration", 7*24*time.Hour)
}

func noOpHandler(_ context.Context, _ *bot.Bot, _ *models.Update) {}
