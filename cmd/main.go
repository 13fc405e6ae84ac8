package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/leonelquinteros/gotext"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
	log "github.com/sirupsen/logrus"

	"github.com/hatem4830/cryptopulse/config"
	"github.com/hatem4830/cryptopulse/internal/database"
	"github.com/hatem4830/cryptopulse/internal/engine"
	"github.com/hatem4830/cryptopulse/internal/market"
	"github.com/hatem4830/cryptopulse/internal/telegram"
)

type BotMetrics struct {
	CommandsProcessed prometheus.Counter
	MessagesHandled   prometheus.Counter
}

var metrics = NewBotMetrics()

func init() {
	config.InitConfig()
	setupLogging()
}

func NewBotMetrics() *BotMetrics {
	m := &BotMetrics{
		CommandsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cryptopulse",
			Subsystem: "telegram_bot",
			Name:      "commands_processed",
			Help:      "The total number of processed commands",
		}),
		MessagesHandled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cryptopulse",
			Subsystem: "telegram_bot",
			Name:      "messages_handled",
			Help:      "The total number of handled messages",
		}),
	}

	prometheus.MustRegister(m.CommandsProcessed)
	prometheus.MustRegister(m.MessagesHandled)

	return m
}

func main() {
	gotext.Configure("locales", strings.ToLower(config.GetString("lang")), "default")

	db, err := database.Open(config.GetString("db_path"))
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	loadMetricsFromDB(db)

	quotes := market.New(config.GetString("api_pro_key"))

	bot, err := telegram.NewBot(telegram.BotConfig{
		Token:                 config.GetString("telegram_bot_token"),
		Debug:                 config.GetBool("debug"),
		UpdatesTimeout:        60,
		DefaultUpdateInterval: config.GetInt64("default_update_interval"),
	}, db, quotes)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	// The scheduler's stop signal is the process lifecycle context; the loop
	// finishes its current pass before returning.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng := engine.New(db, quotes, bot, engine.Config{
		TickInterval:          time.Duration(config.GetInt("tick_interval_seconds")) * time.Second,
		DefaultUpdateInterval: config.GetInt64("default_update_interval"),
	})
	go eng.Run(ctx)

	go handleUpdates(bot)

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				saveMetricsToDB(db)
			}
		}
	}()

	go func() {
		<-ctx.Done()
		saveMetricsToDB(db)
		log.Println("Metrics saved, shutting down...")
		os.Exit(0)
	}()

	if err := launchMetricsAndHealthServer(config.GetInt("metrics_port")); err != nil {
		log.Fatalf("Failed to start metrics and health server: %v", err)
	}
}

func setupLogging() {
	log.SetLevel(log.ErrorLevel)
	if config.GetBool("debug") {
		log.SetLevel(log.DebugLevel)
	}
	log.Debug("Starting cryptopulse bot...")
}

func handleUpdates(bot *telegram.Bot) {
	for update := range bot.GetUpdatesChannel() {
		if update.Message == nil || !update.Message.IsCommand() {
			log.Debug("Received non-command update")
			continue
		}

		metrics.MessagesHandled.Inc()
		handleCommand(bot, update)
	}
}

func handleCommand(bot *telegram.Bot, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			stackBuf := make([]byte, 1024)
			stackSize := runtime.Stack(stackBuf, false)
			stackTrace := bytes.TrimRight(stackBuf[:stackSize], "\x00")
			log.Errorf("Recovered from panic: %v\nStack trace: %s", r, stackTrace)
		}
	}()

	text := bot.HandleUpdate(update)
	if text == "" {
		metrics.CommandsProcessed.Inc()
		return
	}

	err := bot.SendMessage(telegram.Message{
		ChatID:    update.Message.Chat.ID,
		Text:      text,
		MessageID: update.Message.MessageID,
	})

	if err != nil {
		log.Errorf("Failed to send message: %v", err)
	} else {
		metrics.CommandsProcessed.Inc()
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func launchMetricsAndHealthServer(port int) error {
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/health", healthCheckHandler)

	log.Infof("Launching metrics and health endpoint on :%d", port)
	return http.ListenAndServe(fmt.Sprintf(":%d", port), http.DefaultServeMux)
}

// persistentCounters pairs every counter that survives restarts with its
// storage name.
func persistentCounters() map[string]prometheus.Counter {
	counters := engine.PersistentCounters()
	counters["commands_processed"] = metrics.CommandsProcessed
	counters["messages_handled"] = metrics.MessagesHandled
	return counters
}

func loadMetricsFromDB(db *database.DB) {
	for name, counter := range persistentCounters() {
		value, err := db.GetMetric(name)
		if err != nil {
			log.Errorf("Failed to load metric %s: %v", name, err)
			continue
		}
		counter.Add(value)
	}
	log.Println("Metrics loaded from database.")
}

func saveMetricsToDB(db *database.DB) {
	for name, counter := range persistentCounters() {
		if err := db.SaveMetric(name, GetMetricValue(counter)); err != nil {
			log.Errorf("Failed to save metric %s: %v", name, err)
		}
	}
	log.Println("Metrics saved to database.")
}

func GetMetricValue(metric prometheus.Collector) float64 {
	var metricValue float64
	metricChan := make(chan prometheus.Metric, 1)
	metric.Collect(metricChan)
	close(metricChan)

	metricProto := &dto.Metric{}
	if err := (<-metricChan).Write(metricProto); err != nil {
		log.Printf("Failed to read metric value: %v", err)
		return 0
	}

	if metricProto.Counter != nil {
		metricValue = metricProto.Counter.GetValue()
	} else if metricProto.Gauge != nil {
		metricValue = metricProto.Gauge.GetValue()
	}
	return metricValue
}
