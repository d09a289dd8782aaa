package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"UptrendScanner/internal/api"
	"UptrendScanner/internal/cache"
	"UptrendScanner/internal/collector"
	"UptrendScanner/internal/config"
	"UptrendScanner/internal/metrics"
	"UptrendScanner/internal/model"
	"UptrendScanner/internal/notifier"
	"UptrendScanner/internal/report"
	"UptrendScanner/internal/scanner"
	"UptrendScanner/internal/scheduler"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := run(); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
}

// loadDotEnv reads .env (or the given files) without overriding variables
// already present in the environment. A missing file is not an error.
func loadDotEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[WARN] load .env: %v", err)
	}
}

func configPath() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return defaultConfigPath
}

type scanRunner interface {
	Run(ctx context.Context, trigger model.TriggerType, keys []string) (*model.ScanResult, error)
}

// scanOnce runs a single manual scan and writes the table to w.
func scanOnce(ctx context.Context, r scanRunner, categories []string, filter report.Filter, w io.Writer) error {
	res, err := r.Run(ctx, model.TriggerManual, categories)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	if err := report.WriteTable(w, report.Build(res, filter)); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}

func run() error {
	loadDotEnv()

	cfgPath := configPath()
	flag.StringVar(&cfgPath, "config", cfgPath, "path to YAML config")
	once := flag.Bool("once", false, "run one scan, print the table and exit")
	flag.Parse()

	log.Println("[INFO] UptrendScanner starting...")

	// Load config
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	period, _ := collector.ParsePeriod(cfg.Scan.Period)

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.Provider == config.ProviderVsTrader {
		fetcher = collector.NewVsTraderFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s (demo mode: %v)", fetcher.Name(), cfg.Scan.DemoMode)

	// Init bar cache
	var store cache.Store = cache.NewNoopStore()
	if cfg.Cache.SQLitePath != "" {
		ss, err := cache.NewSQLiteStore(cfg.Cache.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite cache failed, using noop: %v", err)
		} else {
			if n, err := ss.Purge(4 * cfg.Cache.TTL); err != nil {
				log.Printf("[WARN] purge cache: %v", err)
			} else if n > 0 {
				log.Printf("[INFO] purged %d stale cache entries", n)
			}
			store = ss
		}
	}
	defer store.Close()
	fetcher = collector.NewCachedFetcher(fetcher, store, cfg.Cache.TTL)

	// Init pipeline
	m := metrics.NewMetrics()
	analyzer := scanner.NewAnalyzer(fetcher, scanner.Options{DemoMode: cfg.Scan.DemoMode, Period: period}, m)
	runner := scanner.NewRunner(analyzer, cfg.Universe, cfg.Scan.Concurrency, m)
	filter := report.Filter{MinScore: cfg.Scan.MinScore, UptrendOnly: cfg.Scan.UptrendOnly}

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *once {
		return scanOnce(ctx, runner, cfg.Scan.Categories, filter, os.Stdout)
	}

	// Init Telegram notifier
	var tn *notifier.TelegramNotifier
	var sender scheduler.Sender
	if cfg.Telegram.Enabled {
		tn, err = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		if err != nil {
			return fmt.Errorf("init telegram: %w", err)
		}
		sender = tn
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, runner, sender, scheduler.Settings{
		Categories: cfg.Scan.Categories,
		Filter:     filter,
		Status: notifier.StatusInfo{
			Provider:    fetcher.Name(),
			DemoMode:    cfg.Scan.DemoMode,
			Period:      string(period),
			Selected:    cfg.Scan.Categories,
			Universe:    cfg.Universe,
			Filter:      filter,
			ScanCron:    cfg.Schedule.ScanCron,
			Concurrency: cfg.Scan.Concurrency,
		},
	})
	if err := sched.RegisterAll(cfg.Schedule.ScanCron); err != nil {
		return fmt.Errorf("register cron tasks: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	// Start HTTP API
	var srv *http.Server
	if cfg.HTTP.Addr != "" {
		srv = &http.Server{
			Addr: cfg.HTTP.Addr,
			Handler: api.NewRouter(&api.API{
				Scanner:    runner,
				Categories: cfg.Scan.Categories,
				Filter:     filter,
				Metrics:    m,
			}),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			log.Printf("[INFO] HTTP API listening on %s", cfg.HTTP.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("[ERROR] http server: %v", err)
			}
		}()
	}

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing scan now")
		go sched.RunNow(model.TriggerStartup)
	}

	log.Println("[INFO] UptrendScanner is running. Press Ctrl+C to stop.")
	<-ctx.Done()

	log.Println("[INFO] shutdown signal received, stopping...")
	if srv != nil {
		shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] http shutdown: %v", err)
		}
	}
	log.Println("[INFO] UptrendScanner stopped")
	return nil
}
