package scheduler

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"UptrendScanner/internal/model"
	"UptrendScanner/internal/notifier"
	"UptrendScanner/internal/report"

	"github.com/robfig/cron/v3"
)

// DefaultProbeSymbol is analyzed by /probe when no symbol is given.
const DefaultProbeSymbol = "AAPL"

// ErrScanInProgress is returned when a scan is requested while another one runs.
var ErrScanInProgress = errors.New("scan already in progress")

// Runner runs batch scans and single-symbol analyses.
type Runner interface {
	Run(ctx context.Context, trigger model.TriggerType, categories []string) (*model.ScanResult, error)
	Analyze(ctx context.Context, symbol string) (model.SignalRecord, error)
}

// Sender delivers formatted reports.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Settings is the scan selection and presentation used by scheduled runs.
type Settings struct {
	Categories []string
	Filter     report.Filter
	// Status seeds the /status reply; LastRun is filled in by the scheduler.
	Status notifier.StatusInfo
}

// Scheduler manages the cron scan task and chat commands.
type Scheduler struct {
	Cron     *cron.Cron
	Runner   Runner
	Notifier Sender
	Settings Settings
	Ctx      context.Context

	running atomic.Bool
	mu      sync.Mutex
	lastRun *notifier.RunInfo
}

// NewScheduler creates a new Scheduler. sender may be nil, in which case reports are only logged.
func NewScheduler(ctx context.Context, runner Runner, sender Sender, settings Settings) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Runner:   runner,
		Notifier: sender,
		Settings: settings,
		Ctx:      ctx,
	}
}

// RegisterAll registers the scan task.
func (s *Scheduler) RegisterAll(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes a scan immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow(trigger model.TriggerType) {
	s.scanAndReport(trigger)
}

// LastRun returns the counters of the most recent completed scan, or nil.
func (s *Scheduler) LastRun() *notifier.RunInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun
}

func (s *Scheduler) scanTask() {
	log.Println("[INFO] running scheduled scan")
	s.scanAndReport(model.TriggerScheduled)
}

// Scan runs one batch over the configured selection. Only one scan runs at a time.
func (s *Scheduler) Scan(trigger model.TriggerType) (*model.ScanResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrScanInProgress
	}
	defer s.running.Store(false)

	res, err := s.Runner.Run(s.Ctx, trigger, s.Settings.Categories)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.lastRun = notifier.NewRunInfo(res)
	s.mu.Unlock()
	return res, nil
}

func (s *Scheduler) scanAndReport(trigger model.TriggerType) {
	res, err := s.Scan(trigger)
	if errors.Is(err, ErrScanInProgress) {
		log.Printf("[WARN] %s scan skipped: %v", trigger, err)
		return
	}
	if err != nil {
		log.Printf("[ERROR] %s scan: %v", trigger, err)
		s.trySend(fmt.Sprintf("❌ Scan failed: %s", html.EscapeString(err.Error())))
		return
	}
	if len(res.Categories) == 0 {
		log.Println("[INFO] no categories selected, nothing to report")
		return
	}
	view := report.Build(res, s.Settings.Filter)
	s.trySend(notifier.FormatScanReport(view, s.Settings.Filter))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command, args string) string {
	switch strings.ToLower(command) {
	case "scan":
		if s.running.Load() {
			return "⏳ A scan is already running."
		}
		s.scanAndReport(model.TriggerManual)
		return ""
	case "status":
		info := s.Settings.Status
		info.LastRun = s.LastRun()
		return notifier.FormatStatus(info)
	case "probe":
		symbol := DefaultProbeSymbol
		if fields := strings.Fields(args); len(fields) > 0 {
			symbol = strings.ToUpper(fields[0])
		}
		rec, err := s.Runner.Analyze(ctx, symbol)
		if err != nil {
			return fmt.Sprintf("❌ Probe %s failed: %s", html.EscapeString(symbol), html.EscapeString(err.Error()))
		}
		return notifier.FormatProbe(rec)
	default:
		return notifier.HelpText
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		log.Printf("[INFO] report (telegram disabled):\n%s", text)
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
