package scheduler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"UptrendScanner/internal/model"
	"UptrendScanner/internal/report"
	"UptrendScanner/internal/scanner"
)

type fakeRunner struct {
	mu      sync.Mutex
	runs    []model.TriggerType
	probed  []string
	err     error
	block   chan struct{}
	started chan struct{}
	records []model.SignalRecord
}

func (f *fakeRunner) Run(_ context.Context, trigger model.TriggerType, cats []string) (*model.ScanResult, error) {
	f.mu.Lock()
	f.runs = append(f.runs, trigger)
	f.mu.Unlock()
	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return &model.ScanResult{
		ID:         "run",
		Trigger:    trigger,
		Categories: cats,
		Records:    f.records,
		Attempted:  len(f.records),
		FinishedAt: time.Date(2025, 6, 2, 22, 30, 0, 0, time.UTC),
	}, nil
}

func (f *fakeRunner) Analyze(_ context.Context, symbol string) (model.SignalRecord, error) {
	f.mu.Lock()
	f.probed = append(f.probed, symbol)
	f.mu.Unlock()
	if symbol == "NOPE" {
		return model.SignalRecord{}, scanner.ErrDataUnavailable
	}
	return model.SignalRecord{Symbol: symbol, Score: 80, IsUptrend: true}, nil
}

type fakeSender struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeSender) SendWithRetry(_ context.Context, text string, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	return nil
}

func newTestScheduler(r *fakeRunner, snd *fakeSender) *Scheduler {
	return NewScheduler(context.Background(), r, snd, Settings{
		Categories: []string{"tech"},
		Filter:     report.Filter{MinScore: 60, UptrendOnly: true},
	})
}

func TestHandleCommand_Scan(t *testing.T) {
	r := &fakeRunner{records: []model.SignalRecord{{Symbol: "AAPL", Category: "Tech", Score: 70, IsUptrend: true}}}
	snd := &fakeSender{}
	s := newTestScheduler(r, snd)

	if reply := s.HandleCommand(context.Background(), "scan", ""); reply != "" {
		t.Errorf("scan reply = %q, want empty (report is pushed)", reply)
	}
	if len(r.runs) != 1 || r.runs[0] != model.TriggerManual {
		t.Errorf("runs = %v", r.runs)
	}
	if len(snd.sent) != 1 || !strings.Contains(snd.sent[0], "<b>AAPL</b>") {
		t.Errorf("sent = %v", snd.sent)
	}
	if s.LastRun() == nil || s.LastRun().Analyzed != 1 {
		t.Errorf("last run = %+v", s.LastRun())
	}
}

func TestHandleCommand_ScanError(t *testing.T) {
	r := &fakeRunner{err: scanner.ErrUnknownCategory}
	snd := &fakeSender{}
	s := newTestScheduler(r, snd)
	s.HandleCommand(context.Background(), "scan", "")
	if len(snd.sent) != 1 || !strings.Contains(snd.sent[0], "Scan failed") {
		t.Errorf("sent = %v", snd.sent)
	}
	if s.LastRun() != nil {
		t.Error("failed scan should not update last run")
	}
}

func TestHandleCommand_Probe(t *testing.T) {
	r := &fakeRunner{}
	s := newTestScheduler(r, &fakeSender{})

	if reply := s.HandleCommand(context.Background(), "probe", ""); !strings.Contains(reply, "AAPL") {
		t.Errorf("default probe reply = %q", reply)
	}
	if reply := s.HandleCommand(context.Background(), "probe", "nvda extra"); !strings.Contains(reply, "NVDA") {
		t.Errorf("probe reply = %q", reply)
	}
	if reply := s.HandleCommand(context.Background(), "probe", "NOPE"); !strings.Contains(reply, "failed") {
		t.Errorf("failed probe reply = %q", reply)
	}
	if strings.Join(r.probed, ",") != "AAPL,NVDA,NOPE" {
		t.Errorf("probed = %v", r.probed)
	}
}

func TestHandleCommand_StatusAndHelp(t *testing.T) {
	s := newTestScheduler(&fakeRunner{}, &fakeSender{})
	s.Settings.Status.Provider = "yahoo"
	if reply := s.HandleCommand(context.Background(), "status", ""); !strings.Contains(reply, "Data source: yahoo") || !strings.Contains(reply, "none yet") {
		t.Errorf("status reply = %q", reply)
	}
	if reply := s.HandleCommand(context.Background(), "start", ""); !strings.Contains(reply, "/probe") {
		t.Errorf("help reply = %q", reply)
	}
}

func TestScan_NoOverlap(t *testing.T) {
	r := &fakeRunner{block: make(chan struct{}), started: make(chan struct{})}
	s := newTestScheduler(r, &fakeSender{})

	done := make(chan error)
	go func() {
		_, err := s.Scan(model.TriggerScheduled)
		done <- err
	}()
	<-r.started

	if _, err := s.Scan(model.TriggerManual); !errors.Is(err, ErrScanInProgress) {
		t.Errorf("err = %v, want ErrScanInProgress", err)
	}
	if reply := s.HandleCommand(context.Background(), "scan", ""); !strings.Contains(reply, "already running") {
		t.Errorf("reply = %q", reply)
	}
	close(r.block)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
}

func TestRunNow_EmptySelectionSendsNothing(t *testing.T) {
	r := &fakeRunner{}
	snd := &fakeSender{}
	s := NewScheduler(context.Background(), r, snd, Settings{})
	s.RunNow(model.TriggerStartup)
	if len(r.runs) != 1 || len(snd.sent) != 0 {
		t.Errorf("runs=%d sent=%d", len(r.runs), len(snd.sent))
	}
}

func TestRegisterAll_InvalidCron(t *testing.T) {
	s := newTestScheduler(&fakeRunner{}, nil)
	if err := s.RegisterAll("not a cron"); err == nil {
		t.Error("expected error for invalid cron spec")
	}
	if err := s.RegisterAll("0 30 22 * * 1-5"); err != nil {
		t.Errorf("RegisterAll: %v", err)
	}
}
