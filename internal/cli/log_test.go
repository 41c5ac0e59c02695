package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/apexkit/pkg/observability"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "info at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Info("test") },
			wantLog: true,
		},
		{
			name:    "debug at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: false,
		},
		{
			name:    "debug at debug level",
			level:   log.DebugLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			gotLog := buf.Len() > 0
			if gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(10 * time.Millisecond)
	prog.done("Built sales")

	if !strings.Contains(buf.String(), "Built sales (") {
		t.Errorf("progress output = %q", buf.String())
	}
}

func TestLockedWriterConcurrent(t *testing.T) {
	var buf bytes.Buffer
	w := &lockedWriter{w: &buf}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				w.Write([]byte("x"))
			}
		}()
	}
	wg.Wait()
	if buf.Len() != 800 {
		t.Errorf("wrote %d bytes, want 800", buf.Len())
	}
}

func TestVerboseInstallsLogHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()

	var out, errw bytes.Buffer
	c := New(&out, &errw, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"-v", "cache", "path"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if _, ok := observability.Chart().(*observability.LogHooks); !ok {
		t.Errorf("Chart hooks = %T, want *observability.LogHooks", observability.Chart())
	}
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}
