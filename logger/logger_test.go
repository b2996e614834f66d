package logger

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewLogger_Success(t *testing.T) {
	tests := []struct {
		name   string
		logDir string
	}{
		{
			name:   "simple directory",
			logDir: t.TempDir(),
		},
		{
			name:   "nested directory creation",
			logDir: filepath.Join(t.TempDir(), "logs", "nested", "deep"),
		},
		{
			name:   "current directory",
			logDir: ".",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.logDir)

			if err != nil {
				t.Errorf("NewLogger() unexpected error: %v", err)
				return
			}

			if logger == nil {
				t.Error("NewLogger() returned nil logger")
				return
			}

			if logger.Logger == nil {
				t.Error("NewLogger() returned logger with nil *slog.Logger")
			}
		})
	}
}

func TestNewLogger_CreatesLogFile(t *testing.T) {
	tempDir := t.TempDir()

	logger, err := NewLogger(tempDir)
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}

	if logger == nil {
		t.Fatal("NewLogger() returned nil logger")
	}

	expectedFileName := time.Now().Format("2006-01-02") + ".log"
	logFilePath := filepath.Join(tempDir, expectedFileName)

	if _, err := os.Stat(logFilePath); os.IsNotExist(err) {
		t.Errorf("expected log file %s does not exist", logFilePath)
	}
}

func TestNewLogger_InvalidPermissions(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("skipping test when running as root")
	}

	tempDir := t.TempDir()
	noWriteDir := filepath.Join(tempDir, "no-write")
	if err := os.Mkdir(noWriteDir, 0444); err != nil {
		t.Fatalf("failed to create test directory: %v", err)
	}

	logDir := filepath.Join(noWriteDir, "logs")
	_, err := NewLogger(logDir)

	if err == nil {
		t.Error("NewLogger() expected permission error, got nil")
	}
}

func TestLogger_InfoLogging(t *testing.T) {
	tempDir := t.TempDir()

	logger, err := NewLogger(tempDir)
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}

	logger.Info("computed payment row",
		slog.String("mode", "Bullet"),
		slog.Float64("principal", 1000),
		slog.Int("term", 12),
		slog.Float64("apy", 0.10),
	)

	logFile := filepath.Join(tempDir, time.Now().Format("2006-01-02")+".log")
	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	var logEntry map[string]interface{}
	if err := json.Unmarshal(content, &logEntry); err != nil {
		t.Fatalf("log output is not valid JSON: %v", err)
	}

	expectedFields := map[string]interface{}{
		"level":     "INFO",
		"msg":       "computed payment row",
		"mode":      "Bullet",
		"principal": float64(1000),
		"term":      float64(12),
		"apy":       float64(0.10),
	}

	for field, expectedValue := range expectedFields {
		actualValue, exists := logEntry[field]
		if !exists {
			t.Errorf("log entry missing field: %s", field)
			continue
		}

		if actualValue != expectedValue {
			t.Errorf("field %s: expected %v, got %v", field, expectedValue, actualValue)
		}
	}

	if _, hasSource := logEntry["source"]; !hasSource {
		t.Error("log entry missing source location")
	}
}

func TestLogger_ErrorLogging(t *testing.T) {
	tempDir := t.TempDir()

	logger, err := NewLogger(tempDir)
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}

	testErr := os.ErrNotExist

	logger.Error("schedule computation failed",
		slog.String("mode", "Price"),
		slog.Any("error", testErr),
		slog.String("reason", "invalid term"),
	)

	logFile := filepath.Join(tempDir, time.Now().Format("2006-01-02")+".log")
	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	logContent := string(content)

	if !strings.Contains(logContent, `"level":"ERROR"`) {
		t.Error("log missing ERROR level")
	}
	if !strings.Contains(logContent, `"msg":"schedule computation failed"`) {
		t.Error("log missing error message")
	}
	if !strings.Contains(logContent, `"mode":"Price"`) {
		t.Error("log missing mode field")
	}
	if !strings.Contains(logContent, `"reason":"invalid term"`) {
		t.Error("log missing reason field")
	}
}

func TestLogger_WarnLogging(t *testing.T) {
	tempDir := t.TempDir()

	logger, err := NewLogger(tempDir)
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}

	logger.Warn("backend fell back to stale CDI value",
		slog.String("index", "CDI"),
		slog.String("requested_date", "2022-06-15"),
		slog.String("fallback_date", "2022-06-10"),
	)

	logFile := filepath.Join(tempDir, time.Now().Format("2006-01-02")+".log")
	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	logContent := string(content)

	if !strings.Contains(logContent, `"level":"WARN"`) {
		t.Error("log missing WARN level")
	}
	if !strings.Contains(logContent, `"index":"CDI"`) {
		t.Error("log missing index field")
	}
}

func TestLogger_SourceLocationIncluded(t *testing.T) {
	tempDir := t.TempDir()

	logger, err := NewLogger(tempDir)
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}

	logger.Info("test with source location")

	logFile := filepath.Join(tempDir, time.Now().Format("2006-01-02")+".log")
	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	logContent := string(content)

	requiredSourceFields := []string{
		`"source"`,
		"logger_test.go",
	}

	for _, field := range requiredSourceFields {
		if !strings.Contains(logContent, field) {
			t.Errorf("log content missing source field: %s\nGot: %s", field, logContent)
		}
	}
}

func TestLogger_MultipleLogLevels(t *testing.T) {
	tempDir := t.TempDir()

	logger, err := NewLogger(tempDir)
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}

	logger.Info("server starting", slog.String("addr", ":8080"))
	logger.Warn("request queue nearing capacity",
		slog.Int("queued", 95),
		slog.Int("max", 100),
	)
	logger.Error("request handling failed",
		slog.String("reason", "timeout exceeded"),
	)

	logFile := filepath.Join(tempDir, time.Now().Format("2006-01-02")+".log")
	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	logContent := string(content)

	levels := []string{
		`"level":"INFO"`,
		`"level":"WARN"`,
		`"level":"ERROR"`,
	}

	for _, level := range levels {
		if !strings.Contains(logContent, level) {
			t.Errorf("log content missing expected level: %s", level)
		}
	}
}

func TestLogger_AppendToExistingFile(t *testing.T) {
	tempDir := t.TempDir()

	logger1, err := NewLogger(tempDir)
	if err != nil {
		t.Fatalf("NewLogger() first instance failed: %v", err)
	}
	logger1.Info("first message", slog.String("batch", "1"))

	logger2, err := NewLogger(tempDir)
	if err != nil {
		t.Fatalf("NewLogger() second instance failed: %v", err)
	}
	logger2.Info("second message", slog.String("batch", "2"))

	logFile := filepath.Join(tempDir, time.Now().Format("2006-01-02")+".log")
	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	logContent := string(content)

	if !strings.Contains(logContent, "first message") {
		t.Error("log file missing first message")
	}
	if !strings.Contains(logContent, "second message") {
		t.Error("log file missing second message")
	}
	if !strings.Contains(logContent, `"batch":"1"`) {
		t.Error("log file missing first batch identifier")
	}
	if !strings.Contains(logContent, `"batch":"2"`) {
		t.Error("log file missing second batch identifier")
	}
}

func TestLogger_ConcurrentWrites(t *testing.T) {
	tempDir := t.TempDir()

	logger, err := NewLogger(tempDir)
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}

	const numWorkers = 10
	done := make(chan bool, numWorkers)

	for i := 0; i < numWorkers; i++ {
		go func(workerID int) {
			logger.Info("computed payment row",
				slog.Int("worker_id", workerID),
			)
			done <- true
		}(i)
	}

	for i := 0; i < numWorkers; i++ {
		<-done
	}

	logFile := filepath.Join(tempDir, time.Now().Format("2006-01-02")+".log")
	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	logContent := string(content)

	lines := strings.Split(strings.TrimSpace(logContent), "\n")
	if len(lines) < numWorkers {
		t.Errorf("expected at least %d log entries, got %d", numWorkers, len(lines))
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	tempDir := b.TempDir()

	logger, err := NewLogger(tempDir)
	if err != nil {
		b.Fatalf("NewLogger() failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("computed payment row",
			slog.String("mode", "Bullet"),
			slog.Float64("principal", 1000),
			slog.Int("term", 12),
		)
	}
}

func BenchmarkLogger_Error(b *testing.B) {
	tempDir := b.TempDir()

	logger, err := NewLogger(tempDir)
	if err != nil {
		b.Fatalf("NewLogger() failed: %v", err)
	}

	testErr := os.ErrNotExist

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Error("calculation failed",
			slog.String("mode", "Bullet"),
			slog.Any("error", testErr),
		)
	}
}

func BenchmarkLogger_ConcurrentWrites(b *testing.B) {
	tempDir := b.TempDir()

	logger, err := NewLogger(tempDir)
	if err != nil {
		b.Fatalf("NewLogger() failed: %v", err)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			logger.Info("concurrent write", slog.String("mode", "Bullet"))
		}
	})
}
