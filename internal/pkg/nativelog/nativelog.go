package nativelog

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	defaultLogFilePerm = 0o644
	defaultLogDirPerm  = 0o755
)

// TodayFilename returns the daily log filename.
func TodayFilename(now time.Time) string {
	return "stdout_" + now.Format("1-2-06") + ".log"
}

// Writer appends log lines to the daily file inside dir. The file is kept
// open and reopened when the date changes.
type Writer struct {
	mu   sync.Mutex
	dir  string
	day  string
	file *os.File
	now  func() time.Time
}

// NewWriter creates a daily file writer, creating dir when missing.
func NewWriter(dir string) (*Writer, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, defaultLogDirPerm); err != nil {
		return nil, err
	}
	return &Writer{dir: dir, now: time.Now}, nil
}

func (w *Writer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	name := TodayFilename(w.now())
	if w.file == nil || name != w.day {
		if err := w.reopen(name); err != nil {
			return 0, err
		}
	}
	return w.file.Write(p)
}

func (w *Writer) reopen(name string) error {
	if w.file != nil {
		_ = w.file.Close()
		w.file = nil
	}
	f, err := os.OpenFile(filepath.Join(w.dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, defaultLogFilePerm)
	if err != nil {
		return err
	}
	w.file, w.day = f, name
	return nil
}

func (w *Writer) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	return w.file.Sync()
}

// Close releases the current file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

// NewZapLogger creates a zap logger writing to stdout and the daily log file in dir.
func NewZapLogger(dir string, debug bool) (*zap.Logger, error) {
	writer, err := NewWriter(dir)
	if err != nil {
		return nil, err
	}

	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if debug {
		level.SetLevel(zap.DebugLevel)
	}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	fileEncoder := zapcore.NewConsoleEncoder(encoderConfig)
	stdoutConfig := encoderConfig
	if debug {
		// colored levels on the terminal only; the file stays plain
		stdoutConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(stdoutConfig), zapcore.Lock(os.Stdout), level),
		zapcore.NewCore(fileEncoder, zapcore.AddSync(writer), level),
	)

	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	_ = zap.RedirectStdLog(logger)
	return logger, nil
}
