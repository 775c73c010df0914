package log

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// The log file should be rotated when it reaches the maximum size.
func TestLogRotation(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "booksync.log")

	rotationLog := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    1, // megabytes
		MaxBackups: 3,
		MaxAge:     1, // days
	}
	defer rotationLog.Close()

	logger := newZap(rotationLog, zapcore.InfoLevel)
	defer logger.Sync()

	oneMegabyte := 1024 * 1024
	rotationLog.Write(make([]byte, oneMegabyte))
	logger.Info("this entry should land in a fresh file")

	fileInfo, err := os.Stat(filename)
	if err != nil {
		t.Fatal(err)
	}
	if fileInfo.Size() > int64(oneMegabyte) {
		t.Fatalf("File size %d is greater than expected %d", fileInfo.Size(), oneMegabyte)
	}
}

func TestParseLevel(t *testing.T) {
	if parseLevel("DEBUG") != zapcore.DebugLevel {
		t.Errorf("expected debug level")
	}
	if parseLevel("nonsense") != zapcore.InfoLevel {
		t.Errorf("unknown levels should fall back to info")
	}
}
