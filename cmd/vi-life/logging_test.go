package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/vi-life/config"
)

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	logger, logFile, err := setupLogging(false, config.LoggingConfig{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if logFile != nil {
		t.Error("Expected nil log file when debug=false")
		logFile.Close()
	}
	logger.Info("discarded")

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("Log directory must not be created when debug=false")
	}
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	logger, logFile, err := setupLogging(true, config.LoggingConfig{Dir: dir, Level: "debug"})
	if err != nil {
		t.Fatal(err)
	}
	if logFile == nil {
		t.Fatal("Expected non-nil log file when debug=true")
	}
	defer logFile.Close()

	logger.Debug("Test log message")
	logger.Sync()

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "Test log message") {
		t.Errorf("Expected log file to contain the message, got %q", data)
	}
}

func TestSetupLogging_LevelFilter(t *testing.T) {
	dir := t.TempDir()
	logger, logFile, err := setupLogging(true, config.LoggingConfig{Dir: dir, Level: "warn", Format: "json"})
	if err != nil {
		t.Fatal(err)
	}
	defer logFile.Close()

	logger.Info("hidden")
	logger.Warn("shown")
	logger.Sync()

	data, _ := os.ReadFile(filepath.Join(dir, logFileName))
	if strings.Contains(string(data), "hidden") {
		t.Error("Info message written at warn level")
	}
	if !strings.Contains(string(data), `"msg":"shown"`) {
		t.Errorf("Expected JSON warn entry, got %q", data)
	}
}

func TestSetupLogging_Rotation(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, logFileName)

	// Write just over 10MB
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatalf("Failed to create large log file: %v", err)
	}

	_, logFile, err := setupLogging(true, config.LoggingConfig{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	defer logFile.Close()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read logs directory: %v", err)
	}
	rotatedFound := false
	for _, entry := range entries {
		if entry.Name() != logFileName && filepath.Ext(entry.Name()) == ".log" {
			rotatedFound = true
			break
		}
	}
	if !rotatedFound {
		t.Error("Expected to find rotated log file")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat new log file: %v", err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("Expected new log file to be smaller than %d bytes, got %d", maxLogSize, info.Size())
	}
}
