package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LoggerService owns the application log file: everything written through
// the stdlib log package lands in the current file. Files rotate by size and
// old ones are swept after the retention window.
type LoggerService struct {
	mu            sync.Mutex
	file          *os.File
	currentLog    string
	maxFileBytes  int64
	retentionDays int
	folderPath    string
	stopCh        chan struct{}
	wg            sync.WaitGroup
}

func NewLoggerService(config map[string]interface{}) *LoggerService {
	maxMB := intValue(config, "max_file_mb", 10)
	retention := intValue(config, "retention_days", 14)
	folder, _ := config["folder_path"].(string)
	if folder == "" {
		folder = "./logs"
	}
	return &LoggerService{
		maxFileBytes:  int64(maxMB) * 1024 * 1024,
		retentionDays: retention,
		folderPath:    folder,
		stopCh:        make(chan struct{}),
	}
}

func intValue(cfg map[string]interface{}, key string, def int) int {
	switch v := cfg[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return def
}

func (l *LoggerService) Name() string { return "logger" }

func (l *LoggerService) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(l.folderPath, 0755); err != nil {
		return err
	}
	logFile := l.nextLogFileName()
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	l.file = file
	l.currentLog = logFile
	log.SetOutput(file)
	log.Println("[LoggerService] started, writing to", logFile)

	l.wg.Add(1)
	go l.backgroundWorker()
	return nil
}

func (l *LoggerService) Stop() error {
	close(l.stopCh)
	l.wg.Wait()
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		log.Println("[LoggerService] stopping")
		return l.file.Close()
	}
	return nil
}

func (l *LoggerService) nextLogFileName() string {
	return filepath.Join(l.folderPath, fmt.Sprintf("app_%s.log", time.Now().Format("20060102_150405")))
}

func (l *LoggerService) rotateIfNeeded() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil || l.maxFileBytes <= 0 {
		return
	}
	info, err := l.file.Stat()
	if err != nil || info.Size() < l.maxFileBytes {
		return
	}
	l.file.Close()
	newLog := l.nextLogFileName()
	file, err := os.OpenFile(newLog, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	l.file = file
	l.currentLog = newLog
	log.SetOutput(file)
	log.Println("[LoggerService] rotated log file to", newLog)
}

func (l *LoggerService) backgroundWorker() {
	defer l.wg.Done()
	rotateTicker := time.NewTicker(10 * time.Second)
	retentionTicker := time.NewTicker(24 * time.Hour)
	defer rotateTicker.Stop()
	defer retentionTicker.Stop()

	for {
		select {
		case <-l.stopCh:
			return
		case <-rotateTicker.C:
			l.rotateIfNeeded()
		case <-retentionTicker.C:
			l.cleanOldLogs()
		}
	}
}

// cleanOldLogs removes rotated files past the retention window. The current
// log is never touched since its mtime keeps moving.
func (l *LoggerService) cleanOldLogs() {
	if l.retentionDays <= 0 {
		return
	}
	cutoff := time.Now().AddDate(0, 0, -l.retentionDays)
	entries, err := os.ReadDir(l.folderPath)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".log" {
			continue
		}
		fullPath := filepath.Join(l.folderPath, e.Name())
		info, err := os.Stat(fullPath)
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		os.Remove(fullPath)
	}
}

// LogAudit records a user-facing action in the shared log.
func (l *LoggerService) LogAudit(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	log.Printf("[AUDIT] %s", msg)
}

var GlobalLogger *LoggerService

func SetGlobalLogger(l *LoggerService) {
	GlobalLogger = l
}
