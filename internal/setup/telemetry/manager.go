package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pracor/pracor/internal/setup/config"
	"github.com/pracor/pracor/internal/setup/telemetry/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ServiceType represents the type of service being initialized.
type ServiceType int

const (
	ServiceAPI ServiceType = iota
	ServiceExport
	ServiceAdmin
)

// String returns the component name used for log directories and span resources.
func (s ServiceType) String() string {
	switch s {
	case ServiceAPI:
		return "api"
	case ServiceExport:
		return "export"
	case ServiceAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// GetRequestTimeout returns the request timeout for the given service type.
func (s ServiceType) GetRequestTimeout() time.Duration {
	switch s {
	case ServiceAPI:
		return 10 * time.Second
	case ServiceExport:
		return 5 * time.Minute
	default:
		return 30 * time.Second
	}
}

// Manager handles the creation and management of log files and directories.
// Each program run writes into its own timestamped session directory.
type Manager struct {
	instanceID        string // Unique identifier for this program instance
	componentName     string // Component identifier for this instance
	currentSessionDir string // Path to the current session's log directory
	logDir            string // Base directory for all logs
	level             string // Logging level (debug, info, warn, error)
	maxLogsToKeep     int    // Maximum number of log sessions to retain
	maxLogLines       int    // Maximum number of lines to keep in each log file
	tracing           bool   // Forward error logs as spans
}

// NewManager creates a new Manager instance.
func NewManager(serviceType ServiceType, logDir string, debugCfg *config.Debug, tracing bool) *Manager {
	maxLogLines := debugCfg.MaxLogLines
	if maxLogLines <= 0 {
		maxLogLines = 10000
	}

	return &Manager{
		instanceID:    uuid.New().String(),
		componentName: serviceType.String(),
		logDir:        logDir,
		level:         debugCfg.LogLevel,
		maxLogsToKeep: debugCfg.MaxLogsToKeep,
		maxLogLines:   maxLogLines,
		tracing:       tracing,
	}
}

// GetLoggers initializes the main and database loggers.
// Returns separate loggers for main application and database logging.
func (lm *Manager) GetLoggers() (*zap.Logger, *zap.Logger, error) {
	if err := lm.setupLogDirectories(); err != nil {
		return nil, nil, err
	}

	mainLogger, err := lm.initLogger(filepath.Join(lm.currentSessionDir, "main.log"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize main logger: %w", err)
	}

	dbLogger, err := lm.initLogger(filepath.Join(lm.currentSessionDir, "database.log"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database logger: %w", err)
	}

	return mainLogger.With(zap.String("component", lm.componentName)), dbLogger, nil
}

// GetCurrentSessionDir returns the current session directory.
func (lm *Manager) GetCurrentSessionDir() string {
	return lm.currentSessionDir
}

// GetInstanceID returns the unique instance identifier for this program run.
func (lm *Manager) GetInstanceID() string {
	return lm.instanceID
}

// setupLogDirectories creates and manages the log directory structure.
// It ensures the base directory exists, rotates old logs, and creates a new session directory.
func (lm *Manager) setupLogDirectories() error {
	// Ensure base log directory exists
	if err := os.MkdirAll(lm.logDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	// Clean up old log sessions
	if err := lm.rotateLogSessions(); err != nil {
		return fmt.Errorf("failed to rotate log sessions: %w", err)
	}

	// Create new session directory with timestamp
	lm.currentSessionDir = filepath.Join(lm.logDir, time.Now().Format("2006-01-02_15-04-05"))
	if err := os.MkdirAll(lm.currentSessionDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	return nil
}

// initLogger creates a new zap logger writing to the given path.
func (lm *Manager) initLogger(path string) (*zap.Logger, error) {
	zapLevel, err := zapcore.ParseLevel(lm.level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	rotator, err := logger.OpenLogRotator(path, lm.maxLogLines)
	if err != nil {
		return nil, err
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), rotator, zapLevel),
	}

	if lm.tracing {
		cores = append(cores, NewCore(zapcore.ErrorLevel))
	}

	return zap.New(
		zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), nil
}

// rotateLogSessions maintains the log directory by removing old sessions.
// Keeps only the most recent sessions based on maxLogsToKeep.
func (lm *Manager) rotateLogSessions() error {
	sessions, err := filepath.Glob(filepath.Join(lm.logDir, "*"))
	if err != nil {
		return err
	}

	if lm.maxLogsToKeep <= 0 || len(sessions) < lm.maxLogsToKeep {
		return nil
	}

	// Sort sessions by modification time (oldest first)
	sort.Slice(sessions, func(i, j int) bool {
		iInfo, _ := os.Stat(sessions[i])
		jInfo, _ := os.Stat(sessions[j])

		return iInfo.ModTime().Before(jInfo.ModTime())
	})

	// Leave room for the session about to be created
	toDelete := len(sessions) - lm.maxLogsToKeep + 1
	for i := range toDelete {
		if err := os.RemoveAll(sessions[i]); err != nil {
			return err
		}
	}

	return nil
}
