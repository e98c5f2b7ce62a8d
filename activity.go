package sitefilter

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tfkr-ae/sitefilter/core"
	"github.com/tfkr-ae/sitefilter/domain"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// WriteLog records an activity log entry. The entry is written to the zap logger, stored in the
// log repository when one is configured and handed to OnLog.
func (filter *Filter) WriteLog(level string, message string, options ...func(log *domain.Log) error) error {
	level = strings.ToUpper(level)
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("level should be either: debug, info, warn, error, fatal")
	}
	// Activity entries never panic or exit the process.
	if zapLevel > zapcore.ErrorLevel {
		zapLevel = zapcore.ErrorLevel
	}

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generating new uuid : %w", err)
	}
	log := &domain.Log{
		ID:        id,
		Level:     level,
		Message:   message,
		Timestamp: time.Now().UTC(),
		Context:   map[string]any{},
	}
	for _, option := range options {
		if err := option(log); err != nil {
			return fmt.Errorf("applying log option : %w", err)
		}
	}

	filter.Logger.Log(zapLevel, log.Message, logFields(log)...)

	if filter.Logs != nil {
		if err := filter.Logs.InsertLog(log); err != nil {
			return fmt.Errorf("inserting log : %w", err)
		}
	}
	if filter.OnLog != nil {
		if err := filter.OnLog(*log); err != nil {
			return fmt.Errorf("running log handler : %w", err)
		}
	}
	return nil
}

// History returns the activity log, oldest first. Without a log repository it is empty.
func (filter *Filter) History() ([]*domain.Log, error) {
	if filter.Logs == nil {
		return []*domain.Log{}, nil
	}
	logs, err := filter.Logs.GetLogs()
	if err != nil {
		return nil, fmt.Errorf("getting logs : %w", err)
	}
	return logs, nil
}

// record writes an activity entry; a failure to log never fails the operation itself.
func (filter *Filter) record(level, message string, options ...func(log *domain.Log) error) {
	if err := filter.WriteLog(level, message, options...); err != nil {
		filter.Logger.Warn("writing activity log", zap.Error(err))
	}
}

func (filter *Filter) logFailure(action string, err error, options ...func(log *domain.Log) error) {
	options = append(options, core.LogWithContext(map[string]any{"error": err.Error()}))
	filter.record("ERROR", action+" failed", options...)
}

func logFields(log *domain.Log) []zap.Field {
	fields := []zap.Field{zap.Stringer("id", log.ID)}
	if log.Domain != nil {
		fields = append(fields, zap.String("domain", *log.Domain))
	}
	if log.Keyword != nil {
		fields = append(fields, zap.String("keyword", *log.Keyword))
	}
	if len(log.Context) > 0 {
		fields = append(fields, zap.Any("context", log.Context))
	}
	return fields
}
