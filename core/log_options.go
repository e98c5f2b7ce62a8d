// Package core provides fundamental utilities shared by the sitefilter packages.
// This file contains option functions for customizing activity log entries.
package core

import (
	"github.com/tfkr-ae/sitefilter/domain"
)

// LogWithContext is an option to add a context map to a log entry.
func LogWithContext(context map[string]any) func(log *domain.Log) error {
	return func(log *domain.Log) error {
		log.Context = context
		return nil
	}
}

// LogWithDomain is an option to associate a log entry with an exclusion domain.
func LogWithDomain(d string) func(log *domain.Log) error {
	return func(log *domain.Log) error {
		log.Domain = &d
		return nil
	}
}

// LogWithKeyword is an option to associate a log entry with a search keyword.
func LogWithKeyword(keyword string) func(log *domain.Log) error {
	return func(log *domain.Log) error {
		log.Keyword = &keyword
		return nil
	}
}
