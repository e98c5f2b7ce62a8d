package sitefilter

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/tfkr-ae/sitefilter/core"
	"gopkg.in/yaml.v3"
)

// ExclusionFile is the document written by Export and read by Import.
type ExclusionFile struct {
	ExcludedSites []string `yaml:"excluded_sites"`
}

// ImportResult counts what Import did with each entry of the document.
type ImportResult struct {
	Added   int
	Skipped int // duplicates and blank entries
}

// Export writes the persisted exclusion list to w as YAML.
func (filter *Filter) Export(ctx context.Context, w io.Writer) error {
	list, err := filter.Exclusions(ctx)
	if err != nil {
		return err
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(ExclusionFile{ExcludedSites: list}); err != nil {
		return fmt.Errorf("encoding exclusions : %w", err)
	}
	return encoder.Close()
}

// Import reads a YAML document from r and adds every entry in order.
// Entries already listed and blank entries are skipped; any other error stops the import.
func (filter *Filter) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	var file ExclusionFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return ImportResult{}, fmt.Errorf("decoding exclusions : %w", err)
	}

	var result ImportResult
	for _, d := range file.ExcludedSites {
		_, err := filter.Exclude(ctx, d)
		switch {
		case err == nil:
			result.Added++
		case errors.Is(err, ErrDuplicateEntry), errors.Is(err, ErrEmptyInput):
			result.Skipped++
		default:
			return result, fmt.Errorf("importing %q : %w", d, err)
		}
	}

	filter.record("INFO", fmt.Sprintf("Imported %d exclusions", result.Added),
		core.LogWithContext(map[string]any{"added": result.Added, "skipped": result.Skipped}),
	)
	return result, nil
}
