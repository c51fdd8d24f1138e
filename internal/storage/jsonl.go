package storage

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/xolan/daylog/internal/entry"
	"github.com/xolan/daylog/internal/osutil"
)

const (
	// AppName is the application name used for config directory
	AppName = "daylog"
	// EntriesFile is the name of the JSON Lines storage file
	EntriesFile = "entries.jsonl"
)

// ParseWarning represents a warning about a corrupted or malformed line
type ParseWarning struct {
	LineNumber int    // Line number in the file (1-indexed)
	Content    string // Raw content of the corrupted line
	Error      string // Description of the parsing error
}

// ReadResult contains the results of reading records from storage,
// including both successfully parsed records and any warnings about
// corrupted or malformed lines.
type ReadResult struct {
	Records  []entry.Record
	Warnings []ParseWarning
}

// GetStoragePath returns the path to the entries storage file.
// Uses the user config directory and creates it if it doesn't exist.
func GetStoragePath() (string, error) {
	appDir, err := osutil.AppDir(AppName)
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, EntriesFile), nil
}

// AppendRecord appends a single record to the JSON Lines storage file.
// Creates the file if it doesn't exist.
// Uses O_APPEND for atomic append operations.
func AppendRecord(path string, r entry.Record) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	line, err := json.Marshal(r)
	if err != nil {
		return err
	}

	_, err = file.Write(append(line, '\n'))
	return err
}

// ReadRecordsWithWarnings reads all records from the JSON Lines storage file
// and returns both successfully parsed records and warnings about any corrupted lines.
// Returns an empty ReadResult if the file doesn't exist.
func ReadRecordsWithWarnings(path string) (ReadResult, error) {
	result := ReadResult{
		Records:  []entry.Record{},
		Warnings: []ParseWarning{},
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return result, err
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		lineContent := scanner.Text()
		if lineContent == "" {
			continue
		}

		var r entry.Record
		if err := json.Unmarshal([]byte(lineContent), &r); err != nil {
			result.Warnings = append(result.Warnings, ParseWarning{
				LineNumber: lineNumber,
				Content:    lineContent,
				Error:      err.Error(),
			})
			continue
		}
		result.Records = append(result.Records, r)
	}

	if err := scanner.Err(); err != nil {
		return result, err
	}

	return result, nil
}

// WriteRecords replaces the storage file with records.
// Uses atomic write pattern (write to temp file, then rename) for safety.
func WriteRecords(path string, records []entry.Record) error {
	tmpFile := path + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(file)
	for _, r := range records {
		line, err := json.Marshal(r)
		if err == nil {
			_, err = w.Write(append(line, '\n'))
		}
		if err != nil {
			_ = file.Close()
			_ = os.Remove(tmpFile)
			return err
		}
	}
	if err := w.Flush(); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return err
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, path)
}

// StorageHealth contains information about the health status of the storage file.
type StorageHealth struct {
	TotalLines       int            // Total number of non-empty lines in the storage file
	ValidEntries     int            // Number of successfully parsed records
	CorruptedEntries int            // Number of corrupted/malformed lines
	Warnings         []ParseWarning // Detailed information about each corrupted line
}

// ValidateStorage analyzes the storage file and returns health status information.
// Returns empty health status if file doesn't exist.
func ValidateStorage(path string) (StorageHealth, error) {
	result, err := ReadRecordsWithWarnings(path)
	if err != nil {
		return StorageHealth{Warnings: []ParseWarning{}}, err
	}

	return StorageHealth{
		TotalLines:       len(result.Records) + len(result.Warnings),
		ValidEntries:     len(result.Records),
		CorruptedEntries: len(result.Warnings),
		Warnings:         result.Warnings,
	}, nil
}
