// Package export renders journal entries as CSV or JSON and delivers them
// to a file, stdout or an S3 bucket. It also imports JSON exports.
package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xolan/daylog/internal/entry"
)

// Format is an export format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q (use csv or json)", s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "text/csv"
}

// DefaultFilename returns daily-journal-YYYY-MM-DD.<format>.
func DefaultFilename(f Format, now time.Time) string {
	return fmt.Sprintf("daily-journal-%s.%s", now.Format("2006-01-02"), f)
}

// Render encodes entries in format f.
func Render(f Format, entries []entry.Entry) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch f {
	case FormatCSV:
		err = WriteCSV(&buf, entries)
	case FormatJSON:
		err = WriteJSON(&buf, entries)
	default:
		err = fmt.Errorf("unknown export format %q", f)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DestinationKind tells where an export goes.
type DestinationKind int

const (
	DestFile DestinationKind = iota
	DestStdout
	DestS3
)

// Destination is a parsed export target.
type Destination struct {
	Kind   DestinationKind
	Path   string
	Bucket string
	Key    string
}

func (d Destination) String() string {
	switch d.Kind {
	case DestStdout:
		return "stdout"
	case DestS3:
		return "s3://" + d.Bucket + "/" + d.Key
	}
	return d.Path
}

// ParseDestination parses "-", "s3://bucket/key" or a file path. An empty
// target, a directory, or an S3 key ending in "/" gets defaultName
// appended.
func ParseDestination(target, dir, defaultName string) (Destination, error) {
	target = strings.TrimSpace(target)
	switch {
	case target == "-":
		return Destination{Kind: DestStdout}, nil
	case strings.HasPrefix(target, "s3://"):
		rest := strings.TrimPrefix(target, "s3://")
		bucket, key, _ := strings.Cut(rest, "/")
		if bucket == "" {
			return Destination{}, fmt.Errorf("invalid S3 destination %q: missing bucket", target)
		}
		if key == "" || strings.HasSuffix(key, "/") {
			key += defaultName
		}
		return Destination{Kind: DestS3, Bucket: bucket, Key: key}, nil
	case target == "":
		return Destination{Kind: DestFile, Path: filepath.Join(dir, defaultName)}, nil
	}

	if info, err := os.Stat(target); err == nil && info.IsDir() {
		target = filepath.Join(target, defaultName)
	}
	return Destination{Kind: DestFile, Path: target}, nil
}

// Deliver writes data to d. stdout receives DestStdout output.
func Deliver(ctx context.Context, d Destination, data []byte, contentType string, stdout io.Writer, s3opts S3Options) error {
	switch d.Kind {
	case DestStdout:
		_, err := stdout.Write(data)
		return err
	case DestS3:
		return UploadS3(ctx, s3opts, d.Bucket, d.Key, data, contentType)
	}

	if dir := filepath.Dir(d.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(d.Path, data, 0644)
}
