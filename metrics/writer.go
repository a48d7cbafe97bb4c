package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Writer struct {
	baseDir string
}

// NewWriter creates a subfolder of root named by the current timestamp.
func NewWriter(root string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteDrillRecords(records []DrillMetric) error {
	path := filepath.Join(w.baseDir, "drill_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create drill records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	header := []string{"session", "start_time", "end_time", "duration", "attempts", "rejections", "automated_moves", "line"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write drill records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.Session,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.Attempts),
			strconv.Itoa(record.Rejections),
			strconv.Itoa(record.AutomatedMoves),
			strings.Join(record.Line, " "),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write drill record row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
