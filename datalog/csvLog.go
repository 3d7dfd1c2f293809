package datalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("datalog")

// TimestampLayout is the format of the timestamp column and of the alert message timestamps
const TimestampLayout = "2006-01-02 15:04"

// world read/write so the co-located dashboard process can consume the file
const dataFileMode = 0o666

var header = []string{"timestamp", "temperature", "humidity"}

// Record is one hourly aggregate row, the only unit ever written to the log
type Record struct {
	Timestamp   string
	Temperature float64
	Humidity    float64
}

type csvLog struct {
	path string
	mut  sync.Mutex
}

// NewCSVLog creates an append-only record log backed by a csv file
func NewCSVLog(path string) (*csvLog, error) {
	if len(path) == 0 {
		return nil, errors.New("empty data log file path")
	}

	return &csvLog{
		path: path,
	}, nil
}

// EnsureInitialized creates the backing file with the header row when it is absent. It is
// idempotent: a pre-existing file is never truncated or rewritten.
func (l *csvLog) EnsureInitialized() error {
	l.mut.Lock()
	defer l.mut.Unlock()

	_, err := os.Stat(l.path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat data log '%s': %w", l.path, err)
	}

	err = os.MkdirAll(filepath.Dir(l.path), os.ModePerm)
	if err != nil {
		return fmt.Errorf("failed to create data log directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, dataFileMode)
	if err != nil {
		return fmt.Errorf("failed to create data log '%s': %w", l.path, err)
	}

	writer := csv.NewWriter(f)
	_ = writer.Write(header)
	writer.Flush()

	err = writer.Error()
	closeErr := f.Close()
	if err != nil {
		return fmt.Errorf("failed to write data log header: %w", err)
	}
	if closeErr != nil {
		return closeErr
	}

	_ = os.Chmod(l.path, dataFileMode)
	log.Info("created new data log with header", "path", l.path)

	return nil
}

// Append writes exactly one row. Rows are never rewritten or reordered; a single row fits
// one write call, so a concurrent reader cannot observe a torn row.
func (l *csvLog) Append(rec Record) error {
	l.mut.Lock()
	defer l.mut.Unlock()

	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_APPEND, dataFileMode)
	if err != nil {
		return fmt.Errorf("failed to open data log for append: %w", err)
	}

	writer := csv.NewWriter(f)
	_ = writer.Write([]string{
		rec.Timestamp,
		strconv.FormatFloat(rec.Temperature, 'f', 1, 64),
		strconv.FormatFloat(rec.Humidity, 'f', 1, 64),
	})
	writer.Flush()

	err = writer.Error()
	closeErr := f.Close()
	if err != nil {
		return fmt.Errorf("failed to append data log row: %w", err)
	}

	return closeErr
}

// ReadAll returns every valid data row, skipping malformed or incomplete lines. A missing
// file yields an empty result since the monitor service owns its creation.
func (l *csvLog) ReadAll() ([]Record, error) {
	l.mut.Lock()
	defer l.mut.Unlock()

	f, err := os.Open(l.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open data log: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read data log: %w", err)
	}

	records := make([]Record, 0, len(rows))
	for idx, row := range rows {
		if idx == 0 && len(row) > 0 && row[0] == header[0] {
			continue
		}
		if len(row) < 3 {
			continue
		}

		temperature, errTemp := strconv.ParseFloat(row[1], 64)
		humidity, errHum := strconv.ParseFloat(row[2], 64)
		if errTemp != nil || errHum != nil {
			continue
		}

		records = append(records, Record{
			Timestamp:   row[0],
			Temperature: temperature,
			Humidity:    humidity,
		})
	}

	return records, nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (l *csvLog) IsInterfaceNil() bool {
	return l == nil
}
