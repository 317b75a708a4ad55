package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// logBaseName is the active log file inside the log directory. Rotated
// backups get a timestamp suffix appended to this name.
const logBaseName = "casement.log"

// Rotator is an io.Writer that appends to the active log file and rotates it
// once it grows past maxSize. Old backups are compressed and pruned by age
// and count.
type Rotator struct {
	mu          sync.Mutex
	baseDir     string
	maxSize     int64
	maxAge      time.Duration
	maxBackups  int
	compress    bool
	currentFile *os.File
	currentSize int64
}

// NewRotator opens (or creates) the active log file under baseDir.
func NewRotator(baseDir string, maxSizeMB, maxBackups, maxAgeDays int, compress bool) (*Rotator, error) {
	r := &Rotator{
		baseDir:    baseDir,
		maxSize:    int64(maxSizeMB) * 1024 * 1024,
		maxAge:     time.Duration(maxAgeDays) * 24 * time.Hour,
		maxBackups: maxBackups,
		compress:   compress,
	}

	if err := r.openCurrentFile(); err != nil {
		return nil, err
	}

	return r, nil
}

// Path returns the location of the active log file. Crash reports read it to
// attach the last lines logged before an abnormal exit.
func (r *Rotator) Path() string {
	return filepath.Join(r.baseDir, logBaseName)
}

func (r *Rotator) openCurrentFile() error {
	logPath := r.Path()

	// Resume the size counter when appending to an existing file.
	if info, err := os.Stat(logPath); err == nil {
		r.currentSize = info.Size()
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	r.currentFile = file
	return nil
}

func (r *Rotator) Write(p []byte) (n int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile == nil {
		if err := r.openCurrentFile(); err != nil {
			return 0, err
		}
	}

	if r.currentSize+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}

	n, err = r.currentFile.Write(p)
	if err != nil {
		return n, err
	}

	r.currentSize += int64(n)
	return n, nil
}

func (r *Rotator) rotate() error {
	if r.currentFile != nil {
		if err := r.currentFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to close current log file: %v\n", err)
		}
	}

	timestamp := time.Now().Format("2006-01-02-15-04-05")
	backupName := fmt.Sprintf("%s.%s", logBaseName, timestamp)
	backupPath := filepath.Join(r.baseDir, backupName)

	if err := os.Rename(r.Path(), backupPath); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}

	if r.compress {
		if err := r.compressFile(backupPath); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to compress log file %s: %v\n", backupPath, err)
		} else if err := os.Remove(backupPath); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove uncompressed log file %s: %v\n", backupPath, err)
		}
	}

	r.cleanup()

	r.currentSize = 0
	return r.openCurrentFile()
}

func (r *Rotator) compressFile(filePath string) error {
	inputFile, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer func() {
		if err := inputFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to close input file during compression: %v\n", err)
		}
	}()

	outputFile, err := os.Create(filePath + ".gz")
	if err != nil {
		return err
	}
	defer func() {
		if err := outputFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to close output file during compression: %v\n", err)
		}
	}()

	gzipWriter := gzip.NewWriter(outputFile)
	defer func() {
		if err := gzipWriter.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to close gzip writer: %v\n", err)
		}
	}()

	_, err = io.Copy(gzipWriter, inputFile)
	return err
}

func (r *Rotator) cleanup() {
	files, err := os.ReadDir(r.baseDir)
	if err != nil {
		return
	}

	var backups []os.FileInfo
	now := time.Now()

	for _, file := range files {
		if file.IsDir() || !strings.HasPrefix(file.Name(), logBaseName+".") {
			continue
		}

		info, err := file.Info()
		if err != nil {
			continue
		}

		if r.maxAge > 0 && now.Sub(info.ModTime()) > r.maxAge {
			if err := os.Remove(filepath.Join(r.baseDir, info.Name())); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to remove old log file: %v\n", err)
			}
			continue
		}

		backups = append(backups, info)
	}

	if r.maxBackups > 0 && len(backups) > r.maxBackups {
		// Oldest first, then drop from the front until within the cap.
		sort.Slice(backups, func(i, j int) bool {
			return backups[i].ModTime().Before(backups[j].ModTime())
		})

		for i := 0; i < len(backups)-r.maxBackups; i++ {
			if err := os.Remove(filepath.Join(r.baseDir, backups[i].Name())); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to remove excess backup file: %v\n", err)
			}
		}
	}
}

func (r *Rotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile != nil {
		err := r.currentFile.Close()
		r.currentFile = nil
		return err
	}
	return nil
}
