package net

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

// CSVLogger logs the mean step loss to a CSV file every Interval steps.
type CSVLogger struct {
	BaseCallback
	Filename string
	Append   bool
	Interval int

	file   *os.File
	writer *csv.Writer
	start  time.Time
	w      window
}

// NewCSVLogger creates a new CSVLogger.
func NewCSVLogger(filename string, append bool, interval int) *CSVLogger {
	return &CSVLogger{
		Filename: filename,
		Append:   append,
		Interval: interval,
	}
}

func (c *CSVLogger) OnTrainBegin(n *Network) {
	mode := os.O_CREATE | os.O_WRONLY
	if c.Append {
		mode |= os.O_APPEND
	} else {
		mode |= os.O_TRUNC
	}

	file, err := os.OpenFile(c.Filename, mode, 0644)
	if err != nil {
		log.Printf("CSVLogger: failed to open file %s: %v", c.Filename, err)
		return
	}
	c.file = file
	c.writer = csv.NewWriter(file)
	c.start = time.Now()
	c.w = window{}

	// Header only for a fresh file.
	info, err := file.Stat()
	if err == nil && (info.Size() == 0 || !c.Append) {
		c.writer.Write([]string{"step", "loss", "time_seconds"})
		c.writer.Flush()
	}
}

func (c *CSVLogger) OnStepEnd(step int, loss float64, n *Network) {
	if c.writer == nil || c.Interval <= 0 {
		return
	}
	c.w.add(loss)
	if step%c.Interval != 0 {
		return
	}

	record := []string{
		strconv.Itoa(step),
		fmt.Sprintf("%.6f", c.w.flush()),
		fmt.Sprintf("%.2f", time.Since(c.start).Seconds()),
	}
	if err := c.writer.Write(record); err != nil {
		log.Printf("CSVLogger: failed to write record: %v", err)
	}
	c.writer.Flush()
}

func (c *CSVLogger) OnTrainEnd(n *Network) {
	if c.file != nil {
		c.writer.Flush()
		c.file.Close()
		c.file = nil
		c.writer = nil
	}
}
