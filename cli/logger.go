// Package main provides debug logging utilities for the Verto CLI.
//
// This file implements a debug logger that writes log messages to
// ~/.verto/debug.log for troubleshooting CLI operations and tracking events.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

var debugLogger *log.Logger

// initLogger opens the append-only debug log inside the per-user config
// directory shared with the yaml config and the session file.
func initLogger() error {
	logDir, err := VertoConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	file, err := os.OpenFile(filepath.Join(logDir, "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	debugLogger = log.New(file, "", log.LstdFlags|log.Lshortfile)
	debugLogger.Printf("verto cli started")
	return nil
}

func logDebug(format string, args ...interface{}) {
	if debugLogger != nil {
		debugLogger.Output(2, fmt.Sprintf(format, args...))
	}
}
