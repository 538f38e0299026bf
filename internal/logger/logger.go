package logger

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
)

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

var currentLevel int32 = int32(LevelInfo)

// SetLevel задаёт минимальный уровень логирования.
func SetLevel(l Level) {
	atomic.StoreInt32(&currentLevel, int32(l))
}

func enabled(l Level) bool {
	return l >= Level(atomic.LoadInt32(&currentLevel))
}

func Debug(ctx context.Context, msg string, fields ...interface{}) {
	if !enabled(LevelDebug) {
		return
	}
	log.Printf("[DEBUG] %s%s", msg, formatFields(fields))
}

func Info(ctx context.Context, msg string, fields ...interface{}) {
	if !enabled(LevelInfo) {
		return
	}
	log.Printf("[INFO] %s%s", msg, formatFields(fields))
}

func Error(ctx context.Context, err error, msg string, fields ...interface{}) {
	if err != nil {
		log.Printf("[ERROR] %s: %v%s", msg, err, formatFields(fields))
		return
	}
	log.Printf("[ERROR] %s%s", msg, formatFields(fields))
}

// formatFields собирает пары ключ-значение в " key=value ..."
func formatFields(fields []interface{}) string {
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	return b.String()
}
