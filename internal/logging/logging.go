// Package logging создает slog логгеры сервера и клиента
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Параметры ротации лог-файла
const (
	maxSizeMB  = 50
	maxBackups = 5
	maxAgeDays = 28
)

// New создает JSON логгер. Если file не пустой, записи пишутся в файл с
// ротацией через lumberjack, иначе в stderr. Возвращаемый io.Closer
// закрывает файл (для stderr ничего не делает).
func New(level slog.Level, file string) (*slog.Logger, io.Closer) {
	var (
		w      io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)

	if file != "" {
		lj := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   true,
		}
		w = lj
		closer = lj
	}

	return NewWithWriter(w, level), closer
}

// NewWithWriter создает JSON логгер поверх произвольного writer
func NewWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
