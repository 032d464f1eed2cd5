/*
 * MIT License
 *
 * Copyright (c) 2026 sabouaram
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package logging

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"
	jww "github.com/spf13/jwalterweatherman"
)

// Logger is the structured logging capability every controller component
// receives by injection rather than reaching for a package-level global.
type Logger interface {
	SetLevel(lvl Level)
	GetLevel() Level

	WithField(key string, val any) Logger
	WithFields(fields map[string]any) Logger

	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type logger struct {
	entry *logrus.Entry
	warn  *jww.Notepad
}

// New builds a Logger writing every level to stdout (colorized when stdout
// is a terminal, plain otherwise). Warnf messages are additionally echoed
// through a jwalterweatherman Notepad (the secondary operator-console
// sink); other levels are not. Nothing is written to stderr.
func New() Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	var out io.Writer = colorable.NewColorableStdout()
	if !isTerminal(os.Stdout) {
		out = os.Stdout
		color.NoColor = true
	}
	l.SetOutput(out)

	return &logger{
		entry: logrus.NewEntry(l),
		warn:  jww.NewNotepad(jww.LevelWarn, jww.LevelWarn, os.Stdout, io.Discard, "", 0),
	}
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func (l *logger) SetLevel(lvl Level) {
	l.entry.Logger.SetLevel(lvl.toLogrus())
}

func (l *logger) GetLevel() Level {
	return fromLogrus(l.entry.Logger.GetLevel())
}

func (l *logger) WithField(key string, val any) Logger {
	return &logger{entry: l.entry.WithField(key, val), warn: l.warn}
}

func (l *logger) WithFields(fields map[string]any) Logger {
	return &logger{entry: l.entry.WithFields(logrus.Fields(fields)), warn: l.warn}
}

func (l *logger) Debugf(format string, args ...any) { l.entry.Debugf(format, args...) }
func (l *logger) Infof(format string, args ...any)  { l.entry.Infof(format, args...) }

func (l *logger) Warnf(format string, args ...any) {
	l.entry.Warnf(format, args...)
	if l.warn != nil {
		l.warn.WARN.Printf(format, args...)
	}
}

func (l *logger) Errorf(format string, args ...any) {
	l.entry.Errorf(format, args...)
}
