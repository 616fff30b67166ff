package helpers

import (
	"fmt"
	"log"
	"strings"

	"go.uber.org/zap"
)

type Logger interface {
	Println(v ...any)
	Printf(format string, v ...any)
	Print(v ...any)
}

type _defaultLogger struct {
}

func (l *_defaultLogger) Println(v ...any) {
	log.Println(v...)
}
func (l *_defaultLogger) Printf(format string, v ...any) {
	log.Printf(format, v...)
}
func (l *_defaultLogger) Print(v ...any) {
	log.Print(v...)
}

var DefaultLogger = _defaultLogger{}

type _silentLogger struct {
}

func (l *_silentLogger) Println(v ...any)               {}
func (l *_silentLogger) Printf(format string, v ...any) {}
func (l *_silentLogger) Print(v ...any)                 {}

var SilentLogger = _silentLogger{}

type _funcLogger struct {
	f func(string)
}

func (l *_funcLogger) Println(v ...any) {
	l.f(fmt.Sprintln(v...))
}
func (l *_funcLogger) Printf(format string, v ...any) {
	l.f(fmt.Sprintf(format, v...))
}
func (l *_funcLogger) Print(v ...any) {
	l.f(fmt.Sprint(v...))
}

func FuncLogger(f func(string)) Logger {
	return &_funcLogger{f}
}

// ZapLogger adapts a zap sugared logger to Logger. Every line is logged at
// info level under the given component name.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

var _ Logger = (*ZapLogger)(nil)

func NewZapLogger(base *zap.Logger, component string) *ZapLogger {
	return &ZapLogger{sugar: base.Named(component).Sugar()}
}

// NewProductionLogger builds a zap logger, falling back to a no-op logger
// when zap can't open its sinks.
func NewProductionLogger(component string, debug bool) *ZapLogger {
	var base *zap.Logger
	var err error
	if debug {
		base, err = zap.NewDevelopment()
	} else {
		base, err = zap.NewProduction()
	}
	if err != nil {
		base = zap.NewNop()
	}
	return NewZapLogger(base, component)
}

func (l *ZapLogger) Println(v ...any) {
	l.sugar.Info(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}
func (l *ZapLogger) Printf(format string, v ...any) {
	l.sugar.Infof(format, v...)
}
func (l *ZapLogger) Print(v ...any) {
	l.sugar.Info(v...)
}

// With returns a logger that attaches the key/value pairs to every line.
func (l *ZapLogger) With(keysAndValues ...any) *ZapLogger {
	return &ZapLogger{sugar: l.sugar.With(keysAndValues...)}
}

func (l *ZapLogger) Sync() error {
	return l.sugar.Sync()
}
