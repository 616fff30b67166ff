package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFuncLogger(t *testing.T) {
	lines := []string{}
	logger := FuncLogger(func(s string) {
		lines = append(lines, s)
	})

	logger.Println("a", 1)
	logger.Printf("b %v", 2)
	logger.Print("c")

	assert.Equal(t, []string{"a 1\n", "b 2", "c"}, lines)
}

func TestZapLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := NewZapLogger(zap.New(core), "game").With("session", "abc")

	logger.Println("committed", "(6,12)->(6,11)")
	logger.Printf("rejected %v", "KingInDanger")

	entries := logs.All()
	assert.Equal(t, 2, len(entries))
	assert.Equal(t, "committed (6,12)->(6,11)", entries[0].Message)
	assert.Equal(t, "game", entries[0].LoggerName)
	assert.Equal(t, "rejected KingInDanger", entries[1].Message)
	assert.Equal(t, "abc", entries[1].ContextMap()["session"])
}
