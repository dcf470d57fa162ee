package wisdom3d

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitLoggerWritesJSONFile(t *testing.T) {
	defer SetLogger(nil)
	p := filepath.Join(t.TempDir(), "wisdom3d.log")
	l := InitLogger(p, false)
	Log("test").Info("encounter recorded", zap.String("sentence", "Read slowly."))
	_ = l.Sync()

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, `"message":"encounter recorded"`)
	assert.Contains(t, s, `"module":"test"`)
	assert.Contains(t, s, `"session":"`+Session+`"`)
}

func TestLogEncounterView(t *testing.T) {
	defer SetLogger(nil)
	core, logs := observer.New(zap.InfoLevel)
	SetLogger(zap.New(core))

	tr := NewTracker(logEncounterView{})
	tr.Record(Metadata{Sentence: "Keep a notebook.", Title: "T", Author: "A"})
	tr.Record(Metadata{Sentence: "Keep a notebook.", Title: "T", Author: "A"})

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "Keep a notebook.", fields["sentence"])
}

func TestDebugLogGated(t *testing.T) {
	defer SetLogger(nil)
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))

	Debug = false
	DebugLog("hidden %d", 1)
	assert.Equal(t, 0, logs.Len())

	Debug = true
	defer func() { Debug = false }()
	DebugLog("shown %d", 2)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "shown 2", logs.All()[0].Message)
}
