package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetupLevel(t *testing.T) {
	defer func(l zerolog.Logger) { log.Logger = l }(log.Logger)

	if err := Setup(Options{Level: "debug", Format: "json"}); err != nil {
		t.Fatal(err)
	}
	if log.Logger.GetLevel() != zerolog.DebugLevel {
		t.Errorf("level %s, expected debug", log.Logger.GetLevel())
	}

	if err := Setup(Options{}); err != nil {
		t.Fatal(err)
	}
	if log.Logger.GetLevel() != zerolog.InfoLevel {
		t.Errorf("default level %s, expected info", log.Logger.GetLevel())
	}

	if err := Setup(Options{Level: "chatty"}); err == nil {
		t.Errorf("expected an error for an unknown level")
	}
}

func TestSetupFile(t *testing.T) {
	defer func(l zerolog.Logger) { log.Logger = l }(log.Logger)

	path := filepath.Join(t.TempDir(), "api.log")
	if err := Setup(Options{Format: "json", File: path}); err != nil {
		t.Fatal(err)
	}
	log.Info().Str("component", "test").Msg("hello file")

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"message":"hello file"`) {
		t.Errorf("log file missing entry: %s", b)
	}
}
