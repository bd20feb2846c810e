package shared

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	logger.Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("log output missing message: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "ytsort") {
		t.Errorf("log output missing prefix: %q", buf.String())
	}
}

func TestNewLoggerDefaultsWriter(t *testing.T) {
	if NewLogger(nil) == nil {
		t.Fatal("nil logger")
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	child := WithLogger(logger, "playlist", "PL1")
	child.Info("working")

	if !strings.Contains(buf.String(), "PL1") {
		t.Errorf("child logger dropped key-value pair: %q", buf.String())
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	SetLogLevel(logger, log.ErrorLevel)
	logger.Info("hidden")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("info logged above error level")
	}
}

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || a == b {
		t.Errorf("ids not unique: %q, %q", a, b)
	}
	if len(strings.Split(a, "-")) != 5 {
		t.Errorf("not a uuid: %q", a)
	}
}
