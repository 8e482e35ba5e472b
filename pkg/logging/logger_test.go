package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/everypolitician/commons-tools/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	oldLevel := zerolog.GlobalLevel()
	defer func() {
		logging.SetDefault(original)
		zerolog.SetGlobalLevel(oldLevel)
	}()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	buf := &bytes.Buffer{}
	logging.SetDefault(zerolog.New(buf).Level(zerolog.InfoLevel))

	logging.Default().Debug().Msg("debug message")
	logging.Warn().Msg("warning message")
	logging.FromContext(context.Background()).Info().Msg("info message")

	output := buf.String()
	if !strings.Contains(output, "warning message") || !strings.Contains(output, "info message") {
		t.Errorf("Expected warning and info messages in output, got: %s", output)
	}
	if strings.Contains(output, "debug message") {
		t.Errorf("Debug message should be filtered at info level, got: %s", output)
	}
}

func TestContextLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithDirectory(ctx, "gb-constituencies")
	ctx = logging.WithCountry(ctx, "GB")

	logging.FromContext(ctx).Info().Msg("rewriting table")

	tl.AssertContains(t, `"directory":"gb-constituencies"`)
	tl.AssertContains(t, `"country":"GB"`)
	tl.AssertContains(t, "rewriting table")
}

func TestTestLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	tl.Logger.Info().Msg("message 1")
	tl.Logger.Error().Msg("message 2")

	if got := tl.Messages(); len(got) != 2 || got[0] != "message 1" || got[1] != "message 2" {
		t.Errorf("Messages() = %v", got)
	}

	tl.Clear()
	if tl.Count() != 0 {
		t.Error("Should have 0 entries after clear")
	}
}
