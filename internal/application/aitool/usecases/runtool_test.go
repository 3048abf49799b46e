package usecases

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boomerhub/boomerhub/internal/application/aitool/dto"
	usageusecases "github.com/boomerhub/boomerhub/internal/application/usage/usecases"
	"github.com/boomerhub/boomerhub/internal/domain/usage"
	"github.com/boomerhub/boomerhub/internal/shared/errors"
	"github.com/boomerhub/boomerhub/internal/shared/logger"
)

type stubGenerator struct {
	output  string
	err     error
	prompts []string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.output, g.err
}

func (g *stubGenerator) Model() string { return "stub" }

func newRunTool(t *testing.T, gen Generator) (*RunToolUseCase, *usage.Tracker) {
	t.Helper()
	limits, err := usage.NewLimits(usage.PresetStandard, 0, 0)
	require.NoError(t, err)
	tracker, err := usage.NewTracker(usage.NewMemoryStore(), limits,
		usage.WithClock(func() time.Time { return time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC) }))
	require.NoError(t, err)

	consume := usageusecases.NewConsumeUsageUseCase(tracker, usageusecases.NewIdentityResolver(true), logger.NewNopLogger())
	return NewRunToolUseCase(consume, gen, logger.NewNopLogger()), tracker
}

func guest(t *testing.T) usage.Identity {
	t.Helper()
	id, err := usage.NewGuestIdentity("0b8e2c44-1d6f-4a55-9c3e-7f00a1b2c3d4", true)
	require.NoError(t, err)
	return id
}

func TestParseTool(t *testing.T) {
	tool, err := ParseTool("Translate")
	require.NoError(t, err)
	assert.Equal(t, ToolTranslate, tool)

	_, err = ParseTool("horoscope")
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeNotFound, appErr.Type)

	assert.Len(t, Tools(), 5)
}

func TestBuildPrompt_RequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		tool    Tool
		req     dto.RunToolRequest
		wantErr bool
		want    string
	}{
		{"translate without language", ToolTranslate, dto.RunToolRequest{Text: "hola"}, true, ""},
		{"translate", ToolTranslate, dto.RunToolRequest{Text: "hola", TargetLanguage: "English"}, false, "into English"},
		{"keywords default count", ToolKeywords, dto.RunToolRequest{Text: "derby day preview"}, false, "at most 10"},
		{"keywords custom count", ToolKeywords, dto.RunToolRequest{Text: "derby day preview", MaxItems: 3}, false, "at most 3"},
		{"match without stats", ToolMatchAnalysis, dto.RunToolRequest{Text: "Leeds v Burnley"}, true, ""},
		{"match", ToolMatchAnalysis, dto.RunToolRequest{Text: "Leeds v Burnley", Reference: "Leeds WWDLW"}, false, "Match:\nLeeds v Burnley\n\nForm and statistics:\nLeeds WWDLW"},
		{"search", ToolSearch, dto.RunToolRequest{Text: "weekend fixtures"}, false, "match prediction site"},
		{"summary", ToolTranscribeSummary, dto.RunToolRequest{Text: "meeting"}, false, "action items"},
		{"blank text", ToolSearch, dto.RunToolRequest{Text: "   "}, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt, err := buildPrompt(tt.tool, tt.req)
			if tt.wantErr {
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Contains(t, prompt, tt.want)
		})
	}
}

func TestRunTool_ChargesQuotaAndReturnsOutput(t *testing.T) {
	gen := &stubGenerator{output: "  hello  "}
	uc, _ := newRunTool(t, gen)

	resp, err := uc.Execute(context.Background(), guest(t), ToolTranslate,
		dto.RunToolRequest{Text: "hola", TargetLanguage: "English"})

	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Output)
	assert.Equal(t, "translate", resp.Tool)
	assert.Equal(t, "stub", resp.Model)
	assert.Equal(t, 4, resp.Usage.RemainingCount)
	assert.Len(t, gen.prompts, 1)
}

func TestRunTool_QuotaExhaustedSkipsGenerator(t *testing.T) {
	gen := &stubGenerator{output: "ok"}
	uc, _ := newRunTool(t, gen)
	ctx := context.Background()
	req := dto.RunToolRequest{Text: "weekend fixtures"}

	for i := 0; i < 5; i++ {
		_, err := uc.Execute(ctx, guest(t), ToolSearch, req)
		require.NoError(t, err)
	}

	_, err := uc.Execute(ctx, guest(t), ToolSearch, req)
	assert.True(t, errors.IsTooManyRequestsError(err))
	assert.Len(t, gen.prompts, 5)
}

func TestRunTool_InvalidInputIsNotCharged(t *testing.T) {
	gen := &stubGenerator{output: "ok"}
	uc, tracker := newRunTool(t, gen)
	ctx := context.Background()

	_, err := uc.Execute(ctx, guest(t), ToolTranslate, dto.RunToolRequest{Text: "hola"})
	assert.True(t, errors.IsValidationError(err))

	status, err := tracker.CheckUsage(ctx, guest(t))
	require.NoError(t, err)
	assert.Equal(t, 5, status.RemainingCount)
	assert.Empty(t, gen.prompts)
}

func TestRunTool_GeneratorFailureStillCharges(t *testing.T) {
	gen := &stubGenerator{err: stderrors.New("upstream 503")}
	uc, tracker := newRunTool(t, gen)
	ctx := context.Background()

	_, err := uc.Execute(ctx, guest(t), ToolSearch, dto.RunToolRequest{Text: "weekend fixtures"})
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeUnavailable, appErr.Type)

	status, err := tracker.CheckUsage(ctx, guest(t))
	require.NoError(t, err)
	assert.Equal(t, int64(1), status.Used)
}
