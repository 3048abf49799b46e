package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aitooldto "github.com/boomerhub/boomerhub/internal/application/aitool/dto"
	aitoolusecases "github.com/boomerhub/boomerhub/internal/application/aitool/usecases"
	"github.com/boomerhub/boomerhub/internal/domain/usage"
	"github.com/boomerhub/boomerhub/internal/interfaces/http/handlers/testutil"
	"github.com/boomerhub/boomerhub/internal/shared/errors"
)

type mockRunToolUC struct {
	result  *aitooldto.RunToolResponse
	err     error
	called  bool
	gotTool aitoolusecases.Tool
	gotReq  aitooldto.RunToolRequest
}

func (m *mockRunToolUC) Execute(ctx context.Context, identity usage.Identity, tool aitoolusecases.Tool, req aitooldto.RunToolRequest) (*aitooldto.RunToolResponse, error) {
	m.called = true
	m.gotTool = tool
	m.gotReq = req
	return m.result, m.err
}

func TestAIToolHandler_ListTools(t *testing.T) {
	handler := NewAIToolHandler(&mockRunToolUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/ai/tools", nil)

	handler.ListTools(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))

	var list aitooldto.ToolListResponse
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.Contains(t, list.Tools, "translate")
	assert.Contains(t, list.Tools, "transcribe-summary")
}

func TestAIToolHandler_RunTool_Success(t *testing.T) {
	uc := &mockRunToolUC{result: &aitooldto.RunToolResponse{
		Tool:   "keywords",
		Output: "bridge, retirement, travel",
		Usage:  statusResponse(4, 5, 1),
	}}
	handler := NewAIToolHandler(uc, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/ai/tools/keywords", aitooldto.RunToolRequest{Text: "some article"})
	testutil.SetIdentityContext(c, guestIdentity(t))
	testutil.SetURLParam(c, "tool", "keywords")

	handler.RunTool(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, aitoolusecases.ToolKeywords, uc.gotTool)
	assert.Equal(t, "some article", uc.gotReq.Text)
}

func TestAIToolHandler_RunTool_UnknownTool(t *testing.T) {
	uc := &mockRunToolUC{}
	handler := NewAIToolHandler(uc, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/ai/tools/poetry", aitooldto.RunToolRequest{Text: "x"})
	testutil.SetIdentityContext(c, guestIdentity(t))
	testutil.SetURLParam(c, "tool", "poetry")

	handler.RunTool(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, uc.called)
}

func TestAIToolHandler_RunTool_MalformedBody(t *testing.T) {
	uc := &mockRunToolUC{}
	handler := NewAIToolHandler(uc, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/ai/tools/translate", "not an object")
	testutil.SetIdentityContext(c, guestIdentity(t))
	testutil.SetURLParam(c, "tool", "translate")

	handler.RunTool(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, uc.called)
}

func TestAIToolHandler_RunTool_QuotaExceeded(t *testing.T) {
	uc := &mockRunToolUC{err: errors.NewTooManyRequestsError("Free limit reached")}
	handler := NewAIToolHandler(uc, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/ai/tools/search", aitooldto.RunToolRequest{Text: "query"})
	testutil.SetIdentityContext(c, guestIdentity(t))
	testutil.SetURLParam(c, "tool", "search")

	handler.RunTool(c)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "too_many_requests", resp.Error.Type)
}

func TestAIToolHandler_RunTool_NoIdentity(t *testing.T) {
	uc := &mockRunToolUC{}
	handler := NewAIToolHandler(uc, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/ai/tools/search", aitooldto.RunToolRequest{Text: "query"})
	testutil.SetURLParam(c, "tool", "search")

	handler.RunTool(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, uc.called)
}
