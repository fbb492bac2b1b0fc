package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-api/internal/domain/intent"
)

func resolveReq() intent.ResolveRequest {
	return intent.ResolveRequest{Message: "gastei 30 com frete", Today: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)}
}

// ── Gemini ────────────────────────────────────────────────────────────────────

func geminiServer(t *testing.T, status int, text string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "k", r.URL.Query().Get("key"))

		var req geminiRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMIMEType)
		assert.NotNil(t, req.SystemInstruction)

		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota"}}`))
			return
		}
		resp := map[string]any{"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}},
		}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGemini_Resolve(t *testing.T) {
	srv := geminiServer(t, http.StatusOK, `{"intent":"SAVE_TRANSACTION","status":"COMPLETE","data":{"type":"Despesa","amount":30,"category":"Frete"}}`)
	svc := NewGeminiService("k", "gemini-test", WithBaseURL(srv.URL+"/"))

	env, err := svc.Resolve(context.Background(), resolveReq())
	require.NoError(t, err)
	assert.Equal(t, intent.SaveTransaction, env.Intent)
	assert.Equal(t, "Frete", env.Data.Category)
	assert.True(t, env.Complete())
}

func TestGemini_ParseStatement(t *testing.T) {
	srv := geminiServer(t, http.StatusOK, `[{"intent":"SAVE_TRANSACTION","data":{"type":"Receita","amount":100,"date":"2026-03-01"}}]`)
	svc := NewGeminiService("k", "gemini-test", WithBaseURL(srv.URL))

	records, err := svc.ParseStatement(context.Background(), []byte("01/03 PIX RECEBIDO 100,00"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2026-03-01", records[0].Data.Date)
}

func TestGemini_ErrorDelProveedor(t *testing.T) {
	srv := geminiServer(t, http.StatusTooManyRequests, "")
	svc := NewGeminiService("k", "gemini-test", WithBaseURL(srv.URL))

	_, err := svc.Resolve(context.Background(), resolveReq())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota")
}

func TestGemini_SinAPIKey(t *testing.T) {
	_, err := NewGeminiService("", "gemini-test").Resolve(context.Background(), resolveReq())
	assert.ErrorContains(t, err, "GEMINI_API_KEY")
}

// ── Anthropic ─────────────────────────────────────────────────────────────────

func TestAnthropic_Resolve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "k", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var req anthropicRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-test", req.Model)
		if assert.Len(t, req.Messages, 1) {
			assert.Contains(t, req.Messages[0].Content, "gastei 30 com frete")
		}

		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"Segue:\n{\"intent\":\"SAVE_TRANSACTION\",\"status\":\"INCOMPLETE\",\"missing_fields\":[\"type\"]}"}]}`))
	}))
	defer srv.Close()

	env, err := NewAnthropicService("k", "claude-test", WithBaseURL(srv.URL)).Resolve(context.Background(), resolveReq())
	require.NoError(t, err)
	assert.Equal(t, intent.StatusIncomplete, env.Status)
	assert.Equal(t, []string{"type"}, env.MissingFields)
}

func TestAnthropic_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer srv.Close()

	_, err := NewAnthropicService("k", "claude-test", WithBaseURL(srv.URL)).ParseStatement(context.Background(), []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication_error")
}

func TestAnthropic_ContextoCancelado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := NewAnthropicService("k", "claude-test", WithBaseURL(srv.URL)).Resolve(ctx, resolveReq())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
