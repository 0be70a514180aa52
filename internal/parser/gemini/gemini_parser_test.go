package gemini_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"docverify/internal/config"
	"docverify/internal/domain"
	"docverify/internal/parser"
	"docverify/internal/parser/gemini"
	"docverify/internal/port"
)

func newTestExtractor(serverURL string) *gemini.Extractor {
	cfg := &config.ParserProviderConfig{
		Provider:     "gemini",
		APIKey:       "test-gemini-key",
		DefaultModel: "gemini-2.5-flash",
		TimeoutSecs:  30,
	}
	return gemini.NewExtractorWithEndpoint(cfg, serverURL)
}

func successResponse(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"role":  "model",
					"parts": []map[string]interface{}{{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	}
}

func respondJSON(t *testing.T, body interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		assert.NoError(t, json.NewEncoder(w).Encode(body))
	}
}

func TestGeminiExtractor_Extract_PDF_Success(t *testing.T) {
	llmJSON := `{"shipper_name":"ACME EXPORTS LTD","consignee":"Importadora Sul","cnpj":"11.222.333/0001-81","ncm_8d":"84713012","packages":12,"gross_weight":1530.5,"cbm":4.2,"confidence":0.92}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-gemini-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))

		contents := reqBody["contents"].([]interface{})
		if !assert.Len(t, contents, 1) {
			return
		}
		msg := contents[0].(map[string]interface{})
		assert.Equal(t, "user", msg["role"])

		parts := msg["parts"].([]interface{})
		if !assert.Len(t, parts, 2) {
			return
		}
		inlineData := parts[0].(map[string]interface{})["inline_data"].(map[string]interface{})
		assert.Equal(t, "application/pdf", inlineData["mime_type"])
		assert.NotEmpty(t, inlineData["data"])
		assert.Contains(t, parts[1].(map[string]interface{})["text"], "bill of lading")

		genConfig := reqBody["generationConfig"].(map[string]interface{})
		assert.Equal(t, "application/json", genConfig["responseMimeType"])

		w.WriteHeader(http.StatusOK)
		assert.NoError(t, json.NewEncoder(w).Encode(successResponse(llmJSON)))
	}))
	defer server.Close()

	result, err := newTestExtractor(server.URL).Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("%PDF-1.4 test content"),
		FileName:    "bl.pdf",
		ContentType: "application/pdf",
		Kind:        domain.DocumentKindBL,
	})

	require.NoError(t, err)
	assert.Equal(t, "gemini:gemini-2.5-flash", result.ModelUsed)
	require.NotNil(t, result.Record.ShipperName)
	assert.Equal(t, "ACME EXPORTS LTD", *result.Record.ShipperName)
	require.NotNil(t, result.Record.Packages)
	assert.Equal(t, 12, *result.Record.Packages)
	require.NotNil(t, result.Record.GrossWeight)
	assert.InDelta(t, 1530.5, *result.Record.GrossWeight, 0.0001)
	assert.Nil(t, result.Record.NCM4D)
	assert.Equal(t, "gemini:gemini-2.5-flash", result.Record.ExtractionMethod)
}

func TestGeminiExtractor_Extract_Workbook_SentAsText(t *testing.T) {
	wb := excelize.NewFile()
	require.NoError(t, wb.SetCellValue("Sheet1", "A1", "Packages"))
	require.NoError(t, wb.SetCellValue("Sheet1", "B1", 40))
	buf, err := wb.WriteToBuffer()
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqBody map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))

		msg := reqBody["contents"].([]interface{})[0].(map[string]interface{})
		parts := msg["parts"].([]interface{})
		if !assert.Len(t, parts, 2) {
			return
		}
		first := parts[0].(map[string]interface{})
		assert.NotContains(t, first, "inline_data")
		text, _ := first["text"].(string)
		assert.True(t, strings.HasPrefix(text, "SPREADSHEET CONTENT:"))
		assert.Contains(t, text, "Packages\t40")

		w.WriteHeader(http.StatusOK)
		assert.NoError(t, json.NewEncoder(w).Encode(successResponse(`{"packages":40}`)))
	}))
	defer server.Close()

	result, err := newTestExtractor(server.URL).Extract(context.Background(), port.ExtractInput{
		FileBytes:   buf.Bytes(),
		ContentType: domain.ContentTypeXLSX,
		Kind:        domain.DocumentKindPacking,
	})

	require.NoError(t, err)
	require.NotNil(t, result.Record.Packages)
	assert.Equal(t, 40, *result.Record.Packages)
}

func TestGeminiExtractor_Extract_CodeFencedJSON(t *testing.T) {
	server := httptest.NewServer(respondJSON(t, successResponse("```json\n{\"consignee\":\"  \",\"ncm_4d\":\"8471\"}\n```")))
	defer server.Close()

	result, err := newTestExtractor(server.URL).Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("jpeg"),
		ContentType: "image/jpeg",
		Kind:        domain.DocumentKindInvoice,
	})

	require.NoError(t, err)
	assert.Nil(t, result.Record.Consignee)
	require.NotNil(t, result.Record.NCM4D)
	assert.Equal(t, "8471", *result.Record.NCM4D)
}

func TestGeminiExtractor_Extract_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "15")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer server.Close()

	result, err := newTestExtractor(server.URL).Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("%PDF-1.4 test"),
		ContentType: "application/pdf",
		Kind:        domain.DocumentKindBL,
	})

	assert.Nil(t, result)
	var rlErr *parser.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "gemini", rlErr.Provider)
	assert.Contains(t, err.Error(), "RESOURCE_EXHAUSTED")
}

func TestGeminiExtractor_Extract_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":500,"status":"INTERNAL"}}`))
	}))
	defer server.Close()

	result, err := newTestExtractor(server.URL).Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("%PDF-1.4 test"),
		ContentType: "application/pdf",
		Kind:        domain.DocumentKindBL,
	})

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini API error (status 500)")
	var rlErr *parser.RateLimitError
	assert.False(t, errors.As(err, &rlErr))
}

func TestGeminiExtractor_Extract_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(respondJSON(t, map[string]interface{}{"candidates": []interface{}{}}))
	defer server.Close()

	result, err := newTestExtractor(server.URL).Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("%PDF-1.4 test"),
		ContentType: "application/pdf",
		Kind:        domain.DocumentKindBL,
	})

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}

func TestGeminiExtractor_Extract_Truncated(t *testing.T) {
	body := successResponse(`{"shipper_name":"ACME`)
	body["candidates"].([]map[string]interface{})[0]["finishReason"] = "MAX_TOKENS"
	server := httptest.NewServer(respondJSON(t, body))
	defer server.Close()

	_, err := newTestExtractor(server.URL).Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("%PDF-1.4 test"),
		ContentType: "application/pdf",
		Kind:        domain.DocumentKindBL,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_TOKENS")
}

func TestGeminiExtractor_Extract_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(respondJSON(t, successResponse("This is not JSON at all")))
	defer server.Close()

	_, err := newTestExtractor(server.URL).Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("%PDF-1.4 test"),
		ContentType: "application/pdf",
		Kind:        domain.DocumentKindBL,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing LLM JSON output")
}

func TestGeminiExtractor_Extract_UnsupportedContentType(t *testing.T) {
	result, err := newTestExtractor("http://unused").Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("text content"),
		ContentType: "text/plain",
		Kind:        domain.DocumentKindBL,
	})

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported content type")
}

func TestGeminiExtractor_Extract_ConnectionRefused(t *testing.T) {
	_, err := newTestExtractor("http://localhost:1").Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("%PDF-1.4 test"),
		ContentType: "application/pdf",
		Kind:        domain.DocumentKindBL,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "calling gemini API")
}
