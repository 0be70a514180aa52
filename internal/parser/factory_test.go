package parser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docverify/internal/config"
	"docverify/internal/parser"
	"docverify/internal/port"
)

func TestFactory_RegisterAndCreate(t *testing.T) {
	parser.RegisterProvider("test-provider", func(cfg *config.ParserProviderConfig) (port.DocumentExtractor, error) {
		return &stubExtractor{model: cfg.DefaultModel}, nil
	})

	e, err := parser.NewExtractor(&config.ParserProviderConfig{
		Provider:     "test-provider",
		DefaultModel: "test-model",
	})
	require.NoError(t, err)

	out, err := e.Extract(context.Background(), port.ExtractInput{})
	require.NoError(t, err)
	assert.Equal(t, "test-model", out.ModelUsed)
}

func TestFactory_UnknownProvider(t *testing.T) {
	e, err := parser.NewExtractor(&config.ParserProviderConfig{Provider: "nonexistent-provider-xyz"})

	assert.Nil(t, e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown parser provider")
}

type stubExtractor struct {
	model string
}

func (s *stubExtractor) Extract(_ context.Context, _ port.ExtractInput) (*port.ExtractOutput, error) {
	return &port.ExtractOutput{ModelUsed: s.model}, nil
}
