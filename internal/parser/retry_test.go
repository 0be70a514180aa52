package parser_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docverify/internal/parser"
	"docverify/mocks"
)

func TestRetryExtractor_RetriesTransientFailure(t *testing.T) {
	inner := new(mocks.MockDocumentExtractor)
	input := testInput()
	inner.On("Extract", mock.Anything, input).Return(nil, errors.New("status 503")).Twice()
	inner.On("Extract", mock.Anything, input).Return(extractOutput("gemini"), nil).Once()

	re := parser.NewRetryExtractor(inner, "gemini", 2).WithBackoff(time.Millisecond)

	result, err := re.Extract(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "gemini", result.ModelUsed)
	inner.AssertNumberOfCalls(t, "Extract", 3)
}

func TestRetryExtractor_GivesUpAfterMaxRetries(t *testing.T) {
	inner := new(mocks.MockDocumentExtractor)
	input := testInput()
	inner.On("Extract", mock.Anything, input).Return(nil, errors.New("status 500"))

	re := parser.NewRetryExtractor(inner, "gemini", 1).WithBackoff(time.Millisecond)

	_, err := re.Extract(context.Background(), input)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	inner.AssertNumberOfCalls(t, "Extract", 2)
}

func TestRetryExtractor_DoesNotRetryRateLimit(t *testing.T) {
	inner := new(mocks.MockDocumentExtractor)
	input := testInput()
	inner.On("Extract", mock.Anything, input).Return(nil, parser.NewRateLimitError("gemini", errors.New("429"), 10))

	re := parser.NewRetryExtractor(inner, "gemini", 3).WithBackoff(time.Millisecond)

	_, err := re.Extract(context.Background(), input)

	var rlErr *parser.RateLimitError
	assert.True(t, errors.As(err, &rlErr))
	inner.AssertNumberOfCalls(t, "Extract", 1)
}

func TestRetryExtractor_StopsWhenContextCanceled(t *testing.T) {
	inner := new(mocks.MockDocumentExtractor)
	input := testInput()
	inner.On("Extract", mock.Anything, input).Return(nil, errors.New("status 502"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	re := parser.NewRetryExtractor(inner, "gemini", 5).WithBackoff(time.Hour)

	_, err := re.Extract(ctx, input)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	inner.AssertNumberOfCalls(t, "Extract", 1)
}
