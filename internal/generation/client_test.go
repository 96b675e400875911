package generation_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taste-fun/tf-indexer/internal/domain"
	"github.com/taste-fun/tf-indexer/internal/generation"
	"github.com/taste-fun/tf-indexer/internal/mocks"
)

func newTestClient(t *testing.T) (*mocks.MockHTTPClient, generation.Client) {
	t.Helper()
	ctrl := gomock.NewController(t)
	httpMock := mocks.NewMockHTTPClient(ctrl)
	client := generation.NewClient(httpMock, generation.Config{
		Endpoint: "https://generate.example.com/v1/images",
		Model:    "flux-schnell",
		Width:    1024,
		Height:   1024,
	})
	return httpMock, client
}

func TestGenerateReturnsOneImagePerPrompt(t *testing.T) {
	httpMock, client := newTestClient(t)

	prompts := []string{"a fox", "a fox", "a fox", "a fox"}
	var captured generation.GenerateRequest

	httpMock.EXPECT().
		Post(gomock.Any(), "https://generate.example.com/v1/images", "application/json", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ string, body io.Reader) ([]byte, error) {
			raw, err := io.ReadAll(body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(raw, &captured))
			return []byte(`{"images":["ar://a","ar://b","ar://c","ar://d"]}`), nil
		})

	images, err := client.Generate(context.Background(), prompts, "akash")
	require.NoError(t, err)
	assert.Equal(t, []string{"ar://a", "ar://b", "ar://c", "ar://d"}, images)

	assert.Equal(t, prompts, captured.Prompts)
	assert.Equal(t, "flux-schnell", captured.Model)
	assert.Equal(t, "akash", captured.Provider)
	assert.Equal(t, 1024, captured.Width)
}

func TestGenerateRejectsShortResponses(t *testing.T) {
	httpMock, client := newTestClient(t)

	httpMock.EXPECT().
		Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]byte(`{"images":["ar://only-one"]}`), nil)

	_, err := client.Generate(context.Background(), []string{"p", "p", "p", "p"}, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrImageCountMismatch))
}

func TestGeneratePropagatesTransportErrors(t *testing.T) {
	httpMock, client := newTestClient(t)

	httpMock.EXPECT().
		Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("request failed after retries"))

	_, err := client.Generate(context.Background(), []string{"p"}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to call generation service")
}

func TestGenerateRequiresPrompts(t *testing.T) {
	_, client := newTestClient(t)

	_, err := client.Generate(context.Background(), nil, "")
	require.Error(t, err)
}
