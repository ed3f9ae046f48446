package resty

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeUrl(t *testing.T) {
	assert.Equal(t, "https://x/api", makeUrl("https://x/api"))
	assert.Equal(t,
		"https://x/api?symbol=BTCUSDT&interval=1m&limit=500",
		makeUrl("https://x/api",
			QueryParam{Key: "symbol", Value: "BTCUSDT"},
			QueryParam{Key: "interval", Value: "1m"},
			QueryParam{Key: "limit", Value: 500},
		))
	assert.Equal(t, "https://x/api?q=a+b%26c", makeUrl("https://x/api", QueryParam{Key: "q", Value: "a b&c"}))
}

func TestShouldRetry(t *testing.T) {
	status := func(code int) bool {
		resp, err := CreateMockResponse(MockFuncResponse{StatusCode: code}, nil)
		require.NoError(t, err)
		return shouldRetry(resp, nil)
	}
	assert.False(t, status(http.StatusOK))
	assert.False(t, status(http.StatusBadRequest))
	assert.True(t, status(http.StatusTooManyRequests))
	assert.True(t, status(http.StatusBadGateway))
	assert.True(t, shouldRetry(nil, errors.New("dial fail")))
}

func TestMockRestyClient(t *testing.T) {
	client := NewMockRestyClient([]MockFunc{{
		Method: http.MethodGet,
		Path:   "https://x/api",
		ResultBody: func(_ any, _ any, params ...QueryParam) (MockFuncResponse, error) {
			return MockFuncResponse{Body: map[string]any{"n": len(params)}}, nil
		},
	}})

	resp, err := client.MakeRequest(context.Background(), nil, nil).Get("https://x/api", QueryParam{Key: "a", Value: 1})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.JSONEq(t, `{"n":1}`, resp.String())

	_, err = client.MakeRequest(context.Background(), nil, nil).Get("https://x/missing")
	assert.Error(t, err)
}
