package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomErrorMatching(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := fmt.Errorf("import: %w", Wrap(ErrFetchFailed, cause))

	assert.True(t, errors.Is(err, ErrFetchFailed))
	assert.False(t, errors.Is(err, ErrNoIngredients))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "failed to fetch recipe page: dial tcp: refused", AsCustomError(err).Error())

	plain := AsCustomError(errors.New("boom"))
	assert.Equal(t, ErrCodeInternalError, plain.Code)
	assert.Equal(t, http.StatusInternalServerError, plain.Status)
}

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("bind: %w", NewValidationError("url is required"))
	assert.True(t, IsValidationError(err))
	assert.False(t, IsValidationError(ErrInvalidRequest))
}

func TestWriteError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		debug       bool
		wantDetails string
	}{
		{"details hidden", false, ""},
		{"details in debug", true, "upstream 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			WriteError(c, Wrap(ErrFetchFailed, errors.New("upstream 500")), tt.debug)

			assert.Equal(t, http.StatusBadGateway, w.Code)
			var resp ErrorResponse
			require.NoError(t, ParseJSONBytes(w.Body.Bytes(), &resp))
			assert.Equal(t, ErrCodeFetchFailed, resp.Code)
			assert.Equal(t, tt.wantDetails, resp.Details)
			assert.True(t, c.IsAborted())
		})
	}
}

func TestRequestIDContext(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))

	ctx := ContextWithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
}

func TestHashString(t *testing.T) {
	assert.Equal(t, HashString("a"), HashString("a"))
	assert.NotEqual(t, HashString("a"), HashString("b"))
	assert.Len(t, HashString(""), 64)
	assert.Len(t, GenerateUUID(), 36)
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"single object", `{"code":"X"}`, false},
		{"trailing whitespace", "{\"code\":\"X\"}\n", false},
		{"trailing value", `{"code":"X"} {"code":"Y"}`, true},
		{"malformed", `{"code":`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp ErrorResponse
			err := ParseJSON(tt.input, &resp)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "X", resp.Code)
		})
	}
}
