package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"casino-wallet/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext(requestID string) (*gin.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	if requestID != "" {
		c.Set(CtxRequestID, requestID)
	}
	return c, rec
}

func TestSuccessEnvelopes(t *testing.T) {
	tests := []struct {
		name       string
		send       func(c *gin.Context)
		wantStatus int
	}{
		{"ok", func(c *gin.Context) { OK(c, gin.H{"balance": "100"}) }, http.StatusOK},
		{"created", func(c *gin.Context) { Created(c, gin.H{"balance": "100"}) }, http.StatusCreated},
		{"explicit status", func(c *gin.Context) { JSON(c, http.StatusAccepted, gin.H{"balance": "100"}) }, http.StatusAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext("req-wallet-1")
			tt.send(c)

			require.Equal(t, tt.wantStatus, rec.Code)
			var env SuccessResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
			assert.Equal(t, "req-wallet-1", env.RequestID)
			_, err := time.Parse(time.RFC3339, env.Timestamp)
			assert.NoError(t, err)
			assert.Equal(t, map[string]interface{}{"balance": "100"}, env.Data)
		})
	}
}

func TestSuccess_GeneratesRequestIDWhenMissing(t *testing.T) {
	c, rec := newContext("")
	OK(c, nil)

	var env SuccessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Len(t, env.RequestID, 36)
}

func TestErrorEnvelopes(t *testing.T) {
	tests := []struct {
		name       string
		send       func(c *gin.Context)
		wantStatus int
		wantCode   string
		wantData   interface{}
	}{
		{
			name:       "rejected bet keeps its payload",
			send:       func(c *gin.Context) { Failed(c, apperror.ErrInsufficientBalance(), gin.H{"balance": "10"}) },
			wantStatus: http.StatusPaymentRequired,
			wantCode:   "BAL_001",
			wantData:   map[string]interface{}{"balance": "10"},
		},
		{
			name:       "nil app error is internal",
			send:       func(c *gin.Context) { Failed(c, nil, nil) },
			wantStatus: http.StatusInternalServerError,
			wantCode:   "SYS_001",
		},
		{
			name:       "plain error is internal",
			send:       func(c *gin.Context) { Error(c, errors.New("ledger unreachable")) },
			wantStatus: http.StatusInternalServerError,
			wantCode:   "SYS_001",
		},
		{
			name:       "app error keeps its status",
			send:       func(c *gin.Context) { Error(c, apperror.ErrWalletNotFound()) },
			wantStatus: http.StatusNotFound,
			wantCode:   "WAL_001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext("req-bet-7")
			tt.send(c)

			require.Equal(t, tt.wantStatus, rec.Code)
			var env ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
			assert.Equal(t, tt.wantCode, env.ErrorCode)
			assert.NotEmpty(t, env.Message)
			assert.Equal(t, "req-bet-7", env.RequestID)
			assert.Equal(t, tt.wantData, env.Data)
		})
	}
}

func TestError_InternalDetailsStayHidden(t *testing.T) {
	c, rec := newContext("")
	Error(c, errors.New("dial tcp 10.0.0.5:5432: connection refused"))

	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}
