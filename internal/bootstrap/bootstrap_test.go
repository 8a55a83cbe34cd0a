package bootstrap_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pizzaria-erp/go-api-server/internal/bootstrap"
	"github.com/pizzaria-erp/go-api-server/internal/shared/database"
	sharedError "github.com/pizzaria-erp/go-api-server/internal/shared/error"
	"github.com/pizzaria-erp/go-api-server/internal/shared/middleware"
	"github.com/pizzaria-erp/go-api-server/internal/shared/testutil"
)

func setupEngine(t *testing.T) *gin.Engine {
	t.Helper()
	cfg := testutil.NewTestConfig()
	cfg.Server.RequestTimeout = 50 * time.Millisecond

	engine, err := bootstrap.NewBootstrap(cfg).SetupEngine()
	require.NoError(t, err)
	return engine
}

func TestRecovery(t *testing.T) {
	engine := setupEngine(t)
	engine.GET("/panico", func(c *gin.Context) { panic("forno quebrado") })
	engine.GET("/sem-banco", func(c *gin.Context) {
		panic(&database.ConnectionError{Op: "acquire", Err: context.DeadlineExceeded})
	})

	tests := []struct {
		name       string
		url        string
		wantStatus int
		wantCode   string
	}{
		{name: "plain panic", url: "/panico", wantStatus: http.StatusInternalServerError, wantCode: sharedError.InternalServerError.Code},
		{name: "connection failure", url: "/sem-banco", wantStatus: http.StatusServiceUnavailable, wantCode: sharedError.ServiceUnavailable.Code},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testutil.ExecuteRequest(t, engine, testutil.TestRequest{Method: http.MethodGet, URL: tt.url})

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
			var resp sharedError.ErrorResponse
			testutil.ParseResponse(t, w, &resp)
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}

func TestSetupEngine_AppliesRequestTimeout(t *testing.T) {
	engine := setupEngine(t)
	engine.GET("/lento", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})

	w := testutil.ExecuteRequest(t, engine, testutil.TestRequest{Method: http.MethodGet, URL: "/lento"})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSetupEngine_RegistersDocumentTags(t *testing.T) {
	engine := setupEngine(t)
	engine.POST("/documento", func(c *gin.Context) {
		var body struct {
			Document string `json:"cpfCnpj" binding:"required,cpfcnpj"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusNoContent)
	})

	ok := testutil.ExecuteRequest(t, engine, testutil.TestRequest{Method: http.MethodPost, URL: "/documento", Body: map[string]string{"cpfCnpj": "11.222.333/0001-81"}})
	bad := testutil.ExecuteRequest(t, engine, testutil.TestRequest{Method: http.MethodPost, URL: "/documento", Body: map[string]string{"cpfCnpj": "11.222.333/0001-82"}})

	assert.Equal(t, http.StatusNoContent, ok.Code)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestServerShutdown_RunsHooksInReverse(t *testing.T) {
	// Given
	srv := bootstrap.New(testutil.NewTestConfig(), http.NewServeMux())
	var order []string
	srv.OnShutdown(func() error { order = append(order, "banco"); return nil })
	srv.OnShutdown(func() error { order = append(order, "cache"); return errors.New("cache ocupado") })

	// When
	err := srv.Shutdown(context.Background())

	// Then
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache ocupado")
	assert.Equal(t, []string{"cache", "banco"}, order)

	// Then: hooks run once
	assert.NoError(t, srv.Shutdown(context.Background()))
	assert.Len(t, order, 2)
}
