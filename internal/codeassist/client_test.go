package codeassist

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	apperrors "codeberg.org/algopatterns/codeassist/internal/errors"
	"codeberg.org/algopatterns/codeassist/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// starts a fake code service built from the given routes
func newFakeService(t *testing.T, routes func(r *gin.Engine)) *httptest.Server {
	t.Helper()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return srv
}

func TestGenerate(t *testing.T) {
	var gotRequestID string

	srv := newFakeService(t, func(r *gin.Engine) {
		r.POST("/generate-code", func(c *gin.Context) {
			var req GenerateRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
				return
			}

			assert.Equal(t, LanguagePython, req.Language)
			assert.Equal(t, "reverse a string", req.ProblemStatement)
			assert.Equal(t, "application/json", c.GetHeader("Content-Type"))
			gotRequestID = c.GetHeader(RequestIDHeader)

			c.JSON(http.StatusOK, gin.H{
				"language": req.Language,
				"code":     "def rev(s): return s[::-1]",
			})
		})
	})

	client := NewClient(srv.URL+"/", WithRequestID())

	resp, err := client.Generate(context.Background(), GenerateRequest{
		Language:         LanguagePython,
		ProblemStatement: "reverse a string",
	})

	require.NoError(t, err)
	assert.Equal(t, "def rev(s): return s[::-1]", resp.Code)
	assert.Equal(t, LanguagePython, resp.Language)
	assert.Len(t, gotRequestID, 36)
	assert.Equal(t, srv.URL, client.BaseURL())
}

func TestOptimize(t *testing.T) {
	srv := newFakeService(t, func(r *gin.Engine) {
		r.POST("/optimize-code", func(c *gin.Context) {
			var req OptimizeRequest
			assert.NoError(t, c.ShouldBindJSON(&req))
			assert.Equal(t, "def rev(s): return s[::-1]", req.Code)

			c.JSON(http.StatusOK, gin.H{
				"language":         req.Language,
				"original_code":    req.Code,
				"optimized_code":   "def rev(s): return s[::-1]",
				"improvements":     []string{"use slicing"},
				"performance_gain": "O(n) same",
			})
		})
	})

	client := NewClient(srv.URL)

	resp, err := client.Optimize(context.Background(), OptimizeRequest{
		Language: LanguagePython,
		Code:     "def rev(s): return s[::-1]",
	})

	require.NoError(t, err)
	assert.Equal(t, "def rev(s): return s[::-1]", resp.OptimizedCode)
	assert.Equal(t, []string{"use slicing"}, resp.Improvements)
	assert.Equal(t, "O(n) same", resp.PerformanceGain)
	assert.Equal(t, "def rev(s): return s[::-1]", resp.OriginalCode)
}

func TestOptimizeOptionalFieldsAbsent(t *testing.T) {
	srv := newFakeService(t, func(r *gin.Engine) {
		r.POST("/optimize-code", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"optimized_code": "x = 1"})
		})
	})

	resp, err := NewClient(srv.URL).Optimize(context.Background(), OptimizeRequest{Language: LanguagePython, Code: "x=1"})

	require.NoError(t, err)
	assert.Equal(t, "x = 1", resp.OptimizedCode)
	assert.Empty(t, resp.Improvements)
	assert.Empty(t, resp.PerformanceGain)
}

func TestFailureResponses(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantKind   apperrors.Kind
		wantDetail string
		wantText   string
	}{
		{
			name:       "string detail",
			status:     http.StatusBadRequest,
			body:       `{"detail": "code too long"}`,
			wantKind:   apperrors.KindServer,
			wantDetail: "code too long",
			wantText:   "code too long",
		},
		{
			name:       "validation detail list",
			status:     http.StatusUnprocessableEntity,
			body:       `{"detail": [{"loc": ["body", "language"], "msg": "field required"}]}`,
			wantKind:   apperrors.KindServer,
			wantDetail: "field required",
			wantText:   "field required",
		},
		{
			name:     "empty error body",
			status:   http.StatusInternalServerError,
			body:     ``,
			wantKind: apperrors.KindServer,
			wantText: "Request failed with status code 500",
		},
		{
			name:     "html error body",
			status:   http.StatusBadGateway,
			body:     `<html>bad gateway</html>`,
			wantKind: apperrors.KindServer,
			wantText: "Request failed with status code 502",
		},
		{
			name:     "success with invalid json",
			status:   http.StatusOK,
			body:     `not json`,
			wantKind: apperrors.KindTransport,
		},
		{
			name:     "success without code",
			status:   http.StatusOK,
			body:     `{"language": "python"}`,
			wantKind: apperrors.KindTransport,
			wantText: "malformed response: missing code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newFakeService(t, func(r *gin.Engine) {
				r.POST("/generate-code", func(c *gin.Context) {
					c.Data(tt.status, "application/json", []byte(tt.body))
				})
			})

			_, err := NewClient(srv.URL).Generate(context.Background(), GenerateRequest{
				Language:         LanguagePython,
				ProblemStatement: "anything",
			})

			require.Error(t, err)
			assert.Equal(t, tt.wantKind, apperrors.KindOf(err))
			assert.Equal(t, tt.wantDetail, apperrors.Detail(err))
			if tt.wantText != "" {
				assert.Equal(t, tt.wantText, apperrors.Message(err, "Generation failed"))
			}
		})
	}
}

func TestSingleRequestNoRetry(t *testing.T) {
	var hits atomic.Int32

	srv := newFakeService(t, func(r *gin.Engine) {
		r.POST("/generate-code", func(c *gin.Context) {
			hits.Add(1)
			c.Status(http.StatusServiceUnavailable)
		})
	})

	_, err := NewClient(srv.URL).Generate(context.Background(), GenerateRequest{
		Language:         LanguagePython,
		ProblemStatement: "anything",
	})

	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).Generate(context.Background(), GenerateRequest{
		Language:         LanguagePython,
		ProblemStatement: "anything",
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsTransport(err))
	assert.NotEmpty(t, apperrors.Message(err, "Generation failed"))
}

func TestRequestTimeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	srv := newFakeService(t, func(r *gin.Engine) {
		r.POST("/generate-code", func(c *gin.Context) {
			select {
			case <-c.Request.Context().Done():
			case <-release:
			}
		})
	})

	_, err := NewClient(srv.URL, WithRequestTimeout(50*time.Millisecond)).Generate(context.Background(), GenerateRequest{
		Language:         LanguagePython,
		ProblemStatement: "anything",
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsTimeout(err))
}

func TestRateLimitRespectsContext(t *testing.T) {
	var hits atomic.Int32

	srv := newFakeService(t, func(r *gin.Engine) {
		r.POST("/generate-code", func(c *gin.Context) {
			hits.Add(1)
			c.JSON(http.StatusOK, gin.H{"code": "pass"})
		})
	})

	client := NewClient(srv.URL, WithRateLimit(0.001, 1))
	req := GenerateRequest{Language: LanguagePython, ProblemStatement: "anything"}

	_, err := client.Generate(context.Background(), req)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = client.Generate(ctx, req)
	require.Error(t, err)
	assert.True(t, apperrors.IsTransport(err))
	assert.Equal(t, int32(1), hits.Load())
}

func TestRequestLogging(t *testing.T) {
	srv := newFakeService(t, func(r *gin.Engine) {
		r.POST("/generate-code", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"code": "pass"})
		})
	})

	var buf bytes.Buffer
	ctx := logger.WithContext(context.Background(), slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	client := NewClient(srv.URL, WithRequestLogging(), WithRequestID())
	_, err := client.Generate(ctx, GenerateRequest{Language: LanguagePython, ProblemStatement: "anything"})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "outbound request")
	assert.Contains(t, buf.String(), "status=200")
	assert.Contains(t, buf.String(), "/generate-code")
	assert.NotContains(t, buf.String(), "request_id=\"\"")
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		input   string
		want    Language
		wantErr bool
	}{
		{input: "python", want: LanguagePython},
		{input: " JavaScript ", want: LanguageJavaScript},
		{input: "ruby", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLanguage(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSupportedLanguages(t *testing.T) {
	langs := SupportedLanguages()

	require.Len(t, langs, 2)
	assert.Equal(t, LanguagePython, langs[0].Language)
	assert.Equal(t, "JavaScript", langs[1].Label)
	assert.Equal(t, "JavaScript", LanguageJavaScript.Label())

	// callers get a copy
	langs[0].Label = "changed"
	assert.Equal(t, "Python", LanguagePython.Label())
}

func TestUserAgent(t *testing.T) {
	var agents []string

	srv := newFakeService(t, func(r *gin.Engine) {
		r.POST("/generate-code", func(c *gin.Context) {
			agents = append(agents, c.GetHeader("User-Agent"))
			c.JSON(http.StatusOK, gin.H{"code": "pass"})
		})
	})

	req := GenerateRequest{Language: LanguagePython, ProblemStatement: "anything"}

	_, err := NewClient(srv.URL).Generate(context.Background(), req)
	require.NoError(t, err)

	_, err = NewClient(srv.URL, WithUserAgent("codeassist-ci/2.0")).Generate(context.Background(), req)
	require.NoError(t, err)

	// empty keeps the default
	_, err = NewClient(srv.URL, WithUserAgent("")).Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, []string{"codeassist/1.0", "codeassist-ci/2.0", "codeassist/1.0"}, agents)
}

func TestResponseHeaderTimeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	srv := newFakeService(t, func(r *gin.Engine) {
		r.POST("/generate-code", func(c *gin.Context) {
			select {
			case <-c.Request.Context().Done():
			case <-release:
			}
		})
	})

	client := NewClient(srv.URL,
		WithRequestTimeout(0),
		WithResponseHeaderTimeout(50*time.Millisecond),
		WithIdleConnTimeout(time.Second),
	)

	_, err := client.Generate(context.Background(), GenerateRequest{
		Language:         LanguagePython,
		ProblemStatement: "anything",
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsTimeout(err))
}
