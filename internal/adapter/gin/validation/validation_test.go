package validation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type samplePayload struct {
	Name  string   `json:"name" validate:"required,min=1"`
	Note  *string  `json:"note" validate:"omitempty,min=1"`
	Tags  []string `json:"tags" validate:"omitempty,unique,dive,min=1"`
	Count *int64   `json:"count" validate:"omitempty,min=0"`
}

func (p *samplePayload) ApplyDefaults() {
	if p.Tags == nil {
		p.Tags = []string{}
	}
}

func newEngine(t *testing.T, got **samplePayload) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/", Body[samplePayload](New(zaptest.NewLogger(t))), func(c *gin.Context) {
		p, ok := Payload[samplePayload](c)
		require.True(t, ok)
		*got = p
		c.Status(http.StatusOK)
	})
	return r
}

func post(r http.Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestBody_Valid(t *testing.T) {
	var got *samplePayload
	r := newEngine(t, &got)

	w := post(r, `{"name":"Ada","note":"hi","tags":["a","b"],"count":0}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "hi", *got.Note)
	assert.Equal(t, []string{"a", "b"}, got.Tags)
	assert.Equal(t, int64(0), *got.Count)
}

func TestBody_AppliesDefaults(t *testing.T) {
	var got *samplePayload
	r := newEngine(t, &got)

	w := post(r, `{"name":"Ada"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, got.Tags)
	assert.Empty(t, got.Tags)
	assert.Nil(t, got.Note)
}

func TestBody_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{name: "missing required", body: `{}`, wantField: "name"},
		{name: "empty body", body: ``, wantField: "name"},
		{name: "empty string", body: `{"name":""}`, wantField: "name"},
		{name: "empty optional string", body: `{"name":"a","note":""}`, wantField: "note"},
		{name: "duplicate tags", body: `{"name":"a","tags":["x","x"]}`, wantField: "tags"},
		{name: "empty tag", body: `{"name":"a","tags":[""]}`, wantField: "tags[0]"},
		{name: "negative count", body: `{"name":"a","count":-1}`, wantField: "count"},
		{name: "wrong type", body: `{"name":5}`, wantField: "name"},
		{name: "unknown field", body: `{"name":"a","extra":1}`, wantField: "extra"},
		{name: "malformed", body: `{"name":`},
		{name: "array body", body: `[1,2]`},
		{name: "trailing data", body: `{"name":"a"} {"name":"b"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *samplePayload
			r := newEngine(t, &got)

			w := post(r, tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Nil(t, got, "handler must not run")

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "validation_error", resp.Error)
			assert.NotEmpty(t, resp.Message)

			if tt.wantField != "" {
				require.NotEmpty(t, resp.Details)
				assert.Equal(t, tt.wantField, resp.Details[0].Field)
			}
		})
	}
}

func TestPayload_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	p, ok := Payload[samplePayload](c)
	assert.False(t, ok)
	assert.Nil(t, p)
}
