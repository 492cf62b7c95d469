package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClassifyLabelShape(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"label":"phishing","confidence":0.93,"reasons":["urgency","credential harvesting"]}`)
	c := NewClassifier(srv.URL, "", 5*time.Second, zap.NewNop())

	result, err := c.Classify(context.Background(), "some text")
	require.NoError(t, err)
	assert.Equal(t, "phishing", result.Label)
	assert.InDelta(t, 0.93, result.Confidence, 0.001)
	assert.Equal(t, []string{"urgency", "credential harvesting"}, result.Reasons)
}

func TestClassifyDataArrayShape(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"data":["phishing",0.88]}`)
	c := NewClassifier(srv.URL, "", 5*time.Second, zap.NewNop())

	result, err := c.Classify(context.Background(), "some text")
	require.NoError(t, err)
	assert.Equal(t, "phishing", result.Label)
	assert.InDelta(t, 0.88, result.Confidence, 0.001)
}

func TestClassifyScoreShape(t *testing.T) {
	t.Run("high risk", func(t *testing.T) {
		srv := newTestServer(t, http.StatusOK, `{"score":87,"risk_level":"High","reasons":["wire transfer request"]}`)
		c := NewClassifier(srv.URL, "", 5*time.Second, zap.NewNop())

		result, err := c.Classify(context.Background(), "some text")
		require.NoError(t, err)
		assert.Equal(t, "phishing", result.Label)
		assert.InDelta(t, 0.87, result.Confidence, 0.001)
		assert.Equal(t, []string{"wire transfer request"}, result.Reasons)
	})

	t.Run("low risk maps to safe", func(t *testing.T) {
		srv := newTestServer(t, http.StatusOK, `{"score":5,"risk_level":"Low"}`)
		c := NewClassifier(srv.URL, "", 5*time.Second, zap.NewNop())

		result, err := c.Classify(context.Background(), "some text")
		require.NoError(t, err)
		assert.Equal(t, "safe", result.Label)
		assert.InDelta(t, 0.05, result.Confidence, 0.001)
	})
}

func TestClassifySendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sekrit", r.Header.Get("Authorization"))
		w.Write([]byte(`{"label":"safe","confidence":0.1}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClassifier(srv.URL, "sekrit", 5*time.Second, zap.NewNop())
	_, err := c.Classify(context.Background(), "some text")
	require.NoError(t, err)
}

func TestClassifyErrors(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		srv := newTestServer(t, http.StatusBadGateway, `oops`)
		c := NewClassifier(srv.URL, "", 5*time.Second, zap.NewNop())

		_, err := c.Classify(context.Background(), "some text")
		assert.ErrorContains(t, err, "502")
	})

	t.Run("service-level error field", func(t *testing.T) {
		srv := newTestServer(t, http.StatusOK, `{"error":"model overloaded"}`)
		c := NewClassifier(srv.URL, "", 5*time.Second, zap.NewNop())

		_, err := c.Classify(context.Background(), "some text")
		assert.ErrorContains(t, err, "model overloaded")
	})

	t.Run("unrecognized shape", func(t *testing.T) {
		srv := newTestServer(t, http.StatusOK, `{"unexpected":true}`)
		c := NewClassifier(srv.URL, "", 5*time.Second, zap.NewNop())

		_, err := c.Classify(context.Background(), "some text")
		assert.ErrorContains(t, err, "unrecognized")
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		c := NewClassifier("http://127.0.0.1:1/score", "", time.Second, zap.NewNop())

		_, err := c.Classify(context.Background(), "some text")
		assert.Error(t, err)
	})
}
