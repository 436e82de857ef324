package api

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureDebugLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	logger := logrus.StandardLogger()
	out, level := logger.Out, logger.GetLevel()

	logger.SetOutput(&buf)
	logger.SetLevel(logrus.DebugLevel)
	t.Cleanup(func() {
		logger.SetOutput(out)
		logger.SetLevel(level)
	})

	return &buf
}

func TestClient_DebugLogOmitsCredentials(t *testing.T) {
	logs := captureDebugLogs(t)

	server, _ := newRecordingServer(t, http.StatusOK, `{"access_token":"tok-SECRET-123","token_type":"bearer"}`)
	client := New(server.URL, WithDebug(true))

	token, err := client.Login(context.Background(), "a@b.com", "hunter2pw")
	require.NoError(t, err)
	client.SetAuthorizationToken(token.AccessToken)

	_, err = client.Get(context.Background(), MePath)
	require.NoError(t, err)

	_, err = client.Post(context.Background(), RegisterPath, RegisterRequest{Email: "a@b.com", Password: "hunter2pw"})
	require.NoError(t, err)

	output := logs.String()
	assert.Contains(t, output, redacted)
	assert.NotContains(t, output, "hunter2pw")
	assert.NotContains(t, output, "tok-SECRET-123")
}

func TestRedactBody(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "form password",
			body:     "password=hunter2pw&username=a%40b.com",
			expected: "password=[REDACTED]&username=a%40b.com",
		},
		{
			name:     "form password not first",
			body:     "username=a%40b.com&password=hunter2pw",
			expected: "username=a%40b.com&password=[REDACTED]",
		},
		{
			name:     "json password",
			body:     "{\n   \"email\": \"a@b.com\",\n   \"password\": \"hunter2pw\"\n}",
			expected: "{\n   \"email\": \"a@b.com\",\n   \"password\": \"[REDACTED]\"\n}",
		},
		{
			name:     "json access token",
			body:     `{"access_token":"tok","token_type":"bearer"}`,
			expected: `{"access_token":"[REDACTED]","token_type":"bearer"}`,
		},
		{
			name:     "nothing secret",
			body:     `{"status":"ok"}`,
			expected: `{"status":"ok"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, redactBody(tt.body))
		})
	}
}

func TestRedactHeader(t *testing.T) {
	header := http.Header{}
	header.Set("Authorization", "Bearer tok-SECRET-123")
	header.Set("Accept", "application/json")

	redactHeader(header)

	assert.Equal(t, "Bearer [REDACTED]", header.Get("Authorization"))
	assert.Equal(t, "application/json", header.Get("Accept"))

	empty := http.Header{}
	redactHeader(empty)
	assert.Empty(t, empty.Get("Authorization"))
}
