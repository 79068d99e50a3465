//go:build integration
// +build integration

package smtp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// skipShort skips the test in short mode
func skipShort(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
}

// mailHog is a running MailHog container.
type mailHog struct {
	host    string
	smtp    int
	apiBase string
}

// mailHogMessage is the part of a MailHog API v2 item the tests read.
type mailHogMessage struct {
	Raw struct {
		From string   `json:"From"`
		To   []string `json:"To"`
		Data string   `json:"Data"`
	} `json:"Raw"`
}

type mailHogMessages struct {
	Total int              `json:"total"`
	Items []mailHogMessage `json:"items"`
}

// startMailHog starts a MailHog container for testing
func startMailHog(t *testing.T) mailHog {
	skipShort(t)

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mailhog/mailhog:latest",
		ExposedPorts: []string{"1025/tcp", "8025/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForLog("Starting SMTP"),
			wait.ForListeningPort("1025/tcp"),
			wait.ForListeningPort("8025/tcp"),
		),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start mailhog container")

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err, "failed to get container host")

	smtpPort, err := container.MappedPort(ctx, "1025")
	require.NoError(t, err, "failed to get smtp port")
	port, err := strconv.Atoi(smtpPort.Port())
	require.NoError(t, err, "failed to parse smtp port")

	apiPort, err := container.MappedPort(ctx, "8025")
	require.NoError(t, err, "failed to get api port")

	return mailHog{
		host:    host,
		smtp:    port,
		apiBase: fmt.Sprintf("http://%s:%s", host, apiPort.Port()),
	}
}

func (m mailHog) client(t *testing.T) *Client {
	t.Helper()

	c, err := NewClient(Config{
		Sender:   "a@x.com",
		Host:     m.host,
		Port:     m.smtp,
		StartTLS: false,
		Timeout:  10 * time.Second,
	}, nil)
	require.NoError(t, err)
	return c
}

func (m mailHog) messages() (mailHogMessages, error) {
	var out mailHogMessages

	resp, err := http.Get(m.apiBase + "/api/v2/messages")
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return out, fmt.Errorf("mailhog api: unexpected status %d", resp.StatusCode)
	}

	err = json.NewDecoder(resp.Body).Decode(&out)
	return out, err
}

// waitForMessage polls the MailHog API until one message is stored.
func (m mailHog) waitForMessage(t *testing.T) mailHogMessage {
	t.Helper()

	var got mailHogMessages
	require.Eventually(t, func() bool {
		var err error
		got, err = m.messages()
		return err == nil && got.Total > 0 && len(got.Items) > 0
	}, 10*time.Second, 200*time.Millisecond, "message not delivered to mailhog")

	require.Len(t, got.Items, 1)
	return got.Items[0]
}

func TestSendEmail_MailHog_PlainText(t *testing.T) {
	hog := startMailHog(t)
	c := hog.client(t)

	email := buildEmail(t, "b@y.com").SetSubject("Hi").SetText("hello").Build()
	require.NoError(t, c.SendEmail(context.Background(), email))

	msg := hog.waitForMessage(t)
	assert.Equal(t, "a@x.com", msg.Raw.From)
	assert.Equal(t, []string{"b@y.com"}, msg.Raw.To)
	assert.Contains(t, msg.Raw.Data, "Subject: Hi")
	assert.Contains(t, msg.Raw.Data, "Content-Type: text/plain")
	assert.Contains(t, msg.Raw.Data, "hello")
}

func TestSendEmail_MailHog_HTML(t *testing.T) {
	hog := startMailHog(t)
	c := hog.client(t)

	email := buildEmail(t, "b@y.com").SetSubject("Hi").SetHTML("<p>hi</p>").Build()
	require.NoError(t, c.SendEmail(context.Background(), email))

	msg := hog.waitForMessage(t)
	assert.Equal(t, "a@x.com", msg.Raw.From)
	assert.Equal(t, []string{"b@y.com"}, msg.Raw.To)
	assert.Contains(t, msg.Raw.Data, "Subject: Hi")
	assert.Contains(t, msg.Raw.Data, "Content-Type: text/html")
	assert.Contains(t, msg.Raw.Data, "<p>hi</p>")
}
