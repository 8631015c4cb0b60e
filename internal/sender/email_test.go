package sender

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vraj1599/jasubhaichappal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gopkgmail "gopkg.in/gomail.v2"
)

func TestEmailSender_RendersBothParts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.html"), []byte("<p>Hi {{.name}}</p>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("Hi {{.name}}"), 0o644))

	var sent *gopkgmail.Message
	s := NewEmailSender(&config.SMTP{From: "shop@example.com", TMPLDir: dir})
	s.send = func(m *gopkgmail.Message) error {
		sent = m
		return nil
	}

	err := s.SendEmail(Notification{
		To:       "buyer@example.com",
		Subject:  "Hello",
		Template: "hello",
		Data:     map[string]any{"name": "R&D"},
	})
	require.NoError(t, err)
	require.NotNil(t, sent)

	assert.Equal(t, []string{"buyer@example.com"}, sent.GetHeader("To"))

	var buf bytes.Buffer
	_, err = sent.WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()
	assert.True(t, strings.Contains(raw, "Hi R&D"), "plain part must not be escaped")
	assert.True(t, strings.Contains(raw, "R&amp;D"), "html part must be escaped")
}

func TestEmailSender_MissingTemplate(t *testing.T) {
	s := NewEmailSender(&config.SMTP{TMPLDir: t.TempDir()})
	s.send = func(*gopkgmail.Message) error {
		t.Fatal("must not send")
		return nil
	}
	assert.Error(t, s.SendEmail(Notification{To: "a@b.c", Template: "nope"}))
}
