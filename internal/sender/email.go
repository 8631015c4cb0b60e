package sender

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	texttemplate "text/template"

	"github.com/vraj1599/jasubhaichappal/config"

	gopkgmail "gopkg.in/gomail.v2"
)

type Notification struct {
	To       string
	Subject  string
	Template string
	Data     map[string]any
}

type EmailSender struct {
	cfg  *config.SMTP
	send func(m *gopkgmail.Message) error
}

func NewEmailSender(cfg *config.SMTP) *EmailSender {
	s := &EmailSender{cfg: cfg}
	s.send = s.dialAndSend
	return s
}

func (s *EmailSender) SendEmail(n Notification) error {
	htmlBody, err := s.renderHTML(n.Template, n.Data)
	if err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	plainBody, err := s.renderPlain(n.Template, n.Data)
	if err != nil {
		return fmt.Errorf("render plain: %w", err)
	}

	m := gopkgmail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", n.To)
	m.SetHeader("Subject", n.Subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if strings.Contains(htmlBody, "cid:logo") {
		iconPath := filepath.Join(s.cfg.TMPLDir, "icon.png")
		if _, errStat := os.Stat(iconPath); errStat == nil {
			m.Embed(iconPath, gopkgmail.SetHeader(map[string][]string{"Content-ID": {"<logo>"}}))
		}
	}

	return s.send(m)
}

func (s *EmailSender) dialAndSend(m *gopkgmail.Message) error {
	d := gopkgmail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
	d.SSL = s.cfg.Port == 465
	return d.DialAndSend(m)
}

func (s *EmailSender) renderHTML(tmplName string, data map[string]any) (string, error) {
	content, err := os.ReadFile(filepath.Join(s.cfg.TMPLDir, tmplName+".html"))
	if err != nil {
		return "", err
	}
	tmpl, err := template.New(tmplName).Parse(string(content))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// текстовая версия без html-экранирования
func (s *EmailSender) renderPlain(tmplName string, data map[string]any) (string, error) {
	content, err := os.ReadFile(filepath.Join(s.cfg.TMPLDir, tmplName+".txt"))
	if err != nil {
		return "", err
	}
	tmpl, err := texttemplate.New(tmplName).Parse(string(content))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
