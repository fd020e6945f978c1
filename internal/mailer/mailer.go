package mailer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"os/exec"
	"strings"

	"github.com/aptaudit/aptaudit/internal/models"
)

// subject is fixed; the report body carries the details
const subject = "Audit de mise à jour"

// Message is a ready-to-send report mail
type Message struct {
	From        string
	To          string
	Subject     string
	ContentType string
	Body        []byte
}

// Build assembles the report mail for the local MTA, from audit@<hostname>
func Build(report string, format models.Format, recipient string) *Message {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	return &Message{
		From:        fmt.Sprintf("audit@%s", hostname),
		To:          recipient,
		Subject:     subject,
		ContentType: format.ContentType(),
		Body:        []byte(report),
	}
}

// Bytes renders the message headers and base64 body. The subject is
// Q-encoded because it is not plain ASCII.
func (m *Message) Bytes() []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Content-Type: %s\n", m.ContentType)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\n")
	fmt.Fprintf(&buf, "Content-Transfer-Encoding: base64\n")
	fmt.Fprintf(&buf, "Subject: %s\n", mime.QEncoding.Encode("utf-8", m.Subject))
	fmt.Fprintf(&buf, "From: %s\n", m.From)
	fmt.Fprintf(&buf, "To: %s\n", m.To)
	fmt.Fprintf(&buf, "\n")
	buf.WriteString(wrapBase64(m.Body))

	return buf.Bytes()
}

// wrapBase64 encodes data and folds it at the conventional 76 columns
func wrapBase64(data []byte) string {
	encoded := base64.StdEncoding.EncodeToString(data)

	var b strings.Builder
	for len(encoded) > 76 {
		b.WriteString(encoded[:76])
		b.WriteByte('\n')
		encoded = encoded[76:]
	}
	b.WriteString(encoded)
	b.WriteByte('\n')

	return b.String()
}

// Transport delivers a built message
type Transport interface {
	Send(msg *Message) error
}

// Sendmail pipes messages to the local sendmail binary, which takes the
// recipients from the message headers
type Sendmail struct {
	Path string
}

// NewSendmail creates a Transport using the standard sendmail path
func NewSendmail() *Sendmail {
	return &Sendmail{Path: "/usr/sbin/sendmail"}
}

// Send pipes the rendered message to sendmail
func (s *Sendmail) Send(msg *Message) error {
	cmd := exec.Command(s.Path, "-t", "-oi")
	cmd.Stdin = bytes.NewReader(msg.Bytes())

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("sendmail failed: %w", err)
	}

	return nil
}
