package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/smtp"
	"time"
)

// Transport delivers a rendered message. The two implementations share the
// same success/failure contract so callers stay transport-agnostic.
type Transport interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPTransport submits mail to an authenticated relay. The session is
// upgraded with STARTTLS when the relay offers it; PLAIN auth refuses
// unencrypted connections to anything but localhost.
type SMTPTransport struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromAddr  string
	TLSConfig *tls.Config // overrides the default server-name config
}

func (t *SMTPTransport) Send(ctx context.Context, to, subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%d", t.Host, t.Port)

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return fmt.Errorf("smtp deadline: %w", err)
		}
	}

	client, err := smtp.NewClient(conn, t.Host)
	if err != nil {
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		tlsCfg := t.TLSConfig
		if tlsCfg == nil {
			tlsCfg = &tls.Config{ServerName: t.Host}
		}
		if err := client.StartTLS(tlsCfg); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}

	if t.Username != "" {
		auth := smtp.PlainAuth("", t.Username, t.Password, t.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(t.FromAddr); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %q <%s>\r\n", t.FromName, t.FromAddr)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	if _, err := w.Write(msg.Bytes()); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}
	return client.Quit()
}

// HTTPTransport posts the message to an external mail-sending webhook.
type HTTPTransport struct {
	URL    string
	Client *http.Client
}

func (t *HTTPTransport) Send(ctx context.Context, to, subject, htmlBody string) error {
	payload, err := json.Marshal(map[string]string{
		"to":      to,
		"subject": subject,
		"body":    htmlBody,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.URL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := t.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("mail webhook returned status %d", resp.StatusCode)
	}
	return nil
}
