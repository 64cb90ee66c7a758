package smtp

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	apperrors "github.com/praveenchdev/followup-agent/errors"
	"github.com/praveenchdev/followup-agent/pkg/config"
)

// Client sends mail over SMTP with STARTTLS. Send confirms the handoff
// to the server; callers treat an error as "not sent" and retry on the
// next trigger.
type Client struct {
	cfg    *config.SMTPConfig
	logger *zap.Logger

	// sendMail and retryInterval are swappable for tests
	sendMail      func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
	retryInterval time.Duration
}

// NewClient creates a new SMTP client
func NewClient(cfg *config.SMTPConfig, logger *zap.Logger) *Client {
	return &Client{
		cfg:           cfg,
		logger:        logger,
		sendMail:      smtp.SendMail,
		retryInterval: 2 * time.Second,
	}
}

// Send delivers one message, retrying transient failures with
// exponential backoff. Returns nil only after the server accepted the
// message.
func (c *Client) Send(ctx context.Context, to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)
	auth := smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)
	msg := c.buildMessage(to, subject, body)

	attempt := func() error {
		return c.sendMail(addr, auth, c.cfg.Username, []string{to}, msg)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryInterval
	bo.MaxElapsedTime = 1 * time.Minute

	err := backoff.Retry(attempt, backoff.WithContext(
		backoff.WithMaxRetries(bo, uint64(c.cfg.MaxRetries)), ctx))
	if err != nil {
		c.logger.Error("smtp send failed",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return apperrors.ErrMailSendFailure(to, err)
	}

	c.logger.Info("mail handed off",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}

func (c *Client) buildMessage(to, subject, body string) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "From: %s <%s>\r\n", c.cfg.SenderName, c.cfg.Username)
	fmt.Fprintf(&sb, "To: %s\r\n", to)
	fmt.Fprintf(&sb, "Subject: %s\r\n", subject)
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	return []byte(sb.String())
}
