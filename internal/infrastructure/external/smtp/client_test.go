package smtp

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/praveenchdev/followup-agent/pkg/config"
)

func testClient() *Client {
	c := NewClient(&config.SMTPConfig{
		Host:       "smtp.test.local",
		Port:       587,
		Username:   "agent@test.local",
		SenderName: "Task Followup Agent",
		MaxRetries: 2,
	}, zap.NewNop())
	c.retryInterval = time.Millisecond
	return c
}

func TestSend_Success(t *testing.T) {
	c := testClient()

	var gotTo []string
	var gotMsg []byte
	c.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		if addr != "smtp.test.local:587" {
			t.Fatalf("unexpected addr %s", addr)
		}
		if from != "agent@test.local" {
			t.Fatalf("unexpected from %s", from)
		}
		gotTo = to
		gotMsg = msg
		return nil
	}

	if err := c.Send(context.Background(), "sarika@test.local", "Pending Action Items - Reminder", "body text"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(gotTo) != 1 || gotTo[0] != "sarika@test.local" {
		t.Fatalf("unexpected recipients %v", gotTo)
	}

	msg := string(gotMsg)
	if !strings.Contains(msg, "Subject: Pending Action Items - Reminder\r\n") {
		t.Fatalf("subject header missing: %q", msg)
	}
	if !strings.HasSuffix(msg, "\r\nbody text") {
		t.Fatalf("body not terminated after headers: %q", msg)
	}
}

func TestSend_RetriesThenSucceeds(t *testing.T) {
	c := testClient()

	calls := 0
	c.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		calls++
		if calls < 2 {
			return errors.New("451 temporary failure")
		}
		return nil
	}

	if err := c.Send(context.Background(), "sarika@test.local", "subj", "body"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 attempts got %d", calls)
	}
}

func TestSend_ExhaustedRetriesReturnError(t *testing.T) {
	c := testClient()

	calls := 0
	c.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		calls++
		return errors.New("connection refused")
	}

	if err := c.Send(context.Background(), "sarika@test.local", "subj", "body"); err == nil {
		t.Fatalf("expected error after exhausted retries")
	}
	// Initial attempt plus MaxRetries
	if calls != 3 {
		t.Fatalf("expected 3 attempts got %d", calls)
	}
}

func TestSend_CanceledContext(t *testing.T) {
	c := testClient()
	c.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("still failing")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.Send(ctx, "sarika@test.local", "subj", "body"); err == nil {
		t.Fatalf("expected error with canceled context")
	}
}
