package mailer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gradinvite/core/config"
	"gradinvite/core/logger"
)

// Service renders templated messages and delivers them through the
// configured transport.
type Service struct {
	transport   Transport
	sendTimeout time.Duration
}

func NewService(cfg config.MailConfig) (*Service, error) {
	var transport Transport
	switch cfg.Transport {
	case "smtp":
		transport = &SMTPTransport{
			Host:     cfg.Host,
			Port:     cfg.Port,
			Username: cfg.Username,
			Password: cfg.Password,
			FromName: cfg.FromName,
			FromAddr: cfg.FromAddress,
		}
	case "http":
		if cfg.WebhookURL == "" {
			return nil, fmt.Errorf("MAIL_WEBHOOK_URL is required for the http transport")
		}
		transport = &HTTPTransport{URL: cfg.WebhookURL}
	default:
		return nil, fmt.Errorf("unknown mail transport %q", cfg.Transport)
	}

	timeout := time.Duration(cfg.SendTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Service{
		transport:   transport,
		sendTimeout: timeout,
	}, nil
}

// NewServiceWithTransport wires an explicit transport. Used by tests and by
// deployments that construct their own transport.
func NewServiceWithTransport(transport Transport, sendTimeout time.Duration) *Service {
	if sendTimeout <= 0 {
		sendTimeout = 10 * time.Second
	}
	return &Service{
		transport:   transport,
		sendTimeout: sendTimeout,
	}
}

// SendOne renders and delivers a single message with a bounded per-call
// timeout.
func (s *Service) SendOne(ctx context.Context, kind Kind, msg Message) error {
	body, err := Render(kind, msg)
	if err != nil {
		return fmt.Errorf("render %s: %w", kind, err)
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	if err := s.transport.Send(sendCtx, msg.To, kind.Subject(), body); err != nil {
		return err
	}
	return nil
}

// SendMany fans out one goroutine per message and waits for all of them.
// Individual failures are absorbed into the counts and never abort or delay
// the other sends. Results always carries per-recipient detail; controllers
// strip it unless the caller opted in.
func (s *Service) SendMany(ctx context.Context, kind Kind, msgs []Message) BulkResult {
	result := BulkResult{
		Total:   len(msgs),
		Results: make([]SendResult, len(msgs)),
	}

	var wg sync.WaitGroup
	for i := range msgs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := s.SendOne(ctx, kind, msgs[i])
			if err != nil {
				logger.Error("MailerService:SendMany:Send:Error:", "recipient", msgs[i].To, "error", err)
				result.Results[i] = SendResult{
					Recipient: msgs[i].To,
					Success:   false,
					Error:     err.Error(),
				}
				return
			}
			result.Results[i] = SendResult{
				Recipient: msgs[i].To,
				Success:   true,
			}
		}(i)
	}
	wg.Wait()

	for _, r := range result.Results {
		if r.Success {
			result.Successful++
		} else {
			result.Failed++
		}
	}
	return result
}
