package notify

import (
	"context"
	"time"

	"github.com/enewton/room-monitor/settings"
	logger "github.com/multiversx/mx-chain-logger-go"
	mail "github.com/wneessen/go-mail"
)

var log = logger.GetOrCreate("notify")

const defaultDispatchTimeout = 10 * time.Second

type mailNotifier struct {
	timeout time.Duration
}

// NewMailNotifier creates a notifier sending plain-text mail over SMTP with implicit TLS.
// Every dispatch is bounded by the provided timeout so a slow transport can not stall the
// monitoring loop.
func NewMailNotifier(timeout time.Duration) *mailNotifier {
	if timeout <= 0 {
		timeout = defaultDispatchTimeout
	}

	return &mailNotifier{
		timeout: timeout,
	}
}

// Dispatch builds and sends the message, returning whether it was actually sent. Missing
// credentials or recipient make it a deliberate no-op; transport failures are logged and
// reported as not sent, never propagated.
func (n *mailNotifier) Dispatch(ctx context.Context, subject string, body string, cfg settings.Settings) bool {
	if len(cfg.EmailUser) == 0 || len(cfg.EmailPass) == 0 || len(cfg.EmailTo) == 0 {
		log.Info("mail credentials/recipient not set, skipping notification", "subject", subject)
		return false
	}

	msg := mail.NewMsg()
	err := msg.From(cfg.EmailUser)
	if err != nil {
		log.Warn("invalid sender address", "address", cfg.EmailUser, "error", err)
		return false
	}
	err = msg.To(cfg.EmailTo)
	if err != nil {
		log.Warn("invalid recipient address", "address", cfg.EmailTo, "error", err)
		return false
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(cfg.SMTPHost,
		mail.WithPort(cfg.SMTPPort),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.EmailUser),
		mail.WithPassword(cfg.EmailPass),
		mail.WithTimeout(n.timeout),
	)
	if err != nil {
		log.Warn("failed to create smtp client", "host", cfg.SMTPHost, "error", err)
		return false
	}

	dispatchCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	err = client.DialAndSendWithContext(dispatchCtx, msg)
	if err != nil {
		log.Warn("failed to send notification", "host", cfg.SMTPHost, "subject", subject, "error", err)
		return false
	}

	log.Info("notification sent", "subject", subject, "to", cfg.EmailTo)

	return true
}

// IsInterfaceNil returns true if the value under the interface is nil
func (n *mailNotifier) IsInterfaceNil() bool {
	return n == nil
}
