package notify

import (
	"context"
	"testing"
	"time"

	"github.com/enewton/room-monitor/settings"
	"github.com/stretchr/testify/assert"
)

func TestNewMailNotifier(t *testing.T) {
	t.Parallel()

	t.Run("non-positive timeout falls back to the default", func(t *testing.T) {
		t.Parallel()

		n := NewMailNotifier(0)
		assert.NotNil(t, n)
		assert.False(t, n.IsInterfaceNil())
		assert.Equal(t, defaultDispatchTimeout, n.timeout)
	})
	t.Run("explicit timeout is kept", func(t *testing.T) {
		t.Parallel()

		n := NewMailNotifier(3 * time.Second)
		assert.Equal(t, 3*time.Second, n.timeout)
	})
}

func TestMailNotifier_Dispatch(t *testing.T) {
	t.Parallel()

	t.Run("missing credentials is a silent no-op", func(t *testing.T) {
		t.Parallel()

		n := NewMailNotifier(time.Second)
		cfg := settings.Default() // defaults carry no credentials

		sent := n.Dispatch(context.Background(), "Temperature HIGH Alert", "body", cfg)
		assert.False(t, sent)
	})
	t.Run("missing recipient is a silent no-op", func(t *testing.T) {
		t.Parallel()

		n := NewMailNotifier(time.Second)
		cfg := settings.Default()
		cfg.EmailUser = "monitor@example.com"
		cfg.EmailPass = "secret"

		sent := n.Dispatch(context.Background(), "Temperature HIGH Alert", "body", cfg)
		assert.False(t, sent)
	})
	t.Run("invalid sender address is reported as not sent", func(t *testing.T) {
		t.Parallel()

		n := NewMailNotifier(time.Second)
		cfg := settings.Default()
		cfg.EmailUser = "not an address"
		cfg.EmailPass = "secret"
		cfg.EmailTo = "someone@example.com"

		sent := n.Dispatch(context.Background(), "Temperature HIGH Alert", "body", cfg)
		assert.False(t, sent)
	})
	t.Run("invalid recipient address is reported as not sent", func(t *testing.T) {
		t.Parallel()

		n := NewMailNotifier(time.Second)
		cfg := settings.Default()
		cfg.EmailUser = "monitor@example.com"
		cfg.EmailPass = "secret"
		cfg.EmailTo = "not an address"

		sent := n.Dispatch(context.Background(), "Temperature HIGH Alert", "body", cfg)
		assert.False(t, sent)
	})
	t.Run("unreachable smtp host is reported as not sent", func(t *testing.T) {
		t.Parallel()

		n := NewMailNotifier(200 * time.Millisecond)
		cfg := settings.Settings{
			EmailUser: "monitor@example.com",
			EmailPass: "secret",
			EmailTo:   "someone@example.com",
			SMTPHost:  "127.0.0.1",
			SMTPPort:  1, // nothing listens here
		}

		sent := n.Dispatch(context.Background(), "Temperature HIGH Alert", "body", cfg)
		assert.False(t, sent)
	})
}
