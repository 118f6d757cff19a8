package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct{ to, subject, text, html string }

type fakeSender struct {
	sent []sent
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sent{to, subject, text, html})
	return nil
}

func TestWorkerHandle(t *testing.T) {
	ctx := context.Background()
	welcome, err := json.Marshal(NewWelcomeJob("alice@example.com", "mycontacts-api"))
	require.NoError(t, err)

	t.Run("welcome template", func(t *testing.T) {
		s := &fakeSender{}
		require.NoError(t, NewWorker(s, nil).Handle(ctx, welcome))
		require.Len(t, s.sent, 1)
		assert.Equal(t, "alice@example.com", s.sent[0].to)
		assert.Equal(t, "Welcome to mycontacts-api", s.sent[0].subject)
		assert.Contains(t, s.sent[0].html, "alice@example.com")
	})

	t.Run("raw body", func(t *testing.T) {
		s := &fakeSender{}
		body, _ := json.Marshal(EmailJob{To: "bob@example.com", Subject: "hi", Text: "hello"})
		require.NoError(t, NewWorker(s, nil).Handle(ctx, body))
		assert.Equal(t, sent{"bob@example.com", "hi", "hello", ""}, s.sent[0])
	})

	t.Run("undeliverable jobs", func(t *testing.T) {
		w := NewWorker(&fakeSender{}, nil)
		for name, body := range map[string]string{
			"not json":         "{",
			"no recipient":     `{"subject":"x"}`,
			"unknown template": `{"to":"a@example.com","template":"nope"}`,
		} {
			assert.ErrorIs(t, w.Handle(ctx, []byte(body)), ErrBadJob, name)
		}
	})

	t.Run("send failure is retryable", func(t *testing.T) {
		err := NewWorker(&fakeSender{err: errors.New("503")}, nil).Handle(ctx, welcome)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrBadJob)
	})
}
