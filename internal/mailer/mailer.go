package mailer

import (
	"context"

	"github.com/rs/zerolog"
)

// Mailer delivers account emails.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, token string) error
}

// LogMailer writes the message to the log instead of sending it.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendPasswordReset(_ context.Context, to, token string) error {
	m.log.Info().
		Str("to", to).
		Str("reset_token", token).
		Msg("password reset email")
	return nil
}
