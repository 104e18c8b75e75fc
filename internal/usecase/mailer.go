package usecase

import (
	"sync"

	"github.com/rs/zerolog"
)

// Mailer is the outbound notification collaborator used by the usecases.
// *mailer.Mailer satisfies it.
type Mailer interface {
	SendVerificationEmail(to, code string) error
	SendWelcomeEmail(to, name string) error
	SendPasswordResetEmail(to, link string) error
	SendResetSuccessEmail(to string) error
}

// mailDispatcher sends notification emails on worker goroutines so a slow or
// failing SMTP server never blocks or fails the state transition that
// triggered it. Send failures are logged and dropped: once a transition has
// committed, notification is best effort.
type mailDispatcher struct {
	wg     sync.WaitGroup
	logger *zerolog.Logger
}

func (d *mailDispatcher) dispatch(kind string, send func() error) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		if err := send(); err != nil {
			d.logger.Error().Err(err).Str("email", kind).Msg("failed to send notification email")
		}
	}()
}

// Wait blocks until all in-flight notification sends have finished.
func (d *mailDispatcher) Wait() {
	d.wg.Wait()
}
