package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-qkart-backend/pkg/mailer"
	mailtpl "github.com/oksasatya/go-qkart-backend/pkg/mailer/templates"
)

// Publisher enqueues a JSON message; satisfied by helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Notifier enqueues transactional emails for the email worker.
// A nil Notifier, or one without a publisher, drops everything.
type Notifier struct {
	Pub    Publisher
	Logger *logrus.Logger
}

func NewNotifier(pub Publisher, logger *logrus.Logger) *Notifier {
	return &Notifier{Pub: pub, Logger: logger}
}

// Send never fails the caller; publish errors are only logged.
func (n *Notifier) Send(ctx context.Context, to, template string, data mailtpl.Data) {
	if n == nil || n.Pub == nil {
		return
	}
	job := mailer.EmailJob{To: to, Template: template, Data: data}
	if err := n.Pub.PublishJSON(ctx, job); err != nil && n.Logger != nil {
		n.Logger.WithError(err).WithFields(logrus.Fields{"to": to, "template": template}).Warn("failed to enqueue email")
	}
}
