// Package notification envia avisos por SMS (Twilio) e webhook.
package notification

import (
	"context"
	"errors"

	"github.com/KromaEnergia/api-faturamento/internal/config"
	"github.com/KromaEnergia/api-faturamento/internal/metrics"
)

// Message é o aviso entregue por qualquer canal. To só é usado por SMS.
type Message struct {
	To      string         `json:"-"`
	Subject string         `json:"assunto"`
	Body    string         `json:"mensagem"`
	Data    map[string]any `json:"dados,omitempty"`
}

type Notifier interface {
	Notify(ctx context.Context, msg Message) error
	Channel() string
}

// Multi entrega em todos os canais e agrega os erros.
// Passe só canais configurados: NewWebhook e NewSMS devolvem nil quando não há configuração.
type Multi struct {
	Notifiers []Notifier
	Metrics   *metrics.Metrics
}

func NewMulti(m *metrics.Metrics, notifiers ...Notifier) *Multi {
	out := &Multi{Metrics: m}
	for _, n := range notifiers {
		if n != nil {
			out.Notifiers = append(out.Notifiers, n)
		}
	}
	return out
}

func (m *Multi) Notify(ctx context.Context, msg Message) error {
	if m == nil {
		return nil
	}
	var errs []error
	for _, n := range m.Notifiers {
		err := n.Notify(ctx, msg)
		m.Metrics.Notification(n.Channel(), err)
		if err != nil {
			config.LogError(config.GetLogger(), "notification", "Notify", n.Channel(), msg.Subject, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Multi) Channel() string {
	return "multi"
}
