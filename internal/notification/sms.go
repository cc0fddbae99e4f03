package notification

import (
	"context"
	"errors"

	"github.com/KromaEnergia/api-faturamento/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// messageCreator é a parte da API da Twilio que usamos
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// SMS envia o aviso por SMS via Twilio
type SMS struct {
	api  messageCreator
	From string
}

// NewSMS devolve nil quando as credenciais da Twilio não foram configuradas
func NewSMS(accountSID, authToken, from string) *SMS {
	if accountSID == "" || authToken == "" || from == "" {
		return nil
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &SMS{api: client.Api, From: from}
}

func (s *SMS) Channel() string {
	return "sms"
}

func (s *SMS) Notify(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return errors.New("destinatário sem telefone")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(msg.To)
	params.SetFrom(s.From)
	params.SetBody(msg.Body)

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		return err
	}
	if resp != nil && resp.Sid != nil {
		config.GetLogger().WithFields(logrus.Fields{"module": "notification", "to": msg.To, "sid": *resp.Sid}).Debug("sms enviado")
	}
	return nil
}

// Phones repete a mensagem para uma lista fixa de telefones (alertas da equipe)
type Phones struct {
	SMS    Notifier
	Phones []string
}

func (p *Phones) Channel() string {
	return "sms"
}

func (p *Phones) Notify(ctx context.Context, msg Message) error {
	var errs []error
	for _, phone := range p.Phones {
		msg.To = phone
		if err := p.SMS.Notify(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
