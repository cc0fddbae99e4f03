package notification

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type fakeCreator struct {
	sent []*twilioApi.CreateMessageParams
	err  error
}

func (f *fakeCreator) CreateMessage(p *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, p)
	sid := "SM123"
	return &twilioApi.ApiV2010Message{Sid: &sid}, nil
}

type stubNotifier struct {
	channel string
	err     error
	calls   int
}

func (s *stubNotifier) Notify(context.Context, Message) error { s.calls++; return s.err }
func (s *stubNotifier) Channel() string                      { return s.channel }

func TestWebhookPostsJSON(t *testing.T) {
	var got Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL)
	err := wh.Notify(context.Background(), Message{To: "+5511987654321", Subject: "vencidos", Body: "3 recebíveis vencidos"})
	require.NoError(t, err)
	assert.Equal(t, "vencidos", got.Subject)
	assert.Equal(t, "3 recebíveis vencidos", got.Body)
	assert.Empty(t, got.To)
}

func TestWebhookReportsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	assert.Error(t, NewWebhook(srv.URL).Notify(context.Background(), Message{Body: "x"}))
	assert.Nil(t, NewWebhook(""))
}

func TestSMS(t *testing.T) {
	fake := &fakeCreator{}
	sms := &SMS{api: fake, From: "+15550001111"}

	require.NoError(t, sms.Notify(context.Background(), Message{To: "+5511987654321", Body: "olá"}))
	require.Len(t, fake.sent, 1)
	assert.Equal(t, "+5511987654321", *fake.sent[0].To)
	assert.Equal(t, "+15550001111", *fake.sent[0].From)
	assert.Equal(t, "olá", *fake.sent[0].Body)

	assert.Error(t, sms.Notify(context.Background(), Message{Body: "sem destino"}))

	fake.err = errors.New("twilio fora")
	assert.Error(t, sms.Notify(context.Background(), Message{To: "+5511987654321", Body: "x"}))

	assert.Nil(t, NewSMS("", "", ""))
}

func TestMultiDeliversToAllAndJoinsErrors(t *testing.T) {
	ok := &stubNotifier{channel: "a"}
	bad := &stubNotifier{channel: "b", err: errors.New("falhou")}
	m := NewMulti(nil, ok, bad)

	err := m.Notify(context.Background(), Message{Body: "x"})
	assert.Error(t, err)
	assert.Equal(t, 1, ok.calls)
	assert.Equal(t, 1, bad.calls)

	var empty *Multi
	assert.NoError(t, empty.Notify(context.Background(), Message{}))
}

func TestPhonesSendsToEveryNumber(t *testing.T) {
	fake := &fakeCreator{}
	p := &Phones{SMS: &SMS{api: fake, From: "+5511900000000"}, Phones: []string{"+5511911111111", "+5511922222222"}}

	require.NoError(t, p.Notify(context.Background(), Message{Body: "3 recebíveis vencidos"}))
	require.Len(t, fake.sent, 2)
	assert.Equal(t, "+5511911111111", *fake.sent[0].To)
	assert.Equal(t, "+5511922222222", *fake.sent[1].To)
}
