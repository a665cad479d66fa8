package mailer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	netmail "net/mail"
	"net/smtp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/abdidvp/integrity/internal/domain"
)

type bufferCloser struct {
	bytes.Buffer
	closed bool
}

func (b *bufferCloser) Close() error {
	b.closed = true
	return nil
}

var sendTime = time.Date(2024, 1, 3, 6, 0, 0, 0, time.UTC)

func newTestTransport(cfg domain.SMTPConfig, client smtpClient, dialErr error) (*Transport, *string) {
	dialed := new(string)
	tr := New(cfg, nil)
	tr.now = func() time.Time { return sendTime }
	tr.dial = func(_ context.Context, addr string) (smtpClient, error) {
		*dialed = addr
		if dialErr != nil {
			return nil, dialErr
		}
		return client, nil
	}
	return tr, dialed
}

func testMessage() domain.Message {
	return domain.Message{
		From:    "reports@example.com",
		To:      []string{"ops@example.com", "dba@example.com"},
		Subject: "✅ Data Integrity Check SUCCESS on 2024-01-03",
		HTML:    "<html><h1>ALL GOOD</h1></html>",
	}
}

func TestSend_FullConversation(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMocksmtpClient(ctrl)
	body := &bufferCloser{}

	cfg := domain.SMTPConfig{Host: "smtp.example.com", Port: 587, UseTLS: true, Username: "reports@example.com", Password: "pw"}
	tr, dialed := newTestTransport(cfg, client, nil)

	gomock.InOrder(
		client.EXPECT().StartTLS(gomock.Any()).Return(nil),
		client.EXPECT().Extension("AUTH").Return(true, "PLAIN LOGIN"),
		client.EXPECT().Auth(gomock.Any()).Return(nil),
		client.EXPECT().Mail("reports@example.com").Return(nil),
		client.EXPECT().Rcpt("ops@example.com").Return(nil),
		client.EXPECT().Rcpt("dba@example.com").Return(nil),
		client.EXPECT().Data().Return(body, nil),
		client.EXPECT().Quit().Return(nil),
		client.EXPECT().Close().Return(nil),
	)

	require.NoError(t, tr.Send(context.Background(), testMessage()))
	assert.Equal(t, "smtp.example.com:587", *dialed)
	assert.True(t, body.closed)

	parsed, err := netmail.ReadMessage(&body.Buffer)
	require.NoError(t, err)
	to, err := parsed.Header.AddressList("To")
	require.NoError(t, err)
	require.Len(t, to, 2)
	assert.Equal(t, "ops@example.com", to[0].Address)
	assert.Equal(t, "dba@example.com", to[1].Address)
}

func TestSend_AuthenticatesWithoutTLS(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMocksmtpClient(ctrl)

	cfg := domain.SMTPConfig{Host: "relay.example.com", Port: 25, Username: "reports@example.com", Password: "pw"}
	tr, _ := newTestTransport(cfg, client, nil)

	var mechanism string
	var initial []byte
	client.EXPECT().Extension("AUTH").Return(true, "PLAIN LOGIN")
	client.EXPECT().Auth(gomock.Any()).DoAndReturn(func(a smtp.Auth) error {
		var err error
		mechanism, initial, err = a.Start(&smtp.ServerInfo{Name: "relay.example.com", TLS: false, Auth: []string{"PLAIN", "LOGIN"}})
		return err
	})
	client.EXPECT().Mail(gomock.Any()).Return(nil)
	client.EXPECT().Rcpt(gomock.Any()).Return(nil).Times(2)
	client.EXPECT().Data().Return(&bufferCloser{}, nil)
	client.EXPECT().Quit().Return(nil)
	client.EXPECT().Close().Return(nil)

	require.NoError(t, tr.Send(context.Background(), testMessage()))
	assert.Equal(t, "PLAIN", mechanism)
	assert.Equal(t, "\x00reports@example.com\x00pw", string(initial))
}

func TestSend_InvalidRecipientFailsBeforeDialing(t *testing.T) {
	dialed := false
	tr := New(domain.SMTPConfig{Host: "relay", Port: 25}, nil)
	tr.dial = func(context.Context, string) (smtpClient, error) {
		dialed = true
		return nil, errors.New("unexpected dial")
	}

	msg := testMessage()
	msg.To = []string{"not an address"}
	err := tr.Send(context.Background(), msg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "building message")
	assert.False(t, dialed)
}

func TestSend_PlainWithoutTLSOrAuth(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMocksmtpClient(ctrl)

	tr, _ := newTestTransport(domain.SMTPConfig{Host: "relay", Port: 25}, client, nil)

	client.EXPECT().Mail(gomock.Any()).Return(nil)
	client.EXPECT().Rcpt(gomock.Any()).Return(nil).Times(2)
	client.EXPECT().Data().Return(&bufferCloser{}, nil)
	client.EXPECT().Quit().Return(nil)
	client.EXPECT().Close().Return(nil)

	require.NoError(t, tr.Send(context.Background(), testMessage()))
}

func TestSend_StartTLSAndAuthFailuresAreTolerated(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMocksmtpClient(ctrl)

	cfg := domain.SMTPConfig{Host: "relay", Port: 587, UseTLS: true, Username: "u", Password: "p"}
	tr, _ := newTestTransport(cfg, client, nil)

	client.EXPECT().StartTLS(gomock.Any()).Return(errors.New("tls: handshake failure"))
	client.EXPECT().Extension("AUTH").Return(true, "PLAIN")
	client.EXPECT().Auth(gomock.Any()).Return(errors.New("535 authentication failed"))
	client.EXPECT().Mail(gomock.Any()).Return(nil)
	client.EXPECT().Rcpt(gomock.Any()).Return(nil).Times(2)
	client.EXPECT().Data().Return(&bufferCloser{}, nil)
	client.EXPECT().Quit().Return(nil)
	client.EXPECT().Close().Return(nil)

	assert.NoError(t, tr.Send(context.Background(), testMessage()))
}

func TestSend_NoAuthExtensionSkipsAuth(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMocksmtpClient(ctrl)

	tr, _ := newTestTransport(domain.SMTPConfig{Host: "relay", Port: 25, Username: "u", Password: "p"}, client, nil)

	client.EXPECT().Extension("AUTH").Return(false, "")
	client.EXPECT().Mail(gomock.Any()).Return(nil)
	client.EXPECT().Rcpt(gomock.Any()).Return(nil).Times(2)
	client.EXPECT().Data().Return(&bufferCloser{}, nil)
	client.EXPECT().Quit().Return(nil)
	client.EXPECT().Close().Return(nil)

	assert.NoError(t, tr.Send(context.Background(), testMessage()))
}

func TestSend_RecipientRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMocksmtpClient(ctrl)

	tr, _ := newTestTransport(domain.SMTPConfig{Host: "relay", Port: 25}, client, nil)

	client.EXPECT().Mail(gomock.Any()).Return(nil)
	client.EXPECT().Rcpt("ops@example.com").Return(errors.New("550 no such user"))
	client.EXPECT().Close().Return(nil)

	err := tr.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RCPT TO ops@example.com")
	assert.Contains(t, err.Error(), "550")
}

func TestSend_DataFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMocksmtpClient(ctrl)

	tr, _ := newTestTransport(domain.SMTPConfig{Host: "relay", Port: 25}, client, nil)

	client.EXPECT().Mail(gomock.Any()).Return(nil)
	client.EXPECT().Rcpt(gomock.Any()).Return(nil).Times(2)
	client.EXPECT().Data().Return(nil, errors.New("554 transaction failed"))
	client.EXPECT().Close().Return(nil)

	assert.ErrorContains(t, tr.Send(context.Background(), testMessage()), "DATA")
}

func TestSend_DialFailure(t *testing.T) {
	tr, _ := newTestTransport(domain.SMTPConfig{Host: "relay", Port: 25}, nil, errors.New("connection refused"))

	err := tr.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "relay:25")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSend_NoRecipients(t *testing.T) {
	tr, _ := newTestTransport(domain.SMTPConfig{Host: "relay", Port: 25}, nil, nil)
	msg := testMessage()
	msg.To = nil
	assert.Error(t, tr.Send(context.Background(), msg))
}

func TestBuildMessage(t *testing.T) {
	m, err := BuildMessage(testMessage(), sendTime)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)

	parsed, err := netmail.ReadMessage(&buf)
	require.NoError(t, err)

	from, err := parsed.Header.AddressList("From")
	require.NoError(t, err)
	require.Len(t, from, 1)
	assert.Equal(t, "reports@example.com", from[0].Address)

	date, err := parsed.Header.Date()
	require.NoError(t, err)
	assert.True(t, sendTime.Equal(date))

	rawSubject := parsed.Header.Get("Subject")
	assert.NotContains(t, rawSubject, "✅", "subject must be encoded")
	subject, err := new(mime.WordDecoder).DecodeHeader(rawSubject)
	require.NoError(t, err)
	assert.Equal(t, testMessage().Subject, subject)

	assert.Contains(t, parsed.Header.Get("Content-Type"), "text/html")
	body, err := io.ReadAll(parsed.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "ALL GOOD")
}

func TestBuildMessage_InvalidSender(t *testing.T) {
	msg := testMessage()
	msg.From = "@@"
	_, err := BuildMessage(msg, sendTime)
	assert.ErrorContains(t, err, "sender")
}

func TestNewAuth_PlainOverPlaintext(t *testing.T) {
	a := newAuth("LOGIN PLAIN", "user", "secret")
	proto, resp, err := a.Start(&smtp.ServerInfo{Name: "relay", TLS: false})
	require.NoError(t, err)
	assert.Equal(t, "PLAIN", proto)
	assert.Equal(t, "\x00user\x00secret", string(resp))

	next, err := a.Next(nil, false)
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestNewAuth_LoginWhenOnlyLoginOffered(t *testing.T) {
	a := newAuth("login", "user", "secret")
	proto, resp, err := a.Start(&smtp.ServerInfo{Name: "relay", TLS: false})
	require.NoError(t, err)
	assert.Equal(t, "LOGIN", proto)
	assert.Nil(t, resp)

	user, err := a.Next([]byte("Username:"), true)
	require.NoError(t, err)
	assert.Equal(t, "user", string(user))

	pass, err := a.Next([]byte("Password:"), true)
	require.NoError(t, err)
	assert.Equal(t, "secret", string(pass))

	_, err = a.Next([]byte("Token:"), true)
	assert.Error(t, err)
}
