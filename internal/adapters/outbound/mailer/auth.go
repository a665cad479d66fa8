package mailer

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

// credentialsAuth is an smtp.Auth for the PLAIN and LOGIN mechanisms. Unlike
// smtp.PlainAuth it also runs over an unencrypted connection, which relays
// without STARTTLS still require.
type credentialsAuth struct {
	mechanism string
	username  string
	password  string
}

// newAuth picks PLAIN when the server advertises it, LOGIN when only LOGIN
// is offered, and PLAIN otherwise. advertised is the parameter string of the
// AUTH extension, e.g. "PLAIN LOGIN".
func newAuth(advertised, username, password string) smtp.Auth {
	mechanism := "PLAIN"
	offered := strings.Fields(strings.ToUpper(advertised))
	hasPlain, hasLogin := false, false
	for _, m := range offered {
		switch m {
		case "PLAIN":
			hasPlain = true
		case "LOGIN":
			hasLogin = true
		}
	}
	if !hasPlain && hasLogin {
		mechanism = "LOGIN"
	}
	return &credentialsAuth{mechanism: mechanism, username: username, password: password}
}

func (a *credentialsAuth) Start(_ *smtp.ServerInfo) (string, []byte, error) {
	if a.mechanism == "LOGIN" {
		return "LOGIN", nil, nil
	}
	return "PLAIN", []byte("\x00" + a.username + "\x00" + a.password), nil
}

func (a *credentialsAuth) Next(fromServer []byte, more bool) ([]byte, error) {
	if !more {
		return nil, nil
	}
	if a.mechanism != "LOGIN" {
		return nil, errors.New("unexpected server challenge")
	}
	challenge := strings.ToLower(strings.TrimSpace(string(fromServer)))
	switch {
	case strings.HasPrefix(challenge, "username"):
		return []byte(a.username), nil
	case strings.HasPrefix(challenge, "password"):
		return []byte(a.password), nil
	default:
		return nil, fmt.Errorf("unexpected LOGIN challenge %q", fromServer)
	}
}
