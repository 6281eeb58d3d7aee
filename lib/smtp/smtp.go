package smtp

import (
	"bytes"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

var Instance Provider

type Provider interface {
	SendHTML(to, subject, htmlBody string) error
}

func Connect(user, password, host, port, from, senderName string, tlsEnabled bool) error {
	if from == "" {
		from = user
	}
	Instance = &impl{
		user:       user,
		password:   password,
		host:       host,
		port:       port,
		from:       from,
		senderName: senderName,
		tlsEnabled: tlsEnabled,
	}
	return nil
}

type impl struct {
	user       string
	password   string
	host       string
	port       string
	from       string
	senderName string
	tlsEnabled bool
}

func (i impl) SendHTML(to, subject, htmlBody string) (err error) {
	logger := log.
		WithField("recipient", to).
		WithField("subject", subject)
	if i.user == "" || i.host == "" || i.port == "" {
		logger.Warn("email is not sent, smtp client is not configured")
		return nil
	}
	body, err := i.compose(to, subject, htmlBody)
	if err != nil {
		return err
	}
	auth := sasl.NewPlainClient("", i.user, i.password)
	sendTo := []string{
		to,
	}
	if i.tlsEnabled {
		err = smtp.SendMailTLS(i.host+":"+i.port, auth, i.from, sendTo, body)
	} else {
		err = smtp.SendMail(i.host+":"+i.port, auth, i.from, sendTo, body)
	}
	if err != nil {
		logger.WithError(err).Error("email send failed")
		return err
	}
	logger.Info("email sent")
	return nil
}

func (i impl) compose(to, subject, htmlBody string) (*bytes.Buffer, error) {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", i.from, i.senderName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	body := new(bytes.Buffer)
	_, err := msg.WriteTo(body)
	if err != nil {
		return nil, errors.Wrap(err, "compose email")
	}
	return body, nil
}
