package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Sender отправляет письма
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender отправляет письма через SMTP без аутентификации
// (совместимо с Mailpit в dev-окружении и внутренними релеями)
type SMTPSender struct {
	addr string
	from string
}

// NewSMTPSender создает новый SMTP отправитель
func NewSMTPSender(host, port, from string) *SMTPSender {
	host = strings.TrimSpace(host)
	port = strings.TrimSpace(port)
	from = strings.TrimSpace(from)
	if from == "" {
		from = "no-reply@barberbook.local"
	}
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%s", host, port),
		from: from,
	}
}

// Send отправляет письмо
func (s *SMTPSender) Send(to, subject, body string) error {
	msg := buildMessage(s.from, to, subject, body)
	return smtp.SendMail(s.addr, nil, s.from, []string{to}, []byte(msg))
}

// buildMessage собирает минимальное RFC 5322 сообщение
func buildMessage(from, to, subject, body string) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		subject,
		body,
	)
}
