package infra

import (
	"errors"
	"fmt"
	"net/smtp"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/config"

	"github.com/jordan-wright/email"
)

// ErrMailDeshabilitado is returned by Send when no SMTP host is configured.
var ErrMailDeshabilitado = errors.New("mailer: SMTP_HOST no configurado")

// Mensaje is one outgoing mail. Adjunto is an optional file path.
type Mensaje struct {
	Para    []string
	Asunto  string
	Cuerpo  string
	Adjunto string
}

// Mailer sends mail through the configured SMTP relay.
type Mailer struct {
	host     string
	user     string
	password string
	from     string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	from := cfg.MailFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     from,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

func (m *Mailer) Habilitado() bool { return m.host != "" }

func (m *Mailer) Send(msg Mensaje) error {
	if !m.Habilitado() {
		return ErrMailDeshabilitado
	}
	if len(msg.Para) == 0 {
		return errors.New("mailer: sin destinatarios")
	}

	e := email.NewEmail()
	e.From = m.from
	e.To = msg.Para
	e.Subject = msg.Asunto
	e.Text = []byte(msg.Cuerpo)

	if msg.Adjunto != "" {
		if _, err := e.AttachFile(msg.Adjunto); err != nil {
			return fmt.Errorf("mailer: adjuntar %s: %w", msg.Adjunto, err)
		}
	}

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	return e.Send(m.addr, auth)
}
