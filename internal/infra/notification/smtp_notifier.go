// Package notification delivers status change mail over SMTP.
package notification

import (
	"context"
	"crypto/tls"
	"fmt"
	"html"
	"log/slog"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"bookkeep/config"
	"bookkeep/internal/domain/entity"
	"bookkeep/internal/domain/service"

	"github.com/pkg/errors"
)

const altBoundary = "bookkeep-mail-boundary"

// statusText maps lifecycle states to the wording used in subjects and bodies.
var statusText = map[entity.Status]string{
	entity.StatusDraft:     "已创建",
	entity.StatusSubmitted: "已发起",
	entity.StatusConfirmed: "已确认",
	entity.StatusInvalid:   "已标记为无效",
}

// smtpNotifier implements the service.Notifier interface over SMTP with
// optional STARTTLS. A missing mail account turns every send into a logged
// no-op so the rest of the system keeps working without one.
type smtpNotifier struct {
	cfg    *config.SMTPConfig
	logger *slog.Logger
}

// NewSMTPNotifier is the constructor for smtpNotifier.
func NewSMTPNotifier(cfg *config.Config, logger *slog.Logger) service.Notifier {
	return &smtpNotifier{
		cfg:    cfg.SMTP,
		logger: logger,
	}
}

func (s *smtpNotifier) configured() bool {
	return s.cfg != nil && s.cfg.Host != "" && s.cfg.Username != "" && s.cfg.Password != ""
}

// SendOrderNotification delivers an order status change message.
func (s *smtpNotifier) SendOrderNotification(ctx context.Context, n service.OrderNotification) error {
	if !s.configured() {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "Mail account not configured, order notification skipped",
			slog.Uint64("order_id", uint64(n.OrderID)),
		)

		return nil
	}

	text := statusText[n.Status]
	subject := fmt.Sprintf("订单通知 - 订单 #%d %s", n.OrderID, text)
	rows := []bodyRow{
		{"订单编号", fmt.Sprintf("#%d", n.OrderID)},
		{"订单状态", text},
		{"厂家", n.SupplierName},
		{"订单摘要", n.ItemsSummary},
	}

	if err := s.deliver(n.ToEmail, s.message(n.ToEmail, subject,
		plainBody("订单通知", "您的订单状态已更新：", n.ToName, rows),
		htmlBody("订单通知", "您的订单状态已更新：", n.ToName, rows),
	)); err != nil {
		return errors.Wrap(err, "failed to send order notification")
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "Order notification sent",
		slog.Uint64("order_id", uint64(n.OrderID)),
		slog.String("status", n.Status.String()),
	)

	return nil
}

// SendServiceNotification delivers a service record status change message.
func (s *smtpNotifier) SendServiceNotification(ctx context.Context, n service.ServiceNotification) error {
	if !s.configured() {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "Mail account not configured, service notification skipped",
			slog.Uint64("service_id", uint64(n.ServiceID)),
		)

		return nil
	}

	text := statusText[n.Status]
	subject := fmt.Sprintf("服务记录通知 - 服务记录 #%d %s", n.ServiceID, text)
	rows := []bodyRow{
		{"服务记录编号", fmt.Sprintf("#%d", n.ServiceID)},
		{"服务状态", text},
		{"厂家", n.SupplierName},
		{"服务内容", n.Content},
		{"服务金额", fmt.Sprintf("¥%.2f", n.Amount)},
	}

	if err := s.deliver(n.ToEmail, s.message(n.ToEmail, subject,
		plainBody("服务记录通知", "服务记录状态已更新：", n.ToName, rows),
		htmlBody("服务记录通知", "服务记录状态已更新：", n.ToName, rows),
	)); err != nil {
		return errors.Wrap(err, "failed to send service notification")
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "Service notification sent",
		slog.Uint64("service_id", uint64(n.ServiceID)),
		slog.String("status", n.Status.String()),
	)

	return nil
}

// bodyRow is one labelled line of a notification body.
type bodyRow struct {
	label string
	value string
}

func plainBody(title, lede, toName string, rows []bodyRow) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\r\n\r\n尊敬的 %s，\r\n\r\n%s\r\n\r\n", title, toName, lede)
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		fmt.Fprintf(&b, "%s：%s\r\n", row.label, row.value)
	}
	b.WriteString("\r\n请登录系统查看详情。\r\n\r\n此邮件由系统自动发送，请勿回复。\r\n\r\n报价及记账系统\r\n")

	return b.String()
}

func htmlBody(title, lede, toName string, rows []bodyRow) string {
	var b strings.Builder

	b.WriteString(`<html><head><meta charset="UTF-8"></head>`)
	b.WriteString(`<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">`)
	b.WriteString(`<div style="max-width: 600px; margin: 0 auto; padding: 20px;">`)
	fmt.Fprintf(&b, `<h2 style="color: #4472C4;">%s</h2>`, title)
	fmt.Fprintf(&b, "<p>尊敬的 %s，</p><p>%s</p>", html.EscapeString(toName), lede)
	b.WriteString(`<div style="background-color: #f5f5f5; padding: 15px; border-radius: 5px; margin: 20px 0;">`)
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		fmt.Fprintf(&b, "<p><strong>%s：</strong>%s</p>", row.label, html.EscapeString(row.value))
	}
	b.WriteString(`</div><p>请登录系统查看详情。</p><p>此邮件由系统自动发送，请勿回复。</p>`)
	b.WriteString(`<hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">`)
	b.WriteString(`<p style="color: #999; font-size: 12px;">报价及记账系统</p>`)
	b.WriteString(`</div></body></html>`)

	return b.String()
}

// message assembles a multipart/alternative mail with plain and HTML parts.
func (s *smtpNotifier) message(to, subject, plain, htmlPart string) []byte {
	var b strings.Builder

	from := s.cfg.FromEmail
	if s.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", s.cfg.FromName), s.cfg.FromEmail)
	}

	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", altBoundary)

	fmt.Fprintf(&b, "--%s\r\n", altBoundary)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(plain)
	fmt.Fprintf(&b, "\r\n--%s\r\n", altBoundary)
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(htmlPart)
	fmt.Fprintf(&b, "\r\n--%s--\r\n", altBoundary)

	return []byte(b.String())
}

// deliver speaks SMTP to the configured server, upgrading to TLS when asked
// and the server supports it.
func (s *smtpNotifier) deliver(to string, msg []byte) error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))

	client, err := smtp.Dial(addr)
	if err != nil {
		return errors.Wrap(err, "failed to dial SMTP server")
	}
	defer client.Close()

	if s.cfg.UseTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
				return errors.Wrap(err, "failed to start TLS")
			}
		}
	}

	if ok, _ := client.Extension("AUTH"); ok {
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return errors.Wrap(err, "failed to authenticate with SMTP server")
		}
	}

	if err := client.Mail(s.cfg.FromEmail); err != nil {
		return errors.Wrap(err, "failed to set mail sender")
	}
	if err := client.Rcpt(to); err != nil {
		return errors.Wrap(err, "failed to set mail recipient")
	}

	w, err := client.Data()
	if err != nil {
		return errors.Wrap(err, "failed to open mail data writer")
	}
	if _, err := w.Write(msg); err != nil {
		return errors.Wrap(err, "failed to write mail body")
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "failed to finish mail body")
	}

	return client.Quit()
}
