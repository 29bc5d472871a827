package notification

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"bookkeep/config"
	"bookkeep/internal/domain/entity"
	"bookkeep/internal/domain/service"

	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSMTPNotifier_SkipsWhenUnconfigured(t *testing.T) {
	notifier := NewSMTPNotifier(&config.Config{}, discardLogger())

	err := notifier.SendOrderNotification(context.Background(), service.OrderNotification{
		ToEmail: "student@example.com",
		OrderID: 3,
		Status:  entity.StatusSubmitted,
	})
	assert.NoError(t, err)

	err = notifier.SendServiceNotification(context.Background(), service.ServiceNotification{
		ToEmail:   "student@example.com",
		ServiceID: 4,
		Status:    entity.StatusConfirmed,
	})
	assert.NoError(t, err)
}

func TestPlainBody_SkipsEmptyRows(t *testing.T) {
	body := plainBody("订单通知", "您的订单状态已更新：", "张三", []bodyRow{
		{"订单编号", "#12"},
		{"订单状态", "已发起"},
		{"厂家", ""},
		{"订单摘要", "移液枪 x2"},
	})

	assert.Contains(t, body, "订单通知")
	assert.Contains(t, body, "尊敬的 张三，")
	assert.Contains(t, body, "订单编号：#12")
	assert.Contains(t, body, "订单状态：已发起")
	assert.Contains(t, body, "订单摘要：移液枪 x2")
	assert.NotContains(t, body, "厂家")
	assert.Contains(t, body, "此邮件由系统自动发送，请勿回复。")
	assert.Contains(t, body, "报价及记账系统")
}

func TestHTMLBody_EscapesValues(t *testing.T) {
	body := htmlBody("服务记录通知", "服务记录状态已更新：", "<张三>", []bodyRow{
		{"服务内容", "维修<仪器>"},
	})

	assert.Contains(t, body, "&lt;张三&gt;")
	assert.Contains(t, body, "维修&lt;仪器&gt;")
	assert.NotContains(t, body, "<张三>")
}

func TestSMTPNotifier_MessageLayout(t *testing.T) {
	notifier := &smtpNotifier{
		cfg: &config.SMTPConfig{
			FromEmail: "noreply@example.com",
			FromName:  "报价系统",
		},
	}

	msg := string(notifier.message("user@example.com", "订单通知 - 订单 #1 已发起", "plain part", "<p>html part</p>"))

	assert.Contains(t, msg, "To: user@example.com\r\n")
	assert.Contains(t, msg, "<noreply@example.com>")
	assert.Contains(t, msg, "MIME-Version: 1.0")
	assert.Contains(t, msg, "multipart/alternative")
	assert.Contains(t, msg, "Content-Type: text/plain; charset=utf-8")
	assert.Contains(t, msg, "Content-Type: text/html; charset=utf-8")
	assert.Contains(t, msg, "plain part")
	assert.Contains(t, msg, "<p>html part</p>")
	// The closing boundary terminates the message.
	assert.True(t, strings.HasSuffix(msg, "--"+altBoundary+"--\r\n"))
	// Non-ASCII headers travel RFC 2047 encoded.
	assert.NotContains(t, msg, "Subject: 订单通知")
	assert.Contains(t, msg, "=?utf-8?q?")
}

func TestStatusText_CoversEveryState(t *testing.T) {
	for _, status := range entity.ValidStatuses() {
		assert.NotEmpty(t, statusText[status], "missing wording for %s", status)
	}
}
