package qrcode

import (
	"fmt"
	"strings"

	"bookkeep/config"
	"bookkeep/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

const (
	defaultSize = 256
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size := defaultSize
	level := qrcode.Medium
	baseURL := ""

	if cfg.QRCode != nil {
		if cfg.QRCode.Size > 0 {
			size = cfg.QRCode.Size
		}
		level = recoveryLevel(cfg.QRCode.ErrorCorrectionLevel)
		baseURL = strings.TrimRight(cfg.QRCode.BaseURL, "/")
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              baseURL,
	}
}

// GenerateOrderQR renders a PNG QR code pointing at the order detail page.
func (s *qrcodeService) GenerateOrderQR(orderID uint) ([]byte, error) {
	qrCode, err := qrcode.New(s.orderURL(orderID), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	// Generate PNG image
	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// orderURL builds the link encoded into the QR code.
func (s *qrcodeService) orderURL(orderID uint) string {
	return fmt.Sprintf("%s/orders/%d", s.baseURL, orderID)
}

// recoveryLevel maps the configured letter to the library's level.
func recoveryLevel(errorCorrectionLevel string) qrcode.RecoveryLevel {
	switch errorCorrectionLevel {
	case "L":
		return qrcode.Low
	case "M":
		return qrcode.Medium
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}
