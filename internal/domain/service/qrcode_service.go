package service

// QRCodeService defines the interface for QR code generation services
type QRCodeService interface {
	// GenerateOrderQR renders a PNG QR code pointing at the order detail page.
	GenerateOrderQR(orderID uint) ([]byte, error)
}
