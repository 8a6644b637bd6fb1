package render

import (
	"image"

	"github.com/skip2/go-qrcode"
)

const defaultQRCodeSizePx = 256

// GenerateQRCodeImage returns a QR code image for the given payload.
// If payload is empty, it returns (nil, nil).
func GenerateQRCodeImage(payload string, sizePx int) (image.Image, error) {
	if payload == "" {
		return nil, nil
	}
	qrCode, err := newQRCode(payload)
	if err != nil {
		return nil, err
	}
	return qrCode.Image(qrSize(sizePx)), nil
}

// GenerateQRCodePNG encodes payload as a PNG QR code, used to pair a phone
// with the settings page.
func GenerateQRCodePNG(payload string, sizePx int) ([]byte, error) {
	qrCode, err := newQRCode(payload)
	if err != nil {
		return nil, err
	}
	return qrCode.PNG(qrSize(sizePx))
}

func newQRCode(payload string) (*qrcode.QRCode, error) {
	return qrcode.New(payload, qrcode.Medium)
}

func qrSize(sizePx int) int {
	if sizePx <= 0 {
		return defaultQRCodeSizePx
	}
	return sizePx
}
