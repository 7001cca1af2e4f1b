package renderer

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

const qrModuleSize = -10

// QR encodes text as QR codes with medium error correction.
type QR struct {
	level qrcode.RecoveryLevel
}

func NewQR() *QR {
	return &QR{level: qrcode.Medium}
}

func (q *QR) EncodeQR(data string) ([]byte, error) {
	code, err := qrcode.New(data, q.level)
	if err != nil {
		return nil, fmt.Errorf("error encoding QR code: %w", err)
	}

	// a negative size is the width of a single module in pixels
	png, err := code.PNG(qrModuleSize)
	if err != nil {
		return nil, fmt.Errorf("error writing QR code: %w", err)
	}

	return png, nil
}
