package port

import "gadgetbot/internal/core/domain"

type ChartRenderer interface {
	// RenderChart draws the chart and returns it PNG encoded.
	RenderChart(chart domain.Chart) ([]byte, error)
}

type WordCloudRenderer interface {
	// RenderWordCloud lays out the words of text sized by frequency and returns the image PNG encoded.
	RenderWordCloud(text string) ([]byte, error)
}

type QREncoder interface {
	// EncodeQR returns a PNG QR code for data.
	EncodeQR(data string) ([]byte, error)
}
