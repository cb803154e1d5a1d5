// Package qrimage paylaşım metnini taranabilir bir PNG'ye çevirir.
package qrimage

import (
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	MinSize     = 128
	MaxSize     = 1024
	DefaultSize = 256
)

var ErrEmptyContent = errors.New("qr içeriği boş olamaz")

// ClampSize boyutu izin verilen aralığa çeker; 0 veya negatif varsayılanı seçer.
func ClampSize(size int) int {
	switch {
	case size <= 0:
		return DefaultSize
	case size < MinSize:
		return MinSize
	case size > MaxSize:
		return MaxSize
	}
	return size
}

// PNG içeriği orta seviye hata düzeltmeli bir QR koduna kodlar.
func PNG(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	png, err := qrcode.Encode(content, qrcode.Medium, ClampSize(size))
	if err != nil {
		return nil, fmt.Errorf("qr kodu üretilemedi: %w", err)
	}
	return png, nil
}
