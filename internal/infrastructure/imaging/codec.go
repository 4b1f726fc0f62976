//go:build !gocv
// +build !gocv

package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	_ "image/png" // регистрация PNG-декодера для загрузок пользователя
)

const defaultQuality = 90

// JPEGCodec преобразует изображения в base64-строки для передачи сервису.
// Чистая Go-реализация; сборка с тегом gocv использует OpenCV.
type JPEGCodec struct {
	Quality int
}

// NewJPEGCodec создаёт кодек с качеством JPEG по умолчанию.
func NewJPEGCodec() *JPEGCodec {
	return &JPEGCodec{Quality: defaultQuality}
}

// Encode сериализует изображение в JPEG и кодирует байты в base64.
func (c *JPEGCodec) Encode(img image.Image) (string, error) {
	data, err := c.EncodeBytes(img)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// EncodeBytes сериализует изображение в JPEG.
func (c *JPEGCodec) EncodeBytes(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrEncode)
	}

	// Приводим к трёхканальному цвету: JPEG не умеет palette и alpha.
	normalized := normalizeRGB(img)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, normalized, &jpeg.Options{Quality: c.Quality}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}

// Decode раскодирует base64-строку обратно в изображение.
func (c *JPEGCodec) Decode(s string) (image.Image, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed base64: %v", ErrDecode, err)
	}
	return c.DecodeBytes(data)
}

// DecodeBytes раскодирует сырые байты JPEG или PNG.
func (c *JPEGCodec) DecodeBytes(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

// normalizeRGB переводит изображение в RGBA c непрозрачным фоном.
func normalizeRGB(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}
