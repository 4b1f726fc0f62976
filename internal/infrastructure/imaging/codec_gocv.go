//go:build gocv
// +build gocv

package imaging

import (
	"encoding/base64"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

const defaultQuality = 90

// JPEGCodec преобразует изображения в base64-строки для передачи сервису.
// Вариант на OpenCV, собирается с тегом gocv.
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

	// ImageToMatRGB сразу даёт трёхканальную матрицу без alpha.
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	defer mat.Close()

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, mat, []int{gocv.IMWriteJpegQuality, c.Quality})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	defer buf.Close()

	data := make([]byte, len(buf.GetBytes()))
	copy(data, buf.GetBytes())
	return data, nil
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
	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}
