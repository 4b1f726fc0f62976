package port

import "image"

// ImageCodec интерфейс преобразования изображений для передачи по сети
type ImageCodec interface {
	// Encode сериализует изображение в JPEG и кодирует в base64-строку
	Encode(img image.Image) (string, error)

	// EncodeBytes сериализует изображение в JPEG без base64
	EncodeBytes(img image.Image) ([]byte, error)

	// Decode раскодирует base64-строку обратно в изображение
	Decode(s string) (image.Image, error)

	// DecodeBytes раскодирует сырые байты изображения (JPEG или PNG)
	DecodeBytes(data []byte) (image.Image, error)
}
