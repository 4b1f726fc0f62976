package imaging

import "errors"

var (
	// ErrEncode — изображение не удалось сериализовать.
	ErrEncode = errors.New("image encoding failed")

	// ErrDecode — строка или байты не являются корректным изображением.
	ErrDecode = errors.New("image decoding failed")
)
