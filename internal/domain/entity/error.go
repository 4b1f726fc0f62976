package entity

import "fmt"

// ErrorKind классифицирует отказ запроса детекции.
type ErrorKind string

const (
	KindEncodingFailed   ErrorKind = "encoding_failed"   // не удалось закодировать изображение
	KindDecodingFailed   ErrorKind = "decoding_failed"   // не удалось раскодировать ответную картинку
	KindTimeout          ErrorKind = "timeout"           // истёк таймаут запроса
	KindConnectionFailed ErrorKind = "connection_failed" // соединение не установлено
	KindServiceError     ErrorKind = "service_error"     // сервис ответил не-200 статусом
	KindSchemaError      ErrorKind = "schema_error"      // ответ не соответствует контракту
	KindUnknown          ErrorKind = "unknown"           // прочие транспортные ошибки
)

// DetectionError — единый тип ошибки клиента детекции.
// Kind заполнен всегда, Status и Body — только для KindServiceError.
type DetectionError struct {
	Kind   ErrorKind
	Status int
	Body   string
	Err    error
}

func (e *DetectionError) Error() string {
	switch {
	case e.Kind == KindServiceError:
		return fmt.Sprintf("detection failed (%s): service returned status %d", e.Kind, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("detection failed (%s): %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("detection failed (%s)", e.Kind)
	}
}

func (e *DetectionError) Unwrap() error {
	return e.Err
}
