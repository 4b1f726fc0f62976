package port

import (
	"context"
	"image"

	"detect-bot/internal/domain/entity"
)

// ObjectDetector интерфейс клиента удалённого сервиса детекции
type ObjectDetector interface {
	// Detect отправляет изображение на детекцию и возвращает результат.
	// Ошибка всегда имеет тип *entity.DetectionError.
	Detect(ctx context.Context, img image.Image, confidence float64) (*entity.DetectionResult, error)

	// CheckHealth проверяет доступность сервиса; никогда не возвращает ошибку,
	// все отказы сворачиваются в статус.
	CheckHealth(ctx context.Context) entity.HealthStatus
}
