package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"

	"detect-bot/internal/domain/entity"
	"detect-bot/internal/domain/port"
)

// DetectionService управляет одним циклом детекции: кадр пользователя
// уходит на удалённый сервис, обратно приходит результат. Ничего не
// кэширует: каждый вызов независим от предыдущих.
type DetectionService struct {
	users    *UserService
	detector port.ObjectDetector
}

// NewDetectionService создаёт сервис поверх клиента детекции.
func NewDetectionService(users *UserService, detector port.ObjectDetector) *DetectionService {
	return &DetectionService{
		users:    users,
		detector: detector,
	}
}

// Analyze выполняет один запрос детекции с указанным порогом уверенности.
func (s *DetectionService) Analyze(ctx context.Context, img image.Image, confidence float64) (*entity.DetectionResult, error) {
	if s.detector == nil {
		return nil, errors.New("detector is not configured")
	}

	return s.detector.Detect(ctx, img, entity.ClampConfidence(confidence))
}

// AnalyzeForUser выполняет детекцию с персональным порогом пользователя.
func (s *DetectionService) AnalyzeForUser(ctx context.Context, userID, chatID int64, img image.Image) (*entity.DetectionResult, error) {
	user, err := s.users.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	return s.Analyze(ctx, img, user.Confidence)
}

// Status опрашивает здоровье удалённого сервиса.
func (s *DetectionService) Status(ctx context.Context) entity.HealthStatus {
	if s.detector == nil {
		return entity.HealthStatus{}
	}

	return s.detector.CheckHealth(ctx)
}

// Summary собирает текстовый отчёт по найденным объектам.
func Summary(result *entity.DetectionResult) string {
	if result == nil || !result.HasObjects() {
		return "🔍 Объекты не найдены. Попробуйте уменьшить порог уверенности."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎯 Найдено объектов: %d\n", len(result.Detections))
	for i, det := range result.Detections {
		fmt.Fprintf(&b, "\n%d. %s — %.1f%%\n", i+1, det.ClassName, det.Confidence*100)
		fmt.Fprintf(&b, "   Координаты: (%.0f, %.0f) – (%.0f, %.0f)",
			det.Box.X1, det.Box.Y1, det.Box.X2, det.Box.Y2)
	}

	return b.String()
}

// HealthSummary переводит статус сервиса в сообщение для пользователя.
func HealthSummary(status entity.HealthStatus) string {
	switch {
	case status.Reachable && status.ModelLoaded:
		return "✅ API доступен, модель загружена"
	case status.Reachable:
		return "⚠️ API доступен, но модель не загружена"
	default:
		return "❌ API недоступен"
	}
}
