package app

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"detect-bot/internal/domain/entity"
	"detect-bot/internal/infrastructure/storage"
)

// stubDetector подменяет удалённый сервис в тестах.
type stubDetector struct {
	result        *entity.DetectionResult
	err           error
	health        entity.HealthStatus
	gotConfidence float64
}

func (d *stubDetector) Detect(ctx context.Context, img image.Image, confidence float64) (*entity.DetectionResult, error) {
	d.gotConfidence = confidence
	if d.err != nil {
		return nil, d.err
	}
	return d.result, nil
}

func (d *stubDetector) CheckHealth(ctx context.Context) entity.HealthStatus {
	return d.health
}

func newTestService(detector *stubDetector) *DetectionService {
	users := NewUserService(storage.NewMemoryUserRepository())
	return NewDetectionService(users, detector)
}

func TestDetectionService_Analyze(t *testing.T) {
	detector := &stubDetector{
		result: &entity.DetectionResult{
			Detections:   []entity.Detection{{ClassName: "person", Confidence: 0.9}},
			TotalObjects: 1,
		},
	}
	svc := newTestService(detector)

	result, err := svc.Analyze(context.Background(), image.NewRGBA(image.Rect(0, 0, 4, 4)), 0.4)
	require.NoError(t, err)
	require.Len(t, result.Detections, 1)
	require.Equal(t, 0.4, detector.gotConfidence)
}

func TestDetectionService_AnalyzeClampsConfidence(t *testing.T) {
	detector := &stubDetector{result: &entity.DetectionResult{Detections: []entity.Detection{}}}
	svc := newTestService(detector)

	_, err := svc.Analyze(context.Background(), image.NewRGBA(image.Rect(0, 0, 4, 4)), 7.0)
	require.NoError(t, err)
	require.Equal(t, entity.MaxConfidence, detector.gotConfidence)
}

func TestDetectionService_AnalyzeWithoutDetector(t *testing.T) {
	svc := newTestService(nil)
	svc.detector = nil

	_, err := svc.Analyze(context.Background(), image.NewRGBA(image.Rect(0, 0, 4, 4)), 0.5)
	require.Error(t, err)
}

func TestDetectionService_AnalyzeForUser_UsesStoredConfidence(t *testing.T) {
	detector := &stubDetector{result: &entity.DetectionResult{Detections: []entity.Detection{}}}
	repo := storage.NewMemoryUserRepository()
	users := NewUserService(repo)
	svc := NewDetectionService(users, detector)
	ctx := context.Background()

	_, err := users.SetConfidence(ctx, 1, 10, 0.25)
	require.NoError(t, err)

	_, err = svc.AnalyzeForUser(ctx, 1, 10, image.NewRGBA(image.Rect(0, 0, 4, 4)))
	require.NoError(t, err)
	require.Equal(t, 0.25, detector.gotConfidence)
}

func TestDetectionService_Status(t *testing.T) {
	detector := &stubDetector{health: entity.HealthStatus{Reachable: true, ModelLoaded: true}}
	svc := newTestService(detector)

	status := svc.Status(context.Background())
	require.True(t, status.Reachable)
	require.True(t, status.ModelLoaded)
}

func TestSummary_NoObjects(t *testing.T) {
	text := Summary(&entity.DetectionResult{Detections: []entity.Detection{}, TotalObjects: 0})
	require.Contains(t, text, "не найдены")
}

func TestSummary_ListsEveryDetection(t *testing.T) {
	text := Summary(&entity.DetectionResult{
		Detections: []entity.Detection{
			{ClassName: "person", Confidence: 0.913, Box: entity.BBox{X1: 10, Y1: 20, X2: 110, Y2: 220}},
			{ClassName: "dog", Confidence: 0.42, Box: entity.BBox{X1: 5, Y1: 5, X2: 50, Y2: 60}},
		},
		TotalObjects: 2,
	})
	require.Contains(t, text, "Найдено объектов: 2")
	require.Contains(t, text, "person — 91.3%")
	require.Contains(t, text, "dog — 42.0%")
	require.Contains(t, text, "(10, 20) – (110, 220)")
}

// Сервис мог прислать несогласованный total_objects: список всё равно рендерится.
func TestSummary_IgnoresTotalObjectsMismatch(t *testing.T) {
	text := Summary(&entity.DetectionResult{
		Detections: []entity.Detection{
			{ClassName: "car", Confidence: 0.8, Box: entity.BBox{X2: 10, Y2: 10}},
		},
		TotalObjects: 9,
	})
	require.Contains(t, text, "Найдено объектов: 1")
	require.Contains(t, text, "car")
}

func TestHealthSummary(t *testing.T) {
	require.Contains(t, HealthSummary(entity.HealthStatus{Reachable: true, ModelLoaded: true}), "модель загружена")
	require.Contains(t, HealthSummary(entity.HealthStatus{Reachable: true}), "не загружена")
	require.Contains(t, HealthSummary(entity.HealthStatus{}), "недоступен")
}
