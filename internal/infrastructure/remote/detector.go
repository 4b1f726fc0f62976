package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"detect-bot/internal/domain/entity"
	"detect-bot/internal/domain/port"
)

const (
	healthTimeout = 10 * time.Second
	// Запас на инференс модели на удалённой стороне.
	detectTimeout = 60 * time.Second

	// Ограничение на тело ответа с ошибкой, чтобы не тащить мегабайты в сообщение.
	maxErrorBody = 4 << 10
)

// RemoteDetector — клиент FastAPI-сервиса детекции объектов.
// Единственная точка контакта с сервисом: владеет таймаутами,
// разбором статусов и классификацией ошибок.
type RemoteDetector struct {
	baseURL      string
	codec        port.ImageCodec
	detectClient *http.Client
	healthClient *http.Client
}

// NewRemoteDetector создаёт клиент для сервиса по базовому URL.
func NewRemoteDetector(baseURL string, codec port.ImageCodec) *RemoteDetector {
	return &RemoteDetector{
		baseURL:      baseURL,
		codec:        codec,
		detectClient: &http.Client{Timeout: detectTimeout},
		healthClient: &http.Client{Timeout: healthTimeout},
	}
}

// Контракт POST /detect_base64.
type detectRequest struct {
	Image      string  `json:"image"`
	Confidence float64 `json:"confidence"`
}

type wireBBox struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

type wireDetection struct {
	ClassName  string    `json:"class_name"`
	Confidence float64   `json:"confidence"`
	BBox       *wireBBox `json:"bbox"`
}

type detectResponse struct {
	ResultImage  string          `json:"result_image"`
	Detections   []wireDetection `json:"detections"`
	TotalObjects int             `json:"total_objects"`
}

type healthResponse struct {
	ModelLoaded bool `json:"model_loaded"`
}

// CheckHealth опрашивает GET /health. Любой отказ сворачивается
// в статус, ошибки наружу не выходят.
func (d *RemoteDetector) CheckHealth(ctx context.Context) entity.HealthStatus {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"/health", nil)
	if err != nil {
		return entity.HealthStatus{}
	}

	resp, err := d.healthClient.Do(req)
	if err != nil {
		return entity.HealthStatus{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entity.HealthStatus{}
	}

	var health healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return entity.HealthStatus{}
	}

	return entity.HealthStatus{Reachable: true, ModelLoaded: health.ModelLoaded}
}

// Detect отправляет изображение на POST /detect_base64 и разбирает ответ.
// Одна попытка на вызов, без повторов: повтор — дело пользователя.
func (d *RemoteDetector) Detect(ctx context.Context, img image.Image, confidence float64) (*entity.DetectionResult, error) {
	encoded, err := d.codec.Encode(img)
	if err != nil {
		return nil, &entity.DetectionError{Kind: entity.KindEncodingFailed, Err: err}
	}

	payload, err := json.Marshal(detectRequest{Image: encoded, Confidence: confidence})
	if err != nil {
		return nil, &entity.DetectionError{Kind: entity.KindUnknown, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/detect_base64", bytes.NewReader(payload))
	if err != nil {
		return nil, &entity.DetectionError{Kind: entity.KindUnknown, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.detectClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &entity.DetectionError{
			Kind:   entity.KindServiceError,
			Status: resp.StatusCode,
			Body:   string(body),
		}
	}

	var wire detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, &entity.DetectionError{Kind: entity.KindSchemaError, Err: err}
	}

	return d.buildResult(wire)
}

// buildResult проверяет ответ на соответствие контракту и собирает результат.
func (d *RemoteDetector) buildResult(wire detectResponse) (*entity.DetectionResult, error) {
	// Отсутствующее поле detections — нарушение контракта, а не пустой результат.
	if wire.Detections == nil {
		return nil, &entity.DetectionError{
			Kind: entity.KindSchemaError,
			Err:  errors.New("response has no detections field"),
		}
	}

	detections := make([]entity.Detection, 0, len(wire.Detections))
	for i, det := range wire.Detections {
		if det.BBox == nil {
			return nil, &entity.DetectionError{
				Kind: entity.KindSchemaError,
				Err:  fmt.Errorf("detection %d has no bbox", i),
			}
		}
		detections = append(detections, entity.Detection{
			ClassName:  det.ClassName,
			Confidence: det.Confidence,
			Box: entity.BBox{
				X1: det.BBox.X1,
				Y1: det.BBox.Y1,
				X2: det.BBox.X2,
				Y2: det.BBox.Y2,
			},
		})
	}

	result := &entity.DetectionResult{
		Detections:   detections,
		TotalObjects: wire.TotalObjects,
	}

	// Битая картинка с разметкой не отменяет детекции: сервис уже
	// отработал, отдаём частичный результат без изображения.
	if wire.ResultImage != "" {
		annotated, err := d.codec.Decode(wire.ResultImage)
		if err != nil {
			log.Printf("Result image is not decodable, returning detections only: %v", err)
		} else {
			result.Annotated = annotated
		}
	}

	return result, nil
}

// classifyTransportError разделяет таймаут, отказ соединения и прочее.
func classifyTransportError(err error) *entity.DetectionError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &entity.DetectionError{Kind: entity.KindTimeout, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &entity.DetectionError{Kind: entity.KindTimeout, Err: err}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &entity.DetectionError{Kind: entity.KindConnectionFailed, Err: err}
	}

	return &entity.DetectionError{Kind: entity.KindUnknown, Err: err}
}

// Проверка реализации интерфейса
var _ port.ObjectDetector = (*RemoteDetector)(nil)
