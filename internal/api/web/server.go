package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	app "detect-bot/internal/application"
	"detect-bot/internal/domain/entity"
	"detect-bot/internal/domain/port"
)

// Handler — веб-вариант того же фронтенда: загрузка файла формой,
// результат в JSON для страницы.
type Handler struct {
	detections *app.DetectionService
	codec      port.ImageCodec
}

func NewHandler(detections *app.DetectionService, codec port.ImageCodec) *Handler {
	return &Handler{
		detections: detections,
		codec:      codec,
	}
}

// Ответ POST /analyze, тот же формат что и у сервиса детекции.
type bboxJSON struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

type detectionJSON struct {
	ClassName  string   `json:"class_name"`
	Confidence float64  `json:"confidence"`
	BBox       bboxJSON `json:"bbox"`
}

type analyzeResponse struct {
	ResultImage  string          `json:"result_image,omitempty"`
	Detections   []detectionJSON `json:"detections"`
	TotalObjects int             `json:"total_objects"`
	Summary      string          `json:"summary"`
}

// AnalyzeHandler обрабатывает POST /analyze
func (h *Handler) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Парсим multipart form
	if err := r.ParseMultipartForm(50 << 20); err != nil { // 50MB max
		respondError(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respondError(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		respondError(w, "Failed to read file", http.StatusInternalServerError)
		return
	}

	img, err := h.codec.DecodeBytes(imageData)
	if err != nil {
		respondError(w, "File is not a valid PNG or JPEG image", http.StatusBadRequest)
		return
	}

	confidence := entity.DefaultConfidence
	if raw := r.FormValue("confidence"); raw != "" {
		confidence, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(w, "Invalid confidence value", http.StatusBadRequest)
			return
		}
	}

	result, err := h.detections.Analyze(r.Context(), img, confidence)
	if err != nil {
		status, msg := classifyError(err)
		respondError(w, msg, status)
		return
	}

	respondJSON(w, h.buildResponse(result), http.StatusOK)
}

// StatusHandler проверка здоровья удалённого сервиса
func (h *Handler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	status := h.detections.Status(r.Context())
	respondJSON(w, map[string]any{
		"reachable":    status.Reachable,
		"model_loaded": status.ModelLoaded,
		"summary":      app.HealthSummary(status),
	}, http.StatusOK)
}

func (h *Handler) buildResponse(result *entity.DetectionResult) analyzeResponse {
	detections := make([]detectionJSON, 0, len(result.Detections))
	for _, det := range result.Detections {
		detections = append(detections, detectionJSON{
			ClassName:  det.ClassName,
			Confidence: det.Confidence,
			BBox: bboxJSON{
				X1: det.Box.X1,
				Y1: det.Box.Y1,
				X2: det.Box.X2,
				Y2: det.Box.Y2,
			},
		})
	}

	resp := analyzeResponse{
		Detections:   detections,
		TotalObjects: result.TotalObjects,
		Summary:      app.Summary(result),
	}

	// Картинку с разметкой отдаём странице, только если она раскодировалась.
	if result.Annotated != nil {
		if encoded, err := h.codec.Encode(result.Annotated); err == nil {
			resp.ResultImage = encoded
		}
	}

	return resp
}

// classifyError подбирает HTTP-статус под вид отказа детекции.
func classifyError(err error) (int, string) {
	var detErr *entity.DetectionError
	if !errors.As(err, &detErr) {
		return http.StatusInternalServerError, fmt.Sprintf("Detection failed: %v", err)
	}

	switch detErr.Kind {
	case entity.KindTimeout:
		return http.StatusGatewayTimeout, "Detection service timed out"
	case entity.KindConnectionFailed:
		return http.StatusBadGateway, "Cannot connect to detection service"
	case entity.KindServiceError:
		return http.StatusBadGateway, fmt.Sprintf("Detection service returned status %d", detErr.Status)
	case entity.KindSchemaError:
		return http.StatusBadGateway, "Detection service returned a malformed response"
	case entity.KindEncodingFailed:
		return http.StatusInternalServerError, "Failed to encode image"
	default:
		return http.StatusInternalServerError, fmt.Sprintf("Detection failed: %v", detErr)
	}
}

func respondJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, map[string]string{"error": message}, status)
}
