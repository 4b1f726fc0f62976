package entity

import "image"

// BBox — прямоугольник объекта в пиксельных координатах исходного изображения.
type BBox struct {
	X1 float64 // левая граница
	Y1 float64 // верхняя граница
	X2 float64 // правая граница
	Y2 float64 // нижняя граница
}

// Width возвращает ширину рамки в пикселях.
func (b BBox) Width() float64 {
	return b.X2 - b.X1
}

// Height возвращает высоту рамки в пикселях.
func (b BBox) Height() float64 {
	return b.Y2 - b.Y1
}

// Valid проверяет, что углы рамки упорядочены.
func (b BBox) Valid() bool {
	return b.X1 <= b.X2 && b.Y1 <= b.Y2
}

// Detection — один распознанный объект на изображении.
type Detection struct {
	ClassName  string  // имя класса объекта
	Confidence float64 // уверенность модели, [0,1]
	Box        BBox    // координаты объекта
}

// DetectionResult хранит итог одного запроса детекции.
// Annotated равен nil, если сервис не вернул картинку с разметкой
// или её не удалось раскодировать.
type DetectionResult struct {
	Annotated    image.Image // изображение с разметкой от сервиса
	Detections   []Detection // список найденных объектов
	TotalObjects int         // количество объектов по версии сервиса
}

// HasObjects сообщает, нашёл ли сервис хотя бы один объект.
func (r *DetectionResult) HasObjects() bool {
	return len(r.Detections) > 0
}

// HealthStatus — состояние удалённого сервиса детекции.
type HealthStatus struct {
	Reachable   bool // сервис отвечает по HTTP
	ModelLoaded bool // модель загружена и готова к работе
}
