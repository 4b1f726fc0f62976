package main

import (
	"log"
	"net/http"

	"detect-bot/config"
	"detect-bot/internal/api/web"
	"detect-bot/internal/container"
	"detect-bot/internal/infrastructure/imaging"
	"detect-bot/internal/infrastructure/remote"
	"detect-bot/internal/infrastructure/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Кодек и клиент удалённого сервиса детекции
	codec := imaging.NewJPEGCodec()
	detector := remote.NewRemoteDetector(cfg.APIURL, codec)

	appContainer := container.New(storage.NewMemoryUserRepository(), detector)

	handler := web.NewHandler(appContainer.DetectionService, codec)

	// Настраиваем роуты
	mux := http.NewServeMux()
	mux.HandleFunc("/analyze", handler.AnalyzeHandler)
	mux.HandleFunc("/status", handler.StatusHandler)

	// Отдаём статические файлы
	fs := http.FileServer(http.Dir("./static"))
	mux.Handle("/", fs)

	addr := ":" + cfg.Port
	log.Printf("🚀 Server starting on http://localhost%s", addr)
	log.Printf("📊 Detection API: %s", cfg.APIURL)

	if err := http.ListenAndServe(addr, corsMiddleware(mux)); err != nil {
		log.Fatal(err)
	}
}

// corsMiddleware добавляет CORS заголовки
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
