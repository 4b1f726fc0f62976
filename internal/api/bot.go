package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "detect-bot/internal/application"
	"detect-bot/internal/domain/entity"
	"detect-bot/internal/domain/port"
)

const (
	msgStart = `👋 Привет! Я бот для поиска объектов на фотографиях (YOLOv5).

📸 Отправьте мне картинку, и я верну её с разметкой и списком найденных объектов.

📋 Команды:
/status — проверить доступность API
/confidence — порог уверенности
/help — справка`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте фото (PNG или JPEG)
2️⃣ Бот отправит его на сервис детекции
3️⃣ Вы получите картинку с рамками и список объектов

📋 Команды:
/status — проверить доступность API
/confidence 0.5 — установить порог уверенности (от 0.1 до 1.0)
/confidence — показать текущий порог`

	msgSendPhoto      = "📸 Отправьте изображение для анализа объектов."
	msgUnknownCommand = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing     = "🤖 Обрабатываем изображение..."
	msgChecking       = "🔄 Проверяем доступность API..."
	msgDownloadError  = "⚠️ Не удалось получить изображение. Попробуйте отправить другое фото."
	msgBadConfidence  = "❓ Укажите число от 0.1 до 1.0, например: /confidence 0.5"
)

// Bot представляет Telegram-бота
type Bot struct {
	api        *tgbotapi.BotAPI
	users      *app.UserService
	detections *app.DetectionService
	codec      port.ImageCodec
}

// NewBot создаёт нового бота
func NewBot(token string, users *app.UserService, detections *app.DetectionService, codec port.ImageCodec) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:        api,
		users:      users,
		detections: detections,
		codec:      codec,
	}, nil
}

// Run запускает основной цикл обработки сообщений
func (b *Bot) Run() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	ctx := context.Background()

	for update := range updates {
		if update.Message == nil {
			continue
		}

		b.handleMessage(ctx, update.Message)
	}

	return nil
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	// Обработка фото
	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg)
		return
	}

	// Текстовое сообщение (не команда)
	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.users.SetState(ctx, msg.From.ID, msg.Chat.ID, entity.StateMainMenu)
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "status":
		b.sendMessage(msg.Chat.ID, msgChecking)
		status := b.detections.Status(ctx)
		b.sendMessage(msg.Chat.ID, app.HealthSummary(status))

	case "confidence":
		b.handleConfidence(ctx, msg)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// handleConfidence показывает или меняет порог уверенности пользователя.
func (b *Bot) handleConfidence(ctx context.Context, msg *tgbotapi.Message) {
	args := msg.CommandArguments()
	if args == "" {
		user, err := b.users.Get(ctx, msg.From.ID, msg.Chat.ID)
		if err != nil {
			log.Printf("Error getting user: %v", err)
			return
		}
		b.sendMessage(msg.Chat.ID, fmt.Sprintf("🔧 Текущий порог уверенности: %.2f", user.Confidence))
		return
	}

	value, err := strconv.ParseFloat(args, 64)
	if err != nil {
		b.sendMessage(msg.Chat.ID, msgBadConfidence)
		return
	}

	user, err := b.users.SetConfidence(ctx, msg.From.ID, msg.Chat.ID, value)
	if err != nil {
		log.Printf("Error saving confidence: %v", err)
		return
	}

	b.sendMessage(msg.Chat.ID, fmt.Sprintf("🔧 Порог уверенности установлен: %.2f", user.Confidence))
}

// handlePhoto обрабатывает входящее фото
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	// Устанавливаем состояние "обработка"
	b.users.SetState(ctx, msg.From.ID, msg.Chat.ID, entity.StateProcessing)
	b.sendMessage(msg.Chat.ID, msgProcessing)

	// Возвращаем в главное меню в любом исходе: запрос одноразовый.
	defer b.users.SetState(ctx, msg.From.ID, msg.Chat.ID, entity.StateMainMenu)

	// Получаем файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.downloadFile(photo.FileID)
	if err != nil {
		log.Printf("Error downloading photo: %v", err)
		b.sendMessage(msg.Chat.ID, msgDownloadError)
		return
	}

	img, err := b.codec.DecodeBytes(imageData)
	if err != nil {
		log.Printf("Error decoding photo: %v", err)
		b.sendMessage(msg.Chat.ID, msgDownloadError)
		return
	}

	result, err := b.detections.AnalyzeForUser(ctx, msg.From.ID, msg.Chat.ID, img)
	if err != nil {
		log.Printf("Detection failed: %v", err)
		b.sendMessage(msg.Chat.ID, errorMessage(err))
		return
	}

	summary := app.Summary(result)

	// Картинка с разметкой опциональна: без неё отправляем только список.
	if result.Annotated != nil {
		annotated, err := b.codec.EncodeBytes(result.Annotated)
		if err == nil {
			photoMsg := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileBytes{
				Name:  "result.jpg",
				Bytes: annotated,
			})
			photoMsg.Caption = summary
			if _, err := b.api.Send(photoMsg); err != nil {
				log.Printf("Error sending result photo: %v", err)
				b.sendMessage(msg.Chat.ID, summary)
			}
			return
		}
		log.Printf("Error encoding result photo: %v", err)
	}

	b.sendMessage(msg.Chat.ID, summary)
}

// errorMessage переводит ошибку детекции в сообщение для пользователя.
func errorMessage(err error) string {
	var detErr *entity.DetectionError
	if !errors.As(err, &detErr) {
		return fmt.Sprintf("🐛 Неожиданная ошибка: %v", err)
	}

	switch detErr.Kind {
	case entity.KindEncodingFailed:
		return "⚠️ Не удалось подготовить изображение к отправке."
	case entity.KindTimeout:
		return "⏱️ Превышено время ожидания ответа от API."
	case entity.KindConnectionFailed:
		return "🔌 Ошибка подключения к API."
	case entity.KindServiceError:
		return fmt.Sprintf("❌ Ошибка API: %d", detErr.Status)
	case entity.KindSchemaError:
		return "❌ Сервис вернул некорректный ответ."
	default:
		return fmt.Sprintf("🐛 Неожиданная ошибка: %v", detErr)
	}
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}
