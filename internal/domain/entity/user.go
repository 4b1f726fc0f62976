package entity

// UserState состояние пользователя в диалоге
type UserState string

const (
	StateMainMenu   UserState = "main_menu"  // В главном меню
	StateProcessing UserState = "processing" // Обработка изображения
)

// Границы порога уверенности, как в слайдере веб-версии.
const (
	MinConfidence     = 0.1
	MaxConfidence     = 1.0
	DefaultConfidence = 0.5
)

// User представляет пользователя бота
type User struct {
	ID         int64     // Telegram User ID
	ChatID     int64     // Telegram Chat ID
	State      UserState // Текущее состояние пользователя
	Confidence float64   // Порог уверенности для детекции
}

// NewUser создаёт нового пользователя с начальным состоянием
func NewUser(userID, chatID int64) *User {
	return &User{
		ID:         userID,
		ChatID:     chatID,
		State:      StateMainMenu,
		Confidence: DefaultConfidence,
	}
}

// SetState обновляет состояние пользователя
func (u *User) SetState(state UserState) {
	u.State = state
}

// SetConfidence устанавливает порог уверенности, ограничивая его допустимым диапазоном.
func (u *User) SetConfidence(v float64) {
	u.Confidence = ClampConfidence(v)
}

// ClampConfidence приводит значение порога к диапазону [MinConfidence, MaxConfidence].
func ClampConfidence(v float64) float64 {
	if v < MinConfidence {
		return MinConfidence
	}
	if v > MaxConfidence {
		return MaxConfidence
	}
	return v
}
