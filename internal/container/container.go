package container

import (
	app "detect-bot/internal/application"
	"detect-bot/internal/domain/port"
)

type Container struct {
	UserService      *app.UserService
	DetectionService *app.DetectionService
}

func New(userRepo port.UserRepository, detector port.ObjectDetector) *Container {
	userService := app.NewUserService(userRepo)
	detectionService := app.NewDetectionService(userService, detector)

	return &Container{
		UserService:      userService,
		DetectionService: detectionService,
	}
}
