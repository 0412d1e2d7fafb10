package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"tailpair/internal/config"
	"tailpair/internal/metrics"
	"tailpair/internal/repository"
	"tailpair/internal/service/adoption"
	"tailpair/internal/service/animal"
	"tailpair/internal/service/auth"
	"tailpair/internal/service/email"
	"tailpair/internal/service/favorite"
	"tailpair/internal/service/message"
	"tailpair/internal/service/notification"
	"tailpair/internal/service/shelter"
	"tailpair/internal/service/user"
)

type Services struct {
	Auth         auth.Service
	User         user.Service
	Shelter      shelter.Service
	Animal       animal.Service
	Adoption     adoption.Service
	Favorite     favorite.Service
	Message      message.Service
	Notification notification.Service
	Email        email.Service
}

func NewServices(repos *repository.Repositories, redisClient *redis.Client, minioClient *minio.Client, cfg *config.Config, m *metrics.Metrics) *Services {
	emailService := email.NewService(cfg)
	notificationService := notification.NewService(repos.Notification, redisClient)
	authService := auth.NewService(repos.User, repos.Session, emailService, cfg)
	userService := user.NewService(repos.User, repos.Session)
	shelterService := shelter.NewService(repos.Shelter, repos.User)
	animalService := animal.NewService(repos.Animal, repos.Favorite, minioClient, cfg)
	favoriteService := favorite.NewService(repos.Favorite, repos.Animal, repos.User, redisClient)
	messageService := message.NewService(repos.Message, repos.User, repos.Animal, notificationService)
	adoptionService := adoption.NewService(
		repos.Tx,
		repos.Adoption,
		repos.Animal,
		repos.User,
		repos.Shelter,
		repos.Favorite,
		repos.Notification,
		notificationService,
		emailService,
		m,
	)

	return &Services{
		Auth:         authService,
		User:         userService,
		Shelter:      shelterService,
		Animal:       animalService,
		Adoption:     adoptionService,
		Favorite:     favoriteService,
		Message:      messageService,
		Notification: notificationService,
		Email:        emailService,
	}
}
