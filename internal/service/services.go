package service

import (
	"github.com/MKhiriev/go-course-catalog/internal/config"
	"github.com/MKhiriev/go-course-catalog/internal/crypto"
	"github.com/MKhiriev/go-course-catalog/internal/logger"
	"github.com/MKhiriev/go-course-catalog/internal/store"
	"github.com/MKhiriev/go-course-catalog/internal/validators"
)

type Services struct {
	AuthService         AuthService
	RegistrationService RegistrationService
	UserService         UserService
	CourseService       CourseService
	Seeder              Seeder
	AppInfoService      AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	hasher := crypto.NewPasswordHasher(cfg.Security)
	validator := validators.NewFormValidator()

	appInfo, err := NewAppInfoService(cfg.App, nil)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:         NewAuthService(storages.UserRepository, hasher, logger),
		RegistrationService: NewRegistrationService(storages.UserRepository, hasher, validator, logger),
		UserService:         NewUserService(storages.UserRepository, storages.Transactor, hasher, validator, logger),
		CourseService:       NewCourseService(storages.CourseRepository, storages.Transactor, validator, logger),
		Seeder:              NewSeeder(storages, hasher, logger),
		AppInfoService:      appInfo,
	}, nil
}
