package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-course-catalog/internal/crypto"
	"github.com/MKhiriev/go-course-catalog/internal/logger"
	"github.com/MKhiriev/go-course-catalog/internal/store"
	"github.com/MKhiriev/go-course-catalog/models"
)

const seedActor = "system"

type sampleUser struct {
	user     models.User
	password string
}

func sampleUsers() []sampleUser {
	return []sampleUser{
		{
			user: models.User{
				Username:  "king",
				FirstName: "King",
				Email:     "King@gmail.com",
				Role:      models.RoleStudent,
				Enabled:   true,
			},
			password: "king123",
		},
		{
			user: models.User{
				Username:  "user",
				FirstName: "user",
				LastName:  "king",
				Email:     "user@gmail.com",
				Role:      models.RoleAdmin,
				Enabled:   true,
			},
			password: "user123",
		},
	}
}

func sampleCourses() []models.Course {
	hours := func(h int) *int { return &h }
	fees := func(f float64) *float64 { return &f }

	return []models.Course{
		{Title: "Java Programming", Description: "Learn the fundamentals of Java programming", DurationInHours: hours(40), Instructor: "John Doe"},
		{Title: "Spring Boot", Description: "Build production-ready applications with Spring Boot", DurationInHours: hours(30), Instructor: "Jane Smith", Fees: fees(5623.00)},
		{Title: "Hibernate ORM", Description: "Master object-relational mapping with Hibernate", DurationInHours: hours(25), Instructor: "Alice Johnson", Fees: fees(4500.00)},
		{Title: "Microservices with Spring Cloud", Description: "Design and deploy microservices with Spring Cloud", DurationInHours: hours(35), Instructor: "Bob Brown", Fees: fees(6000.00)},
	}
}

type seeder struct {
	storages *store.Storages
	hasher   crypto.PasswordHasher
	logger   *logger.Logger
}

func NewSeeder(storages *store.Storages, hasher crypto.PasswordHasher, logger *logger.Logger) Seeder {
	return &seeder{storages: storages, hasher: hasher, logger: logger}
}

// Seed inserts the sample courses when the course table is empty and the
// sample users when the user table is empty, all in one transaction.
func (s *seeder) Seed(ctx context.Context) (bool, error) {
	log := logger.FromContext(ctx)
	seeded := false

	err := s.storages.Transactor.InTx(ctx, func(ctx context.Context) error {
		courses, err := s.storages.CourseRepository.Count(ctx)
		if err != nil {
			return err
		}
		if courses == 0 {
			for _, c := range sampleCourses() {
				c.CreatedBy = seedActor
				if _, err := s.storages.CourseRepository.Save(ctx, c); err != nil {
					return fmt.Errorf("seeding course %q: %w", c.Title, err)
				}
			}
			seeded = true
		}

		users, err := s.storages.UserRepository.Count(ctx)
		if err != nil {
			return err
		}
		if users == 0 {
			for _, su := range sampleUsers() {
				hash, err := s.hasher.Hash(su.password)
				if err != nil {
					return fmt.Errorf("hashing sample password: %w", err)
				}
				su.user.PasswordHash = hash
				if _, err := s.storages.UserRepository.Save(ctx, su.user); err != nil {
					return fmt.Errorf("seeding user %q: %w", su.user.Username, err)
				}
			}
			seeded = true
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*seeder.Seed").Msg("error seeding sample data")
		return false, err
	}

	log.Info().Bool("seeded", seeded).Msg("sample data check finished")
	return seeded, nil
}
