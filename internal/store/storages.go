package store

import "github.com/MKhiriev/go-course-catalog/internal/logger"

// Storages groups the repositories and the transaction runner over one
// database.
type Storages struct {
	UserRepository   UserRepository
	CourseRepository CourseRepository
	Transactor       Transactor
}

func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:   NewUserRepository(db, log),
		CourseRepository: NewCourseRepository(db, log),
		Transactor:       db,
	}
}
