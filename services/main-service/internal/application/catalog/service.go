package catalog

import "github.com/baechuer/explore-with-me/services/main-service/internal/domain"

// Service covers the admin-managed reference data: users, categories and compilations.
type Service struct {
	users        domain.UserRepo
	categories   domain.CategoryRepo
	compilations domain.CompilationRepo
	events       domain.EventRepo
}

func New(users domain.UserRepo, categories domain.CategoryRepo, compilations domain.CompilationRepo, events domain.EventRepo) *Service {
	return &Service{users: users, categories: categories, compilations: compilations, events: events}
}
