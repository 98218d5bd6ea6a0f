// Package service implements the business rules on top of the repository
// layer. Each module exposes an interface; handlers depend on the Services
// aggregate only.
package service

import (
	"go.uber.org/zap"

	"scholaria/backend/internal/repository"
)

// Services bundles every service behind one injection point.
type Services struct {
	Session   SessionService
	Ratrapage RatrapageService
	Absence   AbsenceService
	Demande   DemandeService
	Stats     StatsService
	Export    ExportService
	Catalog   CatalogService
}

func NewServices(repo *repository.Repository, logger *zap.Logger) *Services {
	return &Services{
		Session:   NewSessionService(repo, logger),
		Ratrapage: NewRatrapageService(repo, logger),
		Absence:   NewAbsenceService(repo, logger),
		Demande:   NewDemandeService(repo, logger),
		Stats:     NewStatsService(repo, logger),
		Export:    NewExportService(repo, logger),
		Catalog:   NewCatalogService(repo, logger),
	}
}
