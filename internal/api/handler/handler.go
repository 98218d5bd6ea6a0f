// Package handler translates HTTP requests into service calls and business
// errors into the unified response envelope.
package handler

import "scholaria/backend/internal/service"

// Handler bundles every handler behind one injection point.
type Handler struct {
	Session   *SessionHandler
	Ratrapage *RatrapageHandler
	Absence   *AbsenceHandler
	Demande   *DemandeHandler
	Stats     *StatsHandler
	Export    *ExportHandler
	Catalog   *CatalogHandler
}

func NewHandler(svc *service.Services) *Handler {
	return &Handler{
		Session:   NewSessionHandler(svc.Session),
		Ratrapage: NewRatrapageHandler(svc.Ratrapage),
		Absence:   NewAbsenceHandler(svc.Absence),
		Demande:   NewDemandeHandler(svc.Demande),
		Stats:     NewStatsHandler(svc.Stats),
		Export:    NewExportHandler(svc.Export),
		Catalog:   NewCatalogHandler(svc.Catalog),
	}
}
