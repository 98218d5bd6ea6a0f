package dto

// DemandAbsenceRequest opens a revocation request against one absence
// record. Document is a reference to the supporting justification. Students
// submit it as a multipart form alongside the justification file, so the
// fields bind from both form and JSON bodies.
type DemandAbsenceRequest struct {
	AbsenceID string `json:"absence_id" form:"absence_id" binding:"required,uuid"`
	Reason    string `json:"reason" form:"reason" binding:"required"`
	Document  string `json:"document" form:"document" binding:"required"`
}

type DemandeResponse struct {
	DemandeID string           `json:"demande_id"`
	Status    string           `json:"status"`
	Reason    string           `json:"reason"`
	Document  string           `json:"document"`
	Student   *PersonInfo      `json:"student,omitempty"`
	Absence   *AbsenceResponse `json:"absence,omitempty"`
	CreatedAt string           `json:"created_at"`
	DecidedAt *string          `json:"decided_at,omitempty"`
}
