// Package patient provides the patient roster: the domain model, its sqlite
// persistence, and the service that adapts stored patients into pages for
// the list controller.
package patient

import (
	"log/slog"
	"time"

	"ward/internal/resource"
)

type Status string

const (
	StatusAdmitted    Status = "admitted"
	StatusObservation Status = "observation"
	StatusDischarged  Status = "discharged"
)

type Patient struct {
	ID resource.ID

	// MRN is the medical record number, unique within the roster.
	MRN  string
	Name string
	Ward string
	Age  int

	Status     Status
	AdmittedAt time.Time
	UpdatedAt  time.Time
}

func (p *Patient) String() string { return p.MRN }

func (p *Patient) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", p.ID.String()),
		slog.String("mrn", p.MRN),
		slog.String("status", string(p.Status)),
	)
}
