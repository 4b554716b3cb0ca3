package port

import (
	"context"

	"github.com/bnema/twinview/internal/domain/entity"
)

//go:generate mockgen -source=visits.go -destination=mocks/mock_visit_recorder.go -package=mocks

// VisitRecorder journals surface loads. RecordVisit must not block.
type VisitRecorder interface {
	RecordVisit(ctx context.Context, visit entity.Visit)
}
