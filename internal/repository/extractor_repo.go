package repository

import (
	"context"

	"github.com/user/domain-tracker/internal/entity"
)

// RowSink receives one captured domain. It reports whether the extractor
// should keep going; a false return (or a canceled context) stops the run.
type RowSink func(entity.CapturedDomain) bool

// Extractor defines the interface for the external extraction collaborator
// that populates a session. Run blocks until the walk completes or ctx is
// canceled, feeding every extracted listing to sink.
type Extractor interface {
	Run(ctx context.Context, sink RowSink) error
}
