package port

import (
	"context"

	"docfill/internal/domain"
)

// FormFiller injects a destination field map into a remote web form. A
// failure on one field never aborts the others; the returned report carries
// per-field outcomes. Forms are never submitted.
type FormFiller interface {
	Fill(ctx context.Context, formURL string, fields domain.FormFieldMap) (*domain.FillReport, error)
}
