package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"formsaathi/internal/doctype"
	"formsaathi/internal/models"
)

// ErrMergeAborted marks a batch intake that was rolled back because one of
// its images failed extraction. The caller's profile is left untouched.
var ErrMergeAborted = errors.New("document batch aborted")

// Extractor is the slice of the document-AI contract the intake path needs.
type Extractor interface {
	ExtractProfile(ctx context.Context, image []byte) (models.PartialProfile, string, error)
}

// IntakeResult carries the outcome of one successful document batch.
type IntakeResult struct {
	// Profile is the accumulated profile after folding the whole batch.
	Profile models.UserProfile
	// Pending holds one DocumentRecord per processed image, to be committed
	// into the profile's document list on save.
	Pending []models.DocumentRecord
	// Summary has one human-readable line per document, e.g.
	// "Aadhar Card: found 6 fields + 2 extra details".
	Summary []string
}

// Intake runs a document batch through extraction and the merge fold,
// strictly sequentially: the fold is order-dependent, so each extraction is
// awaited before the next begins. Any extraction failure aborts the whole
// batch — no partial commit — and the error wraps ErrMergeAborted.
//
// selectedType overrides the detected document type unless it is the
// auto-detect sentinel.
func Intake(ctx context.Context, ex Extractor, current models.UserProfile, images [][]byte, selectedType string) (IntakeResult, error) {
	merged := Merge(current, nil)

	var res IntakeResult
	for i, img := range images {
		extracted, detected, err := ex.ExtractProfile(ctx, img)
		if err != nil {
			return IntakeResult{}, fmt.Errorf("%w: document %d of %d: %v", ErrMergeAborted, i+1, len(images), err)
		}

		merged = Merge(merged, []models.PartialProfile{extracted})

		docType := doctype.Resolve(selectedType, detected)
		res.Pending = append(res.Pending, models.DocumentRecord{
			Type:     docType,
			Date:     time.Now().Format("2006-01-02"),
			Verified: false,
		})

		line := fmt.Sprintf("%s: found %d fields", docType, FilledFieldCount(extracted))
		if len(extracted.ExtraFields) > 0 {
			line += fmt.Sprintf(" + %d extra details", len(extracted.ExtraFields))
		}
		res.Summary = append(res.Summary, line)
	}

	res.Profile = merged
	return res, nil
}

// CommitDocuments appends the pending records to the profile's document list.
// Existing documents are never rewritten, only appended to.
func CommitDocuments(p models.UserProfile, pending []models.DocumentRecord) models.UserProfile {
	out := p
	out.Documents = append(append([]models.DocumentRecord(nil), p.Documents...), pending...)
	return out
}
