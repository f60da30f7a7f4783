package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formsaathi/internal/models"
)

// fakeExtractor replays scripted extractions keyed by call order.
type fakeExtractor struct {
	results []fakeExtraction
	calls   int
}

type fakeExtraction struct {
	partial models.PartialProfile
	docType string
	err     error
}

func (f *fakeExtractor) ExtractProfile(ctx context.Context, image []byte) (models.PartialProfile, string, error) {
	if f.calls >= len(f.results) {
		return models.PartialProfile{}, "", errors.New("unexpected extra call")
	}
	res := f.results[f.calls]
	f.calls++
	return res.partial, res.docType, res.err
}

func TestIntakeMergesBatchInOrder(t *testing.T) {
	ex := &fakeExtractor{results: []fakeExtraction{
		{partial: models.PartialProfile{PANNumber: "ABCDE1234F"}, docType: "PAN Card"},
		{partial: models.PartialProfile{FullName: "Jane Doe", PANNumber: "WRONG0000X"}, docType: "Aadhar Card"},
	}}

	res, err := Intake(context.Background(), ex, models.UserProfile{}, [][]byte{{1}, {2}}, "Auto-Detect")
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", res.Profile.FullName)
	assert.Equal(t, "ABCDE1234F", res.Profile.PANNumber)
	require.Len(t, res.Pending, 2)
	assert.Equal(t, "PAN Card", res.Pending[0].Type)
	assert.Equal(t, "Aadhar Card", res.Pending[1].Type)
	require.Len(t, res.Summary, 2)
	assert.Contains(t, res.Summary[0], "PAN Card")
}

func TestIntakeSelectedTypeOverridesDetected(t *testing.T) {
	ex := &fakeExtractor{results: []fakeExtraction{
		{partial: models.PartialProfile{}, docType: "Aadhar Card"},
	}}

	res, err := Intake(context.Background(), ex, models.UserProfile{}, [][]byte{{1}}, "Voter ID")
	require.NoError(t, err)
	require.Len(t, res.Pending, 1)
	assert.Equal(t, "Voter ID", res.Pending[0].Type)
}

func TestIntakeAbortsWholeBatchOnFailure(t *testing.T) {
	ex := &fakeExtractor{results: []fakeExtraction{
		{partial: models.PartialProfile{FullName: "Jane Doe"}, docType: "PAN Card"},
		{err: errors.New("service unreachable")},
		{partial: models.PartialProfile{Email: "late@example.com"}, docType: "Passport"},
	}}

	prior := models.UserProfile{
		Address:     "12 MG Road",
		ExtraFields: []models.ExtraAttribute{{Label: "District", Value: "Pune"}},
		Documents:   []models.DocumentRecord{{Type: "Driving License", Date: "2024-01-01", Verified: true}},
	}
	before := prior

	res, err := Intake(context.Background(), ex, prior, [][]byte{{1}, {2}, {3}}, "Auto-Detect")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMergeAborted)
	assert.Equal(t, IntakeResult{}, res, "no partial commit")
	assert.Equal(t, before, prior, "caller's profile left untouched")
	assert.Equal(t, 2, ex.calls, "processing stops at the failing document")
}

func TestIntakeProcessesSequentially(t *testing.T) {
	// Later documents must observe the accumulated fold: the second document
	// cannot win a field the first one already filled.
	ex := &fakeExtractor{results: []fakeExtraction{
		{partial: models.PartialProfile{Gender: "F"}, docType: "Aadhar Card"},
		{partial: models.PartialProfile{Gender: "Female"}, docType: "PAN Card"},
	}}

	res, err := Intake(context.Background(), ex, models.UserProfile{}, [][]byte{{1}, {2}}, "Auto-Detect")
	require.NoError(t, err)
	assert.Equal(t, "F", res.Profile.Gender)
}

func TestCommitDocumentsAppends(t *testing.T) {
	p := models.UserProfile{Documents: []models.DocumentRecord{{Type: "PAN Card"}}}
	pending := []models.DocumentRecord{{Type: "Aadhar Card"}}

	out := CommitDocuments(p, pending)

	require.Len(t, out.Documents, 2)
	assert.Equal(t, "PAN Card", out.Documents[0].Type)
	assert.Equal(t, "Aadhar Card", out.Documents[1].Type)
	assert.Len(t, p.Documents, 1, "input not mutated")
}
