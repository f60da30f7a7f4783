package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formsaathi/internal/models"
)

func TestMergeFirstNonEmptyWins(t *testing.T) {
	// DocA has the PAN but no name; DocB has the name and a conflicting PAN.
	batch := []models.PartialProfile{
		{FullName: "", PANNumber: "ABCDE1234F"},
		{FullName: "Jane Doe", PANNumber: "WRONG0000X"},
	}

	merged := Merge(models.UserProfile{}, batch)

	assert.Equal(t, "Jane Doe", merged.FullName)
	assert.Equal(t, "ABCDE1234F", merged.PANNumber)
}

func TestMergeNeverOverwritesConfirmedValues(t *testing.T) {
	current := models.UserProfile{
		FullName:    "Ravi Kumar",
		DateOfBirth: "01/01/1990",
	}
	batch := []models.PartialProfile{
		{FullName: "R. Kumar", DateOfBirth: "02/02/1992", Address: "12 MG Road"},
	}

	merged := Merge(current, batch)

	assert.Equal(t, "Ravi Kumar", merged.FullName)
	assert.Equal(t, "01/01/1990", merged.DateOfBirth)
	assert.Equal(t, "12 MG Road", merged.Address)
}

func TestMergeWhitespaceIsBlank(t *testing.T) {
	current := models.UserProfile{Gender: "   "}
	batch := []models.PartialProfile{
		{Gender: "Female", PhoneNumber: "  \t "},
		{PhoneNumber: "9876543210"},
	}

	merged := Merge(current, batch)

	assert.Equal(t, "Female", merged.Gender)
	assert.Equal(t, "9876543210", merged.PhoneNumber)
}

func TestMergeAcrossSequentialBatches(t *testing.T) {
	p := Merge(models.UserProfile{}, []models.PartialProfile{
		{AadharNumber: "1234 5678 9012"},
	})
	p = Merge(p, []models.PartialProfile{
		{AadharNumber: "0000 0000 0000", Email: "jane@example.com"},
	})

	assert.Equal(t, "1234 5678 9012", p.AadharNumber)
	assert.Equal(t, "jane@example.com", p.Email)
}

func TestMergeExtraFieldDedup(t *testing.T) {
	batch := []models.PartialProfile{
		{ExtraFields: []models.ExtraAttribute{
			{Label: "Blood Group", Value: "B+"},
			{Label: "District", Value: "Pune"},
		}},
		{ExtraFields: []models.ExtraAttribute{
			{Label: "blood group", Value: "O-"},
			{Label: "State", Value: "Maharashtra"},
		}},
	}

	merged := Merge(models.UserProfile{}, batch)

	require.Len(t, merged.ExtraFields, 3)
	assert.Equal(t, "Blood Group", merged.ExtraFields[0].Label)
	assert.Equal(t, "B+", merged.ExtraFields[0].Value, "first value seen for a label is the one kept")

	seen := map[string]bool{}
	for _, f := range merged.ExtraFields {
		key := f.Label
		assert.Falsef(t, seen[key], "duplicate label %q", key)
		seen[key] = true
	}
}

func TestMergeDropsBlankExtraLabels(t *testing.T) {
	merged := Merge(models.UserProfile{}, []models.PartialProfile{
		{ExtraFields: []models.ExtraAttribute{{Label: "  ", Value: "orphan"}}},
	})
	assert.Empty(t, merged.ExtraFields)
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	current := models.UserProfile{
		ExtraFields: []models.ExtraAttribute{{Label: "District", Value: "Pune"}},
		Documents:   []models.DocumentRecord{{Type: "PAN Card"}},
	}
	batch := []models.PartialProfile{
		{FullName: "Jane", ExtraFields: []models.ExtraAttribute{{Label: "State", Value: "MH"}}},
	}

	_ = Merge(current, batch)

	assert.Equal(t, "", current.FullName)
	assert.Len(t, current.ExtraFields, 1)
	assert.Len(t, current.Documents, 1)
}

func TestFilledFieldCount(t *testing.T) {
	p := models.PartialProfile{FullName: "Jane", PANNumber: "ABCDE1234F", Gender: "  "}
	assert.Equal(t, 2, FilledFieldCount(p))
}
