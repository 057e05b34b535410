package seed

import (
	"os"
	"path/filepath"
	"testing"

	e "github.com/gartstein/directory/internal/directory/errors"
	"github.com/gartstein/directory/internal/directory/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantIDs []models.CompanyID
		wantErr error
	}{
		{
			name:    "array with numeric and string ids",
			data:    `[{"id": 1, "name": "Acme"}, {"id": "b-2", "name": "Beta"}]`,
			wantIDs: []models.CompanyID{"1", "b-2"},
		},
		{
			name:    "json-server document",
			data:    `{"companies": [{"id": 7, "name": "Acme"}]}`,
			wantIDs: []models.CompanyID{"7"},
		},
		{
			name:    "empty array",
			data:    `[]`,
			wantIDs: []models.CompanyID{},
		},
		{
			name:    "malformed",
			data:    `[{"id": 1,`,
			wantErr: e.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.data))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			ids := make([]models.CompanyID, len(got))
			for i, c := range got {
				ids[i] = c.ID
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestParse_MissingIDIsGenerated(t *testing.T) {
	got, err := Parse([]byte(`[{"name": "Anon", "employees": 3, "founded": 1999}]`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotEmpty(t, got[0].ID)
	assert.Equal(t, 3, got[0].Employees)
	assert.Equal(t, 1999, got[0].Founded)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "companies.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": 1, "name": "Acme", "industry": "Tech"}]`), 0o600))

	got, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Tech", got[0].Industry)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	a := Generate(25, 42)
	b := Generate(25, 42)
	require.Len(t, a, 25)
	assert.Equal(t, a, b, "same seed should give the same companies")
	assert.NotEqual(t, a, Generate(25, 7))

	seen := map[models.CompanyID]bool{}
	for _, c := range a {
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
		assert.NotEmpty(t, c.Name)
		assert.Contains(t, industries, c.Industry)
		assert.Contains(t, locations, c.Location)
		assert.GreaterOrEqual(t, c.Employees, 10)
		assert.GreaterOrEqual(t, c.Founded, 1950)
	}

	assert.Empty(t, Generate(0, 1))
}
