// Package seed produces the companies the development API starts with,
// either read from a JSON file or generated.
package seed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	e "github.com/gartstein/directory/internal/directory/errors"
	"github.com/gartstein/directory/internal/directory/models"
	"github.com/google/uuid"
)

var (
	industries = []string{"Technology", "Healthcare", "Finance", "Retail", "Manufacturing", "Energy", "Education", "Logistics"}
	locations  = []string{"San Francisco, CA", "New York, NY", "Austin, TX", "Seattle, WA", "Boston, MA", "Chicago, IL", "Denver, CO", "Miami, FL"}

	prefixes = []string{"Blue", "North", "Bright", "Quantum", "Summit", "Silver", "Green", "Iron", "Nova", "Red"}
	suffixes = []string{"Labs", "Systems", "Works", "Partners", "Dynamics", "Networks", "Health", "Capital", "Logic", "Foods"}
	focus    = []string{"cloud infrastructure", "patient care", "payments", "supply chains", "renewable power", "online learning", "analytics", "consumer goods"}
)

// record is the on-disk shape; ids may be JSON strings or numbers.
type record struct {
	ID          any    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Industry    string `json:"industry"`
	Location    string `json:"location"`
	Employees   int    `json:"employees"`
	Founded     int    `json:"founded"`
}

// LoadFile reads companies from a JSON file holding either an array or an
// object with a "companies" array.
func LoadFile(path string) ([]models.Company, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes seed JSON. Records without an id get a generated one.
func Parse(data []byte) ([]models.Company, error) {
	data = bytes.TrimSpace(data)

	var records []record
	if len(data) > 0 && data[0] == '{' {
		var doc struct {
			Companies []record `json:"companies"`
		}
		if err := decode(data, &doc); err != nil {
			return nil, err
		}
		records = doc.Companies
	} else if err := decode(data, &records); err != nil {
		return nil, err
	}

	out := make([]models.Company, len(records))
	for i, r := range records {
		id := ""
		if r.ID != nil {
			id = fmt.Sprint(r.ID)
		}
		if id == "" {
			id = uuid.NewString()
		}
		out[i] = models.Company{
			ID:          models.CompanyID(id),
			Name:        r.Name,
			Description: r.Description,
			Industry:    r.Industry,
			Location:    r.Location,
			Employees:   r.Employees,
			Founded:     r.Founded,
		}
	}
	return out, nil
}

func decode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: seed data: %v", e.ErrInvalidInput, err)
	}
	return nil
}

// Generate builds n synthetic companies. The same seed yields the same companies.
func Generate(n int, seed int64) []models.Company {
	rng := rand.New(rand.NewSource(seed))
	out := make([]models.Company, 0, max(n, 0))
	for i := 0; i < n; i++ {
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			// rand.Rand reads never fail
			panic(err)
		}
		industry := industries[rng.Intn(len(industries))]
		name := fmt.Sprintf("%s %s", prefixes[rng.Intn(len(prefixes))], suffixes[rng.Intn(len(suffixes))])
		out = append(out, models.Company{
			ID:          models.CompanyID(id.String()),
			Name:        name,
			Description: fmt.Sprintf("%s builds %s products for %s customers.", name, focus[rng.Intn(len(focus))], industry),
			Industry:    industry,
			Location:    locations[rng.Intn(len(locations))],
			Employees:   10 + rng.Intn(50000),
			Founded:     1950 + rng.Intn(75),
		})
	}
	return out
}
