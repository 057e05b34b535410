package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	e "github.com/gartstein/directory/internal/directory/errors"
	"github.com/gartstein/directory/internal/directory/models"
)

var errMalformedBody = errors.New("response body is not a JSON array")

// Rejected is a record that failed validation and was kept out of the record set.
type Rejected struct {
	// Index is the position of the record in the response array.
	Index int
	// ID is the record id when it could be read.
	ID models.CompanyID
	// Err wraps errors.ErrInvalidRecord.
	Err error
}

// decodeCompanies splits the body into elements and validates each one.
// Only a body that is not a JSON array fails as a whole.
func decodeCompanies(body []byte) (*Result, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(body, &elements); err != nil || elements == nil {
		return nil, errMalformedBody
	}

	result := &Result{Companies: make([]models.Company, 0, len(elements))}
	seen := make(map[models.CompanyID]struct{}, len(elements))
	for i, raw := range elements {
		company, err := decodeCompany(raw)
		if err != nil {
			result.Rejected = append(result.Rejected, Rejected{Index: i, ID: company.ID, Err: err})
			continue
		}
		if _, dup := seen[company.ID]; dup {
			result.Rejected = append(result.Rejected, Rejected{
				Index: i,
				ID:    company.ID,
				Err:   fmt.Errorf("%w: duplicate id %q", e.ErrInvalidRecord, company.ID),
			})
			continue
		}
		seen[company.ID] = struct{}{}
		result.Companies = append(result.Companies, company)
	}
	return result, nil
}

// decodeCompany validates one element against the Company schema. On failure
// the returned Company carries the id if it was readable.
func decodeCompany(raw json.RawMessage) (models.Company, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return models.Company{}, fmt.Errorf("%w: not an object", e.ErrInvalidRecord)
	}

	var c models.Company
	id, err := decodeID(fields["id"])
	if err != nil {
		return c, err
	}
	c.ID = id

	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"name", &c.Name},
		{"description", &c.Description},
		{"industry", &c.Industry},
		{"location", &c.Location},
	} {
		if err := decodeString(fields, f.name, f.dst); err != nil {
			return c, err
		}
	}

	if err := decodeInt(fields, "employees", &c.Employees); err != nil {
		return c, err
	}
	if c.Employees < 0 {
		return c, fmt.Errorf("%w: employees must not be negative", e.ErrInvalidRecord)
	}
	if err := decodeInt(fields, "founded", &c.Founded); err != nil {
		return c, err
	}
	return c, nil
}

func decodeID(raw json.RawMessage) (models.CompanyID, error) {
	if isMissing(raw) {
		return "", fmt.Errorf("%w: missing field %q", e.ErrInvalidRecord, "id")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return "", fmt.Errorf("%w: empty id", e.ErrInvalidRecord)
		}
		return models.CompanyID(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("%w: id must be a string or number", e.ErrInvalidRecord)
	}
	return models.CompanyID(n.String()), nil
}

func decodeString(fields map[string]json.RawMessage, name string, dst *string) error {
	raw := fields[name]
	if isMissing(raw) {
		return fmt.Errorf("%w: missing field %q", e.ErrInvalidRecord, name)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: field %q must be a string", e.ErrInvalidRecord, name)
	}
	return nil
}

func decodeInt(fields map[string]json.RawMessage, name string, dst *int) error {
	raw := fields[name]
	if isMissing(raw) {
		return fmt.Errorf("%w: missing field %q", e.ErrInvalidRecord, name)
	}
	if len(raw) > 0 && raw[0] == '"' {
		return fmt.Errorf("%w: field %q must be a number", e.ErrInvalidRecord, name)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return fmt.Errorf("%w: field %q must be a number", e.ErrInvalidRecord, name)
	}
	v, err := n.Int64()
	if err != nil {
		return fmt.Errorf("%w: field %q must be an integer", e.ErrInvalidRecord, name)
	}
	*dst = int(v)
	return nil
}

func isMissing(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
