// Package models contains the storage models of the development API,
// configured to work using GORM as the ORM.
package models

import (
	"time"

	"github.com/gartstein/directory/internal/directory/models"
)

// Company is a company row. Position keeps the order the companies were
// seeded in, which is the order the API serves them.
type Company struct {
	ID          string `gorm:"primaryKey;size:64"`
	Position    int    `gorm:"index"`
	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"size:3000"`
	Industry    string `gorm:"size:100;index"`
	Location    string `gorm:"size:100;index"`
	Employees   int    `gorm:"check:employees >= 0"`
	Founded     int
	CreatedAt   time.Time
}

// FromDomain converts a directory company into a row at the given position.
func FromDomain(c models.Company, position int) Company {
	return Company{
		ID:          string(c.ID),
		Position:    position,
		Name:        c.Name,
		Description: c.Description,
		Industry:    c.Industry,
		Location:    c.Location,
		Employees:   c.Employees,
		Founded:     c.Founded,
	}
}

// ToDomain converts the row into the directory company served over HTTP.
func (c Company) ToDomain() models.Company {
	return models.Company{
		ID:          models.CompanyID(c.ID),
		Name:        c.Name,
		Description: c.Description,
		Industry:    c.Industry,
		Location:    c.Location,
		Employees:   c.Employees,
		Founded:     c.Founded,
	}
}
