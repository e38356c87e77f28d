// Package driverrepo persists the driver aggregate, mapping between the
// domain model and its relational representation.
package driverrepo

import (
	"fleetops/internal/core/domain/model/driver"
	"fleetops/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO represents the database structure for persisting driver aggregates.
type DriverDTO struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey"`
	PublicID       string      `gorm:"uniqueIndex"`
	Name           string      `gorm:"type:varchar(255);not null"`
	Location       LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	CurrentOrderID *uuid.UUID  `gorm:"type:uuid;index"`
}

// TableName overrides GORM's default naming convention to use "drivers".
func (DriverDTO) TableName() string {
	return "drivers"
}

// LocationDTO represents the embedded position columns within the driver table.
type LocationDTO struct {
	Latitude  float64
	Longitude float64
}

func fromDomain(d *driver.Driver) DriverDTO {
	var currentOrderID *uuid.UUID
	if id := d.CurrentOrder(); id != nil {
		raw := id.Bytes()
		currentOrderID = &raw
	}

	return DriverDTO{
		ID:       d.ID().Bytes(),
		PublicID: d.PublicID().String(),
		Name:     d.Name(),
		Location: LocationDTO{
			Latitude:  d.Location().Latitude(),
			Longitude: d.Location().Longitude(),
		},
		CurrentOrderID: currentOrderID,
	}
}

func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	publicID, err := kernel.PublicIDFromString(dto.PublicID)
	if err != nil {
		return nil, err
	}

	loc, err := kernel.NewLocation(dto.Location.Latitude, dto.Location.Longitude)
	if err != nil {
		return nil, err
	}

	var currentOrderID *kernel.UUID
	if dto.CurrentOrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.CurrentOrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		currentOrderID = &oID
	}

	return driver.RestoreDriver(id, publicID, dto.Name, loc, currentOrderID)
}
