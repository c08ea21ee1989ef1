// Package courierrepo persists courier aggregates with their storage places.
package courierrepo

import (
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO is the database shape of a courier aggregate.
type CourierDTO struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Name          string            `gorm:"type:varchar(255);not null"`
	Speed         int               `gorm:"type:int;not null"`
	Location      LocationDTO       `gorm:"embedded;embeddedPrefix:location_"`
	StoragePlaces []StoragePlaceDTO `gorm:"foreignKey:CourierID;constraint:OnDelete:CASCADE"`
}

// TableName maps the DTO to the "couriers" table.
func (CourierDTO) TableName() string {
	return "couriers"
}

// LocationDTO is the embedded grid position of the courier.
type LocationDTO struct {
	X kernel.Coordinate `gorm:"type:smallint"`
	Y kernel.Coordinate `gorm:"type:smallint"`
}

// StoragePlaceDTO is the database shape of a storage place. A non-null
// OrderID marks the place occupied.
type StoragePlaceDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CourierID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name        string     `gorm:"type:varchar(255);not null"`
	TotalVolume int        `gorm:"type:int;not null"`
	OrderID     *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName maps the DTO to the "storage_places" table.
func (StoragePlaceDTO) TableName() string {
	return "storage_places"
}

func fromDomain(aggregate *courier.Courier) CourierDTO {
	courierID := aggregate.ID().Bytes()
	places := aggregate.StoragePlaces()
	storagePlaces := make([]StoragePlaceDTO, 0, len(places))

	for _, place := range places {
		var orderID *uuid.UUID
		if place.OrderID() != nil {
			raw := place.OrderID().Bytes()
			orderID = &raw
		}

		storagePlaces = append(storagePlaces, StoragePlaceDTO{
			ID:          place.ID().Bytes(),
			CourierID:   courierID,
			Name:        place.Name(),
			TotalVolume: place.TotalVolume(),
			OrderID:     orderID,
		})
	}

	return CourierDTO{
		ID:    courierID,
		Name:  aggregate.Name(),
		Speed: aggregate.Speed(),
		Location: LocationDTO{
			X: aggregate.Location().X(),
			Y: aggregate.Location().Y(),
		},
		StoragePlaces: storagePlaces,
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewLocation(dto.Location.X, dto.Location.Y)
	if err != nil {
		return nil, err
	}

	storagePlaces := make([]*courier.StoragePlace, 0, len(dto.StoragePlaces))
	for _, placeDTO := range dto.StoragePlaces {
		place, placeErr := storagePlaceToDomain(placeDTO)
		if placeErr != nil {
			return nil, placeErr
		}
		storagePlaces = append(storagePlaces, place)
	}

	return courier.RestoreCourier(id, dto.Name, dto.Speed, location, storagePlaces)
}

func storagePlaceToDomain(dto StoragePlaceDTO) (*courier.StoragePlace, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}

	return courier.RestoreStoragePlace(id, dto.Name, dto.TotalVolume, orderID)
}
