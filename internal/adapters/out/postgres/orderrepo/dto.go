// Package orderrepo persists the order aggregate graph: the order row plus
// its payload, places, waypoints, entities and activity timelines.
package orderrepo

import (
	"sort"
	"time"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// Place roles within a payload. Waypoint places are embedded in the waypoint
// row instead.
const (
	rolePickup  = "pickup"
	roleDropoff = "dropoff"
	roleReturn  = "return"
)

// OrderDTO is the database shape of the order aggregate root.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	PublicID      string    `gorm:"uniqueIndex"`
	OrderType     string
	Status        string `gorm:"index"`
	Dispatched    bool
	Started       bool
	StartedAt     *time.Time
	Adhoc         bool
	AdhocDistance int
	DriverID      *uuid.UUID `gorm:"type:uuid;index"`
	ScheduledAt   *time.Time `gorm:"index"`
	PodRequired   bool
	PodMethod     string
	VendorRef     string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Payload    PayloadDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Activities []ActivityDTO `gorm:"polymorphic:Owner;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// PayloadDTO is the shipment description row owned by an order.
type PayloadDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	CurrentWaypointID *uuid.UUID `gorm:"type:uuid"`

	Places    []PlaceDTO    `gorm:"foreignKey:PayloadID;constraint:OnDelete:CASCADE"`
	Waypoints []WaypointDTO `gorm:"foreignKey:PayloadID;constraint:OnDelete:CASCADE"`
	Entities  []EntityDTO   `gorm:"foreignKey:PayloadID;constraint:OnDelete:CASCADE"`
}

func (PayloadDTO) TableName() string {
	return "payloads"
}

// PlaceDTO is a single-leg place (pickup, dropoff or return) of a payload.
type PlaceDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	PayloadID uuid.UUID `gorm:"type:uuid;index"`
	Role      string
	PublicID  string `gorm:"index"`
	Name      string
	Latitude  float64
	Longitude float64
}

func (PlaceDTO) TableName() string {
	return "places"
}

// PlaceColumnsDTO is a place embedded inside another row.
type PlaceColumnsDTO struct {
	ID        uuid.UUID `gorm:"type:uuid"`
	PublicID  string
	Name      string
	Latitude  float64
	Longitude float64
}

// WaypointDTO is one stop of a multi-drop sequence.
type WaypointDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	PayloadID uuid.UUID `gorm:"type:uuid;index"`
	PublicID  string    `gorm:"uniqueIndex"`
	Sequence  int
	Status    string
	Place     PlaceColumnsDTO `gorm:"embedded;embeddedPrefix:place_"`

	Activities []ActivityDTO `gorm:"polymorphic:Owner;constraint:OnDelete:CASCADE"`
}

func (WaypointDTO) TableName() string {
	return "waypoints"
}

// EntityDTO is one line item being shipped.
type EntityDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	PayloadID uuid.UUID `gorm:"type:uuid;index"`
	PublicID  string    `gorm:"uniqueIndex"`
	Name      string

	Activities []ActivityDTO `gorm:"polymorphic:Owner;constraint:OnDelete:CASCADE"`
}

func (EntityDTO) TableName() string {
	return "entities"
}

// ActivityDTO is one recorded timeline entry. The owner is the order, a
// waypoint or an entity; Seq preserves recording order within an owner.
type ActivityDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID `gorm:"type:uuid;index:idx_activities_owner"`
	OwnerType string    `gorm:"index:idx_activities_owner"`
	Seq       int
	Status    string
	Details   string
	Code      string
	Latitude  *float64
	Longitude *float64
	ProofID   *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
}

func (ActivityDTO) TableName() string {
	return "activities"
}

func fromDomain(o *order.Order) OrderDTO {
	payload := o.Payload()

	dto := OrderDTO{
		ID:            o.ID().Bytes(),
		PublicID:      o.PublicID().String(),
		OrderType:     o.Type(),
		Status:        o.Status().String(),
		Dispatched:    o.IsDispatched(),
		Started:       o.IsStarted(),
		StartedAt:     o.StartedAt(),
		Adhoc:         o.IsAdhoc(),
		AdhocDistance: o.AdhocDistance(),
		ScheduledAt:   o.ScheduledAt(),
		PodRequired:   o.PodRequired(),
		PodMethod:     o.PodMethod(),
		VendorRef:     o.VendorRef(),
		Payload:       payloadToDTO(payload, o.ID()),
		Activities:    activitiesToDTO(o.Activities()),
	}
	if driverID := o.Driver(); driverID != nil {
		raw := driverID.Bytes()
		dto.DriverID = &raw
	}
	return dto
}

func payloadToDTO(p *order.Payload, orderID kernel.UUID) PayloadDTO {
	dto := PayloadDTO{
		ID:      p.ID().Bytes(),
		OrderID: orderID.Bytes(),
	}
	if cw := p.CurrentWaypointID(); cw != nil {
		raw := cw.Bytes()
		dto.CurrentWaypointID = &raw
	}
	if pickup := p.Pickup(); pickup != nil {
		dto.Places = append(dto.Places, placeToDTO(*pickup, p.ID(), rolePickup))
	}
	if dropoff := p.Dropoff(); dropoff != nil {
		dto.Places = append(dto.Places, placeToDTO(*dropoff, p.ID(), roleDropoff))
	}
	if returnTo := p.Return(); returnTo != nil {
		dto.Places = append(dto.Places, placeToDTO(*returnTo, p.ID(), roleReturn))
	}
	for _, w := range p.Waypoints() {
		dto.Waypoints = append(dto.Waypoints, waypointToDTO(w, p.ID()))
	}
	for _, e := range p.Entities() {
		dto.Entities = append(dto.Entities, EntityDTO{
			ID:         e.ID().Bytes(),
			PayloadID:  p.ID().Bytes(),
			PublicID:   e.PublicID().String(),
			Name:       e.Name(),
			Activities: activitiesToDTO(e.Activities()),
		})
	}
	return dto
}

func placeToDTO(place order.Place, payloadID kernel.UUID, role string) PlaceDTO {
	return PlaceDTO{
		ID:        place.ID().Bytes(),
		PayloadID: payloadID.Bytes(),
		Role:      role,
		PublicID:  place.PublicID().String(),
		Name:      place.Name(),
		Latitude:  place.Location().Latitude(),
		Longitude: place.Location().Longitude(),
	}
}

func waypointToDTO(w *order.Waypoint, payloadID kernel.UUID) WaypointDTO {
	place := w.Place()
	return WaypointDTO{
		ID:        w.ID().Bytes(),
		PayloadID: payloadID.Bytes(),
		PublicID:  w.PublicID().String(),
		Sequence:  w.Sequence(),
		Status:    string(w.Status()),
		Place: PlaceColumnsDTO{
			ID:        place.ID().Bytes(),
			PublicID:  place.PublicID().String(),
			Name:      place.Name(),
			Latitude:  place.Location().Latitude(),
			Longitude: place.Location().Longitude(),
		},
		Activities: activitiesToDTO(w.Activities()),
	}
}

func activitiesToDTO(entries []order.ActivityEntry) []ActivityDTO {
	dtos := make([]ActivityDTO, 0, len(entries))
	for i, entry := range entries {
		dto := ActivityDTO{
			ID:        uuid.New(),
			Seq:       i,
			Status:    entry.Activity().Status(),
			Details:   entry.Activity().Details(),
			Code:      string(entry.Activity().Code()),
			CreatedAt: entry.CreatedAt(),
		}
		if loc := entry.Location(); !loc.IsZero() {
			lat, lon := loc.Latitude(), loc.Longitude()
			dto.Latitude = &lat
			dto.Longitude = &lon
		}
		if proofID := entry.ProofID(); proofID != nil {
			raw := proofID.Bytes()
			dto.ProofID = &raw
		}
		dtos = append(dtos, dto)
	}
	return dtos
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	publicID, err := kernel.PublicIDFromString(dto.PublicID)
	if err != nil {
		return nil, err
	}
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		did, didErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if didErr != nil {
			return nil, didErr
		}
		driverID = &did
	}

	payload, err := payloadFromDTO(dto.Payload)
	if err != nil {
		return nil, err
	}
	activities, err := activitiesFromDTO(dto.Activities)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		publicID,
		dto.OrderType,
		status,
		dto.Dispatched,
		dto.Started,
		dto.StartedAt,
		dto.Adhoc,
		dto.AdhocDistance,
		driverID,
		payload,
		dto.ScheduledAt,
		dto.PodRequired,
		dto.PodMethod,
		dto.VendorRef,
		activities,
	)
}

func payloadFromDTO(dto PayloadDTO) (*order.Payload, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var pickup, dropoff, returnTo *order.Place
	for _, placeDTO := range dto.Places {
		place, placeErr := placeFromDTO(placeDTO)
		if placeErr != nil {
			return nil, placeErr
		}
		switch placeDTO.Role {
		case rolePickup:
			pickup = &place
		case roleDropoff:
			dropoff = &place
		case roleReturn:
			returnTo = &place
		}
	}

	sort.Slice(dto.Waypoints, func(i, j int) bool {
		return dto.Waypoints[i].Sequence < dto.Waypoints[j].Sequence
	})
	waypoints := make([]*order.Waypoint, 0, len(dto.Waypoints))
	for _, waypointDTO := range dto.Waypoints {
		w, wErr := waypointFromDTO(waypointDTO)
		if wErr != nil {
			return nil, wErr
		}
		waypoints = append(waypoints, w)
	}

	entities := make([]*order.Entity, 0, len(dto.Entities))
	for _, entityDTO := range dto.Entities {
		e, eErr := entityFromDTO(entityDTO)
		if eErr != nil {
			return nil, eErr
		}
		entities = append(entities, e)
	}

	var currentWaypointID *kernel.UUID
	if dto.CurrentWaypointID != nil {
		cwID, cwErr := kernel.UUIDFromBytes((*dto.CurrentWaypointID)[:])
		if cwErr != nil {
			return nil, cwErr
		}
		currentWaypointID = &cwID
	}

	return order.RestorePayload(id, pickup, dropoff, returnTo, waypoints, entities, currentWaypointID), nil
}

func placeFromDTO(dto PlaceDTO) (order.Place, error) {
	return placeFromColumns(PlaceColumnsDTO{
		ID:        dto.ID,
		PublicID:  dto.PublicID,
		Name:      dto.Name,
		Latitude:  dto.Latitude,
		Longitude: dto.Longitude,
	})
}

func placeFromColumns(dto PlaceColumnsDTO) (order.Place, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.Place{}, err
	}
	publicID, err := kernel.PublicIDFromString(dto.PublicID)
	if err != nil {
		return order.Place{}, err
	}
	location, err := kernel.NewLocation(dto.Latitude, dto.Longitude)
	if err != nil {
		return order.Place{}, err
	}
	return order.RestorePlace(id, publicID, dto.Name, location), nil
}

func waypointFromDTO(dto WaypointDTO) (*order.Waypoint, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	publicID, err := kernel.PublicIDFromString(dto.PublicID)
	if err != nil {
		return nil, err
	}
	place, err := placeFromColumns(dto.Place)
	if err != nil {
		return nil, err
	}
	activities, err := activitiesFromDTO(dto.Activities)
	if err != nil {
		return nil, err
	}
	return order.RestoreWaypoint(id, publicID, place, dto.Sequence, order.WaypointStatus(dto.Status), activities)
}

func entityFromDTO(dto EntityDTO) (*order.Entity, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	publicID, err := kernel.PublicIDFromString(dto.PublicID)
	if err != nil {
		return nil, err
	}
	activities, err := activitiesFromDTO(dto.Activities)
	if err != nil {
		return nil, err
	}
	return order.RestoreEntity(id, publicID, dto.Name, activities), nil
}

func activitiesFromDTO(dtos []ActivityDTO) ([]order.ActivityEntry, error) {
	sort.Slice(dtos, func(i, j int) bool { return dtos[i].Seq < dtos[j].Seq })

	entries := make([]order.ActivityEntry, 0, len(dtos))
	for _, dto := range dtos {
		activity, err := order.NewActivity(dto.Status, dto.Details, order.ActivityCode(dto.Code))
		if err != nil {
			return nil, err
		}

		var location kernel.Location
		if dto.Latitude != nil && dto.Longitude != nil {
			location, err = kernel.NewLocation(*dto.Latitude, *dto.Longitude)
			if err != nil {
				return nil, err
			}
		}

		var proofID *kernel.UUID
		if dto.ProofID != nil {
			pid, pidErr := kernel.UUIDFromBytes((*dto.ProofID)[:])
			if pidErr != nil {
				return nil, pidErr
			}
			proofID = &pid
		}

		entries = append(entries, order.RestoreActivityEntry(activity, location, proofID, dto.CreatedAt))
	}
	return entries, nil
}
