package orderrepo

import (
	"context"
	"errors"
	"time"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order aggregate with its full payload graph.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update persists the aggregate by rewriting its rows. Flat order columns are
// updated in place; the payload graph and timelines are replaced wholesale,
// which keeps the mapping immune to partial-diff bugs at the cost of a few
// extra statements inside the already-open transaction.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"public_id":      dto.PublicID,
		"order_type":     dto.OrderType,
		"status":         dto.Status,
		"dispatched":     dto.Dispatched,
		"started":        dto.Started,
		"started_at":     dto.StartedAt,
		"adhoc":          dto.Adhoc,
		"adhoc_distance": dto.AdhocDistance,
		"driver_id":      dto.DriverID,
		"scheduled_at":   dto.ScheduledAt,
		"pod_required":   dto.PodRequired,
		"pod_method":     dto.PodMethod,
		"vendor_ref":     dto.VendorRef,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	if err := r.deleteGraph(db, dto); err != nil {
		return err
	}
	if err := db.Create(&dto.Payload).Error; err != nil {
		return err
	}
	if len(dto.Activities) > 0 {
		if err := db.Create(&dto.Activities).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) deleteGraph(db *gorm.DB, dto OrderDTO) error {
	ownerIDs := []uuid.UUID{dto.ID, dto.Payload.ID}
	for _, w := range dto.Payload.Waypoints {
		ownerIDs = append(ownerIDs, w.ID)
	}
	for _, e := range dto.Payload.Entities {
		ownerIDs = append(ownerIDs, e.ID)
	}

	if err := db.Where("owner_id IN ?", ownerIDs).Delete(&ActivityDTO{}).Error; err != nil {
		return err
	}
	for _, model := range []any{&PlaceDTO{}, &WaypointDTO{}, &EntityDTO{}} {
		if err := db.Where("payload_id = ?", dto.Payload.ID).Delete(model).Error; err != nil {
			return err
		}
	}
	return db.Where("order_id = ?", dto.ID).Delete(&PayloadDTO{}).Error
}

// Get retrieves an order by internal ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.getOne(r.loaded(ctx), "id = ?", id.Bytes(), id.String())
}

// GetByPublicID retrieves an order by its public identifier.
func (r *GormOrderRepository) GetByPublicID(ctx context.Context, publicID kernel.PublicID) (*order.Order, error) {
	if err := publicID.Validate(); err != nil {
		return nil, err
	}
	return r.getOne(r.loaded(ctx), "public_id = ?", publicID.String(), publicID.String())
}

// GetForUpdate retrieves an order by public ID holding a row lock until the
// surrounding transaction ends. Lifecycle commands use this to serialize
// concurrent activity updates on the same order.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, publicID kernel.PublicID) (*order.Order, error) {
	if err := publicID.Validate(); err != nil {
		return nil, err
	}
	db := r.loaded(ctx).Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: OrderDTO{}.TableName()}})
	return r.getOne(db, "public_id = ?", publicID.String(), publicID.String())
}

// GetAllDueForDispatch retrieves created, undispatched, non-adhoc orders whose
// scheduled time is at or before the given moment. Adhoc orders dispatch when
// a driver accepts them, never on a schedule.
func (r *GormOrderRepository) GetAllDueForDispatch(ctx context.Context, at time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.loaded(ctx).
		Where("scheduled_at IS NOT NULL AND scheduled_at <= ?", at).
		Where("dispatched = ?", false).
		Where("adhoc = ?", false).
		Where("status = ?", order.Created.String()).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *GormOrderRepository) getOne(db *gorm.DB, query string, arg any, ref string) (*order.Order, error) {
	var dto OrderDTO
	if err := db.First(&dto, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", ref)
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormOrderRepository) loaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Activities").
		Preload("Payload").
		Preload("Payload.Places").
		Preload("Payload.Waypoints").
		Preload("Payload.Waypoints.Activities").
		Preload("Payload.Entities").
		Preload("Payload.Entities.Activities")
}
