package implementation

import (
	"context"

	"foodiebot-be/internal/entity"
	"foodiebot-be/internal/mapper"
	"foodiebot-be/internal/model"
	"foodiebot-be/internal/repository/contract"
	"foodiebot-be/internal/repository/specification"

	"gorm.io/gorm"
)

type InteractionEventRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InteractionEventMapper
}

func NewInteractionEventRepository(db *gorm.DB) contract.InteractionEventRepository {
	return &InteractionEventRepositoryImpl{
		db:     db,
		mapper: mapper.NewInteractionEventMapper(),
	}
}

func (r *InteractionEventRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *InteractionEventRepositoryImpl) Create(ctx context.Context, event *entity.InteractionEvent) error {
	m := r.mapper.ToModel(event)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*event = *r.mapper.ToEntity(m)
	return nil
}

func (r *InteractionEventRepositoryImpl) CreateBulk(ctx context.Context, events []*entity.InteractionEvent) error {
	if len(events) == 0 {
		return nil
	}
	models := make([]*model.InteractionEvent, 0, len(events))
	for _, e := range events {
		models = append(models, r.mapper.ToModel(e))
	}
	return r.db.WithContext(ctx).Create(&models).Error
}

func (r *InteractionEventRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InteractionEvent, error) {
	var models []*model.InteractionEvent
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *InteractionEventRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.InteractionEvent{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
