package repository

import (
	"context"
	"errors"

	"github.com/nimasrn/debt-ledger/internal/model"
	"github.com/nimasrn/debt-ledger/pkg/store"
)

var ErrCustomerNotFound = errors.New("customer not found")

type CustomerRepository struct {
	*store.DB
}

func NewCustomerRepository(db *store.DB) *CustomerRepository {
	return &CustomerRepository{
		db,
	}
}

// Create inserts the customer and writes the assigned id and creation time
// back onto it.
func (r *CustomerRepository) Create(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	entity := toCustomerEntity(customer)
	entity.ID = 0

	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	customer.ID = entity.ID
	customer.CreatedAt = entity.CreatedAt.UTC()
	return customer, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	var entity CustomerEntity
	result := r.Read(ctx).Where("id = ?", id).Limit(1).Find(&entity)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrCustomerNotFound
	}
	return toCustomerModel(&entity), nil
}

// GetAll returns every customer, newest first.
func (r *CustomerRepository) GetAll(ctx context.Context) ([]*model.Customer, error) {
	var entities []*CustomerEntity
	err := r.Read(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}
	return toCustomerModels(entities), nil
}

// Update overwrites name, phone and address. It reports false when no
// customer has the given id.
func (r *CustomerRepository) Update(ctx context.Context, customer *model.Customer) (bool, error) {
	entity := toCustomerEntity(customer)
	result := r.Write(ctx).
		Model(&CustomerEntity{}).
		Where("id = ?", customer.ID).
		Updates(map[string]any{
			"name":    entity.Name,
			"phone":   entity.Phone,
			"address": entity.Address,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete removes the customer. Its transactions go with it through the
// foreign key cascade.
func (r *CustomerRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.Write(ctx).Where("id = ?", id).Delete(&CustomerEntity{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.Read(ctx).Model(&CustomerEntity{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
