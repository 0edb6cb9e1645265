package repository

import (
	"time"

	"github.com/nimasrn/debt-ledger/internal/model"
)

type CustomerEntity struct {
	ID        int64     `db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	Name      string    `db:"name"       gorm:"column:name;not null"`
	Phone     *string   `db:"phone"      gorm:"column:phone"`
	Address   *string   `db:"address"    gorm:"column:address"`
	CreatedAt time.Time `db:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (CustomerEntity) TableName() string {
	return "customers"
}

func toCustomerEntity(m *model.Customer) *CustomerEntity {
	if m == nil {
		return nil
	}
	return &CustomerEntity{
		ID:        m.ID,
		Name:      m.Name,
		Phone:     nullable(m.Phone),
		Address:   nullable(m.Address),
		CreatedAt: m.CreatedAt,
	}
}

func toCustomerModel(e *CustomerEntity) *model.Customer {
	if e == nil {
		return nil
	}
	return &model.Customer{
		ID:        e.ID,
		Name:      e.Name,
		Phone:     deref(e.Phone),
		Address:   deref(e.Address),
		CreatedAt: e.CreatedAt.UTC(),
	}
}

func toCustomerModels(entities []*CustomerEntity) []*model.Customer {
	models := make([]*model.Customer, len(entities))
	for i, e := range entities {
		models[i] = toCustomerModel(e)
	}
	return models
}

// nullable stores empty optional text as NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
