// Package accountrepo provides data transfer objects and mapping functions
// for account persistence, including the ledger balance.
package accountrepo

import (
	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountDTO represents the database structure for persisting accounts.
type AccountDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email   string    `gorm:"uniqueIndex"`
	Name    string
	Role    string          `gorm:"type:varchar(16)"`
	Balance decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName specifies the database table name for account entities.
func (AccountDTO) TableName() string {
	return "accounts"
}

// fromDomain converts an account domain entity to its database representation.
func fromDomain(acc *account.Account) AccountDTO {
	return AccountDTO{
		ID:      acc.ID().Bytes(),
		Email:   acc.Email(),
		Name:    acc.Name(),
		Role:    string(acc.Role()),
		Balance: acc.Balance().Decimal(),
	}
}

// toDomain converts a database DTO to an account domain entity.
func toDomain(dto AccountDTO) (*account.Account, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	balance, err := kernel.NewMoney(dto.Balance)
	if err != nil {
		return nil, err
	}

	return account.RestoreAccount(id, dto.Email, dto.Name, account.Role(dto.Role), balance)
}
