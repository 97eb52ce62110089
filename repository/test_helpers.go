package repository

import (
	"betsim/database"
	"betsim/domain/interfaces"
)

// NewTestUnitOfWorkFactory creates a unit of work factory for tests.
// Tests should provide their own transactional publisher constructor.
func NewTestUnitOfWorkFactory(db *database.DB, publisher func() interfaces.TransactionalEventPublisher) interfaces.UnitOfWorkFactory {
	return NewUnitOfWorkFactory(db, publisher)
}

// CreateTestUnitOfWork creates a unit of work for testing with the provided transactional publisher
func CreateTestUnitOfWork(db *database.DB, publisher interfaces.TransactionalEventPublisher) interfaces.UnitOfWork {
	factory := NewUnitOfWorkFactory(db, func() interfaces.TransactionalEventPublisher {
		return publisher
	})
	return factory.Create()
}
