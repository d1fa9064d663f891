package repository

import (
	"github.com/billfold/billfold/internal/domain/auth"
	"github.com/billfold/billfold/internal/domain/client"
	"github.com/billfold/billfold/internal/domain/invoice"
	"github.com/billfold/billfold/internal/domain/user"
	"github.com/billfold/billfold/internal/logger"
	"github.com/billfold/billfold/internal/postgres"
	postgresRepo "github.com/billfold/billfold/internal/repository/postgres"
)

func NewUserRepository(db *postgres.Client, logger *logger.Logger) user.Repository {
	return postgresRepo.NewUserRepository(db, logger)
}

func NewAuthRepository(db *postgres.Client, logger *logger.Logger) auth.Repository {
	return postgresRepo.NewAuthRepository(db, logger)
}

func NewClientRepository(db *postgres.Client, logger *logger.Logger) client.Repository {
	return postgresRepo.NewClientRepository(db, logger)
}

func NewInvoiceRepository(db *postgres.Client, logger *logger.Logger) invoice.Repository {
	return postgresRepo.NewInvoiceRepository(db, logger)
}
