package service

import (
	"github.com/billfold/billfold/internal/config"
	"github.com/billfold/billfold/internal/domain/auth"
	"github.com/billfold/billfold/internal/domain/client"
	"github.com/billfold/billfold/internal/domain/invoice"
	"github.com/billfold/billfold/internal/domain/user"
	"github.com/billfold/billfold/internal/email"
	"github.com/billfold/billfold/internal/logger"
	"github.com/billfold/billfold/internal/pdf"
	"github.com/billfold/billfold/internal/postgres"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger       *logger.Logger
	Config       *config.Configuration
	DB           postgres.IClient
	PDFGenerator pdf.Generator
	Email        *email.Email

	// Repositories
	AuthRepo    auth.Repository
	UserRepo    user.Repository
	ClientRepo  client.Repository
	InvoiceRepo invoice.Repository
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	pdfGenerator pdf.Generator,
	emailService *email.Email,
	authRepo auth.Repository,
	userRepo user.Repository,
	clientRepo client.Repository,
	invoiceRepo invoice.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:       logger,
		Config:       config,
		DB:           db,
		PDFGenerator: pdfGenerator,
		Email:        emailService,
		AuthRepo:     authRepo,
		UserRepo:     userRepo,
		ClientRepo:   clientRepo,
		InvoiceRepo:  invoiceRepo,
	}
}
