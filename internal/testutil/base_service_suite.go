package testutil

import (
	"context"
	"time"

	"github.com/billfold/billfold/internal/config"
	"github.com/billfold/billfold/internal/domain/auth"
	"github.com/billfold/billfold/internal/domain/client"
	"github.com/billfold/billfold/internal/domain/invoice"
	"github.com/billfold/billfold/internal/domain/user"
	"github.com/billfold/billfold/internal/logger"
	"github.com/billfold/billfold/internal/postgres"
	"github.com/billfold/billfold/internal/types"
	"github.com/billfold/billfold/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	AuthRepo    auth.Repository
	UserRepo    user.Repository
	ClientRepo  client.Repository
	InvoiceRepo invoice.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx          context.Context
	stores       Stores
	db           postgres.IClient
	logger       *logger.Logger
	config       *config.Configuration
	now          time.Time
	pdfGenerator *MockPDFGenerator
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	s.config = config.GetDefaultConfig()

	var err error
	s.logger, err = logger.NewLogger()
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = SetupContext()
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		AuthRepo:    NewInMemoryAuthRepository(),
		UserRepo:    NewInMemoryUserRepository(),
		ClientRepo:  NewInMemoryClientStore(),
		InvoiceRepo: NewInMemoryInvoiceStore(),
	}

	s.db = NewMockPostgresClient(s.logger,
		s.stores.AuthRepo.(*InMemoryAuthRepository),
		s.stores.UserRepo.(*InMemoryUserRepository),
		s.stores.ClientRepo.(*InMemoryClientStore),
		s.stores.InvoiceRepo.(*InMemoryInvoiceStore),
	)
	s.pdfGenerator = NewMockPDFGenerator(s.logger)
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.AuthRepo.(*InMemoryAuthRepository).Clear()
	s.stores.UserRepo.(*InMemoryUserRepository).Clear()
	s.stores.ClientRepo.(*InMemoryClientStore).Clear()
	s.stores.InvoiceRepo.(*InMemoryInvoiceStore).Clear()
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetDB returns the test database client
func (s *BaseServiceTestSuite) GetDB() postgres.IClient {
	return s.db
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetPDFGenerator returns the test pdf generator mock
func (s *BaseServiceTestSuite) GetPDFGenerator() *MockPDFGenerator {
	return s.pdfGenerator
}

// GetUUID returns a fresh identifier for tests
func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}

// GetNow returns the suite setup time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
