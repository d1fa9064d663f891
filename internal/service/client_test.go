package service

import (
	"testing"

	"github.com/billfold/billfold/internal/api/dto"
	ierr "github.com/billfold/billfold/internal/errors"
	"github.com/billfold/billfold/internal/testutil"
	"github.com/billfold/billfold/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type ClientServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ClientService
}

func TestClientService(t *testing.T) {
	suite.Run(t, new(ClientServiceSuite))
}

func (s *ClientServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewClientService(s.params())
}

func (s *ClientServiceSuite) params() ServiceParams {
	stores := s.GetStores()
	return ServiceParams{
		Logger:     s.GetLogger(),
		Config:     s.GetConfig(),
		DB:         s.GetDB(),
		AuthRepo:   stores.AuthRepo,
		UserRepo:   stores.UserRepo,
		ClientRepo: stores.ClientRepo,
	}
}

func (s *ClientServiceSuite) TestCreateClient() {
	resp, err := s.service.CreateClient(s.GetContext(), &dto.CreateClientRequest{
		Name:  "Acme Corp",
		Email: "billing@acme.test",
	})
	s.NoError(err)
	s.NotEmpty(resp.ID)
	s.Equal("Acme Corp", resp.Name)
	s.Equal(types.DefaultUserID, resp.OwnerID)
}

func (s *ClientServiceSuite) TestCreateClient_MissingName() {
	_, err := s.service.CreateClient(s.GetContext(), &dto.CreateClientRequest{
		Email: "billing@acme.test",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *ClientServiceSuite) TestGetClient() {
	created, err := s.service.CreateClient(s.GetContext(), &dto.CreateClientRequest{Name: "Acme"})
	s.NoError(err)

	got, err := s.service.GetClient(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(created.ID, got.ID)
}

func (s *ClientServiceSuite) TestGetClient_NotFound() {
	_, err := s.service.GetClient(s.GetContext(), "cli_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *ClientServiceSuite) TestGetClient_OtherOwnerHidden() {
	created, err := s.service.CreateClient(s.GetContext(), &dto.CreateClientRequest{Name: "Acme"})
	s.NoError(err)

	otherCtx := testutil.SetupContextWithUser(types.DefaultTenantID, "user_other")
	_, err = s.service.GetClient(otherCtx, created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *ClientServiceSuite) TestListClients() {
	for _, name := range []string{"One", "Two", "Three"} {
		_, err := s.service.CreateClient(s.GetContext(), &dto.CreateClientRequest{Name: name})
		s.NoError(err)
	}

	resp, err := s.service.ListClients(s.GetContext(), nil)
	s.NoError(err)
	s.Equal(3, resp.Total)
	s.Len(resp.Items, 3)
}

func (s *ClientServiceSuite) TestListClients_CountScopedToOwner() {
	_, err := s.service.CreateClient(s.GetContext(), &dto.CreateClientRequest{Name: "Mine"})
	s.NoError(err)

	otherCtx := testutil.SetupContextWithUser(types.DefaultTenantID, "user_other")
	_, err = s.service.CreateClient(otherCtx, &dto.CreateClientRequest{Name: "Theirs"})
	s.Require().NoError(err)

	resp, err := s.service.ListClients(s.GetContext(), nil)
	s.NoError(err)
	s.Equal(1, resp.Total)
	s.Len(resp.Items, 1)
	s.Equal("Mine", resp.Items[0].Name)
}

func (s *ClientServiceSuite) TestListClients_FilterByEmail() {
	_, err := s.service.CreateClient(s.GetContext(), &dto.CreateClientRequest{Name: "A", Email: "a@x.test"})
	s.NoError(err)
	_, err = s.service.CreateClient(s.GetContext(), &dto.CreateClientRequest{Name: "B", Email: "b@x.test"})
	s.NoError(err)

	filter := &types.ClientFilter{QueryFilter: types.NewQueryFilter(), Email: "a@x.test"}
	resp, err := s.service.ListClients(s.GetContext(), filter)
	s.NoError(err)
	s.Len(resp.Items, 1)
	s.Equal("A", resp.Items[0].Name)
}

func (s *ClientServiceSuite) TestListClients_InvalidLimit() {
	limit := 5000
	filter := &types.ClientFilter{QueryFilter: types.QueryFilter{Limit: &limit}}
	_, err := s.service.ListClients(s.GetContext(), filter)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *ClientServiceSuite) TestUpdateClient() {
	created, err := s.service.CreateClient(s.GetContext(), &dto.CreateClientRequest{Name: "Before"})
	s.NoError(err)

	updated, err := s.service.UpdateClient(s.GetContext(), created.ID, &dto.UpdateClientRequest{
		Name:  lo.ToPtr("After"),
		Notes: lo.ToPtr("vip"),
	})
	s.NoError(err)
	s.Equal("After", updated.Name)
	s.Equal("vip", updated.Notes)

	got, err := s.service.GetClient(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal("After", got.Name)
}

func (s *ClientServiceSuite) TestDeleteClient() {
	created, err := s.service.CreateClient(s.GetContext(), &dto.CreateClientRequest{Name: "Gone"})
	s.NoError(err)

	s.NoError(s.service.DeleteClient(s.GetContext(), created.ID))

	_, err = s.service.GetClient(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
