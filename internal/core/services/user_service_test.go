package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/vendasys/vendas_pos_app/internal/apperrors"
	"github.com/vendasys/vendas_pos_app/internal/core/domain"
	"github.com/vendasys/vendas_pos_app/internal/core/services"
	"github.com/vendasys/vendas_pos_app/internal/dto"
	"github.com/vendasys/vendas_pos_app/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  *services.UserService
	ctx      context.Context
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockUserRepository)
	s.service = services.NewUserService(s.mockRepo, bcrypt.MinCost)
	s.ctx = context.Background()
}

func (s *UserServiceTestSuite) TestCreateUser_HashesPasswordAndParsesRole() {
	var saved domain.User
	s.mockRepo.On("SaveUser", s.ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.User) }).
		Return(nil).Once()

	req := dto.CreateUserRequest{
		Name:     "Amelia Neto",
		Username: "amelia",
		Password: "s3cretpass",
		Role:     "SALESPERSON",
	}
	user, err := s.service.CreateUser(s.ctx, req, "admin-1")

	s.Require().NoError(err)
	s.Equal(domain.RoleSalesperson, user.Role)
	s.True(user.IsActive)
	s.NotEqual("s3cretpass", saved.PasswordHash)
	s.True(utils.CheckPasswordHash("s3cretpass", saved.PasswordHash))
	s.Equal("admin-1", saved.CreatedBy)
}

func (s *UserServiceTestSuite) TestCreateUser_UsesConfiguredBcryptCost() {
	service := services.NewUserService(s.mockRepo, 6)
	var saved domain.User
	s.mockRepo.On("SaveUser", s.ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.User) }).
		Return(nil).Once()

	req := dto.CreateUserRequest{
		Name:     "Amelia Neto",
		Username: "amelia",
		Password: "s3cretpass",
		Role:     "SALESPERSON",
	}
	_, err := service.CreateUser(s.ctx, req, "admin-1")

	s.Require().NoError(err)
	cost, err := bcrypt.Cost([]byte(saved.PasswordHash))
	s.Require().NoError(err)
	s.Equal(6, cost)
}

func (s *UserServiceTestSuite) TestCreateUser_RejectsUnknownRole() {
	req := dto.CreateUserRequest{
		Name:     "Amelia Neto",
		Username: "amelia",
		Password: "s3cretpass",
		Role:     "SUPERUSER",
	}
	_, err := s.service.CreateUser(s.ctx, req, "admin-1")

	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestCreateUser_DuplicateUsernameSurfaces() {
	s.mockRepo.On("SaveUser", s.ctx, mock.AnythingOfType("domain.User")).
		Return(apperrors.ErrDuplicate).Once()

	req := dto.CreateUserRequest{
		Name:     "Amelia Neto",
		Username: "amelia",
		Password: "s3cretpass",
		Role:     "OPERATOR",
	}
	_, err := s.service.CreateUser(s.ctx, req, "admin-1")

	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *UserServiceTestSuite) TestUpdateUser_ChangesRole() {
	existing := &domain.User{
		UserID:   "user-1",
		Name:     "Amelia Neto",
		Username: "amelia",
		Role:     domain.RoleOperator,
		IsActive: true,
	}
	s.mockRepo.On("FindUserByID", s.ctx, "user-1").Return(existing, nil).Once()
	s.mockRepo.On("UpdateUser", s.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleManager && u.LastUpdatedBy == "admin-1"
	})).Return(nil).Once()

	role := "MANAGER"
	got, err := s.service.UpdateUser(s.ctx, "user-1", dto.UpdateUserRequest{Role: &role}, "admin-1")

	s.Require().NoError(err)
	s.Equal(domain.RoleManager, got.Role)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestDeactivateUser_CannotDeactivateSelf() {
	err := s.service.DeactivateUser(s.ctx, "admin-1", "admin-1")

	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockRepo.AssertNotCalled(s.T(), "DeactivateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestUnlockUser() {
	s.mockRepo.On("UnlockUser", s.ctx, "user-1", "admin-1", mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := s.service.UnlockUser(s.ctx, "user-1", "admin-1")

	s.Require().NoError(err)
	s.mockRepo.AssertExpectations(s.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
