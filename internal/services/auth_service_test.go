// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/fanrewards/fanmarket-backend/internal/models"
	"github.com/fanrewards/fanmarket-backend/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	cfg := testConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	suite.service = NewAuthService(suite.db, cfg)
}

func (suite *AuthServiceTestSuite) registerRequest() *RegisterRequest {
	return &RegisterRequest{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "TestPass123!",
		UserType: models.UserTypeFan,
	}
}

func (suite *AuthServiceTestSuite) TestRegisterAndLogin() {
	resp, err := suite.service.Register(suite.registerRequest())
	suite.Require().NoError(err)
	suite.NotEmpty(resp.AccessToken)
	suite.NotEmpty(resp.RefreshToken)
	suite.Equal(models.UserTypeFan, resp.User.UserType)

	loginResp, err := suite.service.Login(&LoginRequest{
		Email:    "test@example.com",
		Password: "TestPass123!",
	})
	suite.Require().NoError(err)
	suite.Equal(resp.User.ID, loginResp.User.ID)

	claims, err := utils.ValidateJWT(loginResp.AccessToken)
	suite.Require().NoError(err)
	suite.Equal(resp.User.ID.String(), claims.UserID)
	suite.Equal("fan", claims.UserType)
}

func (suite *AuthServiceTestSuite) TestRegisterDuplicateEmail() {
	_, err := suite.service.Register(suite.registerRequest())
	suite.Require().NoError(err)

	dup := suite.registerRequest()
	dup.Username = "otheruser"
	_, err = suite.service.Register(dup)
	suite.Error(err)
}

func (suite *AuthServiceTestSuite) TestRegisterAdminRejected() {
	req := suite.registerRequest()
	req.UserType = models.UserTypeAdmin
	_, err := suite.service.Register(req)
	suite.Error(err)
}

func (suite *AuthServiceTestSuite) TestLoginWrongPassword() {
	_, err := suite.service.Register(suite.registerRequest())
	suite.Require().NoError(err)

	_, err = suite.service.Login(&LoginRequest{
		Email:    "test@example.com",
		Password: "WrongPass123!",
	})
	suite.Error(err)
}

func (suite *AuthServiceTestSuite) TestLoginSuspendedAccount() {
	resp, err := suite.service.Register(suite.registerRequest())
	suite.Require().NoError(err)

	suite.Require().NoError(suite.db.Model(resp.User).Update("status", models.UserStatusSuspended).Error)

	_, err = suite.service.Login(&LoginRequest{
		Email:    "test@example.com",
		Password: "TestPass123!",
	})
	suite.Error(err)
}

func (suite *AuthServiceTestSuite) TestRefreshToken() {
	resp, err := suite.service.Register(suite.registerRequest())
	suite.Require().NoError(err)

	refreshed, err := suite.service.RefreshToken(resp.RefreshToken)
	suite.Require().NoError(err)
	suite.NotEmpty(refreshed.AccessToken)

	_, err = suite.service.RefreshToken("not-a-token")
	suite.Error(err)
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
