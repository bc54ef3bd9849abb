// internal/services/payment_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/fanrewards/fanmarket-backend/internal/database"
	"github.com/fanrewards/fanmarket-backend/internal/models"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	service  *PaymentService
	payToken *models.PaymentToken
	alice    *models.User
	bob      *models.User
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	suite.service = NewPaymentService(suite.db, testConfig())
	suite.payToken = createLedgerToken(suite.T(), suite.db, "FMC")
	suite.alice = createTestUser(suite.T(), suite.db, "alice", models.UserTypeFan)
	suite.bob = createTestUser(suite.T(), suite.db, "bob", models.UserTypeFan)
}

func (suite *PaymentServiceTestSuite) TestDepositAndBalance() {
	balance, err := suite.service.GetWalletBalance(suite.payToken.ID, suite.alice.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(0), balance)

	suite.Require().NoError(suite.service.Deposit(suite.payToken.ID, suite.alice.ID, 500))
	suite.Require().NoError(suite.service.Deposit(suite.payToken.ID, suite.alice.ID, 250))

	balance, err = suite.service.GetWalletBalance(suite.payToken.ID, suite.alice.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(750), balance)
}

func (suite *PaymentServiceTestSuite) TestDepositRejectsNonPositiveAmount() {
	suite.ErrorIs(suite.service.Deposit(suite.payToken.ID, suite.alice.ID, 0), ErrInvalidPrice)
	suite.ErrorIs(suite.service.Deposit(suite.payToken.ID, suite.alice.ID, -10), ErrInvalidPrice)
}

func (suite *PaymentServiceTestSuite) TestLedgerTransferMovesFunds() {
	suite.Require().NoError(suite.service.Deposit(suite.payToken.ID, suite.alice.ID, 500))

	err := database.WithTransaction(suite.db, func(tx *gorm.DB) error {
		return suite.service.TransferFrom(tx, suite.payToken, suite.alice.ID, suite.bob.ID, 300)
	})
	suite.Require().NoError(err)

	aliceBalance, err := suite.service.GetWalletBalance(suite.payToken.ID, suite.alice.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(200), aliceBalance)

	bobBalance, err := suite.service.GetWalletBalance(suite.payToken.ID, suite.bob.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(300), bobBalance)
}

func (suite *PaymentServiceTestSuite) TestLedgerTransferInsufficientFunds() {
	suite.Require().NoError(suite.service.Deposit(suite.payToken.ID, suite.alice.ID, 100))

	err := database.WithTransaction(suite.db, func(tx *gorm.DB) error {
		return suite.service.TransferFrom(tx, suite.payToken, suite.alice.ID, suite.bob.ID, 300)
	})
	suite.Error(err)

	// The rollback leaves both sides untouched.
	aliceBalance, err := suite.service.GetWalletBalance(suite.payToken.ID, suite.alice.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(100), aliceBalance)

	bobBalance, err := suite.service.GetWalletBalance(suite.payToken.ID, suite.bob.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(0), bobBalance)
}

func (suite *PaymentServiceTestSuite) TestLedgerTransferWithoutWallet() {
	err := database.WithTransaction(suite.db, func(tx *gorm.DB) error {
		return suite.service.TransferFrom(tx, suite.payToken, suite.alice.ID, suite.bob.ID, 100)
	})
	suite.Error(err)
}

func (suite *PaymentServiceTestSuite) TestResolveToken() {
	token, err := suite.service.ResolveToken(suite.db, suite.payToken.ID)
	suite.Require().NoError(err)
	suite.Equal(suite.payToken.Symbol, token.Symbol)

	_, err = suite.service.ResolveToken(suite.db, uuid.New())
	suite.ErrorIs(err, ErrInvalidPaymentToken)

	suite.Require().NoError(suite.db.Model(suite.payToken).Update("is_active", false).Error)
	_, err = suite.service.ResolveToken(suite.db, suite.payToken.ID)
	suite.ErrorIs(err, ErrInvalidPaymentToken)
}

func TestPaymentServiceSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
