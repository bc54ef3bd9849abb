// internal/handlers/handlers_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fanrewards/fanmarket-backend/internal/config"
	"github.com/fanrewards/fanmarket-backend/internal/middleware"
	"github.com/fanrewards/fanmarket-backend/internal/models"
	"github.com/fanrewards/fanmarket-backend/internal/services"
	"github.com/fanrewards/fanmarket-backend/internal/utils"
)

type HandlersTestSuite struct {
	suite.Suite
	db      *gorm.DB
	router  *gin.Engine
	creator *models.User
	fan     *models.User
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)
	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(db.AutoMigrate(
		&models.User{},
		&models.PaymentToken{},
		&models.Wallet{},
		&models.Token{},
		&models.MarketSettings{},
		&models.Sale{},
		&models.FanPoints{},
	))
	suite.Require().NoError(db.Create(&models.MarketSettings{
		Key:         models.MarketSettingsKey,
		NextTokenID: 0,
	}).Error)
	suite.db = db

	cfg := &config.Config{Environment: "test"}
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.AccessTokenTTL = 1
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	paymentService := services.NewPaymentService(db, cfg)
	tokenService := services.NewTokenService(db)
	marketService := services.NewMarketService(db, paymentService)
	pointsService := services.NewPointsService(db)
	storageService, err := services.NewStorageService(cfg)
	suite.Require().NoError(err)

	tokenHandler := NewTokenHandler(tokenService, storageService)
	marketHandler := NewMarketHandler(marketService)
	pointsHandler := NewPointsHandler(pointsService)

	r := gin.New()
	v1 := r.Group("/v1")
	tokens := v1.Group("/tokens")
	tokens.GET("/:token_id", tokenHandler.GetInfo)
	protected := tokens.Group("")
	protected.Use(middleware.AuthRequired())
	protected.POST("", tokenHandler.Mint)
	protected.POST("/:token_id/transfer", tokenHandler.Transfer)
	protected.POST("/:token_id/buy", marketHandler.Buy)
	v1.GET("/fans/:fan_id/points", pointsHandler.GetFanPoints)
	v1.POST("/points/award", middleware.AuthRequired(), pointsHandler.AwardFanPoints)
	suite.router = r

	suite.creator = suite.createUser("creator", models.UserTypeCreator)
	suite.fan = suite.createUser("fan", models.UserTypeFan)
}

func (suite *HandlersTestSuite) createUser(username string, userType models.UserType) *models.User {
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		UserType: userType,
		Status:   models.UserStatusActive,
	}
	suite.Require().NoError(user.SetPassword("TestPass123!"))
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *HandlersTestSuite) request(method, path string, body interface{}, as *models.User) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, path, &buf)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	if as != nil {
		jwt, err := utils.GenerateJWT(as.ID, as.Username, string(as.UserType), 1)
		suite.Require().NoError(err)
		req.Header.Set("Authorization", "Bearer "+jwt)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) mint() uint64 {
	w := suite.request("POST", "/v1/tokens", gin.H{
		"creator_id":       suite.creator.ID,
		"initial_owner_id": suite.creator.ID,
		"royalty_bps":      500,
		"uri":              "ipfs://example",
	}, suite.creator)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var token models.Token
	suite.Require().NoError(suite.db.Order("token_id DESC").First(&token).Error)
	return token.TokenID
}

func (suite *HandlersTestSuite) TestMintAndGetInfo() {
	tokenID := suite.mint()

	w := suite.request("GET", fmt.Sprintf("/v1/tokens/%d", tokenID), nil, nil)
	suite.Equal(http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.True(response["success"].(bool))
}

func (suite *HandlersTestSuite) TestMintRequiresAuth() {
	w := suite.request("POST", "/v1/tokens", gin.H{
		"creator_id":       suite.creator.ID,
		"initial_owner_id": suite.creator.ID,
	}, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestMintForAnotherCreatorForbidden() {
	w := suite.request("POST", "/v1/tokens", gin.H{
		"creator_id":       suite.creator.ID,
		"initial_owner_id": suite.fan.ID,
		"royalty_bps":      100,
	}, suite.fan)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlersTestSuite) TestGetInfoUnknownToken() {
	w := suite.request("GET", "/v1/tokens/99", nil, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestTransferStatusMapping() {
	tokenID := suite.mint()

	// Self-transfer maps to 409.
	w := suite.request("POST", fmt.Sprintf("/v1/tokens/%d/transfer", tokenID), gin.H{
		"from_id": suite.creator.ID,
		"to_id":   suite.creator.ID,
	}, suite.creator)
	suite.Equal(http.StatusConflict, w.Code)

	// Sending someone else's token maps to 403.
	w = suite.request("POST", fmt.Sprintf("/v1/tokens/%d/transfer", tokenID), gin.H{
		"from_id": suite.fan.ID,
		"to_id":   suite.creator.ID,
	}, suite.fan)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.request("POST", fmt.Sprintf("/v1/tokens/%d/transfer", tokenID), gin.H{
		"from_id": suite.creator.ID,
		"to_id":   suite.fan.ID,
	}, suite.creator)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlersTestSuite) TestBuyWithoutPaymentTokenConfigured() {
	tokenID := suite.mint()

	w := suite.request("POST", fmt.Sprintf("/v1/tokens/%d/buy", tokenID), gin.H{
		"price": 1000,
	}, suite.fan)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestBuyInvalidPrice() {
	tokenID := suite.mint()

	w := suite.request("POST", fmt.Sprintf("/v1/tokens/%d/buy", tokenID), gin.H{
		"price": -1,
	}, suite.fan)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestAwardAndReadPoints() {
	w := suite.request("POST", "/v1/points/award", gin.H{
		"granter_id": suite.creator.ID,
		"fan_id":     suite.fan.ID,
		"points":     "250",
	}, suite.creator)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request("GET", "/v1/fans/"+suite.fan.ID.String()+"/points", nil, nil)
	suite.Equal(http.StatusOK, w.Code)

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			Points string `json:"points"`
		} `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.True(response.Success)
	suite.Equal("250", response.Data.Points)
}

func (suite *HandlersTestSuite) TestAwardPointsImpersonatedGranter() {
	w := suite.request("POST", "/v1/points/award", gin.H{
		"granter_id": suite.creator.ID,
		"fan_id":     suite.fan.ID,
		"points":     "250",
	}, suite.fan)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlersTestSuite) TestAwardPointsMalformedAmount() {
	w := suite.request("POST", "/v1/points/award", gin.H{
		"granter_id": suite.creator.ID,
		"fan_id":     suite.fan.ID,
		"points":     "-1",
	}, suite.creator)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestHandlersSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
