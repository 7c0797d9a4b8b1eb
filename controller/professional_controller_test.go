package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"medstaff-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// ProfessionalControllerTestSuite defines a test suite for ProfessionalController handlers
type ProfessionalControllerTestSuite struct {
	suite.Suite
	service       *MockProfessionalService
	importService *MockImportService
	router        *gin.Engine
}

// SetupTest runs before each test
func (suite *ProfessionalControllerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.service = &MockProfessionalService{}
	suite.importService = &MockImportService{}
	handler := NewProfessionalController(context.Background(), suite.service, suite.importService, newMockLogger())

	suite.router = gin.New()
	suite.router.POST("/professionals", handler.Add)
	suite.router.POST("/professionals/import", handler.BulkImport)
	suite.router.GET("/professionals/:id", handler.Get)
	suite.router.PATCH("/professionals/:id", handler.Update)
}

func (suite *ProfessionalControllerTestSuite) performJSON(method, path, body string) (*httptest.ResponseRecorder, models.APIResponse) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var response models.APIResponse
	_ = json.Unmarshal(w.Body.Bytes(), &response)
	return w, response
}

func (suite *ProfessionalControllerTestSuite) TestAddCreatedReturns201() {
	suite.service.On("AddProfessional", mock.Anything, mock.Anything, mock.Anything).
		Return(&models.Professional{ID: "prof-1", Email: "jane@example.com"}, true, nil)

	w, response := suite.performJSON(http.MethodPost, "/professionals",
		`{"first_name":"Jane","last_name":"Doe","email":"jane@example.com","password":"s3cret"}`)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	assert.Equal(suite.T(), "success", response.Status)
	assert.Equal(suite.T(), "Professional created successfully", response.Message)
}

func (suite *ProfessionalControllerTestSuite) TestAddAffiliatedReturns200() {
	suite.service.On("AddProfessional", mock.Anything, mock.Anything, mock.Anything).
		Return(&models.Professional{ID: "prof-1"}, false, nil)

	w, response := suite.performJSON(http.MethodPost, "/professionals",
		`{"first_name":"Jane","last_name":"Doe","email":"jane@example.com","confirm_affiliation":true}`)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "Affiliation added to existing account", response.Message)
}

func (suite *ProfessionalControllerTestSuite) TestAddMissingFieldsReturns400() {
	w, response := suite.performJSON(http.MethodPost, "/professionals", `{"first_name":"Jane"}`)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "ValidationError", response.Error.Type)
	suite.service.AssertNotCalled(suite.T(), "AddProfessional", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProfessionalControllerTestSuite) TestAddAffiliationGateReturns409WithID() {
	suite.service.On("AddProfessional", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, false, &models.AddAffiliationRequired{ProfessionalID: "prof-1"})

	w, response := suite.performJSON(http.MethodPost, "/professionals",
		`{"first_name":"Jane","last_name":"Doe","email":"jane@example.com"}`)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	assert.Equal(suite.T(), "AffiliationConfirmationRequired", response.Error.Type)

	data := response.Data.(map[string]interface{})
	assert.Equal(suite.T(), "prof-1", data["professional_id"])
}

func (suite *ProfessionalControllerTestSuite) TestAddExistingAccountReturns409() {
	suite.service.On("AddProfessional", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, false, models.ErrAccountAlreadyExists)

	w, response := suite.performJSON(http.MethodPost, "/professionals",
		`{"first_name":"Jane","last_name":"Doe","email":"jane@example.com"}`)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	assert.Equal(suite.T(), "ConflictError", response.Error.Type)
}

func (suite *ProfessionalControllerTestSuite) TestAddDeactivatedAccountReturns403() {
	suite.service.On("AddProfessional", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, false, models.ErrDeactivatedAccount)

	w, response := suite.performJSON(http.MethodPost, "/professionals",
		`{"first_name":"Jane","last_name":"Doe","email":"jane@example.com"}`)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
	assert.Equal(suite.T(), "AccessDenied", response.Error.Type)
}

func (suite *ProfessionalControllerTestSuite) TestGetNotFoundReturns404() {
	suite.service.On("GetProfessional", mock.Anything, mock.Anything, "missing").
		Return(nil, models.ErrUserNotFound)

	w, response := suite.performJSON(http.MethodGet, "/professionals/missing", "")

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.Equal(suite.T(), "NotFoundError", response.Error.Type)
}

func (suite *ProfessionalControllerTestSuite) TestUpdateProfessionLockReturns400() {
	suite.service.On("UpdateProfessional", mock.Anything, mock.Anything, "prof-1", mock.Anything).
		Return(nil, models.ErrProfessionAlreadyAssigned)

	w, response := suite.performJSON(http.MethodPatch, "/professionals/prof-1", `{"profession":"PT"}`)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "ValidationError", response.Error.Type)
}

func (suite *ProfessionalControllerTestSuite) TestUpdateUnknownErrorReturns500() {
	suite.service.On("UpdateProfessional", mock.Anything, mock.Anything, "prof-1", mock.Anything).
		Return(nil, assert.AnError)

	w, response := suite.performJSON(http.MethodPatch, "/professionals/prof-1", `{"first_name":"Jane"}`)

	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)
	assert.Equal(suite.T(), "InternalError", response.Error.Type)
}

func (suite *ProfessionalControllerTestSuite) TestBulkImportParsesCSVBody() {
	var rows []map[string]string
	suite.importService.On("BulkImport", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			rows = args.Get(2).([]map[string]string)
		}).
		Return(&models.ImportSummary{Total: 2, Imported: 2}, nil)

	csvBody := "first_name,last_name,email\nJane,Doe,jane@example.com\nJohn,Roe,john@example.com\n"
	req := httptest.NewRequest(http.MethodPost, "/professionals/import", bytes.NewBufferString(csvBody))
	req.Header.Set("Content-Type", "text/csv")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Len(suite.T(), rows, 2)
	assert.Equal(suite.T(), "jane@example.com", rows[0]["email"])
	assert.Equal(suite.T(), "Roe", rows[1]["last_name"])
}

func (suite *ProfessionalControllerTestSuite) TestBulkImportEmptyBodyReturns400() {
	req := httptest.NewRequest(http.MethodPost, "/professionals/import", bytes.NewReader(nil))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	suite.importService.AssertNotCalled(suite.T(), "BulkImport", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProfessionalControllerTestSuite) TestBulkImportWithoutOrgSessionReturns403() {
	suite.importService.On("BulkImport", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, models.ErrUnauthorized)

	csvBody := "first_name,last_name,email\nJane,Doe,jane@example.com\n"
	req := httptest.NewRequest(http.MethodPost, "/professionals/import", bytes.NewBufferString(csvBody))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func TestProfessionalControllerTestSuite(t *testing.T) {
	suite.Run(t, new(ProfessionalControllerTestSuite))
}
