package handlers

import (
	"net/http"
	"testing"

	apperrors "letter-office-backend/internal/errors"
	"letter-office-backend/internal/mocks"
	"letter-office-backend/internal/service"
	"letter-office-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// LetterHandlerTestSuite defines the test suite for LetterHandler
type LetterHandlerTestSuite struct {
	suite.Suite
	ctrl              *gomock.Controller
	mockLetterService *mocks.MockLetterServiceInterface
	handler           *LetterHandler
	httpSuite         *testutils.HTTPTestSuite
}

// SetupTest sets up the test suite
func (suite *LetterHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockLetterService = mocks.NewMockLetterServiceInterface(suite.ctrl)

	suite.handler = NewLetterHandler(suite.mockLetterService)
	suite.httpSuite = testutils.SetupHTTPTest()

	letters := suite.httpSuite.Router.Group("/api/letters")
	{
		letters.POST("", suite.handler.GenerateLetter)
		letters.GET("", suite.handler.ListLetters)
		letters.GET("/types", suite.handler.GetLetterTypes)
		letters.GET("/:code", suite.handler.GetLetter)
		letters.GET("/:code/file", suite.handler.DownloadLetter)
	}
}

// TearDownTest cleans up after each test
func (suite *LetterHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestGenerateLetter tests a successful generation round trip
func (suite *LetterHandlerTestSuite) TestGenerateLetter() {
	requestBody := map[string]interface{}{
		"subject": "Quarterly invoice",
		"body":    "Please find the invoice attached.",
		"type":    "FIN",
	}

	expectedResponse := &service.GenerateLetterResponse{
		Letter: &service.LetterResponse{
			ID:        uuid.New(),
			Code:      "NGRR-FIN-1403-001",
			TypeAbbr:  "FIN",
			TypeLabel: "مالی",
			Subject:   "Quarterly invoice",
		},
		FilePath: "/letters/NGRR-FIN-1403-001 - Quarterly invoice.docx",
	}

	suite.mockLetterService.EXPECT().
		Generate(gomock.Any(), gomock.Nil()).
		Return(expectedResponse, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/letters", requestBody)

	assert.Equal(suite.T(), http.StatusCreated, recorder.Code)

	var response service.GenerateLetterResponse
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.Equal(suite.T(), "NGRR-FIN-1403-001", response.Letter.Code)
	assert.Empty(suite.T(), response.Warning)
}

// TestGenerateLetterTemplateMissing tests the conflict response when the
// template is not usable
func (suite *LetterHandlerTestSuite) TestGenerateLetterTemplateMissing() {
	suite.mockLetterService.EXPECT().
		Generate(gomock.Any(), gomock.Nil()).
		Return(nil, apperrors.NewTemplateMissingError("/settings/letterhead.docx")).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/letters", map[string]interface{}{
		"subject": "Notice",
		"body":    "Body",
	})

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusConflict, "letterhead template")
}

// TestGenerateLetterValidation tests the bad-request response for an
// invalid payload
func (suite *LetterHandlerTestSuite) TestGenerateLetterValidation() {
	suite.mockLetterService.EXPECT().
		Generate(gomock.Any(), gomock.Nil()).
		Return(nil, apperrors.ErrRecipientRequired).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/letters", map[string]interface{}{
		"subject": "Notice",
		"body":    "Body",
	})

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, "organization or contact")
}

// TestListLettersBadOrganizationID tests UUID validation of query filters
func (suite *LetterHandlerTestSuite) TestListLettersBadOrganizationID() {
	recorder := suite.httpSuite.MakeRequest("GET", "/api/letters?organization_id=not-a-uuid", nil)

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, "organization_id")
}

// TestGetLetterTypes tests the letter type listing
func (suite *LetterHandlerTestSuite) TestGetLetterTypes() {
	suite.mockLetterService.EXPECT().
		TypeLabels().
		Return([]string{"مالی", "اداری", "پرسنلی", "عمومی"}).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/letters/types", nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)

	var response map[string][]string
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.Len(suite.T(), response["types"], 4)
}

// TestGetLetterNotFound tests the not-found response by code
func (suite *LetterHandlerTestSuite) TestGetLetterNotFound() {
	suite.mockLetterService.EXPECT().
		GetByCode("NGRR-GEN-1403-999").
		Return(nil, apperrors.ErrLetterNotFound).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/letters/NGRR-GEN-1403-999", nil)

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusNotFound, "letter not found")
}

// TestDownloadLetterFileGone tests the not-found response when the recorded
// file is missing from disk
func (suite *LetterHandlerTestSuite) TestDownloadLetterFileGone() {
	suite.mockLetterService.EXPECT().
		ResolveFile("NGRR-GEN-1403-001").
		Return("", apperrors.NewLetterFileMissingError("/letters/gone.docx")).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/letters/NGRR-GEN-1403-001/file", nil)

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusNotFound, "gone.docx")
}

// TestLetterHandlerTestSuite runs the test suite
func TestLetterHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(LetterHandlerTestSuite))
}
