package service_test

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"letter-office-backend/internal/database/models"
	apperrors "letter-office-backend/internal/errors"
	"letter-office-backend/internal/mocks"
	"letter-office-backend/internal/service"
	"letter-office-backend/internal/settings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	ptime "github.com/yaa110/go-persian-calendar"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

const letterTemplateXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:r><w:t>[[DATE]] [[CODE]]</w:t></w:r></w:p>
<w:p><w:r><w:t>[[ORGANIZATION_NAME]] [[CONTACT_NAME]]</w:t></w:r></w:p>
<w:p><w:r><w:t>[[SUBJECT]]</w:t></w:r></w:p>
<w:p><w:r><w:t>[[BODY]]</w:t></w:r></w:p>
<w:p><w:r><w:t>[[COMPANY_NAME]]</w:t></w:r></w:p>
</w:body></w:document>`

const letterTemplateRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"/>`

// fakeSettingsProvider serves a fixed settings snapshot to the service
type fakeSettingsProvider struct {
	current settings.Settings
}

func (f *fakeSettingsProvider) Get() settings.Settings {
	return f.current
}

// LetterServiceTestSuite defines the test suite for LetterService
type LetterServiceTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockLetterRepo  *mocks.MockLetterRepositoryInterface
	mockOrgRepo     *mocks.MockOrganizationRepositoryInterface
	mockContactRepo *mocks.MockContactRepositoryInterface
	settingsFake    *fakeSettingsProvider
	letterService   *service.LetterService
	validator       *validator.Validate

	dir          string
	templatePath string
	outputDir    string
}

// SetupTest sets up the test suite with a real template file on disk
func (suite *LetterServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockLetterRepo = mocks.NewMockLetterRepositoryInterface(suite.ctrl)
	suite.mockOrgRepo = mocks.NewMockOrganizationRepositoryInterface(suite.ctrl)
	suite.mockContactRepo = mocks.NewMockContactRepositoryInterface(suite.ctrl)
	suite.validator = validator.New()

	suite.dir = suite.T().TempDir()
	suite.templatePath = filepath.Join(suite.dir, "letterhead.docx")
	suite.outputDir = filepath.Join(suite.dir, "letters")
	suite.writeTemplate(suite.templatePath)

	suite.settingsFake = &fakeSettingsProvider{current: settings.Settings{
		CompanyAbbr:  "NGRR",
		CompanyName:  "Negar Rayaneh Co.",
		OutputDir:    suite.outputDir,
		TemplatePath: suite.templatePath,
	}}

	suite.letterService = service.NewLetterService(
		suite.mockLetterRepo,
		suite.mockOrgRepo,
		suite.mockContactRepo,
		suite.settingsFake,
		suite.validator,
		false,
	)
}

// TearDownTest cleans up after each test
func (suite *LetterServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *LetterServiceTestSuite) writeTemplate(path string) {
	f, err := os.Create(path)
	require.NoError(suite.T(), err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range map[string]string{
		"word/document.xml":            letterTemplateXML,
		"word/_rels/document.xml.rels": letterTemplateRelsXML,
	} {
		w, err := zw.Create(name)
		require.NoError(suite.T(), err)
		_, err = w.Write([]byte(content))
		require.NoError(suite.T(), err)
	}
	require.NoError(suite.T(), zw.Close())
}

// currentPrefix computes the code prefix the service will allocate under
// right now
func (suite *LetterServiceTestSuite) currentPrefix(typeAbbr string) string {
	return service.CodePrefix("NGRR", typeAbbr, ptime.New(time.Now()).Year())
}

// TestGenerateFirstLetter tests allocating the first code of a prefix
func (suite *LetterServiceTestSuite) TestGenerateFirstLetter() {
	prefix := suite.currentPrefix("FIN")

	suite.mockLetterRepo.EXPECT().
		CodesByPrefix(prefix).
		Return(nil, nil).
		Times(1)

	suite.mockLetterRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(letter *models.Letter) error {
			letter.ID = uuid.New()
			return nil
		}).
		Times(1)

	resp, err := suite.letterService.Generate(&service.GenerateLetterRequest{
		Subject: "Quarterly invoice",
		Body:    "Please find the invoice attached.",
		Type:    "FIN",
	}, nil)

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), resp.Letter)
	assert.Empty(suite.T(), resp.Warning)
	assert.Equal(suite.T(), prefix+"001", resp.Letter.Code)
	assert.Equal(suite.T(), service.ToPersianDigits(prefix+"001"), resp.Letter.CodeLocalized)
	assert.Equal(suite.T(), "FIN", resp.Letter.TypeAbbr)
	assert.Equal(suite.T(), "مالی", resp.Letter.TypeLabel)
	assert.Equal(suite.T(), "---", resp.Letter.OrganizationName)
	assert.Equal(suite.T(), "---", resp.Letter.ContactName)

	// The document must exist on disk at the reported path.
	info, statErr := os.Stat(resp.FilePath)
	require.NoError(suite.T(), statErr)
	assert.Greater(suite.T(), info.Size(), int64(0))
	assert.Equal(suite.T(), prefix+"001 - Quarterly invoice.docx", filepath.Base(resp.FilePath))
}

// TestGenerateContinuesSequence tests that allocation continues past the
// highest existing suffix
func (suite *LetterServiceTestSuite) TestGenerateContinuesSequence() {
	prefix := suite.currentPrefix("GEN")

	suite.mockLetterRepo.EXPECT().
		CodesByPrefix(prefix).
		Return([]string{prefix + "001", prefix + "002"}, nil).
		Times(1)

	suite.mockLetterRepo.EXPECT().
		Create(gomock.Any()).
		Return(nil).
		Times(1)

	resp, err := suite.letterService.Generate(&service.GenerateLetterRequest{
		Subject: "Announcement",
		Body:    "General announcement.",
	}, nil)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), prefix+"003", resp.Letter.Code)
}

// TestGenerateUnknownTypeFallsBack tests that an unrecognized type selector
// is recorded as the general type
func (suite *LetterServiceTestSuite) TestGenerateUnknownTypeFallsBack() {
	prefix := suite.currentPrefix("GEN")

	suite.mockLetterRepo.EXPECT().
		CodesByPrefix(prefix).
		Return(nil, nil).
		Times(1)

	suite.mockLetterRepo.EXPECT().
		Create(gomock.Any()).
		Return(nil).
		Times(1)

	resp, err := suite.letterService.Generate(&service.GenerateLetterRequest{
		Subject: "Misc",
		Body:    "Body",
		Type:    "does-not-exist",
	}, nil)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "GEN", resp.Letter.TypeAbbr)
	assert.Equal(suite.T(), "عمومی", resp.Letter.TypeLabel)
}

// TestGenerateWithOrganization tests that the recipient organization's name
// is resolved and stamped into the response
func (suite *LetterServiceTestSuite) TestGenerateWithOrganization() {
	orgID := uuid.New()
	org := &models.Organization{Name: "Acme Holdings"}
	org.ID = orgID
	prefix := suite.currentPrefix("ADM")

	suite.mockOrgRepo.EXPECT().
		GetByID(orgID).
		Return(org, nil).
		Times(1)

	suite.mockLetterRepo.EXPECT().
		CodesByPrefix(prefix).
		Return(nil, nil).
		Times(1)

	suite.mockLetterRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(letter *models.Letter) error {
			assert.Equal(suite.T(), &orgID, letter.OrganizationID)
			return nil
		}).
		Times(1)

	resp, err := suite.letterService.Generate(&service.GenerateLetterRequest{
		Subject:        "Office notice",
		Body:           "Body",
		Type:           "اداری",
		OrganizationID: &orgID,
	}, nil)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Acme Holdings", resp.Letter.OrganizationName)
	assert.Equal(suite.T(), "ADM", resp.Letter.TypeAbbr)
}

// TestGenerateUnknownOrganization tests that a dangling organization
// reference aborts before any file is written
func (suite *LetterServiceTestSuite) TestGenerateUnknownOrganization() {
	orgID := uuid.New()

	suite.mockOrgRepo.EXPECT().
		GetByID(orgID).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	resp, err := suite.letterService.Generate(&service.GenerateLetterRequest{
		Subject:        "Notice",
		Body:           "Body",
		OrganizationID: &orgID,
	}, nil)

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrOrganizationNotFound)

	_, statErr := os.Stat(suite.outputDir)
	assert.True(suite.T(), os.IsNotExist(statErr))
}

// TestGenerateTemplateNotConfigured tests refusing to generate without a
// template path
func (suite *LetterServiceTestSuite) TestGenerateTemplateNotConfigured() {
	suite.settingsFake.current.TemplatePath = ""

	resp, err := suite.letterService.Generate(&service.GenerateLetterRequest{
		Subject: "Notice",
		Body:    "Body",
	}, nil)

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrTemplateNotConfigured)
}

// TestGenerateMissingTemplateFile tests refusing to generate when the
// configured template is gone from disk
func (suite *LetterServiceTestSuite) TestGenerateMissingTemplateFile() {
	suite.settingsFake.current.TemplatePath = filepath.Join(suite.dir, "gone.docx")

	resp, err := suite.letterService.Generate(&service.GenerateLetterRequest{
		Subject: "Notice",
		Body:    "Body",
	}, nil)

	assert.Nil(suite.T(), resp)
	assert.True(suite.T(), apperrors.IsFileError(err))
	assert.Contains(suite.T(), err.Error(), "gone.docx")
}

// TestGenerateRecipientPolicy tests the strict recipient policy
func (suite *LetterServiceTestSuite) TestGenerateRecipientPolicy() {
	strict := service.NewLetterService(
		suite.mockLetterRepo,
		suite.mockOrgRepo,
		suite.mockContactRepo,
		suite.settingsFake,
		suite.validator,
		true,
	)

	resp, err := strict.Generate(&service.GenerateLetterRequest{
		Subject: "Notice",
		Body:    "Body",
	}, nil)

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrRecipientRequired)
}

// TestGenerateKeepsFileOnInsertFailure tests the partial-failure contract:
// the document survives a failed database insert and the caller gets a
// warning instead of an error
func (suite *LetterServiceTestSuite) TestGenerateKeepsFileOnInsertFailure() {
	prefix := suite.currentPrefix("GEN")

	suite.mockLetterRepo.EXPECT().
		CodesByPrefix(prefix).
		Return(nil, nil).
		Times(1)

	suite.mockLetterRepo.EXPECT().
		Create(gomock.Any()).
		Return(fmt.Errorf("connection reset")).
		Times(1)

	resp, err := suite.letterService.Generate(&service.GenerateLetterRequest{
		Subject: "Notice",
		Body:    "Body",
	}, nil)

	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), resp.Letter)
	assert.NotEmpty(suite.T(), resp.Warning)

	_, statErr := os.Stat(resp.FilePath)
	assert.NoError(suite.T(), statErr)
}

// TestGenerateFallsBackToWorkingDirectory tests that an unset output
// directory lands the document in the process working directory
func (suite *LetterServiceTestSuite) TestGenerateFallsBackToWorkingDirectory() {
	suite.T().Chdir(suite.T().TempDir())
	suite.settingsFake.current.OutputDir = ""
	prefix := suite.currentPrefix("GEN")

	suite.mockLetterRepo.EXPECT().
		CodesByPrefix(prefix).
		Return(nil, nil).
		Times(1)

	suite.mockLetterRepo.EXPECT().
		Create(gomock.Any()).
		Return(nil).
		Times(1)

	resp, err := suite.letterService.Generate(&service.GenerateLetterRequest{
		Subject: "Notice",
		Body:    "Body",
	}, nil)

	require.NoError(suite.T(), err)
	wd, wdErr := os.Getwd()
	require.NoError(suite.T(), wdErr)
	assert.Equal(suite.T(), wd, filepath.Dir(resp.FilePath))
	_, statErr := os.Stat(resp.FilePath)
	assert.NoError(suite.T(), statErr)
}

// TestResolveFileMissingOnDisk tests that a recorded letter whose file was
// deleted reports the attempted path
func (suite *LetterServiceTestSuite) TestResolveFileMissingOnDisk() {
	gonePath := filepath.Join(suite.dir, "deleted.docx")
	letter := &models.Letter{Code: "NGRR-GEN-1403-001", FilePath: gonePath}

	suite.mockLetterRepo.EXPECT().
		GetByCode(letter.Code).
		Return(letter, nil).
		Times(1)

	path, err := suite.letterService.ResolveFile(letter.Code)

	assert.Empty(suite.T(), path)
	assert.True(suite.T(), apperrors.IsFileError(err))
	assert.Contains(suite.T(), err.Error(), gonePath)
}

// TestGetByCodeNotFound tests looking up a missing letter
func (suite *LetterServiceTestSuite) TestGetByCodeNotFound() {
	suite.mockLetterRepo.EXPECT().
		GetByCode("NGRR-GEN-1403-999").
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	resp, err := suite.letterService.GetByCode("NGRR-GEN-1403-999")

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrLetterNotFound)
}

// TestTypeLabels tests the exposed letter type labels
func (suite *LetterServiceTestSuite) TestTypeLabels() {
	labels := suite.letterService.TypeLabels()

	assert.Len(suite.T(), labels, 4)
	assert.Contains(suite.T(), labels, "مالی")
	assert.Contains(suite.T(), labels, "عمومی")
}

// TestLetterServiceTestSuite runs the test suite
func TestLetterServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LetterServiceTestSuite))
}
