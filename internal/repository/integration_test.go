//go:build integration

package repository_test

import (
	"testing"

	"letter-office-backend/internal/repository"
	"letter-office-backend/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// RepositoryIntegrationTestSuite exercises the repositories against a real
// Postgres instance
type RepositoryIntegrationTestSuite struct {
	*testutils.BaseTestSuite
	orgRepo     *repository.OrganizationRepository
	contactRepo *repository.ContactRepository
	letterRepo  *repository.LetterRepository
	userRepo    *repository.UserRepository
}

// SetupSuite sets up the shared database and repositories
func (s *RepositoryIntegrationTestSuite) SetupSuite() {
	s.BaseTestSuite = testutils.SetupTestSuite(s.T())
	s.orgRepo = repository.NewOrganizationRepository(s.DB)
	s.contactRepo = repository.NewContactRepository(s.DB)
	s.letterRepo = repository.NewLetterRepository(s.DB)
	s.userRepo = repository.NewUserRepository(s.DB)
}

// TearDownSuite cleans the database after the suite
func (s *RepositoryIntegrationTestSuite) TearDownSuite() {
	s.TeardownTestSuite()
}

// TestOrganizationDuplicateNameRejected verifies the unique name constraint
// translates to gorm.ErrDuplicatedKey and leaves the row count unchanged
func (s *RepositoryIntegrationTestSuite) TestOrganizationDuplicateNameRejected() {
	factory := testutils.NewOrganizationFactory()
	first := factory.WithName("Acme Holdings")
	require.NoError(s.T(), s.orgRepo.Create(first))

	before, err := s.orgRepo.Count()
	require.NoError(s.T(), err)

	duplicate := factory.WithName("Acme Holdings")
	err = s.orgRepo.Create(duplicate)
	assert.ErrorIs(s.T(), err, gorm.ErrDuplicatedKey)

	after, err := s.orgRepo.Count()
	require.NoError(s.T(), err)
	assert.Equal(s.T(), before, after)
}

// TestDeleteOrganizationKeepsContacts verifies that deleting an organization
// nulls the references of its contacts and letters instead of cascading
func (s *RepositoryIntegrationTestSuite) TestDeleteOrganizationKeepsContacts() {
	org := testutils.NewOrganizationFactory().Create()
	require.NoError(s.T(), s.orgRepo.Create(org))

	contact := testutils.NewContactFactory().WithOrganization(org.ID)
	require.NoError(s.T(), s.contactRepo.Create(contact))

	letter := testutils.NewLetterFactory().WithOrganization(org.ID)
	require.NoError(s.T(), s.letterRepo.Create(letter))

	require.NoError(s.T(), s.orgRepo.Delete(org.ID))

	kept, err := s.contactRepo.GetByID(contact.ID)
	require.NoError(s.T(), err)
	assert.Nil(s.T(), kept.OrganizationID)

	keptLetter, err := s.letterRepo.GetByCode(letter.Code)
	require.NoError(s.T(), err)
	assert.Nil(s.T(), keptLetter.OrganizationID)
}

// TestContactListScopedToOrganization verifies organization scoping and the
// last-name ordering of the contact list
func (s *RepositoryIntegrationTestSuite) TestContactListScopedToOrganization() {
	org := testutils.NewOrganizationFactory().Create()
	require.NoError(s.T(), s.orgRepo.Create(org))

	factory := testutils.NewContactFactory()
	inOrg := factory.WithOrganization(org.ID)
	inOrg.LastName = "Bahrami"
	require.NoError(s.T(), s.contactRepo.Create(inOrg))

	inOrg2 := factory.WithOrganization(org.ID)
	inOrg2.LastName = "Ahmadi"
	require.NoError(s.T(), s.contactRepo.Create(inOrg2))

	outside := factory.Create()
	require.NoError(s.T(), s.contactRepo.Create(outside))

	contacts, err := s.contactRepo.List(&org.ID, "")
	require.NoError(s.T(), err)
	require.Len(s.T(), contacts, 2)
	assert.Equal(s.T(), "Ahmadi", contacts[0].LastName)
	assert.Equal(s.T(), "Bahrami", contacts[1].LastName)
}

// TestLetterCodesByPrefix verifies prefix scanning only returns matching codes
func (s *RepositoryIntegrationTestSuite) TestLetterCodesByPrefix() {
	factory := testutils.NewLetterFactory()
	require.NoError(s.T(), s.letterRepo.Create(factory.WithCode("NGRR-FIN-1403-001")))
	require.NoError(s.T(), s.letterRepo.Create(factory.WithCode("NGRR-FIN-1403-007")))
	require.NoError(s.T(), s.letterRepo.Create(factory.WithCode("NGRR-ADM-1403-001")))
	require.NoError(s.T(), s.letterRepo.Create(factory.WithCode("NGRR-FIN-1404-001")))

	codes, err := s.letterRepo.CodesByPrefix("NGRR-FIN-1403-")
	require.NoError(s.T(), err)
	assert.ElementsMatch(s.T(), []string{"NGRR-FIN-1403-001", "NGRR-FIN-1403-007"}, codes)
}

// TestLetterDuplicateCodeRejected verifies the unique code constraint
func (s *RepositoryIntegrationTestSuite) TestLetterDuplicateCodeRejected() {
	factory := testutils.NewLetterFactory()
	require.NoError(s.T(), s.letterRepo.Create(factory.WithCode("NGRR-GEN-1403-042")))

	err := s.letterRepo.Create(factory.WithCode("NGRR-GEN-1403-042"))
	assert.ErrorIs(s.T(), err, gorm.ErrDuplicatedKey)
}

// TestUserUniqueUsername verifies the unique username constraint
func (s *RepositoryIntegrationTestSuite) TestUserUniqueUsername() {
	factory := testutils.NewUserFactory()
	require.NoError(s.T(), s.userRepo.Create(factory.WithUsername("operator")))

	err := s.userRepo.Create(factory.WithUsername("operator"))
	assert.ErrorIs(s.T(), err, gorm.ErrDuplicatedKey)

	count, err := s.userRepo.Count()
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), count)
}

// TestRepositoryIntegrationTestSuite runs the test suite
func TestRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryIntegrationTestSuite))
}
