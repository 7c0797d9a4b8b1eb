package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBriefcaseField(t *testing.T) {
	field, err := ParseBriefcaseField("healthDocuments")
	assert.NoError(t, err)
	assert.Equal(t, BriefcaseFieldHealthDocuments, field)

	_, err = ParseBriefcaseField("diplomas")
	assert.Error(t, err)
}

func TestDecodeBriefcaseItemPerField(t *testing.T) {
	item, err := DecodeBriefcaseItem(BriefcaseFieldLicenses, []byte(`{"license_type":"RN","license_number":"123456"}`))
	assert.NoError(t, err)
	license, ok := item.(*License)
	assert.True(t, ok)
	assert.Equal(t, "RN", license.LicenseType)

	item, err = DecodeBriefcaseItem(BriefcaseFieldReferences, []byte(`{"first_name":"Pat","last_name":"Lee","email":"pat@example.com"}`))
	assert.NoError(t, err)
	_, ok = item.(*Reference)
	assert.True(t, ok)

	_, err = DecodeBriefcaseItem(BriefcaseFieldEducation, []byte(`not json`))
	assert.Error(t, err)
}

func TestSetItemUpserts(t *testing.T) {
	b := &Briefcase{}

	first := &Certification{Name: "BLS"}
	first.ID = "cert-1"
	assert.NoError(t, b.SetItem(BriefcaseFieldCertifications, first))
	assert.Len(t, b.Certifications, 1)

	second := &Certification{Name: "ACLS"}
	second.ID = "cert-2"
	assert.NoError(t, b.SetItem(BriefcaseFieldCertifications, second))
	assert.Len(t, b.Certifications, 2)

	replacement := &Certification{Name: "BLS Renewal"}
	replacement.ID = "cert-1"
	assert.NoError(t, b.SetItem(BriefcaseFieldCertifications, replacement))
	assert.Len(t, b.Certifications, 2)
	assert.Equal(t, "BLS Renewal", b.Certifications[0].Name)
}

func TestSetItemRejectsWrongType(t *testing.T) {
	b := &Briefcase{}
	edu := &Education{Institute: "State University"}
	edu.ID = "edu-1"

	err := b.SetItem(BriefcaseFieldLicenses, edu)
	assert.Error(t, err)
}

func TestItemAndRemoveItem(t *testing.T) {
	b := &Briefcase{}
	doc := &HealthDocument{Name: "MMR"}
	doc.ID = "doc-1"
	assert.NoError(t, b.SetItem(BriefcaseFieldHealthDocuments, doc))

	found := b.Item(BriefcaseFieldHealthDocuments, "doc-1")
	assert.NotNil(t, found)
	assert.Equal(t, "doc-1", found.ItemID())

	assert.Nil(t, b.Item(BriefcaseFieldHealthDocuments, "missing"))
	assert.False(t, b.RemoveItem(BriefcaseFieldHealthDocuments, "missing"))

	assert.True(t, b.RemoveItem(BriefcaseFieldHealthDocuments, "doc-1"))
	assert.Empty(t, b.HealthDocuments)
}

func TestHasAccess(t *testing.T) {
	p := &Professional{ID: "prof-1"}

	assert.False(t, p.HasAccess(nil))
	assert.True(t, p.HasAccess(&Session{UserID: "prof-1", UserType: UserTypeProfessional}))
	assert.False(t, p.HasAccess(&Session{UserID: "prof-2", UserType: UserTypeProfessional}))
	assert.True(t, p.HasAccess(&Session{UserID: "admin-1", UserType: UserTypeAdmin}))

	orgSession := &Session{UserID: "ou-1", UserType: UserTypeOrganizationUser, OrganizationID: "org-1"}
	assert.False(t, p.HasAccess(orgSession))

	p.Affiliations = []Affiliation{{ID: "aff-1", Organization: OrganizationRef{ID: "org-1"}}}
	assert.True(t, p.HasAccess(orgSession))
}
