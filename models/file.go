package models

import "time"

// UploadedFile is a staging record created by the upload component. This core
// consumes it (promotes the object to permanent storage) and deletes it once
// the referencing save succeeds.
type UploadedFile struct {
	ID         string    `json:"id" dynamodbav:"id"`
	OwnerID    string    `json:"owner_id" dynamodbav:"owner_id"`
	ObjectID   string    `json:"object_id,omitempty" dynamodbav:"object_id,omitempty"`
	Path       string    `json:"path" dynamodbav:"path"`
	URL        string    `json:"url" dynamodbav:"url"`
	UploadedAt time.Time `json:"uploaded_at" dynamodbav:"uploaded_at"`
	ExpiresAt  time.Time `json:"expires_at,omitempty" dynamodbav:"expires_at,omitempty"`
}

// FileField declares one file-bearing field so the asset lifecycle manager
// can promote, rewrite and clean up uniformly.
type FileField struct {
	// Path is the record path the field lives under, e.g.
	// "briefcase.licenses" for item files or "" for root fields.
	Path string
	// Name is the leaf field holding the URL, e.g. "file_url".
	Name string
	// UploadedAtName, when set, is the sibling field stamped with the staging
	// record's upload time on promotion.
	UploadedAtName string
	// BaseName is the normalized filename used in permanent keys.
	BaseName string
	// HasID routes item files into a per-item subfolder.
	HasID bool
	// History marks append-only fields whose superseded objects are kept.
	History bool
}

// ProfessionalFileFields lists every file-bearing field on a professional
// record.
var ProfessionalFileFields = []FileField{
	{Path: "", Name: "profile_pic_url", BaseName: "profile-pic"},
	{Path: "briefcase.licenses", Name: "file_url", UploadedAtName: "file_uploaded_at", BaseName: "license", HasID: true},
	{Path: "briefcase.certifications", Name: "file_url", UploadedAtName: "file_uploaded_at", BaseName: "certification", HasID: true},
	{Path: "briefcase.additionalCertifications", Name: "file_url", UploadedAtName: "file_uploaded_at", BaseName: "additional-certification", HasID: true},
	{Path: "briefcase.healthDocuments", Name: "file_url", UploadedAtName: "file_uploaded_at", BaseName: "health-document", HasID: true, History: true},
	{Path: "briefcase.workExperience", Name: "resume_url", UploadedAtName: "resume_uploaded", BaseName: "resume"},
}

// FileFieldFor returns the declared file field for a briefcase collection,
// or nil when the collection carries no file.
func FileFieldFor(field BriefcaseField) *FileField {
	path := "briefcase." + string(field)
	for i := range ProfessionalFileFields {
		if ProfessionalFileFields[i].Path == path {
			return &ProfessionalFileFields[i]
		}
	}
	return nil
}
