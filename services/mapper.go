package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"medstaff-backend/models"
	"medstaff-backend/utils"
)

// maxIndexedEntries bounds the repeated column groups an import row may
// carry (license_1_*, license_2_*, ...).
const maxIndexedEntries = 5

var (
	emailPattern  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	digitsPattern = regexp.MustCompile(`^[0-9]+$`)

	genders = []string{"Male", "Female", "Other"}
)

// MappedRow is the normalized output of one import row.
type MappedRow struct {
	Request     *models.AddProfessionalRequest
	Briefcase   *models.Briefcase
	Jobs        *models.JobPreferences
	Address     *models.Address
	Profession  string
	Gender      string
	DateOfBirth *time.Time
	SSNLast4    string
	Languages   []string
}

// RowMapper turns raw import rows into validated account requests using
// the preloaded reference collections.
type RowMapper struct {
	lookups *models.Lookups
}

// NewRowMapper creates a mapper over the given reference data
func NewRowMapper(lookups *models.Lookups) *RowMapper {
	return &RowMapper{lookups: lookups}
}

// MapRow validates and normalizes one row. On failure it returns every
// column problem found; on success the profession is derived from the
// first license and foreign-profession licenses are dropped.
func (m *RowMapper) MapRow(row map[string]string) (*MappedRow, error) {
	var errs models.RowErrors
	get := func(column string) string { return strings.TrimSpace(row[column]) }

	out := &MappedRow{
		Request: &models.AddProfessionalRequest{
			FirstName:     get("first_name"),
			LastName:      get("last_name"),
			Email:         strings.ToLower(get("email")),
			PhoneNumber:   utils.FormatPhoneNumber(get("phone_number")),
			SignupChannel: models.SignupChannelImport,
		},
	}

	if out.Request.FirstName == "" {
		errs = append(errs, models.RowError{Column: "first_name", Message: "required"})
	}
	if out.Request.LastName == "" {
		errs = append(errs, models.RowError{Column: "last_name", Message: "required"})
	}
	if out.Request.Email == "" {
		errs = append(errs, models.RowError{Column: "email", Message: "required"})
	} else if !emailPattern.MatchString(out.Request.Email) {
		errs = append(errs, models.RowError{Column: "email", Message: "invalid email address"})
	}

	m.mapIdentity(out, get, &errs)
	out.Address = m.mapAddress(get, &errs)

	affiliation := m.mapAffiliation(row, get, &errs)
	out.Request.Affiliation = affiliation

	briefcase := &models.Briefcase{}
	out.Profession = m.mapLicenses(briefcase, get, &errs)
	out.Request.Profession = out.Profession
	m.mapCertifications(briefcase, get)
	m.mapReferences(briefcase, get, &errs)
	m.mapEducation(briefcase, get, &errs)
	m.mapFacilities(briefcase, get, &errs)
	m.mapHealthDocuments(briefcase, get, &errs)
	m.mapDriversLicense(briefcase, get, &errs)
	m.mapLiabilityInsurance(briefcase, get, &errs)
	m.mapBriefcaseScalars(briefcase, get)

	out.Jobs = m.mapJobs(get, &errs)

	if len(errs) > 0 {
		return nil, errs
	}

	// A briefcase without licenses is not stored at all.
	if len(briefcase.Licenses) > 0 {
		out.Briefcase = briefcase
	}
	return out, nil
}

// mapIdentity handles the optional person-level columns: gender, date
// of birth, SSN and languages. Only the last four SSN digits survive.
func (m *RowMapper) mapIdentity(out *MappedRow, get func(string) string, errs *models.RowErrors) {
	if raw := get("gender"); raw != "" {
		resolved := ""
		for _, g := range genders {
			if strings.EqualFold(raw, g) {
				resolved = g
				break
			}
		}
		if resolved == "" {
			*errs = append(*errs, models.RowError{Column: "gender", Message: "unknown gender"})
		} else {
			out.Gender = resolved
		}
	}

	if raw := get("date_of_birth"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			*errs = append(*errs, models.RowError{Column: "date_of_birth", Message: "invalid date"})
		} else {
			out.DateOfBirth = t
		}
	}

	if raw := get("ssn"); raw != "" {
		last4 := lastFourSSN(raw)
		if len(last4) < 4 {
			*errs = append(*errs, models.RowError{Column: "ssn", Message: "needs at least four digits"})
		} else {
			out.SSNLast4 = last4
		}
	}

	if raw := get("languages"); raw != "" {
		out.Languages = splitList(raw)
	}
}

// mapAddress builds the postal address. Once any address column is
// present the street, city, state and zip all become required.
func (m *RowMapper) mapAddress(get func(string) string, errs *models.RowErrors) *models.Address {
	address := &models.Address{
		Address1: get("address1"),
		Address2: get("address2"),
		City:     get("address_city"),
		Zip:      get("address_zip"),
	}
	rawState := get("address_state")
	if address.Address1 == "" && address.Address2 == "" && address.City == "" && address.Zip == "" && rawState == "" {
		return nil
	}

	if address.Address1 == "" {
		*errs = append(*errs, models.RowError{Column: "address1", Message: "required"})
	}
	if address.City == "" {
		*errs = append(*errs, models.RowError{Column: "address_city", Message: "required"})
	}
	if rawState == "" {
		*errs = append(*errs, models.RowError{Column: "address_state", Message: "required"})
	} else {
		state, ok := m.lookups.ResolveState(rawState)
		if !ok {
			*errs = append(*errs, models.RowError{Column: "address_state", Message: "unknown state: " + rawState})
		} else {
			address.State = state
		}
	}
	if address.Zip == "" {
		*errs = append(*errs, models.RowError{Column: "address_zip", Message: "required"})
	} else if !digitsPattern.MatchString(address.Zip) {
		*errs = append(*errs, models.RowError{Column: "address_zip", Message: "must be numeric"})
	}

	return address
}

func (m *RowMapper) mapAffiliation(row map[string]string, get func(string) string, errs *models.RowErrors) *models.AffiliationRequest {
	affiliation := &models.AffiliationRequest{
		ThirdPartyID: get("third_party_id"),
	}

	if dept := get("department"); dept != "" {
		id, ok := m.lookups.ResolveDepartment(dept)
		if !ok {
			*errs = append(*errs, models.RowError{Column: "department", Message: "unknown department"})
		} else {
			affiliation.DepartmentID = id
		}
	}

	recruiterEmail := strings.ToLower(get("recruiter_email"))
	recruiterPhone := get("recruiter_phone")
	recruiterFirst := get("recruiter_first_name")
	recruiterLast := get("recruiter_last_name")
	if recruiterFirst != "" || recruiterLast != "" || recruiterEmail != "" || recruiterPhone != "" {
		// A recruiter must be reachable one way or the other. Both
		// contact columns are flagged so the fix is obvious.
		if recruiterEmail == "" && recruiterPhone == "" {
			*errs = append(*errs, models.RowError{Column: "recruiter_email", Message: "recruiter needs an email or phone number"})
			*errs = append(*errs, models.RowError{Column: "recruiter_phone", Message: "recruiter needs an email or phone number"})
		} else {
			affiliation.RecruiterEmail = recruiterEmail
			affiliation.Recruiter = &models.RecruiterRef{
				FirstName:   recruiterFirst,
				LastName:    recruiterLast,
				Email:       recruiterEmail,
				PhoneNumber: utils.FormatPhoneNumber(recruiterPhone),
			}
		}
	}

	if affiliation.DepartmentID == "" && affiliation.Recruiter == nil && affiliation.ThirdPartyID == "" {
		return nil
	}
	return affiliation
}

// mapLicenses normalizes the license column groups, derives the row's
// profession from the first license and silently drops licenses that
// belong to a different profession.
func (m *RowMapper) mapLicenses(briefcase *models.Briefcase, get func(string) string, errs *models.RowErrors) string {
	profession := ""
	for i := 1; i <= maxIndexedEntries; i++ {
		prefix := fmt.Sprintf("license_%d_", i)
		rawType := get(prefix + "type")
		if rawType == "" {
			continue
		}

		abbr, _ := m.lookups.ResolveLicenseType(rawType)
		entry := m.lookups.LicenseType(abbr)
		if entry == nil {
			*errs = append(*errs, models.RowError{Column: prefix + "type", Message: "unknown license type"})
			continue
		}

		if profession == "" {
			profession = entry.Profession
		} else if !strings.EqualFold(entry.Profession, profession) {
			continue
		}

		license := models.License{
			LicenseType:   entry.Abbr,
			LicenseNumber: get(prefix + "number"),
			IsCompact:     parseBool(get(prefix + "compact")),
		}
		license.ID = utils.GenerateUUID()

		if body := get(prefix + "body"); body != "" {
			resolved, _ := m.lookups.ResolveLicenseBody(body)
			license.LicenseBody = resolved
		}
		if raw := get(prefix + "expiration"); raw != "" {
			t, err := parseDate(raw)
			if err != nil {
				*errs = append(*errs, models.RowError{Column: prefix + "expiration", Message: "invalid date"})
			} else {
				license.ExpirationDate = t
			}
		}

		if entry.DetailsRequired && (license.LicenseBody == "" || license.LicenseNumber == "" || license.ExpirationDate == nil) {
			*errs = append(*errs, models.RowError{
				Column:  prefix + "type",
				Message: "license requires additional fields: license body, license number and expiration date",
			})
		}

		briefcase.Licenses = append(briefcase.Licenses, license)
	}
	return profession
}

func (m *RowMapper) mapCertifications(briefcase *models.Briefcase, get func(string) string) {
	for i := 1; i <= maxIndexedEntries; i++ {
		prefix := fmt.Sprintf("certification_%d_", i)
		name := get(prefix + "name")
		if name == "" {
			continue
		}
		resolved, _ := models.ResolveNamed(m.lookups.Certifications, name)
		cert := models.Certification{Name: resolved}
		cert.ID = utils.GenerateUUID()
		if raw := get(prefix + "expiration"); raw != "" {
			if t, err := parseDate(raw); err == nil {
				cert.ExpirationDate = t
			}
		}
		briefcase.Certifications = append(briefcase.Certifications, cert)
	}

	for i := 1; i <= maxIndexedEntries; i++ {
		name := get(fmt.Sprintf("additional_certification_%d_name", i))
		if name == "" {
			continue
		}
		resolved, _ := models.ResolveNamed(m.lookups.AdditionalCertifications, name)
		cert := models.AdditionalCertification{Name: resolved}
		cert.ID = utils.GenerateUUID()
		briefcase.AdditionalCertifications = append(briefcase.AdditionalCertifications, cert)
	}
}

func (m *RowMapper) mapReferences(briefcase *models.Briefcase, get func(string) string, errs *models.RowErrors) {
	for i := 1; i <= maxIndexedEntries; i++ {
		prefix := fmt.Sprintf("reference_%d_", i)
		first := get(prefix + "first_name")
		last := get(prefix + "last_name")
		if first == "" && last == "" {
			continue
		}

		email := strings.ToLower(get(prefix + "email"))
		phone := get(prefix + "phone")
		if email == "" && phone == "" {
			*errs = append(*errs, models.RowError{Column: prefix + "email", Message: "reference needs an email or phone number"})
			*errs = append(*errs, models.RowError{Column: prefix + "phone", Message: "reference needs an email or phone number"})
			continue
		}

		ref := models.Reference{
			Title:        get(prefix + "title"),
			Organization: get(prefix + "organization"),
			FirstName:    first,
			LastName:     last,
			Email:        email,
			PhoneNumber:  utils.FormatPhoneNumber(phone),
		}
		ref.ID = utils.GenerateUUID()
		briefcase.References = append(briefcase.References, ref)
	}
}

// mapEducation parses the education column groups. Institute and
// program name anchor a group; years are plain integers.
func (m *RowMapper) mapEducation(briefcase *models.Briefcase, get func(string) string, errs *models.RowErrors) {
	for i := 1; i <= maxIndexedEntries; i++ {
		prefix := fmt.Sprintf("education_%d_", i)
		institute := get(prefix + "institute")
		program := get(prefix + "program_name")
		if institute == "" && program == "" && get(prefix+"status") == "" {
			continue
		}

		if institute == "" {
			*errs = append(*errs, models.RowError{Column: prefix + "institute", Message: "required"})
		}
		if program == "" {
			*errs = append(*errs, models.RowError{Column: prefix + "program_name", Message: "required"})
		}

		edu := models.Education{
			Institute:   institute,
			ProgramName: program,
			Status:      get(prefix + "status"),
		}
		edu.ID = utils.GenerateUUID()
		for _, col := range []struct {
			name string
			dst  *int
		}{
			{"year_from", &edu.YearFrom},
			{"year_to", &edu.YearTo},
		} {
			if raw := get(prefix + col.name); raw != "" {
				year, err := strconv.Atoi(raw)
				if err != nil {
					*errs = append(*errs, models.RowError{Column: prefix + col.name, Message: "must be a number"})
				} else {
					*col.dst = year
				}
			}
		}
		briefcase.Education = append(briefcase.Education, edu)
	}
}

// mapFacilities parses prior work facilities; name, city and state are
// all required once a group is started.
func (m *RowMapper) mapFacilities(briefcase *models.Briefcase, get func(string) string, errs *models.RowErrors) {
	for i := 1; i <= maxIndexedEntries; i++ {
		prefix := fmt.Sprintf("facility_%d_", i)
		name := get(prefix + "name")
		city := get(prefix + "city")
		rawState := get(prefix + "state")
		if name == "" && city == "" && rawState == "" {
			continue
		}

		if name == "" {
			*errs = append(*errs, models.RowError{Column: prefix + "name", Message: "required"})
		}
		if city == "" {
			*errs = append(*errs, models.RowError{Column: prefix + "city", Message: "required"})
		}
		state := ""
		if rawState == "" {
			*errs = append(*errs, models.RowError{Column: prefix + "state", Message: "required"})
		} else {
			resolved, ok := m.lookups.ResolveState(rawState)
			if !ok {
				*errs = append(*errs, models.RowError{Column: prefix + "state", Message: "unknown state: " + rawState})
			} else {
				state = resolved
			}
		}

		facility := models.Facility{Name: name, City: city, State: state}
		facility.ID = utils.GenerateUUID()
		briefcase.Facilities = append(briefcase.Facilities, facility)
	}
}

func (m *RowMapper) mapHealthDocuments(briefcase *models.Briefcase, get func(string) string, errs *models.RowErrors) {
	for i := 1; i <= maxIndexedEntries; i++ {
		prefix := fmt.Sprintf("health_document_%d_", i)
		name := get(prefix + "name")
		rawDate := get(prefix + "date")
		if name == "" && rawDate == "" && get(prefix+"reason") == "" {
			continue
		}

		if name == "" {
			*errs = append(*errs, models.RowError{Column: prefix + "name", Message: "required"})
		}
		doc := models.HealthDocument{
			Name:   name,
			Reason: get(prefix + "reason"),
		}
		doc.ID = utils.GenerateUUID()
		if rawDate == "" {
			*errs = append(*errs, models.RowError{Column: prefix + "date", Message: "required"})
		} else {
			t, err := parseDate(rawDate)
			if err != nil {
				*errs = append(*errs, models.RowError{Column: prefix + "date", Message: "invalid date"})
			} else {
				doc.Date = t
			}
		}
		briefcase.HealthDocuments = append(briefcase.HealthDocuments, doc)
	}
}

func (m *RowMapper) mapDriversLicense(briefcase *models.Briefcase, get func(string) string, errs *models.RowErrors) {
	number := get("drivers_license_number")
	rawState := get("drivers_license_state")
	rawExpiration := get("drivers_license_expiration")
	if number == "" && rawState == "" && rawExpiration == "" {
		return
	}

	dl := &models.DriversLicense{Number: number}
	if number == "" {
		*errs = append(*errs, models.RowError{Column: "drivers_license_number", Message: "required"})
	}
	if rawState == "" {
		*errs = append(*errs, models.RowError{Column: "drivers_license_state", Message: "required"})
	} else {
		state, ok := m.lookups.ResolveState(rawState)
		if !ok {
			*errs = append(*errs, models.RowError{Column: "drivers_license_state", Message: "unknown state: " + rawState})
		} else {
			dl.State = state
		}
	}
	if rawExpiration == "" {
		*errs = append(*errs, models.RowError{Column: "drivers_license_expiration", Message: "required"})
	} else {
		t, err := parseDate(rawExpiration)
		if err != nil {
			*errs = append(*errs, models.RowError{Column: "drivers_license_expiration", Message: "invalid date"})
		} else {
			dl.ExpirationDate = t
		}
	}
	briefcase.DriversLicense = dl
}

func (m *RowMapper) mapLiabilityInsurance(briefcase *models.Briefcase, get func(string) string, errs *models.RowErrors) {
	company := get("liability_insurance_company")
	policy := get("liability_insurance_policy_number")
	rawExpiration := get("liability_insurance_expiration")
	if company == "" && policy == "" && rawExpiration == "" {
		return
	}

	li := &models.LiabilityInsurance{Company: company, PolicyNumber: policy}
	if company == "" {
		*errs = append(*errs, models.RowError{Column: "liability_insurance_company", Message: "required"})
	}
	if policy == "" {
		*errs = append(*errs, models.RowError{Column: "liability_insurance_policy_number", Message: "required"})
	}
	if rawExpiration == "" {
		*errs = append(*errs, models.RowError{Column: "liability_insurance_expiration", Message: "required"})
	} else {
		t, err := parseDate(rawExpiration)
		if err != nil {
			*errs = append(*errs, models.RowError{Column: "liability_insurance_expiration", Message: "invalid date"})
		} else {
			li.ExpirationDate = t
		}
	}
	briefcase.LiabilityInsurance = li
}

func (m *RowMapper) mapBriefcaseScalars(briefcase *models.Briefcase, get func(string) string) {
	if raw := get("specialties"); raw != "" {
		for _, s := range splitList(raw) {
			resolved, _ := models.ResolveNamed(m.lookups.Specialties, s)
			briefcase.Specialties = append(briefcase.Specialties, resolved)
		}
	}
	if raw := get("education_level"); raw != "" {
		resolved, _ := models.ResolveNamed(m.lookups.EducationLevels, raw)
		briefcase.EducationLevel = resolved
	}
	if raw := get("ehr_skills"); raw != "" {
		briefcase.EHRSkills = splitList(raw)
	}
	briefcase.YearsOfExperience = get("years_of_experience")
}

// mapJobs parses work preferences. Work cities stay un-geocoded here;
// the importer resolves coordinates and drops cities the reference set
// does not know.
func (m *RowMapper) mapJobs(get func(string) string, errs *models.RowErrors) *models.JobPreferences {
	jobs := &models.JobPreferences{}

	for _, entry := range splitList(get("work_cities")) {
		parts := strings.SplitN(entry, ",", 2)
		if len(parts) != 2 {
			*errs = append(*errs, models.RowError{Column: "work_cities", Message: fmt.Sprintf("expected City, ST: %q", entry)})
			continue
		}
		state, _ := m.lookups.ResolveState(parts[1])
		jobs.WorkCities = append(jobs.WorkCities, models.WorkCity{
			City:  strings.TrimSpace(parts[0]),
			State: state,
		})
	}

	for _, entry := range splitList(get("work_states")) {
		state, ok := m.lookups.ResolveState(entry)
		if !ok {
			*errs = append(*errs, models.RowError{Column: "work_states", Message: "unknown state: " + entry})
			continue
		}
		jobs.WorkStates = append(jobs.WorkStates, state)
	}

	if raw := get("work_distance"); raw != "" {
		distance, err := strconv.Atoi(raw)
		if err != nil {
			*errs = append(*errs, models.RowError{Column: "work_distance", Message: "must be a number"})
		} else {
			jobs.WorkDistance = distance
		}
	}

	if len(jobs.WorkCities) == 0 && len(jobs.WorkStates) == 0 && jobs.WorkDistance == 0 {
		return nil
	}
	return jobs
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ";") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseBool(raw string) bool {
	switch strings.ToLower(raw) {
	case "true", "yes", "y", "1":
		return true
	}
	return false
}

// parseDate accepts the date formats import files actually contain.
func parseDate(raw string) (*time.Time, error) {
	for _, layout := range []string{"2006-01-02", "01/02/2006", "1/2/2006"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized date: %s", raw)
}
