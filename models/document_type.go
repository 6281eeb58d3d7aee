package models

type DocumentType string

const (
	DocApplicationLetter    DocumentType = "applicationLetter"
	DocCV                   DocumentType = "cv"
	DocNationalID           DocumentType = "nationalIdCopy"
	DocKRAPin               DocumentType = "kraPin"
	DocGoodConduct          DocumentType = "goodConduct"
	DocAcademicCertificates DocumentType = "academicCertificates"
	DocTranscripts          DocumentType = "transcripts"
	DocRecommendationLetter DocumentType = "recommendationLetter"
	DocNHIFCard             DocumentType = "nhifCard"
	DocNSSFCard             DocumentType = "nssfCard"
	DocPassportPhoto        DocumentType = "passportPhoto"
	DocInsuranceCover       DocumentType = "insuranceCover"
	DocIntroductionLetter   DocumentType = "introductionLetter"
)

var documentHumanName = map[DocumentType]string{
	DocApplicationLetter:    "Application letter",
	DocCV:                   "Curriculum vitae",
	DocNationalID:           "National ID copy",
	DocKRAPin:               "KRA PIN certificate",
	DocGoodConduct:          "Certificate of good conduct",
	DocAcademicCertificates: "Academic certificates",
	DocTranscripts:          "Academic transcripts",
	DocRecommendationLetter: "Recommendation letter",
	DocNHIFCard:             "NHIF card",
	DocNSSFCard:             "NSSF card",
	DocPassportPhoto:        "Passport photo",
	DocInsuranceCover:       "Insurance cover",
	DocIntroductionLetter:   "Introduction letter from institution",
}

var internDocuments = []DocumentType{
	DocApplicationLetter,
	DocCV,
	DocNationalID,
	DocKRAPin,
	DocGoodConduct,
	DocAcademicCertificates,
	DocTranscripts,
	DocRecommendationLetter,
	DocNHIFCard,
	DocNSSFCard,
	DocPassportPhoto,
}

var attacheeDocuments = []DocumentType{
	DocApplicationLetter,
	DocCV,
	DocNationalID,
	DocInsuranceCover,
	DocIntroductionLetter,
	DocTranscripts,
}

func (d DocumentType) IsValid() bool {
	_, ok := documentHumanName[d]
	return ok
}

func (d DocumentType) ToHuman() string {
	if human, ok := documentHumanName[d]; ok {
		return human
	}
	return string(d)
}

// RequiredDocuments returns the documents an applicant of the role must upload.
// Staff roles do not submit applications and get nil.
func RequiredDocuments(role UserRole) []DocumentType {
	switch role {
	case InternRole:
		return internDocuments
	case AttacheeRole:
		return attacheeDocuments
	case HRRole, HODRole, AdminRole, ChiefOfStaffRole, PrincipalSecretaryRole:
		return nil
	}
	return nil
}

// IsAllowedDocument reports whether the document type belongs to the role's set.
func IsAllowedDocument(role UserRole, docType DocumentType) bool {
	for _, required := range RequiredDocuments(role) {
		if required == docType {
			return true
		}
	}
	return false
}
