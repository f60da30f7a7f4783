package models

// ExtraAttribute is a free-form label/value pair found on a document that is
// not covered by the fixed identity-number slots (e.g. Blood Group, District).
type ExtraAttribute struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// DocumentRecord tracks one identity document folded into the profile.
type DocumentRecord struct {
	Type     string `json:"type"`
	Date     string `json:"date"`
	Verified bool   `json:"verified"`
}

// UserProfile is the canonical identity record aggregated from scanned
// documents. Within ExtraFields, labels are unique under case-insensitive
// comparison; the fixed slots and extra attributes are disjoint namespaces.
type UserProfile struct {
	SessionID string `gorm:"primaryKey" json:"-"`

	FullName     string `json:"fullName"`
	DateOfBirth  string `json:"dateOfBirth"`
	Gender       string `json:"gender"`
	GuardianName string `json:"guardianName"`
	Address      string `json:"address"`
	PhoneNumber  string `json:"phoneNumber"`
	Email        string `json:"email"`

	AadharNumber         string `json:"aadharNumber"`
	PANNumber            string `json:"panNumber"`
	PassportNumber       string `json:"passportNumber"`
	DrivingLicenseNumber string `json:"drivingLicenseNumber"`
	VoterIDNumber        string `json:"voterIdNumber"`
	// Fallback when none of the specific slots apply.
	IDNumber string `json:"idNumber"`

	ExtraFields []ExtraAttribute `gorm:"serializer:json" json:"extraFields"`
	Documents   []DocumentRecord `gorm:"serializer:json" json:"documents"`
}

// PartialProfile is a single extraction result: the same shape as UserProfile
// with every field optional (empty string means absent). Produced once per
// uploaded image and consumed immediately by the merge engine.
type PartialProfile struct {
	FullName     string `json:"fullName"`
	DateOfBirth  string `json:"dateOfBirth"`
	Gender       string `json:"gender"`
	GuardianName string `json:"guardianName"`
	Address      string `json:"address"`
	PhoneNumber  string `json:"phoneNumber"`
	Email        string `json:"email"`

	AadharNumber         string `json:"aadharNumber"`
	PANNumber            string `json:"panNumber"`
	PassportNumber       string `json:"passportNumber"`
	DrivingLicenseNumber string `json:"drivingLicenseNumber"`
	VoterIDNumber        string `json:"voterIdNumber"`
	IDNumber             string `json:"idNumber"`

	ExtraFields []ExtraAttribute `json:"extraFields"`
}
