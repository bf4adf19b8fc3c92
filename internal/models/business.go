package models

// BusinessProfile is the fabricator's own identity and contact data.
// There is one per installation. It starts empty and is updated in place.
type BusinessProfile struct {
	CompanyName string `json:"companyName"`
	OwnerName   string `json:"ownerName"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`

	// Logo is an optional image as a data URL, printed on exported documents.
	Logo string `json:"logo,omitempty"`
}
