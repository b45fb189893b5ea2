package contact

// CreateContactRequest is the inbound payload for creating a customer or
// vendor contact.
type CreateContactRequest struct {
	ContactName string `json:"contact_name"`
	ContactType string `json:"contact_type,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// PageContext mirrors Zoho's pagination envelope.
type PageContext struct {
	Page        int  `json:"page"`
	PerPage     int  `json:"per_page"`
	HasMorePage bool `json:"has_more_page"`
}
