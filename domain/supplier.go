package domain

type Supplier struct {
	ID            int64  `json:"id"`
	CompanyName   string `json:"company_name"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
}
