package namecheap

import (
	"net/url"
	"regexp"
	"strings"
)

// Contact roles, used as the wire-parameter prefix.
const (
	RoleRegistrant = "Registrant"
	RoleAdmin      = "Admin"
	RoleTech       = "Tech"
	RoleAuxBilling = "AuxBilling"
)

// Contact is a domain contact. The snake_case tag names are the source-side
// field names; Params converts them to the API's prefixed CamelCase names.
type Contact struct {
	OrganizationName    string `yaml:"organization_name,omitempty" toml:"organization_name" json:"organization_name,omitempty"`
	JobTitle            string `yaml:"job_title,omitempty" toml:"job_title" json:"job_title,omitempty"`
	FirstName           string `yaml:"first_name" toml:"first_name" json:"first_name"`
	LastName            string `yaml:"last_name" toml:"last_name" json:"last_name"`
	Address1            string `yaml:"address1" toml:"address1" json:"address1"`
	Address2            string `yaml:"address2,omitempty" toml:"address2" json:"address2,omitempty"`
	City                string `yaml:"city" toml:"city" json:"city"`
	StateProvince       string `yaml:"state_province" toml:"state_province" json:"state_province"`
	StateProvinceChoice string `yaml:"state_province_choice,omitempty" toml:"state_province_choice" json:"state_province_choice,omitempty"`
	PostalCode          string `yaml:"postal_code" toml:"postal_code" json:"postal_code"`
	Country             string `yaml:"country" toml:"country" json:"country"`
	Phone               string `yaml:"phone" toml:"phone" json:"phone"`
	PhoneExt            string `yaml:"phone_ext,omitempty" toml:"phone_ext" json:"phone_ext,omitempty"`
	Fax                 string `yaml:"fax,omitempty" toml:"fax" json:"fax,omitempty"`
	EmailAddress        string `yaml:"email_address" toml:"email_address" json:"email_address"`
}

// contactField pairs a snake_case field name with its value.
type contactField struct {
	name  string
	value string
}

var phoneRE = regexp.MustCompile(`^\+\d{3}\.\d{7}`)

func (c *Contact) fields() []contactField {
	return []contactField{
		{"address1", c.Address1},
		{"address2", c.Address2},
		{"city", c.City},
		{"country", c.Country},
		{"email_address", c.EmailAddress},
		{"fax", c.Fax},
		{"first_name", c.FirstName},
		{"job_title", c.JobTitle},
		{"last_name", c.LastName},
		{"organization_name", c.OrganizationName},
		{"phone", c.Phone},
		{"phone_ext", c.PhoneExt},
		{"postal_code", c.PostalCode},
		{"state_province", c.StateProvince},
		{"state_province_choice", c.StateProvinceChoice},
	}
}

// Validate checks required fields (in a fixed order) and the phone and fax
// formats (+NNN.NNNNNNN...).
func (c *Contact) Validate() error {
	required := []contactField{
		{"first_name", c.FirstName},
		{"last_name", c.LastName},
		{"address1", c.Address1},
		{"city", c.City},
		{"state_province", c.StateProvince},
		{"country", c.Country},
		{"postal_code", c.PostalCode},
		{"phone", c.Phone},
		{"email_address", c.EmailAddress},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &ContactValidationError{Field: f.name, Message: "is required"}
		}
	}
	if !validPhone(strings.TrimSpace(c.Phone)) {
		return &ContactValidationError{Field: "phone", Message: "is not in valid format"}
	}
	if fax := strings.TrimSpace(c.Fax); fax != "" && !validPhone(fax) {
		return &ContactValidationError{Field: "fax", Message: "is not in valid format"}
	}
	return nil
}

func validPhone(number string) bool { return phoneRE.MatchString(number) }

// Params returns the contact as API parameters for the given role, e.g.
// RegistrantFirstName. Values are trimmed and blank fields are omitted.
func (c *Contact) Params(role string) url.Values {
	v := url.Values{}
	for _, f := range c.fields() {
		val := strings.TrimSpace(f.value)
		if val == "" {
			continue
		}
		v.Set(role+camelize(f.name), val)
	}
	return v
}
