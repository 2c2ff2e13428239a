package dictapimodels

import (
	apimodels "ats-backend/models/api"
	dbmodels "ats-backend/models/db"
)

type CompanyData struct {
	Name        string `json:"name" validate:"required,max=255"` // Company name
	Website     string `json:"website" validate:"omitempty,url"` // Site url
	Industry    string `json:"industry" validate:"max=255"`      // Industry
	Location    string `json:"location" validate:"max=255"`      // Head office
	Description string `json:"description"`                      // Free text
}

type CompanyView struct {
	CompanyData
	ID string `json:"id"`
}

func (c *CompanyData) Validate() error {
	return apimodels.ValidateStruct(c)
}

func CompanyConvert(rec dbmodels.Company) CompanyView {
	return CompanyView{
		CompanyData: CompanyData{
			Name:        rec.Name,
			Website:     rec.Website,
			Industry:    rec.Industry,
			Location:    rec.Location,
			Description: rec.Description,
		},
		ID: rec.ID,
	}
}

type CompanyFind struct {
	Name string `json:"name"` // Name substring
}
