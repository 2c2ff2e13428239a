package gptmodels

import (
	"strings"

	"github.com/pkg/errors"
)

type GenJobDescRequest struct {
	Title string `json:"title"` // Job title
	Text  string `json:"text"`  // Notes the description is generated from
}

func (r GenJobDescRequest) Validate() error {
	if len(strings.TrimSpace(r.Text)) == 0 {
		return errors.New("text is empty")
	}
	return nil
}

type GenJobDescResponse struct {
	Description string `json:"description"` // Generated job description
}
