package dto

import (
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
)

// OrganizationResponse mirrors domain.Organization.
type OrganizationResponse struct {
	OrganizationID string `json:"organizationID"`
	Name           string `json:"name"`
	CurrencyCode   string `json:"currencyCode"`
	IsActive       bool   `json:"isActive"`
}

// ToOrganizationResponse converts a domain organization to its response DTO.
func ToOrganizationResponse(org *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID: org.OrganizationID,
		Name:           org.Name,
		CurrencyCode:   org.CurrencyCode,
		IsActive:       org.IsActive,
	}
}
