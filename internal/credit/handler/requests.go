package handler

import (
	"strings"

	"lendgate/internal/credit"
	"lendgate/pkg/domain"
	dErrors "lendgate/pkg/domain-errors"
)

// EligibilityRequest is the HTTP request body for
// POST /credit/eligibility-check.
type EligibilityRequest struct {
	MerchantID string          `json:"merchant_id"`
	AgentID    string          `json:"agent_id"`
	Customer   CustomerPayload `json:"customer"`
	Product    ProductPayload  `json:"requested_product"`

	// Parsed values (populated by Validate)
	parsedNIN   domain.NIN
	parsedBVN   domain.BVN
	parsedPhone domain.PhoneNumber
}

// CustomerPayload holds the customer identity claims.
type CustomerPayload struct {
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	NIN         string `json:"nin"`
	BVN         string `json:"bvn,omitempty"`
	DateOfBirth string `json:"date_of_birth"`
}

// ProductPayload describes the device being financed.
type ProductPayload struct {
	ID       string  `json:"id"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *EligibilityRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.MerchantID = strings.TrimSpace(r.MerchantID)
	if r.MerchantID == "" {
		return dErrors.New(dErrors.CodeValidation, "merchant_id is required")
	}
	r.AgentID = strings.TrimSpace(r.AgentID)
	if r.AgentID == "" {
		return dErrors.New(dErrors.CodeValidation, "agent_id is required")
	}

	r.Customer.FullName = strings.TrimSpace(r.Customer.FullName)
	if r.Customer.FullName == "" {
		return dErrors.New(dErrors.CodeValidation, "customer.full_name is required")
	}

	nin, err := domain.ParseNIN(strings.TrimSpace(r.Customer.NIN))
	if err != nil {
		return err
	}
	r.parsedNIN = nin

	if bvn := strings.TrimSpace(r.Customer.BVN); bvn != "" {
		parsed, err := domain.ParseBVN(bvn)
		if err != nil {
			return err
		}
		r.parsedBVN = parsed
	}

	phone, err := domain.ParsePhoneNumber(strings.TrimSpace(r.Customer.PhoneNumber))
	if err != nil {
		return err
	}
	r.parsedPhone = phone

	r.Product.ID = strings.TrimSpace(r.Product.ID)
	if r.Product.ID == "" {
		return dErrors.New(dErrors.CodeValidation, "requested_product.id is required")
	}
	if r.Product.Price <= 0 {
		return dErrors.New(dErrors.CodeValidation, "requested_product.price must be positive")
	}

	return nil
}

// ToDomain converts the validated payload into the pipeline input.
func (r *EligibilityRequest) ToDomain() credit.EligibilityRequest {
	return credit.EligibilityRequest{
		MerchantID: r.MerchantID,
		AgentID:    r.AgentID,
		Customer: credit.Customer{
			FullName:    r.Customer.FullName,
			PhoneNumber: r.parsedPhone,
			NIN:         r.parsedNIN,
			BVN:         r.parsedBVN,
			DateOfBirth: r.Customer.DateOfBirth,
		},
		Product: credit.Product{
			ID:       r.Product.ID,
			Category: r.Product.Category,
			Price:    r.Product.Price,
		},
	}
}
