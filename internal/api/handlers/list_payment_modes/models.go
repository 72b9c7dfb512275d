package list_payment_modes

import "github.com/jhcsc-org/jhcsc-venue/internal/domain"

// OptionResponse элемент справочника
type OptionResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func fromPaymentModes(modes []*domain.PaymentMode) []OptionResponse {
	resp := make([]OptionResponse, 0, len(modes))
	for _, m := range modes {
		resp = append(resp, OptionResponse{ID: m.ID, Name: m.Mode})
	}
	return resp
}

func fromVenueTypes(types []*domain.VenueType) []OptionResponse {
	resp := make([]OptionResponse, 0, len(types))
	for _, t := range types {
		resp = append(resp, OptionResponse{ID: t.ID, Name: t.Name})
	}
	return resp
}
