package dto

// UpdateRecordRequest menimpa kolom yang disebut saja.
// Feature opsional; kosong = label gateway default.
type UpdateRecordRequest struct {
	Fields  map[string]string `json:"fields" validate:"required,min=1"`
	Reason  string            `json:"reason" validate:"required"`
	Feature string            `json:"feature"`
}
