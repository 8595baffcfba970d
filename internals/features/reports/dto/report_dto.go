package dto

// ============================
// Submit Request DTO (multipart)
// ============================

type SubmitReportRequest struct {
	Date        string `form:"date" json:"date" validate:"required"`
	Location    string `form:"location" json:"location" validate:"required"`
	Description string `form:"description" json:"description" validate:"required"`
	SocialLink  string `form:"social_link" json:"social_link"` // hanya role sosmed
}
