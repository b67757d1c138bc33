package dto

import "github.com/kesher-org/kesher-backend/internal/app/models"

// CreateVolunteerRequest carries intake data for a new volunteer
type CreateVolunteerRequest struct {
	FullName          string  `json:"fullName" binding:"required"`
	Email             string  `json:"email" binding:"required,email"`
	Phone             string  `json:"phone"`
	City              string  `json:"city" binding:"required"`
	NativeLanguage    string  `json:"nativeLanguage" binding:"required"`
	Gender            *string `json:"gender,omitempty"`
	Capacity          int     `json:"capacity" binding:"required,min=1"`
	ScholarshipActive *bool   `json:"scholarshipActive,omitempty"`
}

// ToModel converts the request to a volunteer model
func (r *CreateVolunteerRequest) ToModel() *models.Volunteer {
	scholarship := true
	if r.ScholarshipActive != nil {
		scholarship = *r.ScholarshipActive
	}

	return &models.Volunteer{
		FullName:          r.FullName,
		Email:             r.Email,
		Phone:             r.Phone,
		City:              r.City,
		NativeLanguage:    r.NativeLanguage,
		Gender:            r.Gender,
		Capacity:          r.Capacity,
		IsActive:          true,
		ScholarshipActive: scholarship,
	}
}

// VolunteerListResponse represents a page of volunteers
type VolunteerListResponse struct {
	Volunteers []*models.Volunteer `json:"volunteers"`
	Pagination PaginationInfo      `json:"pagination"`
}
