package dto

import "github.com/kesher-org/kesher-backend/internal/app/models"

// CreateStudentRequest carries intake data for a new student
type CreateStudentRequest struct {
	FullName       string  `json:"fullName" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	Phone          string  `json:"phone"`
	City           string  `json:"city" binding:"required"`
	NativeLanguage string  `json:"nativeLanguage" binding:"required"`
	Gender         *string `json:"gender,omitempty"`
	SpecialRequest *string `json:"specialRequest,omitempty"`
}

// ToModel converts the request to a student model
func (r *CreateStudentRequest) ToModel() *models.Student {
	return &models.Student{
		FullName:       r.FullName,
		Email:          r.Email,
		Phone:          r.Phone,
		City:           r.City,
		NativeLanguage: r.NativeLanguage,
		Gender:         r.Gender,
		SpecialRequest: r.SpecialRequest,
	}
}

// StudentListResponse represents a page of students
type StudentListResponse struct {
	Students   []*models.Student `json:"students"`
	Pagination PaginationInfo    `json:"pagination"`
}
