package dto

// InstructorRegisterRequest represents an instructor registration request
type InstructorRegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// InstructorResponse represents instructor account information
type InstructorResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	CourseIDs      []int64 `json:"courseIds,omitempty"`
}

// UpdateInstructorProfileRequest represents instructor profile update data.
// The profile picture arrives as a separate multipart part.
type UpdateInstructorProfileRequest struct {
	Name string  `form:"name" binding:"required"`
	Bio  *string `form:"bio"`
}
