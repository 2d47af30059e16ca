package dto

import "github.com/yourusername/equihire-api/internal/domain/entity"

// UserResponse is the public account representation.
type UserResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`

	CandidateProfile *CandidateProfileDTO `json:"candidate_profile,omitempty"`
	CompanyProfile   *CompanyProfileDTO   `json:"company_profile,omitempty"`
}

// CandidateProfileDTO mirrors entity.CandidateProfile for API responses.
type CandidateProfileDTO struct {
	ExperienceYears int    `json:"experience_years"`
	Expertise       string `json:"expertise"`
	ResumeLink      string `json:"resume_link"`
	CurrentCompany  string `json:"current_company"`
	IsExpert        bool   `json:"is_expert"`
}

// CompanyProfileDTO mirrors entity.CompanyProfile for API responses.
type CompanyProfileDTO struct {
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
	Description string `json:"description"`
	GSTIN       string `json:"gstin"`
}

// NewUserResponse builds a UserResponse from the entity, including whichever
// role profile was resolved.
func NewUserResponse(user *entity.User) *UserResponse {
	resp := &UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Role:     user.Role,
		IsActive: user.IsActive,
	}
	if user.CandidateProfile != nil {
		resp.CandidateProfile = &CandidateProfileDTO{
			ExperienceYears: user.CandidateProfile.ExperienceYears,
			Expertise:       user.CandidateProfile.Expertise,
			ResumeLink:      user.CandidateProfile.ResumeLink,
			CurrentCompany:  user.CandidateProfile.CurrentCompany,
			IsExpert:        user.CandidateProfile.IsExpert,
		}
	}
	if user.CompanyProfile != nil {
		resp.CompanyProfile = &CompanyProfileDTO{
			CompanyName: user.CompanyProfile.CompanyName,
			Address:     user.CompanyProfile.Address,
			Description: user.CompanyProfile.Description,
			GSTIN:       user.CompanyProfile.GSTIN,
		}
	}
	return resp
}
