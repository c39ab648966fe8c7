package models

import "github.com/codebreakerd260/SIH2k25-Prod/storage"

type MemberInfo struct {
	Name   string `json:"name" binding:"required,min=2"`
	Email  string `json:"email" binding:"required,email"`
	RollNo string `json:"rollNo" binding:"required,min=6"`
}

type RegisterRequest struct {
	TeamName     string       `json:"teamName" binding:"required,min=3"`
	LeadName     string       `json:"leadName" binding:"required,min=2"`
	LeadEmail    string       `json:"leadEmail" binding:"required,email"`
	LeadRollNo   string       `json:"leadRollNo" binding:"required,min=6"`
	LeadPassword string       `json:"leadPassword" binding:"required,min=6"`
	Members      []MemberInfo `json:"members" binding:"omitempty,max=4,dive"`
}

type RegisterResponse struct {
	Message  string `json:"message"`
	TeamCode string `json:"teamCode"`
	TeamName string `json:"teamName"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	RollNo   string `json:"rollNo,omitempty"`
	Role     string `json:"role"`
	TeamCode string `json:"teamCode,omitempty"`
}

func TransformUserFromStorage(u *storage.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		RollNo:   u.RollNo,
		Role:     u.Role,
		TeamCode: u.TeamCode,
	}
}
