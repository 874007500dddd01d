package dto

type CreateUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

type ProfileUpdateRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
}

type TalentUpdateRequest struct {
	Name             *string `json:"name"`
	Bio              *string `json:"bio"`
	PublicVisibility *bool   `json:"public_visibility"`
}
