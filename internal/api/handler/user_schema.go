package handler

type registerRequest struct {
	Username    string `json:"username"     validate:"required,min=3,max=50"`
	Email       string `json:"email"        validate:"required,email"`
	Password    string `json:"password"     validate:"required,min=8"`
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// updateUserRequest is a partial profile update: absent fields stay untouched.
type updateUserRequest struct {
	Username    *string `json:"username"     validate:"omitempty,min=3,max=50"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
}
