package request

type SignUp struct {
	Username         string `json:"username" binding:"required,min=3,max=50,alphanum"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=8,max=72"`
	VerificationCode string `json:"verificationCode" binding:"required,len=6,numeric"`
}

type Login struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RequestVerificationCode struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPassword struct {
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=8,max=72"`
	VerificationCode string `json:"verificationCode" binding:"required,len=6,numeric"`
}

// UpdateProfile is bound from a multipart form; the profile picture file
// travels separately. Empty fields leave the current value untouched.
type UpdateProfile struct {
	Username    string `form:"username" binding:"omitempty,min=3,max=50,alphanum"`
	DisplayName string `form:"displayName" binding:"omitempty,max=50"`
	About       string `form:"about" binding:"omitempty,max=500"`
}
