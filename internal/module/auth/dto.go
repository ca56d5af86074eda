package auth

// RegisterRequest is the sign-up form. Captcha is the code mailed by
// SendEmailCode.
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=20,alphanumunicode"`
	Password        string `json:"password" validate:"required,min=6,max=20"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Email           string `json:"email" validate:"required,email"`
	Captcha         string `json:"captcha" validate:"required,len=6,numeric"`
}

// LoginRequest is the sign-in form.
type LoginRequest struct {
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// EmailCodeRequest asks for a verification code.
type EmailCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}
