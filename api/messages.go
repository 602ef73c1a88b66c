package api

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"companyName"`
	PhoneNumber string `json:"phoneNumber"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId,omitempty"`
}

type VerifyEmailRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type CheckUserRequest struct {
	Email string `json:"email"`
}

type CheckUserResponse struct {
	Exists bool `json:"exists"`
}

type SendOTPRequest struct {
	Email string `json:"email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	RedirectURL string `json:"redirectUrl"`
	ClientID    string `json:"clientId"`
	IsAdmin     bool   `json:"isAdmin"`
	Token       string `json:"token"`
}

type SessionResponse struct {
	Email    string `json:"email"`
	ClientID string `json:"clientId"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Version string `json:"version,omitempty"`
}

type CreateAssistantRequest struct {
	UserID        string   `json:"user_id"`
	Name          string   `json:"name"`
	SystemMessage string   `json:"system_message"`
	Voice         string   `json:"voice"`
	Temperature   *float64 `json:"temperature"`
}

type UpdateAssistantRequest struct {
	Name          *string  `json:"name"`
	SystemMessage *string  `json:"system_message"`
	Voice         *string  `json:"voice"`
	Temperature   *float64 `json:"temperature"`
}

type AssistantResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	Name          string  `json:"name"`
	SystemMessage string  `json:"system_message"`
	Voice         string  `json:"voice"`
	Temperature   float64 `json:"temperature"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type AssistantListResponse struct {
	Assistants []AssistantResponse `json:"assistants"`
	Total      int                 `json:"total"`
}
