package api

import (
	"net/http"

	"go.convislabs.com/registration/core"
	"go.convislabs.com/registration/middleware"
	"go.lumeweb.com/httputil"
)

const minPasswordLength = 6

func (a *API) registerHandler(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	var request RegisterRequest
	if ctx.Decode(&request) != nil {
		return
	}

	if len(request.Password) < minPasswordLength {
		a.sendError(w, r, core.NewAccountError(core.ErrKeyInvalidRequest, nil, "Password must be at least 6 characters"))
		return
	}

	user, err := a.user.CreateAccount(r.Context(), request.Email, request.Password, request.CompanyName, request.PhoneNumber)
	if err != nil {
		a.sendError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	ctx.Encode(&RegisterResponse{
		Message: "User registered successfully. Please check your email for the OTP to verify your account.",
		UserID:  user.ID.Hex(),
	})
}

func (a *API) verifyEmailHandler(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	var request VerifyEmailRequest
	if ctx.Decode(&request) != nil {
		return
	}

	if err := a.user.VerifyEmail(r.Context(), request.Email, request.OTP); err != nil {
		a.sendError(w, r, err)
		return
	}

	ctx.Encode(&MessageResponse{Message: "Email verified successfully!"})
}

func (a *API) checkUserHandler(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	var request CheckUserRequest
	if ctx.Decode(&request) != nil {
		return
	}

	exists, _, err := a.user.EmailExists(r.Context(), request.Email)
	if err != nil {
		a.sendError(w, r, err)
		return
	}

	ctx.Encode(&CheckUserResponse{Exists: exists})
}

func (a *API) sendOTPHandler(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	var request SendOTPRequest
	if ctx.Decode(&request) != nil {
		return
	}

	if err := a.user.SendPasswordResetOTP(r.Context(), request.Email); err != nil {
		a.sendError(w, r, err)
		return
	}

	ctx.Encode(&MessageResponse{Message: "OTP sent to email."})
}

func (a *API) verifyOTPHandler(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	var request VerifyOTPRequest
	if ctx.Decode(&request) != nil {
		return
	}

	if err := a.user.VerifyPasswordResetOTP(r.Context(), request.Email, request.OTP); err != nil {
		a.sendError(w, r, err)
		return
	}

	ctx.Encode(&MessageResponse{Message: "OTP verified successfully"})
}

func (a *API) resetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	var request ResetPasswordRequest
	if ctx.Decode(&request) != nil {
		return
	}

	if len(request.NewPassword) < minPasswordLength {
		a.sendError(w, r, core.NewAccountError(core.ErrKeyInvalidRequest, nil, "Password must be at least 6 characters"))
		return
	}

	if err := a.user.ResetPassword(r.Context(), request.Email, request.NewPassword); err != nil {
		a.sendError(w, r, err)
		return
	}

	ctx.Encode(&MessageResponse{Message: "Password reset successful"})
}

func (a *API) loginHandler(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	var request LoginRequest
	if ctx.Decode(&request) != nil {
		return
	}

	token, user, err := a.auth.LoginPassword(r.Context(), request.Email, request.Password)
	if err != nil {
		a.sendError(w, r, err)
		return
	}

	core.SetAuthCookie(w, token)
	core.SendJWT(w, token)

	ctx.Encode(&LoginResponse{
		RedirectURL: "/client-dashboard/" + user.ID.Hex(),
		ClientID:    user.ID.Hex(),
		IsAdmin:     user.IsAdmin(),
		Token:       token,
	})
}

func (a *API) logoutHandler(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	core.ClearAuthCookie(w)

	ctx.Encode(&MessageResponse{Message: "Logged out"})
}

func (a *API) sessionHandler(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	claims := middleware.GetSessionFromContext(r.Context())
	if claims == nil {
		a.sendError(w, r, core.NewAccountError(core.ErrKeyInvalidLogin, nil))
		return
	}

	ctx.Encode(&SessionResponse{
		Email:    claims.Email,
		ClientID: claims.ClientID,
	})
}
