package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.convislabs.com/registration/config"
	"go.convislabs.com/registration/core"
	"go.convislabs.com/registration/middleware"
	"go.lumeweb.com/httputil"
	"go.uber.org/zap"
)

const apiVersion = "1.0.0"

type API struct {
	ctx       core.Context
	config    config.Manager
	logger    *core.Logger
	user      core.UserService
	auth      core.AuthService
	assistant core.AssistantService
}

// Register wires the full HTTP surface onto the given router. It runs
// after all services have started, so service lookups here are safe.
func Register(ctx core.Context, router *mux.Router) error {
	a := &API{
		ctx:       ctx,
		config:    ctx.Config(),
		logger:    ctx.Logger().Named("api"),
		user:      core.GetService[core.UserService](ctx, core.USER_SERVICE),
		auth:      core.GetService[core.AuthService](ctx, core.AUTH_SERVICE),
		assistant: core.GetService[core.AssistantService](ctx, core.ASSISTANT_SERVICE),
	}

	router.HandleFunc("/", a.rootHandler).Methods(http.MethodGet)
	router.HandleFunc("/health", a.healthHandler).Methods(http.MethodGet)

	apiRouter := router.PathPrefix("/api").Subrouter()

	apiRouter.HandleFunc("/register", a.registerHandler).Methods(http.MethodPost)
	apiRouter.HandleFunc("/register/verify-email", a.verifyEmailHandler).Methods(http.MethodPost)
	apiRouter.HandleFunc("/register/check-user", a.checkUserHandler).Methods(http.MethodPost)

	apiRouter.HandleFunc("/forgot_password/send-otp", a.sendOTPHandler).Methods(http.MethodPost)
	apiRouter.HandleFunc("/forgot_password/verify-otp", a.verifyOTPHandler).Methods(http.MethodPost)
	apiRouter.HandleFunc("/forgot_password/reset-password", a.resetPasswordHandler).Methods(http.MethodPost)

	apiRouter.HandleFunc("/access/login", a.loginHandler).Methods(http.MethodPost)
	apiRouter.HandleFunc("/access/logout", a.logoutHandler).Methods(http.MethodPost)

	authMw := middleware.AuthMiddleware(middleware.AuthMiddlewareOptions{
		Context: ctx,
	})

	session := apiRouter.PathPrefix("/access/session").Subrouter()
	session.Use(authMw)
	session.HandleFunc("", a.sessionHandler).Methods(http.MethodGet)

	assistants := apiRouter.PathPrefix("/ai-assistants").Subrouter()
	assistants.HandleFunc("", a.createAssistantHandler).Methods(http.MethodPost)
	assistants.HandleFunc("/user/{user_id}", a.listAssistantsHandler).Methods(http.MethodGet)
	assistants.HandleFunc("/{assistant_id}", a.getAssistantHandler).Methods(http.MethodGet)
	assistants.HandleFunc("/{assistant_id}", a.updateAssistantHandler).Methods(http.MethodPut)
	assistants.HandleFunc("/{assistant_id}", a.deleteAssistantHandler).Methods(http.MethodDelete)

	return nil
}

func (a *API) rootHandler(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	ctx.Encode(&StatusResponse{
		Status:  "running",
		Message: a.config.Config().Core.PortalName + " Registration API",
		Version: apiVersion,
	})
}

func (a *API) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	ctx.Encode(&StatusResponse{Status: "healthy"})
}

// sendError translates service errors to their HTTP status. Only the
// curated message goes out; wrapped internals stay in the logs.
func (a *API) sendError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := httputil.Context(r, w)

	accErr := core.AsAccountError(err)
	if accErr == nil {
		a.logger.Error("unexpected handler error", zap.Error(err))
		ctx.Error(errors.New("Internal server error"), http.StatusInternalServerError)
		return
	}

	if accErr.HttpStatus() >= http.StatusInternalServerError {
		a.logger.Error("handler error", zap.String("key", string(accErr.Key)), zap.Error(err))
	}

	ctx.Error(errors.New(accErr.Message), accErr.HttpStatus())
}
