package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/samber/lo"
	"go.convislabs.com/registration/core"
	"go.convislabs.com/registration/db/models"
	"go.lumeweb.com/httputil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func assistantToResponse(assistant *models.AIAssistant) AssistantResponse {
	return AssistantResponse{
		ID:            assistant.ID.Hex(),
		UserID:        assistant.UserID.Hex(),
		Name:          assistant.Name,
		SystemMessage: assistant.SystemMessage,
		Voice:         assistant.Voice,
		Temperature:   assistant.Temperature,
		CreatedAt:     assistant.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     assistant.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func (a *API) createAssistantHandler(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	var request CreateAssistantRequest
	if ctx.Decode(&request) != nil {
		return
	}

	userID, err := primitive.ObjectIDFromHex(request.UserID)
	if err != nil {
		a.sendError(w, r, core.NewAccountError(core.ErrKeyInvalidObjectID, err, "Invalid user_id format"))
		return
	}

	temperature := models.ASSISTANT_DEFAULT_TEMPERATURE
	if request.Temperature != nil {
		temperature = *request.Temperature
	}

	assistant, err := a.assistant.CreateAssistant(r.Context(), userID, request.Name, request.SystemMessage, request.Voice, temperature)
	if err != nil {
		a.sendError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	ctx.Encode(assistantToResponse(assistant))
}

func (a *API) listAssistantsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	userID, err := primitive.ObjectIDFromHex(mux.Vars(r)["user_id"])
	if err != nil {
		a.sendError(w, r, core.NewAccountError(core.ErrKeyInvalidObjectID, err, "Invalid user_id format"))
		return
	}

	assistants, err := a.assistant.ListAssistantsByUser(r.Context(), userID)
	if err != nil {
		a.sendError(w, r, err)
		return
	}

	responses := lo.Map(assistants, func(assistant *models.AIAssistant, _ int) AssistantResponse {
		return assistantToResponse(assistant)
	})

	ctx.Encode(&AssistantListResponse{
		Assistants: responses,
		Total:      len(responses),
	})
}

func (a *API) getAssistantHandler(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["assistant_id"])
	if err != nil {
		a.sendError(w, r, core.NewAccountError(core.ErrKeyInvalidObjectID, err, "Invalid assistant_id format"))
		return
	}

	assistant, err := a.assistant.GetAssistant(r.Context(), id)
	if err != nil {
		a.sendError(w, r, err)
		return
	}

	ctx.Encode(assistantToResponse(assistant))
}

func (a *API) updateAssistantHandler(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["assistant_id"])
	if err != nil {
		a.sendError(w, r, core.NewAccountError(core.ErrKeyInvalidObjectID, err, "Invalid assistant_id format"))
		return
	}

	var request UpdateAssistantRequest
	if ctx.Decode(&request) != nil {
		return
	}

	assistant, err := a.assistant.UpdateAssistant(r.Context(), id, core.AssistantUpdate{
		Name:          request.Name,
		SystemMessage: request.SystemMessage,
		Voice:         request.Voice,
		Temperature:   request.Temperature,
	})
	if err != nil {
		a.sendError(w, r, err)
		return
	}

	ctx.Encode(assistantToResponse(assistant))
}

func (a *API) deleteAssistantHandler(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["assistant_id"])
	if err != nil {
		a.sendError(w, r, core.NewAccountError(core.ErrKeyInvalidObjectID, err, "Invalid assistant_id format"))
		return
	}

	if err := a.assistant.DeleteAssistant(r.Context(), id); err != nil {
		a.sendError(w, r, err)
		return
	}

	ctx.Encode(&MessageResponse{Message: "AI assistant deleted successfully"})
}
