package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"agroassist/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// handleStoreSelectedCrops overwrites the crops a user picked for a stored
// prediction. Repeating the call with the same crops succeeds again.
func (a *App) handleStoreSelectedCrops(w http.ResponseWriter, r *http.Request) {
	var req selectCropsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.SelectedCrops) == 0 {
		a.metrics.selections.WithLabelValues("rejected").Inc()
		writeMessage(w, http.StatusBadRequest, "No crops selected!")
		return
	}
	if req.DocumentID == "" {
		a.metrics.selections.WithLabelValues("rejected").Inc()
		writeMessage(w, http.StatusBadRequest, "Document ID is required!")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), a.cfg.RequestTimeout)
	defer cancel()
	err := a.store.SetSelection(ctx, req.DocumentID, req.SelectedCrops)
	switch {
	case err == nil:
		a.metrics.selections.WithLabelValues("updated").Inc()
		writeMessage(w, http.StatusOK, "Selected crops updated successfully!")
	case errors.Is(err, store.ErrEmptySelection):
		a.metrics.selections.WithLabelValues("rejected").Inc()
		writeMessage(w, http.StatusBadRequest, "No crops selected!")
	case errors.Is(err, store.ErrNotFound):
		a.metrics.selections.WithLabelValues("not_found").Inc()
		writeMessage(w, http.StatusNotFound, "Document not found or not updated!")
	default:
		// Malformed ids land here too.
		a.metrics.selections.WithLabelValues("error").Inc()
		a.log.Warn("store selected crops",
			zap.String("requestID", requestIDFrom(r.Context())),
			zap.String("documentID", req.DocumentID),
			zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "An error occurred: "+err.Error())
	}
}

// handleGetPrediction returns one stored prediction record.
func (a *App) handleGetPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), a.cfg.RequestTimeout)
	defer cancel()

	rec, err := a.store.Get(ctx, chi.URLParam(r, "id"))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, rec)
	case errors.Is(err, store.ErrInvalidID):
		writeMessage(w, http.StatusBadRequest, "bad id")
	case errors.Is(err, store.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "not found")
	default:
		a.log.Error("get prediction", zap.String("requestID", requestIDFrom(r.Context())), zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "An error occurred: "+err.Error())
	}
}
