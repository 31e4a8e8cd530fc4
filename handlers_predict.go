package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"agroassist/predictor"

	"go.uber.org/zap"
)

// handleIndex is the plain-text liveness probe kept for existing clients.
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("API is running."))
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResp{Status: "ok"})
}

// handleReady reports whether the record store is reachable.
func (a *App) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), a.cfg.RequestTimeout)
	defer cancel()
	if err := a.store.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResp{Status: "unavailable", Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, healthResp{Status: "ready"})
}

// handlePredict ranks crops for the posted measurements and stores the
// request together with its top 5.
func (a *App) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	features, err := req.features()
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	top, err := a.predictor.Predict(features)
	if err != nil {
		if errors.Is(err, predictor.ErrInvalidInput) {
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		a.log.Error("prediction failed", zap.String("requestID", requestIDFrom(r.Context())), zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "An error occurred: "+err.Error())
		return
	}

	preds := cropPredictions(top)
	ctx, cancel := context.WithTimeout(r.Context(), a.cfg.RequestTimeout)
	defer cancel()
	id, err := a.store.Create(ctx, inputData(features), preds)
	if err != nil {
		// Inference succeeded but the record could not be kept; without a
		// document_id the caller cannot select crops, so the request fails.
		a.log.Error("persist prediction", zap.String("requestID", requestIDFrom(r.Context())), zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "An error occurred: "+err.Error())
		return
	}

	if len(preds) > 0 {
		a.metrics.predictions.WithLabelValues(preds[0].Crop).Inc()
	}
	writeJSON(w, http.StatusOK, predictResp{Top5Crops: preds, DocumentID: id})
}
