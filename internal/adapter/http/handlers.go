package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/couchcryptid/agri-advisor-service/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleRecommendCrop(w http.ResponseWriter, r *http.Request) {
	var q domain.CropQuery
	if err := decodeBody(w, r, &q, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	rec, err := s.advisor.RecommendCrop(r.Context(), q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, newCropResp(rec))
}

func (s *Server) handlePredictYield(w http.ResponseWriter, r *http.Request) {
	var q domain.YieldQuery
	if err := decodeBody(w, r, &q, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	pred, err := s.advisor.PredictYield(r.Context(), q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, newYieldResp(pred))
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	var req weatherReq
	if err := decodeBody(w, r, &req, true); err != nil {
		s.writeError(w, r, err)
		return
	}
	report, err := s.advisor.Weather(r.Context(), req.City)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, weatherResp{
		Success:  true,
		Weather:  report.Sample,
		Advisory: report.Advisory,
	})
}

func (s *Server) handleYieldOptions(w http.ResponseWriter, _ *http.Request) {
	states, crops := s.advisor.YieldOptions()
	sharedobs.WriteJSON(w, http.StatusOK, yieldOptionsResp{Success: true, States: states, Crops: crops})
}

func handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=60")
	_, _ = w.Write(openapiYAML)
}

// errBodyTooLarge is returned by decodeBody when the body exceeds maxBodyBytes.
var errBodyTooLarge = fmt.Errorf("request body exceeds %d bytes", maxBodyBytes)

// decodeBody reads exactly one JSON object into v. Malformed bodies and
// trailing data are reported as invalid input; an empty body is accepted only
// when allowEmpty is set.
func decodeBody(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return errBodyTooLarge
		case errors.Is(err, io.EOF):
			if allowEmpty {
				return nil
			}
			return fmt.Errorf("%w: request body is empty", domain.ErrInvalidInput)
		}
		return fmt.Errorf("%w: malformed JSON body: %v", domain.ErrInvalidInput, err)
	}

	var extra json.RawMessage
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
		return nil
	case err == nil:
		return fmt.Errorf("%w: unexpected data after JSON body", domain.ErrInvalidInput)
	default:
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errBodyTooLarge
		}
		return fmt.Errorf("%w: malformed JSON body: %v", domain.ErrInvalidInput, err)
	}
}

// writeError maps request errors to 400, oversized bodies to 413, and anything
// else to 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domain.IsRequestError(err):
		sharedobs.WriteJSON(w, http.StatusBadRequest, errorResp{Error: err.Error()})
	case errors.Is(err, errBodyTooLarge):
		sharedobs.WriteJSON(w, http.StatusRequestEntityTooLarge, errorResp{Error: err.Error()})
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		sharedobs.WriteJSON(w, http.StatusInternalServerError, errorResp{Error: "internal server error"})
	}
}
