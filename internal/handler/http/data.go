package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/vitascope/internal/logger"
	"github.com/MKhiriev/vitascope/internal/service"
	"github.com/MKhiriev/vitascope/models"
)

var (
	statusSuccess = models.StatusMessage{Status: "success"}
	statusInvalid = models.StatusMessage{Status: "invalid"}
	statusError   = models.StatusMessage{Status: "error"}
)

// ingest stores one device reading. The endpoint is open: devices do not
// authenticate.
func (h *Handler) ingest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var payload models.TelemetryPayload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&payload); err != nil {
		log.Err(err).Str("func", "*Handler.ingest").Msg("Invalid JSON was passed")
		h.writeJSON(w, r, statusInvalid, http.StatusBadRequest)
		return
	}

	measurement, err := h.services.TelemetryService.Ingest(r.Context(), payload)
	if err != nil {
		if errors.Is(err, service.ErrMalformedTelemetry) {
			log.Err(err).Str("func", "*Handler.ingest").Msg("malformed reading")
			h.writeJSON(w, r, statusInvalid, http.StatusBadRequest)
			return
		}
		log.Err(err).Str("func", "*Handler.ingest").Msg("error storing reading")
		h.writeJSON(w, r, statusError, statusFromError(err))
		return
	}

	log.Debug().Int64("id", measurement.ID).Str("device", measurement.DeviceID).Msg("reading stored")
	h.writeJSON(w, r, statusSuccess, http.StatusOK)
}

func (h *Handler) liveData(w http.ResponseWriter, r *http.Request) {
	reading, err := h.services.TelemetryService.Live(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.liveData").Msg("error reading latest measurement")
		h.writeError(w, r, err, msgStorageFailure)
		return
	}
	h.writeJSON(w, r, reading, http.StatusOK)
}

func (h *Handler) measurements(w http.ResponseWriter, r *http.Request) {
	window, err := h.services.TelemetryService.Window(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.measurements").Msg("error reading recent measurements")
		h.writeError(w, r, err, msgStorageFailure)
		return
	}
	h.writeJSON(w, r, window, http.StatusOK)
}
