package http

import (
	"net/http"

	"github.com/MKhiriev/go-course-catalog/internal/logger"
	"github.com/MKhiriev/go-course-catalog/internal/utils"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	info := h.services.AppInfoService.Info(r.Context())
	if _, err := utils.WriteJSON(w, r, info, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing version response")
	}
}
