package http

import "net/http"

const healthStatusOK = "ok"

type healthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
}

// health reports that the process is up together with the environment label
// it was started with. It never touches the database, broker or storage.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if _, err := writeJSON(w, healthResponse{
		Status:      healthStatusOK,
		Environment: h.environment,
	}, http.StatusOK); err != nil {
		h.logger.Err(err).Msg("error writing health response")
	}
}
