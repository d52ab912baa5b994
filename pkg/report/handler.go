package report

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/centavo/centavo/internal/rest"
	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	log.Debug("Generating financial report")
	w.Header().Set("Content-Type", "application/json")

	from, ok := queryDate(w, r, "fromDate")
	if !ok {
		return
	}
	to, ok := queryDate(w, r, "toDate")
	if !ok {
		return
	}

	generated, err := handler.service.Generate(r.Context(), from, to)
	if err != nil {
		writeError(w, http.StatusBadGateway, "Report unavailable", err.Error())
		return
	}

	if err := json.NewEncoder(w).Encode(generated); err != nil {
		log.Errorf("failed to encode report: %v", err)
	}
}

func queryDate(w http.ResponseWriter, r *http.Request, name string) (*time.Time, bool) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil, true
	}
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid "+name+" format", name+" must be in YYYY-MM-DD format")
		return nil, false
	}
	return &date, true
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details}); err != nil {
		log.Errorf("failed to encode error response: %v", err)
	}
}
