package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/centavo/centavo/internal/rest"
	"github.com/centavo/centavo/pkg/category"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type TransactionDTO struct {
	ID          string          `json:"id"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Date        string          `json:"date"`
	CategoryID  string          `json:"categoryId"`
	Category    *CategoryRefDTO `json:"category,omitempty"`
}

// CategoryRefDTO carries the joined display data of a transaction's category.
type CategoryRefDTO struct {
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	log.Debug("Adding new transaction")
	w.Header().Set("Content-Type", "application/json")

	var requestDTO struct {
		Amount      float64 `json:"amount"`
		Description string  `json:"description"`
		Type        string  `json:"type"`
		Date        string  `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := time.Parse(dateLayout, requestDTO.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format", "date must be in YYYY-MM-DD format")
		return
	}

	created, err := handler.service.Add(r.Context(), requestDTO.Amount, requestDTO.Description, category.Type(requestDTO.Type), date)
	if err != nil {
		switch {
		case errors.Is(err, category.ErrNoCategories):
			writeError(w, http.StatusConflict, "No categories configured", err.Error())
		case errors.Is(err, ErrInvalidTransaction):
			writeError(w, http.StatusBadRequest, "Invalid transaction", err.Error())
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(TransactionToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid transaction id", err.Error())
		return
	}

	if err := handler.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			writeError(w, http.StatusNotFound, "Transaction not found", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (handler *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid transaction id", err.Error())
		return
	}

	var requestDTO struct {
		CategoryID string `json:"categoryId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	categoryID, err := uuid.Parse(requestDTO.CategoryID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid category id", err.Error())
		return
	}

	if err := handler.service.Recategorize(r.Context(), id, categoryID); err != nil {
		switch {
		case errors.Is(err, ErrTransactionNotFound):
			writeError(w, http.StatusNotFound, "Transaction not found", "")
		case errors.Is(err, category.ErrCategoryNotFound):
			writeError(w, http.StatusNotFound, "Category not found", "")
		case errors.Is(err, ErrTypeMismatch):
			writeError(w, http.StatusBadRequest, "Category type mismatch", err.Error())
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func TransactionToDTO(transaction Transaction) TransactionDTO {
	dto := TransactionDTO{
		ID:          transaction.ID.String(),
		Amount:      transaction.Amount,
		Description: transaction.Description,
		Type:        string(transaction.Type),
		Date:        transaction.Date.Format(dateLayout),
		CategoryID:  transaction.CategoryID.String(),
	}
	if transaction.CategoryName != "" {
		dto.Category = &CategoryRefDTO{Name: transaction.CategoryName, Icon: transaction.CategoryIcon}
	}
	return dto
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details}); err != nil {
		log.Errorf("failed to encode error response: %v", err)
	}
}
