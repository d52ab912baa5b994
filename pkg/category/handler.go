package category

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/centavo/centavo/internal/rest"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type CategoryDTO struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Icon   string  `json:"icon,omitempty"`
	Budget float64 `json:"budget"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var categoryType *Type
	if typeParam := r.URL.Query().Get("type"); typeParam != "" {
		t := Type(typeParam)
		if !t.Valid() {
			writeError(w, http.StatusBadRequest, "Invalid category type", "type must be income or expense")
			return
		}
		categoryType = &t
	}

	categories, err := handler.service.List(r.Context(), categoryType)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	categoriesDTO := make([]CategoryDTO, 0, len(categories))
	for _, category := range categories {
		categoriesDTO = append(categoriesDTO, CategoryToDTO(category))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(categoriesDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new category")
	w.Header().Set("Content-Type", "application/json")

	var categoryDTO CategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&categoryDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := handler.service.Create(r.Context(), categoryDTO.Name, categoryDTO.Icon, Type(categoryDTO.Type))
	if err != nil {
		switch {
		case errors.Is(err, ErrCategoryExists):
			writeError(w, http.StatusConflict, "Category already exists", err.Error())
		case errors.Is(err, ErrInvalidCategory):
			writeError(w, http.StatusBadRequest, "Invalid category", err.Error())
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(CategoryToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid category id", err.Error())
		return
	}

	var budgetDTO struct {
		Budget float64 `json:"budget"`
	}
	if err := json.NewDecoder(r.Body).Decode(&budgetDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.service.SetBudget(r.Context(), id, budgetDTO.Budget); err != nil {
		switch {
		case errors.Is(err, ErrCategoryNotFound):
			writeError(w, http.StatusNotFound, "Category not found", "")
		case errors.Is(err, ErrInvalidCategory):
			writeError(w, http.StatusBadRequest, "Invalid budget", err.Error())
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func CategoryToDTO(category Category) CategoryDTO {
	return CategoryDTO{
		ID:     category.ID.String(),
		Name:   category.Name,
		Type:   string(category.Type),
		Icon:   category.Icon,
		Budget: category.Budget,
	}
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details}); err != nil {
		log.Errorf("failed to encode error response: %v", err)
	}
}
