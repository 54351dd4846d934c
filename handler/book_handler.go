package handler

import (
	"encoding/json"
	"go-publisher-api/common"
	"go-publisher-api/model"
	"go-publisher-api/service"
	"net/http"
)

// BookHandler holds dependencies for book catalog handlers.
type BookHandler struct {
	service *service.BookService
}

func NewBookHandler(s *service.BookService) *BookHandler {
	return &BookHandler{service: s}
}

// ListBooks godoc
// @Summary      List the book catalog
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   model.Book
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/books [get]
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) *common.AppError {
	books, err := h.service.ListBooks()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve books", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(books)
	return nil
}

// CreateBook godoc
// @Summary      Add a title to the catalog
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        book body model.CreateBookRequest true "Book details"
// @Success      201  {object}  model.Book
// @Failure      400  {object}  common.AppError "Malformed request body"
// @Failure      403  {object}  common.AppError "Caller is not an admin"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/admin/books [post]
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateBookRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	book, err := h.service.CreateBook(req.Title, req.Author)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not create book", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(book)
	return nil
}
