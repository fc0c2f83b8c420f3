package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marifyahya/test-backenddev/domain"
)

// BookHandlers handles the books resource
type BookHandlers struct {
	bookSvc domain.BookService
}

// NewBookHandlers creates new book handlers
func NewBookHandlers(bookSvc domain.BookService) *BookHandlers {
	return &BookHandlers{bookSvc: bookSvc}
}

// BookRequest is the body of book create and update. Price is a pointer so that zero
// passes the required check.
type BookRequest struct {
	Name  string `json:"name" binding:"required,max=120"`
	Price *int64 `json:"price" binding:"required,min=0,max=9999999999"`
}

// List returns every book keyed by id
func (h *BookHandlers) List(c *gin.Context) {
	books, err := h.bookSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, books)
}

// Create stores a book and returns the whole collection
func (h *BookHandlers) Create(c *gin.Context) {
	var req BookRequest
	if !bindJSON(c, &req) {
		return
	}

	books, err := h.bookSvc.Create(c.Request.Context(), req.Name, *req.Price)
	if err != nil {
		respondError(c, err, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, books)
}

// Get returns the book with the id path parameter
func (h *BookHandlers) Get(c *gin.Context) {
	book, err := h.bookSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, book)
}

// Update replaces the name and price of a stored book
func (h *BookHandlers) Update(c *gin.Context) {
	var req BookRequest
	if !bindJSON(c, &req) {
		return
	}

	book, err := h.bookSvc.Update(c.Request.Context(), c.Param("id"), req.Name, *req.Price)
	if err != nil {
		respondError(c, err, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, book)
}

// Delete removes the book with the id path parameter
func (h *BookHandlers) Delete(c *gin.Context) {
	if err := h.bookSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgSuccess})
}
