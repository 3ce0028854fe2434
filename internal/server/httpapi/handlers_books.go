package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookworm/internal/common"
	"bookworm/internal/server/models"
	"bookworm/internal/server/services"
)

type createBookRequest struct {
	Title   string `json:"title"`
	Caption string `json:"caption"`
	Rating  int    `json:"rating"`
	Image   string `json:"image"`
}

// POST /api/books
func (s *Server) createBook(c *gin.Context) {
	const op = "httpapi.createBook"

	log := s.logger.With("op", op)

	user, ok := currentUser(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "no authentication token provided")

		return
	}

	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "please provide all fields")

		return
	}

	book, err := s.books.Create(c.Request.Context(), user.ID, &services.CreateBookRequest{
		Title:   req.Title,
		Caption: req.Caption,
		Rating:  req.Rating,
		Image:   req.Image,
	})
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			newErrorResponse(c, http.StatusBadRequest, "please provide all fields")

			return
		}

		log.Error(c.Request.Context(), "failed to create book", "error", err.Error())

		newErrorResponse(c, http.StatusInternalServerError, "failed to create book")

		return
	}

	c.JSON(http.StatusCreated, book)
}

// GET /api/books?page&limit
func (s *Server) listBooks(c *gin.Context) {
	const op = "httpapi.listBooks"

	log := s.logger.With("op", op)

	// loose query parsing: anything non-numeric falls back to defaults
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	result, err := s.books.List(c.Request.Context(), page, limit)
	if err != nil {
		log.Error(c.Request.Context(), "failed to list books", "error", err.Error())

		newErrorResponse(c, http.StatusInternalServerError, "internal server error")

		return
	}

	books := result.Books
	if books == nil {
		books = []*models.Book{}
	}

	c.JSON(http.StatusOK, gin.H{
		"books":       books,
		"currentPage": result.CurrentPage,
		"totalBooks":  result.TotalBooks,
		"totalPages":  result.TotalPages,
	})
}

// GET /api/books/user
func (s *Server) listMyBooks(c *gin.Context) {
	const op = "httpapi.listMyBooks"

	log := s.logger.With("op", op)

	user, ok := currentUser(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "no authentication token provided")

		return
	}

	books, err := s.books.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		log.Error(c.Request.Context(), "failed to list user books", "error", err.Error())

		newErrorResponse(c, http.StatusInternalServerError, "internal server error")

		return
	}

	if books == nil {
		books = []*models.Book{}
	}

	c.JSON(http.StatusOK, books)
}

// DELETE /api/books/:id
func (s *Server) deleteBook(c *gin.Context) {
	const op = "httpapi.deleteBook"

	log := s.logger.With("op", op)

	user, ok := currentUser(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "no authentication token provided")

		return
	}

	err := s.books.Delete(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			newErrorResponse(c, http.StatusNotFound, "book not found")

			return
		}
		if errors.Is(err, common.ErrorUnauthorized) {
			// not the owner; distinct from 404 on purpose
			newErrorResponse(c, http.StatusUnauthorized, "unauthorized")

			return
		}

		log.Error(c.Request.Context(), "failed to delete book", "error", err.Error())

		newErrorResponse(c, http.StatusInternalServerError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "book deleted successfully"})
}
