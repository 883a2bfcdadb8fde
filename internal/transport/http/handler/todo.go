package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"todoapp/internal/app"
	"todoapp/internal/transport/http/response"
)

type TodoHandler struct {
	todoService *app.TodoService
}

type TodoRequest struct {
	Title string `json:"title" binding:"max=255"`
}

func NewTodoHandler(todoService *app.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

func (h *TodoHandler) List(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "login required")
		return
	}

	todos, err := h.todoService.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list todos failed")
		return
	}

	response.OK(c, todos)
}

func (h *TodoHandler) Create(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "login required")
		return
	}

	var req TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	todo, err := h.todoService.Create(c.Request.Context(), userID, req.Title)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrEmptyTitle):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create todo failed")
		}
		return
	}

	response.OK(c, todo)
}

func (h *TodoHandler) Get(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "login required")
		return
	}

	todoID, ok := parseTodoID(c)
	if !ok {
		return
	}

	todo, err := h.todoService.Get(userID, todoID)
	if err != nil {
		switch {
		// One denial for both cases so the response never confirms
		// that somebody else's todo id exists.
		case errors.Is(err, app.ErrTodoNotFound), errors.Is(err, app.ErrTodoForbidden):
			response.Error(c, http.StatusNotFound, response.CodeTodoNotFound, "todo not found")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "get todo failed")
		}
		return
	}

	response.OK(c, todo)
}

func (h *TodoHandler) Update(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "login required")
		return
	}

	todoID, ok := parseTodoID(c)
	if !ok {
		return
	}

	var req TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	todo, err := h.todoService.Update(c.Request.Context(), userID, todoID, req.Title)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrEmptyTitle):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrTodoDenied):
			response.Error(c, http.StatusNotFound, response.CodeTodoNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "update todo failed")
		}
		return
	}

	response.OK(c, todo)
}

func (h *TodoHandler) Delete(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "login required")
		return
	}

	todoID, ok := parseTodoID(c)
	if !ok {
		return
	}

	title, deleted, err := h.todoService.Delete(c.Request.Context(), userID, todoID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "delete todo failed")
		return
	}

	// Missing or unowned ids fall through as deleted=false on purpose.
	response.OK(c, gin.H{
		"deleted": deleted,
		"title":   title,
	})
}

func parseTodoID(c *gin.Context) (uint, bool) {
	todoID64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || todoID64 == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid todo id")
		return 0, false
	}
	return uint(todoID64), true
}
