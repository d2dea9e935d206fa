package handler

import (
	"net/http"

	"techstock/internal/middleware"
	"techstock/internal/model"
	"techstock/pkg/database"
	"techstock/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// NoteRequest defines the structure for note creation/update requests
type NoteRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
	Color   string `json:"color"`
}

// ListNotes returns the authenticated user's notes, most recently updated
// first
func ListNotes(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)

	var notes []model.Note
	result := database.GetDB().Where("user_id = ?", userID).Order("updated_at DESC").Find(&notes)
	if result.Error != nil {
		log.Error("Failed to list notes", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve notes"})
	}

	return c.JSON(http.StatusOK, notes)
}

// CreateNote creates a note owned by the authenticated user
func CreateNote(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)

	var req NoteRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	color := req.Color
	if color == "" {
		color = "default"
	}

	note := model.Note{
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
		Color:   color,
	}
	if err := database.GetDB().Create(&note).Error; err != nil {
		log.Error("Failed to create note", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save note"})
	}

	log.Info("Note created", zap.Uint("note_id", note.ID))
	return c.JSON(http.StatusCreated, note)
}

// UpdateNote updates a note if the authenticated user owns it
func UpdateNote(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)
	id := c.Param("id")

	var req NoteRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var note model.Note
	result := database.GetDB().Where("id = ? AND user_id = ?", id, userID).First(&note)
	if result.Error != nil {
		log.Warn("Note not found for update", zap.String("note_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Note not found"})
	}

	note.Title = req.Title
	note.Content = req.Content
	if req.Color != "" {
		note.Color = req.Color
	}

	if err := database.GetDB().Save(&note).Error; err != nil {
		log.Error("Failed to update note", zap.String("note_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update note"})
	}

	return c.JSON(http.StatusOK, note)
}

// DeleteNote removes a note if the authenticated user owns it
func DeleteNote(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)
	id := c.Param("id")

	result := database.GetDB().Where("user_id = ?", userID).Delete(&model.Note{}, id)
	if result.Error != nil {
		log.Error("Failed to delete note", zap.String("note_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete note"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Note not found"})
	}

	log.Info("Note deleted", zap.String("note_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Note deleted"})
}
