package handler

import (
	"net/http"
	"strconv"

	"techstock/internal/model"
	"techstock/pkg/database"
	"techstock/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CompanyNameRequest defines the company settings update payload
type CompanyNameRequest struct {
	CompanyName string `json:"company_name" validate:"required"`
}

// RoleRequest defines the team role update payload
type RoleRequest struct {
	Role string `json:"role" validate:"required,oneof=owner manager"`
}

// TeamMember is a profile joined with its role.
type TeamMember struct {
	UserID   uint   `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// GetCompanySettings returns the single company settings row
func GetCompanySettings(c echo.Context) error {
	log := logger.FromContext(c)

	var settings model.CompanySetting
	result := database.GetDB().Limit(1).Find(&settings)
	if result.Error != nil {
		log.Error("Failed to load company settings", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve settings"})
	}

	return c.JSON(http.StatusOK, settings)
}

// UpdateCompanyName updates (or creates) the company settings row
func UpdateCompanyName(c echo.Context) error {
	log := logger.FromContext(c)

	var req CompanyNameRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	db := database.GetDB()
	var settings model.CompanySetting
	result := db.Limit(1).Find(&settings)
	if result.Error != nil {
		log.Error("Failed to load company settings", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update settings"})
	}

	settings.CompanyName = req.CompanyName
	if err := db.Save(&settings).Error; err != nil {
		log.Error("Failed to save company settings", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update settings"})
	}

	log.Info("Company name updated", zap.String("company_name", settings.CompanyName))
	return c.JSON(http.StatusOK, settings)
}

// ListTeamMembers returns all profiles joined with their roles. A user
// without a role row is reported as a manager.
func ListTeamMembers(c echo.Context) error {
	log := logger.FromContext(c)
	db := database.GetDB()

	var profiles []model.Profile
	if err := db.Find(&profiles).Error; err != nil {
		log.Error("Failed to load profiles", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve team"})
	}
	var roles []model.UserRole
	if err := db.Find(&roles).Error; err != nil {
		log.Error("Failed to load roles", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve team"})
	}

	roleByUser := make(map[uint]string, len(roles))
	for _, r := range roles {
		roleByUser[r.UserID] = r.Role
	}

	members := make([]TeamMember, 0, len(profiles))
	for _, p := range profiles {
		role, ok := roleByUser[p.UserID]
		if !ok {
			role = model.RoleManager
		}
		members = append(members, TeamMember{
			UserID:   p.UserID,
			FullName: p.FullName,
			Email:    p.Email,
			Role:     role,
		})
	}

	return c.JSON(http.StatusOK, members)
}

// UpdateUserRole changes a team member's role. A member without a role row
// is an implicit manager, so the role row is created on first promotion
// rather than 404ing.
func UpdateUserRole(c echo.Context) error {
	log := logger.FromContext(c)

	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user id"})
	}

	var req RoleRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	role := model.UserRole{UserID: uint(userID)}
	result := database.GetDB().
		Where(model.UserRole{UserID: uint(userID)}).
		Assign(model.UserRole{Role: req.Role}).
		FirstOrCreate(&role)
	if result.Error != nil {
		log.Error("Failed to update role",
			zap.Uint64("user_id", userID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update role"})
	}

	log.Info("Role updated", zap.Uint64("user_id", userID), zap.String("role", req.Role))
	return c.JSON(http.StatusOK, echo.Map{"message": "Role updated"})
}
