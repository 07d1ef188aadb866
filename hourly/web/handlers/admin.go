package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smarthourly.com/smarthourly/core"
	hourly "smarthourly.com/smarthourly/hourly/core"
	"smarthourly.com/smarthourly/hourly/model"
	"smarthourly.com/smarthourly/utils"
	web "smarthourly.com/smarthourly/web/common"
	"smarthourly.com/smarthourly/web/middlewares"
)

type AdminEndpoint struct {
	dm *core.DatabaseManager
}

func RegisterAdmin(r *gin.RouterGroup, dm *core.DatabaseManager) {
	ep := &AdminEndpoint{dm: dm}
	r.GET("/admin/users", ep.ListUsers)
	r.PUT("/admin/users/:id/role", ep.ChangeRole)
}

type userDTO struct {
	ID         string `json:"id"`
	Role       string `json:"role"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Phone      string `json:"phone"`
}

// ListUsers merges user_roles with profiles, defaulting missing pieces the
// way the admin screen expects.
func (ep *AdminEndpoint) ListUsers(c *gin.Context) {
	var roles []model.UserRole
	var profiles []model.Profile

	if err := ep.dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		if err := db.Find(&roles).Error; err != nil {
			return err
		}
		return db.Find(&profiles).Error
	}); err != nil {
		web.RespondError(c, err)
		return
	}

	byID := make(map[string]model.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	users := utils.Map(roles, func(r model.UserRole) userDTO {
		u := userDTO{ID: r.ID, Role: r.Role, Name: "-", Department: "-", Phone: "-"}
		if u.Role == "" {
			u.Role = model.RoleOperator
		}
		if p, ok := byID[r.ID]; ok {
			if p.Name != "" {
				u.Name = p.Name
			}
			if p.Department != "" {
				u.Department = p.Department
			}
			if p.Phone != "" {
				u.Phone = p.Phone
			}
		}
		return u
	})

	c.JSON(http.StatusOK, web.NewSuccessResponse(users))
}

type changeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=operator supervisor admin"`
}

// ChangeRole upserts a user's role. Demoting the last remaining admin is
// refused, and admins cannot demote themselves.
func (ep *AdminEndpoint) ChangeRole(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("invalid user id"))
		return
	}

	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	if id == c.GetString(middlewares.ContextUserID) && req.Role != model.RoleAdmin {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("you cannot demote yourself"))
		return
	}

	if err := ep.dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		if req.Role != model.RoleAdmin {
			role, err := hourly.RoleOf(db, id)
			if err != nil {
				return err
			}
			if role == model.RoleAdmin {
				var admins int64
				if err := db.Model(&model.UserRole{}).
					Where("role = ?", model.RoleAdmin).
					Count(&admins).Error; err != nil {
					return err
				}
				if admins <= 1 {
					return &hourly.ValidationError{Field: "role", Reason: "cannot demote the last admin"}
				}
			}
		}

		return db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role"}),
		}).Create(&model.UserRole{ID: id, Role: req.Role}).Error
	}); err != nil {
		web.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{}))
}

// RegisterRoster exposes the supervisor names used for the ATL dropdown.
func RegisterRoster(r *gin.RouterGroup, dm *core.DatabaseManager) {
	r.GET("/atl", func(c *gin.Context) {
		var names []string
		if err := dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
			var err error
			names, err = hourly.SupervisorRoster(db)
			return err
		}); err != nil {
			web.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, web.NewSuccessResponse(names))
	})
}
