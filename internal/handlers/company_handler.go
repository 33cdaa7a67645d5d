package handlers

import (
	"strconv"

	"github.com/Pincessis17/MerchFlow/internal/services"
	"github.com/Pincessis17/MerchFlow/pkg/response"

	"github.com/gin-gonic/gin"
)

// CompanyHandler workspace settings, users and feature grants
type CompanyHandler struct {
	companyService *services.CompanyService
	userService    *services.UserService
	featureService *services.FeatureAccessService
}

func NewCompanyHandler(companyService *services.CompanyService, userService *services.UserService, featureService *services.FeatureAccessService) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
		userService:    userService,
		featureService: featureService,
	}
}

// CreateUserRequest add a teammate
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

// UpdateRoleRequest change a teammate's role
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// FeatureGrantRequest grant or revoke a feature by email
type FeatureGrantRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Feature string `json:"feature" binding:"required"`
}

// GetSettings returns the workspace settings
func (h *CompanyHandler) GetSettings(c *gin.Context) {
	company, err := h.companyService.GetByID(c.GetUint("company_id"))
	if err != nil {
		response.NotFound(c, "workspace not found")
		return
	}
	response.Success(c, company)
}

// UpdateSettings edits branding and invoice defaults
func (h *CompanyHandler) UpdateSettings(c *gin.Context) {
	var input services.UpdateSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid settings payload")
		return
	}

	company, err := h.companyService.UpdateSettings(c.GetUint("company_id"), input)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "settings updated", company)
}

// ListUsers every teammate in the workspace
func (h *CompanyHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListByCompany(c.GetUint("company_id"))
	if err != nil {
		response.ServerError(c, "failed to list users")
		return
	}
	response.Success(c, users)
}

// CreateUser adds a teammate
func (h *CompanyHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name, email and a password of at least 6 characters are required")
		return
	}

	user, err := h.userService.Create(c.GetUint("company_id"), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "user created", user)
}

// UpdateUserRole changes a teammate's role
func (h *CompanyHandler) UpdateUserRole(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "role is required")
		return
	}

	user, err := h.userService.UpdateRole(c.GetUint("company_id"), uint(id), req.Role)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "role updated", user)
}

// DeleteUser removes a teammate
func (h *CompanyHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	if uint(id) == c.GetUint("user_id") {
		response.BadRequest(c, "you cannot remove yourself")
		return
	}

	if err := h.userService.Delete(c.GetUint("company_id"), uint(id)); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "user removed", nil)
}

// ListFeatureGrants every feature grant in the workspace
func (h *CompanyHandler) ListFeatureGrants(c *gin.Context) {
	grants, err := h.featureService.ListByCompany(c.GetUint("company_id"))
	if err != nil {
		response.ServerError(c, "failed to list feature grants")
		return
	}
	response.Success(c, grants)
}

// GrantFeature enables a feature for an email
func (h *CompanyHandler) GrantFeature(c *gin.Context) {
	var req FeatureGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email and feature are required")
		return
	}

	grant, err := h.featureService.Grant(c.GetUint("company_id"), req.Email, req.Feature, c.GetString("email"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "feature granted", grant)
}

// RevokeFeature disables a feature grant
func (h *CompanyHandler) RevokeFeature(c *gin.Context) {
	var req FeatureGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email and feature are required")
		return
	}

	if err := h.featureService.Revoke(c.GetUint("company_id"), req.Email, req.Feature); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "feature revoked", nil)
}
