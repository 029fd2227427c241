package services

import (
	"context"
	"fmt"

	"github.com/torneos/esports-api/models"
	"github.com/torneos/esports-api/repositories"
)

// Action names a mutating operation gated by the permission table.
type Action string

const (
	ActionGameCreate     Action = "game:create"
	ActionGameUpdate     Action = "game:update"
	ActionGameDelete     Action = "game:delete"
	ActionGameSetActive  Action = "game:set_active"
	ActionGamePartialFix Action = "game:partial_update"

	ActionAdminList          Action = "admin:list"
	ActionAdminCreate        Action = "admin:create"
	ActionAdminDelete        Action = "admin:delete"
	ActionAdminResetPassword Action = "admin:reset_password"
	ActionChangeOwnPassword  Action = "admin:change_own_password"

	ActionRegistrationReview Action = "registration:review"
	ActionTournamentManage   Action = "tournament:manage"
	ActionMatchManage        Action = "match:manage"
	ActionTransmissionManage Action = "transmission:manage"
	ActionMediaManage        Action = "media:manage"
	ActionContactManage      Action = "contact:manage"
)

// actionRoles is the single source of truth for role-based authorization.
// Actions absent from the table are denied to everyone but superadmin.
var actionRoles = map[Action][]models.UserRole{
	ActionGameCreate:     {models.RoleSuperadmin},
	ActionGameUpdate:     {models.RoleSuperadmin},
	ActionGameDelete:     {models.RoleSuperadmin},
	ActionGameSetActive:  {models.RoleSuperadmin},
	ActionGamePartialFix: {models.RoleAdmin, models.RoleSuperadmin},

	ActionAdminList:          {models.RoleSuperadmin},
	ActionAdminCreate:        {models.RoleSuperadmin},
	ActionAdminDelete:        {models.RoleSuperadmin},
	ActionAdminResetPassword: {models.RoleSuperadmin},
	ActionChangeOwnPassword:  {models.RoleAdmin, models.RoleSuperadmin},

	ActionRegistrationReview: {models.RoleSuperadmin},
	ActionTournamentManage:   {models.RoleSuperadmin},
	ActionMatchManage:        {models.RoleSuperadmin},
	ActionTransmissionManage: {models.RoleSuperadmin},
	ActionMediaManage:        {models.RoleSuperadmin},
	ActionContactManage:      {models.RoleSuperadmin},
}

// Can reports whether the role may perform the action.
func Can(role models.UserRole, action Action) bool {
	if role == models.RoleSuperadmin {
		return true
	}
	for _, allowed := range actionRoles[action] {
		if allowed == role {
			return true
		}
	}
	return false
}

// adminEditableGameFields is the set of game fields an admin may touch
// through a partial update on a linked game. Everything else is read-only
// below superadmin.
var adminEditableGameFields = map[string]bool{
	"description": true,
	"rules":       true,
}

// AdminMayEditGameField reports whether an admin-role partial update may
// touch the named field.
func AdminMayEditGameField(field string) bool {
	return adminEditableGameFields[field]
}

// Authorizer resolves role-table lookups plus the per-game ownership link.
type Authorizer struct {
	adminGameRepo repositories.AdminGameRepository
}

func NewAuthorizer(adminGameRepo repositories.AdminGameRepository) *Authorizer {
	return &Authorizer{adminGameRepo: adminGameRepo}
}

// Require returns ErrForbiddenOperation unless the role may perform action.
func (a *Authorizer) Require(role models.UserRole, action Action) error {
	if !Can(role, action) {
		return ErrForbiddenOperation
	}
	return nil
}

// RequireGameAccess additionally checks the ownership link for admin-role
// actors: an admin may only manage games linked to their account.
func (a *Authorizer) RequireGameAccess(ctx context.Context, actor *models.User, gameID int) error {
	if actor.Role == models.RoleSuperadmin {
		return nil
	}
	if actor.Role != models.RoleAdmin {
		return ErrForbiddenOperation
	}
	linked, err := a.adminGameRepo.Exists(ctx, actor.ID, gameID)
	if err != nil {
		return fmt.Errorf("failed to check game ownership link: %w", err)
	}
	if !linked {
		return ErrForbiddenOperation
	}
	return nil
}
