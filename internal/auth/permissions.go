package auth

import "shelter_backend/internal/models"

// Action names a guarded operation. Handlers call Can at the top of each
// mutating endpoint instead of relying on wrapping middleware.
type Action string

const (
	ActionCreateAnimal    Action = "create_animal"
	ActionEditAnimal      Action = "edit_animal"
	ActionDeleteAnimal    Action = "delete_animal"
	ActionProcessAdoption Action = "process_adoption"
)

var permissions = map[Action][]uint{
	ActionCreateAnimal:    {models.RoleAdmin},
	ActionEditAnimal:      {models.RoleAdmin, models.RoleModerator},
	ActionDeleteAnimal:    {models.RoleAdmin},
	ActionProcessAdoption: {models.RoleAdmin, models.RoleModerator},
}

// Can reports whether the role is allowed to perform the action.
func Can(roleID uint, action Action) bool {
	for _, allowed := range permissions[action] {
		if roleID == allowed {
			return true
		}
	}
	return false
}
