// policy — явная матрица прав по ролям: какие tipo роль видит и создаёт,
// может ли комментировать/закрывать и к каким ревизиям имеет доступ.
package policy

import (
	"slices"

	"github.com/pribylovaa/review-comments/internal/models"
)

// Rules — права одной роли.
type Rules struct {
	Visible    []models.Visibility
	Creatable  []models.Visibility
	CanComment bool
	CanResolve bool
	// Staff видят все ревизии и все privado-комментарии.
	Staff bool
}

var (
	authorTypes = []models.Visibility{models.VisibilityPublic, models.VisibilityPrivate}
	staffTypes  = []models.Visibility{models.VisibilityPublic, models.VisibilityPrivate, models.VisibilityInternal}
)

var table = map[models.Role]Rules{
	models.RoleAuthor: {
		Visible:    authorTypes,
		Creatable:  authorTypes,
		CanComment: true,
	},
	models.RoleReviewer: {
		Visible:    authorTypes,
		Creatable:  authorTypes,
		CanComment: true,
		CanResolve: true,
	},
	models.RoleEditor: {
		Visible:    staffTypes,
		Creatable:  staffTypes,
		CanComment: true,
		CanResolve: true,
		Staff:      true,
	},
	models.RoleAdmin: {
		Visible:    staffTypes,
		Creatable:  staffTypes,
		CanComment: true,
		CanResolve: true,
		Staff:      true,
	},
}

// For возвращает права роли; false для неизвестной роли.
func For(role models.Role) (Rules, bool) {
	r, ok := table[role]
	return r, ok
}

// CanSee — может ли роль в принципе видеть комментарии этого tipo.
func (r Rules) CanSee(t models.Visibility) bool {
	return slices.Contains(r.Visible, t)
}

// CanCreate — может ли роль создавать комментарии этого tipo.
func (r Rules) CanCreate(t models.Visibility) bool {
	return slices.Contains(r.Creatable, t)
}

// Permissions — флаги для ответа list_comments.
func (r Rules) Permissions() models.Permissions {
	return models.Permissions{CanComment: r.CanComment, CanResolve: r.CanResolve}
}

// AllowedTypes возвращает копию видимого набора (tipos_permitidos).
func (r Rules) AllowedTypes() []models.Visibility {
	return slices.Clone(r.Visible)
}

// CanAccessRevision: staff — любая ревизия; автор — ревизии своей статьи;
// рецензент — назначенные ему ревизии.
func CanAccessRevision(caller models.Caller, rev models.Revision) bool {
	r, ok := For(caller.Role)
	if !ok {
		return false
	}

	if r.Staff {
		return true
	}

	switch caller.Role {
	case models.RoleAuthor:
		return rev.AuthorID == caller.ID
	case models.RoleReviewer:
		return rev.ReviewerID == caller.ID
	default:
		return false
	}
}

// Visible — виден ли конкретный комментарий вызывающему.
// Скрытые комментарии не видны никому; privado для не-staff виден только его автору.
func Visible(caller models.Caller, c models.Comment) bool {
	if c.Hidden {
		return false
	}

	r, ok := For(caller.Role)
	if !ok || !r.CanSee(c.Type) {
		return false
	}

	if c.Type == models.VisibilityPrivate && !r.Staff {
		return c.AuthorID == caller.ID
	}

	return true
}
