package services

import "github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/models"

// requireAdmin admits admins only. The message is returned verbatim to the caller.
func requireAdmin(actor *models.User, resource, action, message string) error {
	if actor == nil {
		return ErrUnauthorized
	}

	switch actor.Role {
	case models.RoleAdmin:
		return nil
	default:
		return NewPermissionError(actor.ID, 0, resource, action, message)
	}
}

func requireActor(actor *models.User) error {
	if actor == nil {
		return ErrUnauthorized
	}
	return nil
}

// pageBounds normalizes page and per_page and returns limit and offset.
func pageBounds(page, perPage, defaultPerPage int) (int, int, int, int) {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage, perPage, (page - 1) * perPage
}

func newPageMeta(page, perPage int, total int64) PageMeta {
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}
	return PageMeta{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
	}
}
