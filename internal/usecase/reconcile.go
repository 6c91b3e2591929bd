package usecase

import (
	"strings"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
	"github.com/wichananm65/merchant-backoffice/internal/pkg/apperr"
)

// Reconcile turns a submitted catalog diff into a plan for one transaction.
//
// An id present in both the delete set and the update set is deleted; its
// rename is dropped. Names are trimmed and must not be empty. No uniqueness
// is enforced between category names.
func Reconcile(catalogID string, patch entity.CatalogPatch) (entity.ReconcilePlan, error) {
	plan := entity.ReconcilePlan{
		CatalogID:      catalogID,
		Description:    patch.Description,
		DescriptionSet: patch.DescriptionSet,
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return entity.ReconcilePlan{}, apperr.Validation("name must not be empty")
		}
		plan.Name = &name
	}

	deleted := make(map[string]struct{}, len(patch.CategoryIDsToDelete))
	for _, id := range patch.CategoryIDsToDelete {
		id = strings.TrimSpace(id)
		if id == "" {
			return entity.ReconcilePlan{}, apperr.Validation("categoryIdsToDelete must not contain empty ids")
		}
		if _, dup := deleted[id]; dup {
			continue
		}
		deleted[id] = struct{}{}
		plan.Delete = append(plan.Delete, id)
	}

	for _, c := range patch.CategoriesToUpdate {
		id := strings.TrimSpace(c.ID)
		name := strings.TrimSpace(c.Name)
		if id == "" {
			return entity.ReconcilePlan{}, apperr.Validation("categoriesToUpdate entries require an id")
		}
		if _, gone := deleted[id]; gone {
			continue
		}
		if name == "" {
			return entity.ReconcilePlan{}, apperr.Validation("category name is required")
		}
		plan.Update = append(plan.Update, entity.CategoryRename{ID: id, Name: name})
	}

	for _, c := range patch.CategoriesToCreate {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return entity.ReconcilePlan{}, apperr.Validation("category name is required")
		}
		plan.Create = append(plan.Create, name)
	}

	return plan, nil
}
