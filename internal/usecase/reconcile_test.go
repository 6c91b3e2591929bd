package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
	"github.com/wichananm65/merchant-backoffice/internal/pkg/apperr"
)

func ptr[T any](v T) *T { return &v }

func TestReconcile(t *testing.T) {
	desc := "Hand and power tools"

	tests := []struct {
		name    string
		patch   entity.CatalogPatch
		want    entity.ReconcilePlan
		wantErr error
	}{
		{
			name:  "scalars only",
			patch: entity.CatalogPatch{Name: ptr("  Tools  "), Description: &desc, DescriptionSet: true},
			want:  entity.ReconcilePlan{CatalogID: "cat-1", Name: ptr("Tools"), Description: &desc, DescriptionSet: true},
		},
		{
			name:  "nothing to change",
			patch: entity.CatalogPatch{},
			want:  entity.ReconcilePlan{CatalogID: "cat-1"},
		},
		{
			name: "delete wins over update",
			patch: entity.CatalogPatch{
				CategoryIDsToDelete: []string{"c-1", "c-1"},
				CategoriesToUpdate:  []entity.CategoryRename{{ID: "c-1", Name: "Saws"}, {ID: "c-2", Name: " Hammers "}},
				CategoriesToCreate:  []entity.CategoryName{{Name: " Drills"}},
			},
			want: entity.ReconcilePlan{
				CatalogID: "cat-1",
				Delete:    []string{"c-1"},
				Update:    []entity.CategoryRename{{ID: "c-2", Name: "Hammers"}},
				Create:    []string{"Drills"},
			},
		},
		{
			name:    "blank name",
			patch:   entity.CatalogPatch{Name: ptr("   ")},
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "empty create name",
			patch:   entity.CatalogPatch{CategoriesToCreate: []entity.CategoryName{{Name: " "}}},
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "rename without id",
			patch:   entity.CatalogPatch{CategoriesToUpdate: []entity.CategoryRename{{Name: "Saws"}}},
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "empty rename",
			patch:   entity.CatalogPatch{CategoriesToUpdate: []entity.CategoryRename{{ID: "c-2", Name: ""}}},
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "blank delete id",
			patch:   entity.CatalogPatch{CategoryIDsToDelete: []string{""}},
			wantErr: apperr.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Reconcile("cat-1", tt.patch)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, plan)
		})
	}
}
