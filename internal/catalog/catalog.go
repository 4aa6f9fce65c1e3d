// Package catalog ships the reference scholarship list bundled with the
// binaries. The gateway seeds its database from it and the offline matcher
// ranks against it.
package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"slices"
	"sync"

	"github.com/dmitrijs2005/scholarmatch/internal/models"
)

//go:embed scholarships.json
var bundledJSON []byte

var bundled = sync.OnceValue(func() []models.Scholarship {
	var list []models.Scholarship
	if err := json.Unmarshal(bundledJSON, &list); err != nil {
		panic("catalog: bundled scholarships are malformed: " + err.Error())
	}
	return list
})

// Bundled returns a copy of the bundled catalog.
func Bundled() []models.Scholarship {
	return slices.Clone(bundled())
}

// BundledJSON returns the raw bundled catalog.
func BundledJSON() []byte {
	return slices.Clone(bundledJSON)
}

// Source provides the reference catalog.
type Source interface {
	List(ctx context.Context) ([]models.Scholarship, error)
}

// Static serves a fixed list.
type Static []models.Scholarship

func (s Static) List(context.Context) ([]models.Scholarship, error) {
	return slices.Clone([]models.Scholarship(s)), nil
}
