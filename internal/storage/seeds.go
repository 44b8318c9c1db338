package storage

import (
	"go.uber.org/zap"

	"github.com/dpshade/pocket-composer/internal/models"
)

// StandardTemplates are the facade presets offered on first use
var StandardTemplates = []models.SavedTemplate{
	{
		Category: models.CategoryFacade,
		Name:     "Modern Minimalist",
		Values: models.FieldValues{
			"style":         "modern",
			"material":      "Stucco",
			"color":         "white",
			"door_material": "Metal",
			"door_color":    "black aluminium with glass",
			"windows":       4,
			"window_style":  "panoramic",
			"lighting":      "daylight",
			"features":      "Flat roof, no ornamentation",
		},
	},
	{
		Category: models.CategoryFacade,
		Name:     "Classic Elegant",
		Values: models.FieldValues{
			"style":         "classic",
			"material":      "Stucco",
			"color":         "cream",
			"door_material": "Wood",
			"door_color":    "carved brown",
			"windows":       4,
			"window_style":  "arched",
			"lighting":      "evening light",
			"features":      "Canopy, flower boxes",
		},
	},
	{
		Category: models.CategoryFacade,
		Name:     "Industrial Loft",
		Values: models.FieldValues{
			"style":         "industrial",
			"material":      "Brick",
			"color":         "red",
			"door_material": "Metal",
			"door_color":    "steel gray",
			"windows":       6,
			"window_style":  "rectangular",
			"lighting":      "dramatic",
			"features":      "Exposed pipes, concrete elements",
		},
	},
}

// SeedDefaults adds the standard templates that are not present yet and returns how many were added.
// Nothing is written when every standard template already exists.
func (s *TemplateStore) SeedDefaults() (int, error) {
	next := s.templates.Clone()
	added := 0
	for _, t := range StandardTemplates {
		if _, exists := next.Get(t.Category, t.Name); exists {
			continue
		}
		next.Put(t.Category, t.Name, t.Values.Clone())
		added++
	}
	if added == 0 {
		return 0, nil
	}

	if err := s.Save(next); err != nil {
		return 0, err
	}
	s.logger.Info("Seeded standard templates", zap.Int("added", added))
	return added, nil
}
