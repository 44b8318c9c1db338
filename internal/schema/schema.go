// Package schema declares the input fields of every prompt category.
//
// Each category owns an ordered, hand-written list of FieldSpecs. There is no
// inheritance between categories and no dynamic discovery: the table below is
// the whole registry. Lookups return copies so callers can never mutate it.
package schema

import (
	"github.com/dpshade/pocket-composer/internal/errors"
	"github.com/dpshade/pocket-composer/internal/models"
)

var registry = map[models.Category][]models.FieldSpec{
	models.CategoryArchitecture: {
		choice("style", "Architectural style", "modern",
			"modern", "classic", "minimalist", "rustic", "industrial", "victorian"),
		choice("material", "Facade material", "Stucco",
			"Stucco", "Wood", "Brick", "Stone", "Metal", "Glass"),
		line("color", "Main color", "white"),
		choice("lighting", "Lighting", "daylight",
			"daylight", "evening light", "morning light", "dramatic", "studio", "night"),
		optional(text("details", "Details", "Canopy, house number, mailbox, shutters")),
		choice("quality", "Render quality", "4K photorealistic",
			"4K photorealistic", "8K ultra-realistic", "sketch style", "watercolor", "low-poly"),
	},
	models.CategoryFacade: {
		choice("style", "Architectural style", "modern",
			"modern", "classic", "minimalist", "rustic", "industrial"),
		choice("material", "Facade material", "Stucco",
			"Stucco", "Wood", "Brick", "Stone", "Metal"),
		line("color", "Color", "white"),
		choice("door_material", "Door material", "Wood",
			"Wood", "Metal", "Glass", "Combination"),
		line("door_color", "Door color", "brown"),
		{Name: "windows", Label: "Window count", Kind: models.KindBoundedInteger, Default: 2, Min: 1, Max: 10},
		choice("window_style", "Window style", "rectangular",
			"rectangular", "round", "arched", "panoramic"),
		choice("lighting", "Lighting", "daylight",
			"daylight", "evening light", "morning light", "dramatic", "studio"),
		optional(text("features", "Special features", "Canopy, house number, mailbox")),
	},
	models.CategoryImageDescription: {
		line("subject", "Main subject", "House facade"),
		choice("style", "Photo style", "Architecture",
			"Portrait", "Landscape", "Architecture", "Street", "Macro", "Product"),
		choice("composition", "Composition", "Rule of thirds",
			"Rule of thirds", "Symmetrical", "Centered", "Diagonal", "Leading lines"),
		choice("lighting", "Light mood", "Golden hour",
			"Soft light", "Hard light", "Golden hour", "Blue hour", "Dramatic"),
		choice("camera", "Camera setting", "Wide-angle",
			"Wide-angle", "Telephoto", "Macro", "Fisheye", "50mm prime"),
		optional(text("mood", "Mood/atmosphere", "Peaceful, inviting, modern")),
		optional(text("details", "Image details", "Visible textures, natural shadows, realistic colors")),
	},
	models.CategorySourceCode: {
		choice("language", "Programming language", "Python",
			"Python", "JavaScript", "C#", "Java", "C++", "TypeScript", "Go", "Rust"),
		text("task", "Task", "A function that sorts lists"),
		text("requirements", "Requirements", "Efficient, readable, with error handling"),
		line("framework", "Framework", "Standard Library"),
		choice("complexity", "Complexity", "Intermediate",
			"Simple", "Intermediate", "Complex", "Production-ready"),
		choice("style", "Code style", "Functional",
			"Functional", "OOP", "Procedural", "Declarative"),
		flag("comments", "Comments", true),
		flag("tests", "Include tests", true),
	},
	models.CategoryAIArt: {
		text("subject", "Subject", "Futuristic house in a natural landscape"),
		choice("style", "Art style", "Photorealistic",
			"Photorealistic", "Oil painting", "Watercolor", "Pixel art", "Cyberpunk", "Steampunk"),
		optional(line("artist", "Artist reference", "")),
		text("colors", "Color palette", "Earth tones with accent blues"),
		choice("composition", "Composition", "Epic wide angle",
			"Epic wide angle", "Close-up", "Bird's-eye view", "Worm's-eye view"),
		choice("details", "Detail level", "Highly detailed",
			"Highly detailed", "Moderately detailed", "Stylized", "Minimalist"),
		optional(text("parameters", "Technical parameters", "--ar 16:9 --v 6.0 --style raw")),
	},
	models.CategoryMarketing: {
		line("product", "Product/service", "Architecture software"),
		line("audience", "Target audience", "Architects and home builders"),
		choice("goal", "Goal", "Sales",
			"Sales", "Lead generation", "Brand awareness", "Education"),
		choice("tone", "Tone", "Professional",
			"Professional", "Friendly", "Persuasive", "Urgent", "Inspiring"),
		choice("platform", "Platform", "Website",
			"Website", "Social media", "Email", "Advertising", "Blog"),
		optional(text("keywords", "Keywords", "modern, efficient, user-friendly, innovative")),
		optional(line("cta", "Call to action", "Try it free today!")),
	},
	models.CategoryCustom: {
		{
			Name:        "custom_prompt",
			Label:       "Custom prompt",
			Kind:        models.KindMultiLineText,
			Default:     "Enter your prompt here...",
			Required:    true,
			Placeholder: "Enter your prompt here...",
		},
	},
}

func line(name, label, def string) models.FieldSpec {
	return models.FieldSpec{Name: name, Label: label, Kind: models.KindTextLine, Default: def, Required: true}
}

func text(name, label, def string) models.FieldSpec {
	return models.FieldSpec{Name: name, Label: label, Kind: models.KindMultiLineText, Default: def, Required: true}
}

func choice(name, label, def string, options ...string) models.FieldSpec {
	return models.FieldSpec{Name: name, Label: label, Kind: models.KindChoice, Default: def, Options: options, Required: true}
}

func flag(name, label string, def bool) models.FieldSpec {
	return models.FieldSpec{Name: name, Label: label, Kind: models.KindBoolean, Default: def}
}

// optional marks a free-text field whose clause is dropped when left empty
func optional(f models.FieldSpec) models.FieldSpec {
	f.Required = false
	return f
}

// Categories returns every category in declaration order
func Categories() []models.Category {
	out := make([]models.Category, len(models.AllCategories))
	copy(out, models.AllCategories)
	return out
}

// For returns a copy of the ordered field list of category
func For(category models.Category) ([]models.FieldSpec, error) {
	fields, ok := registry[category]
	if !ok {
		return nil, errors.ConfigurationError("unknown category %q", category)
	}
	out := make([]models.FieldSpec, len(fields))
	for i, f := range fields {
		if f.Options != nil {
			f.Options = append([]string(nil), f.Options...)
		}
		out[i] = f
	}
	return out, nil
}

// Field returns the spec of one field
func Field(category models.Category, name string) (models.FieldSpec, error) {
	fields, err := For(category)
	if err != nil {
		return models.FieldSpec{}, err
	}
	for _, f := range fields {
		if f.Name == name {
			return f, nil
		}
	}
	return models.FieldSpec{}, errors.ConfigurationError("unknown field %q for category %q", name, category).
		WithContext("category", string(category))
}

// Defaults returns a fresh value set holding every field's default
func Defaults(category models.Category) (models.FieldValues, error) {
	fields, err := For(category)
	if err != nil {
		return nil, err
	}
	values := make(models.FieldValues, len(fields))
	for _, f := range fields {
		values[f.Name] = f.Default
	}
	return values, nil
}

// FieldNames returns the field names of category in declaration order
func FieldNames(category models.Category) ([]string, error) {
	fields, err := For(category)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names, nil
}
