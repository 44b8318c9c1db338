package renderer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dpshade/pocket-composer/internal/errors"
	"github.com/dpshade/pocket-composer/internal/models"
	"github.com/dpshade/pocket-composer/internal/schema"
)

func TestComposeArchitecture(t *testing.T) {
	values := models.FieldValues{
		"style":    "modern",
		"material": "Stucco",
		"color":    "white",
		"lighting": "daylight",
		"details":  "",
		"quality":  "4K photorealistic",
	}

	got, err := Compose(models.CategoryArchitecture, values)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	want := strings.Join([]string{
		"4K photorealistic architectural visualization.",
		"Style: modern architecture.",
		"Materials: Stucco in white.",
		"Lighting: daylight with natural light effects.",
		"Render: Photorealistic, clean lines, focus on material quality and textures.",
		"Resolution: 4K, professional presentation.",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Compose mismatch (-want +got):\n%s", diff)
	}
	if strings.Contains(got, "Details:") {
		t.Error("Empty details must suppress the Details line")
	}
}

func TestComposeArchitectureWithDetails(t *testing.T) {
	got, err := Compose(models.CategoryArchitecture, models.FieldValues{"details": "  Canopy  "})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if !strings.Contains(got, "\nDetails: Canopy.\nRender:") {
		t.Errorf("Expected trimmed details clause, got:\n%s", got)
	}
}

func TestComposeDefaultsNeverFail(t *testing.T) {
	for _, cat := range schema.Categories() {
		defaults, err := schema.Defaults(cat)
		if err != nil {
			t.Fatalf("Defaults(%s): %v", cat, err)
		}

		first, err := Compose(cat, defaults)
		if err != nil {
			t.Fatalf("Compose(%s) with defaults failed: %v", cat, err)
		}
		if strings.TrimSpace(first) == "" {
			t.Errorf("Compose(%s) produced empty prompt", cat)
		}

		empty, err := Compose(cat, nil)
		if err != nil {
			t.Fatalf("Compose(%s) with nil values failed: %v", cat, err)
		}
		if diff := cmp.Diff(first, empty); diff != "" {
			t.Errorf("Missing fields should behave like defaults for %s:\n%s", cat, diff)
		}
	}
}

func TestComposeIsDeterministic(t *testing.T) {
	values := models.FieldValues{"product": "X", "keywords": "fast, cheap"}
	a, _ := Compose(models.CategoryMarketing, values)
	b, _ := Compose(models.CategoryMarketing, values.Clone())
	if a != b {
		t.Errorf("Compose is not deterministic:\n%s\n---\n%s", a, b)
	}
}

func TestComposeCustomIsIdentity(t *testing.T) {
	prompt := "  keep\n\nme  exactly "
	got, err := Compose(models.CategoryCustom, models.FieldValues{"custom_prompt": prompt})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if got != prompt {
		t.Errorf("Expected identity, got %q", got)
	}
}

func TestComposeSourceCodeFlags(t *testing.T) {
	got, _ := Compose(models.CategorySourceCode, models.FieldValues{"comments": true, "tests": "yes"})
	if !strings.Contains(got, "Programming style: functional including detailed comments with unit tests.") {
		t.Errorf("Expected both flag clauses, got:\n%s", got)
	}

	got, _ = Compose(models.CategorySourceCode, models.FieldValues{"comments": false, "tests": false})
	if !strings.Contains(got, "Programming style: functional  .") {
		t.Errorf("Expected empty flag fragments, got:\n%s", got)
	}
	if !strings.HasPrefix(got, "Write intermediate Python code.") {
		t.Errorf("Unexpected first line:\n%s", got)
	}
}

func TestComposeFacadeWindows(t *testing.T) {
	got, _ := Compose(models.CategoryFacade, models.FieldValues{"windows": 1, "style": "industrial"})
	if !strings.Contains(got, "Windows: 1 rectangular window.") {
		t.Errorf("Expected singular window, got:\n%s", got)
	}
	if !strings.HasPrefix(got, "Photorealistic 3D visualization of an industrial house facade.") {
		t.Errorf("Expected article before style, got:\n%s", got)
	}

	got, _ = Compose(models.CategoryFacade, models.FieldValues{"windows": "4", "features": ""})
	if !strings.Contains(got, "Windows: 4 rectangular windows.") {
		t.Errorf("Expected plural windows, got:\n%s", got)
	}
	if strings.Contains(got, "Additional elements") {
		t.Errorf("Empty features must drop the clause:\n%s", got)
	}
}

func TestComposeAIArtArtist(t *testing.T) {
	got, _ := Compose(models.CategoryAIArt, models.FieldValues{"subject": "A tower", "artist": "Monet", "parameters": ""})
	want := strings.Join([]string{
		"A tower, photorealistic in the style of Monet.",
		"Color palette: Earth tones with accent blues.",
		"Composition: Epic wide angle.",
		"Detail level: Highly detailed.",
		"Style: photorealistic, atmospheric, expressive.",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Compose mismatch (-want +got):\n%s", diff)
	}
}

func TestComposeDetailedReportsWarnings(t *testing.T) {
	_, result, err := ComposeDetailed(models.CategoryFacade, models.FieldValues{"windows": 99})
	if err != nil {
		t.Fatalf("ComposeDetailed failed: %v", err)
	}
	if !result.HasWarnings() {
		t.Error("Expected an out-of-range warning")
	}
}

func TestComposeUnknownCategory(t *testing.T) {
	_, err := Compose(models.Category("Poetry"), nil)
	if !errors.IsCode(err, errors.ErrCodeConfiguration) {
		t.Errorf("Expected CONFIGURATION_ERROR, got %v", err)
	}
}

func TestComposeMarketingClausesEndWithPeriod(t *testing.T) {
	got, _ := Compose(models.CategoryMarketing, models.FieldValues{"keywords": "fast", "cta": "Book a demo"})
	for _, line := range []string{"Keywords: fast.", "Call to action: Book a demo."} {
		if !strings.Contains(got, line+"\n") {
			t.Errorf("Expected line %q in:\n%s", line, got)
		}
	}

	got, _ = Compose(models.CategoryMarketing, models.FieldValues{"cta": " "})
	if strings.Contains(got, "Call to action") {
		t.Errorf("Empty cta must drop the clause:\n%s", got)
	}
}
