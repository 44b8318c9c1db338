package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpshade/pocket-composer/internal/errors"
	"github.com/dpshade/pocket-composer/internal/models"
)

func newStore(t *testing.T, content string) (*TemplateStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompt_templates.json")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return NewTemplateStore(path, models.CategoryFacade, nil), path
}

func TestLoadMissingFile(t *testing.T) {
	store, _ := newStore(t, "")
	result := store.Load()
	assert.Equal(t, LoadMissing, result.Status)
	assert.Empty(t, result.Templates)
	assert.NoError(t, result.Cause)
}

func TestLoadCorruptFileRecovers(t *testing.T) {
	store, _ := newStore(t, "{not json")
	result := store.Load()
	assert.Equal(t, LoadRecovered, result.Status)
	assert.Empty(t, result.Templates)
	assert.True(t, errors.IsCode(result.Cause, errors.ErrCodeFileCorrupted))

	// a scalar where a template should be is corrupt too
	store, _ = newStore(t, `{"Modern": 3}`)
	assert.Equal(t, LoadRecovered, store.Load().Status)
}

func TestRoundTripIsByteStable(t *testing.T) {
	tests := []struct {
		name    string
		content string
		format  FileFormat
	}{
		{
			name: "legacy",
			content: `{
  "Modern Minimalist": {
    "style": "modern",
    "windows": 4
  }
}
`,
			format: FormatLegacy,
		},
		{
			name: "multi",
			content: `{
  "Architecture": {
    "Beach <house>": {
      "details": "",
      "material": "Wood"
    }
  },
  "Marketing": {
    "Launch": {
      "product": "X"
    }
  }
}
`,
			format: FormatMulti,
		},
		{
			name:    "foreign formatting",
			content: `{"Architektur":{"Villa":{"style":"modern","ratio":1.50}}}`,
			format:  FormatMulti,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, path := newStore(t, tt.content)
			result := store.Load()
			require.Equal(t, LoadOK, result.Status)
			assert.Equal(t, tt.format, result.Format)

			require.NoError(t, store.Save(result.Templates))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(data))
		})
	}
}

func TestLegacyFileMapsToLegacyCategory(t *testing.T) {
	store, _ := newStore(t, `{"Loft": {"style": "industrial"}}`)
	result := store.Load()
	require.Equal(t, FormatLegacy, result.Format)

	values, ok := result.Templates.Get(models.CategoryFacade, "Loft")
	require.True(t, ok)
	assert.Equal(t, "industrial", values["style"])
}

func TestLegacyStaysLegacyUntilSecondCategory(t *testing.T) {
	store, path := newStore(t, `{"Loft": {"style": "industrial"}}`)
	store.Load()

	require.NoError(t, store.Upsert(models.CategoryFacade, "Villa", models.FieldValues{"style": "classic"}))
	assert.Equal(t, FormatLegacy, store.Format())

	var legacy map[string]map[string]interface{}
	data, _ := os.ReadFile(path)
	require.NoError(t, json.Unmarshal(data, &legacy))
	assert.Contains(t, legacy, "Villa")

	require.NoError(t, store.Upsert(models.CategoryMarketing, "Launch", models.FieldValues{"product": "X"}))
	assert.Equal(t, FormatMulti, store.Format())

	reloaded := NewTemplateStore(path, models.CategoryFacade, nil).Load()
	assert.Equal(t, FormatMulti, reloaded.Format)
	assert.ElementsMatch(t, []string{"Loft", "Villa"}, reloaded.Templates.Names(models.CategoryFacade))
	assert.Equal(t, []string{"Launch"}, reloaded.Templates.Names(models.CategoryMarketing))
}

func TestUpsertThenLoad(t *testing.T) {
	store, path := newStore(t, "")
	store.Load()

	values := models.FieldValues{"product": "X", "cta": "Buy <now> & save"}
	require.NoError(t, store.Upsert(models.CategoryMarketing, "Launch", values))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `Buy <now> & save`)

	reloaded := NewTemplateStore(path, models.CategoryFacade, nil).Load()
	got, ok := reloaded.Templates.Get(models.CategoryMarketing, "Launch")
	require.True(t, ok)
	assert.Equal(t, values, got)

	require.NoError(t, store.Upsert(models.CategoryMarketing, "Launch", models.FieldValues{"product": "Y"}))
	reloaded = NewTemplateStore(path, models.CategoryFacade, nil).Load()
	assert.Equal(t, []string{"Launch"}, reloaded.Templates.Names(models.CategoryMarketing))
	got, _ = reloaded.Templates.Get(models.CategoryMarketing, "Launch")
	assert.Equal(t, "Y", got["product"])

}

func TestUpsertRejectsEmptyName(t *testing.T) {
	store, _ := newStore(t, "")
	store.Load()
	err := store.Upsert(models.CategoryMarketing, "  ", models.FieldValues{})
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidInput))
}

func TestDeleteAbsentLeavesFileAlone(t *testing.T) {
	content := `{"Marketing": {"Launch": {"product": "X"}}}`
	store, path := newStore(t, content)
	store.Load()

	before, err := os.Stat(path)
	require.NoError(t, err)

	removed, err := store.Delete(models.CategoryMarketing, "Nope")
	require.NoError(t, err)
	assert.False(t, removed)

	data, _ := os.ReadFile(path)
	assert.Equal(t, content, string(data))
	after, _ := os.Stat(path)
	assert.Equal(t, before.ModTime(), after.ModTime())

	removed, err = store.Delete(models.CategoryMarketing, "Launch")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, store.Names(models.CategoryMarketing))
}

func TestFailedWriteKeepsState(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("file, not a directory"), 0644))

	store := NewTemplateStore(filepath.Join(blocker, "templates.json"), models.CategoryFacade, nil)
	store.Load()

	err := store.Upsert(models.CategoryMarketing, "Launch", models.FieldValues{"product": "X"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeIOFailure))
	assert.Empty(t, store.All())
}

func TestSeedDefaults(t *testing.T) {
	store, _ := newStore(t, "")
	store.Load()

	added, err := store.SeedDefaults()
	require.NoError(t, err)
	assert.Equal(t, 3, added)
	assert.Equal(t, []string{"Classic Elegant", "Industrial Loft", "Modern Minimalist"}, store.Names(models.CategoryFacade))

	added, err = store.SeedDefaults()
	require.NoError(t, err)
	assert.Zero(t, added)
}

func TestGetReturnsCopy(t *testing.T) {
	store, _ := newStore(t, `{"Marketing": {"Launch": {"product": "X"}}}`)
	store.Load()

	values, ok := store.Get(models.CategoryMarketing, "Launch")
	require.True(t, ok)
	values["product"] = "mutated"

	again, _ := store.Get(models.CategoryMarketing, "Launch")
	assert.Equal(t, "X", again["product"])
}

func TestUpgradeLegacyFile(t *testing.T) {
	store, path := newStore(t, `{"Loft": {"style": "industrial", "windows": 6}}`)
	require.Equal(t, FormatLegacy, store.Load().Format)

	upgraded, err := store.Upgrade()
	require.NoError(t, err)
	assert.True(t, upgraded)
	assert.Equal(t, FormatMulti, store.Format())

	reloaded := NewTemplateStore(path, models.CategoryFacade, nil)
	result := reloaded.Load()
	assert.Equal(t, FormatMulti, result.Format)
	values, ok := result.Templates.Get(models.CategoryFacade, "Loft")
	require.True(t, ok)
	assert.Equal(t, "industrial", values["style"])

	upgraded, err = reloaded.Upgrade()
	require.NoError(t, err)
	assert.False(t, upgraded)
}

func TestLoadNullTemplateIsCorrupt(t *testing.T) {
	content := `{"Architecture": {"Good": {"color": "red"}, "Broken": null}}`
	store, path := newStore(t, content)

	result := store.Load()
	assert.Equal(t, LoadRecovered, result.Status)
	assert.True(t, errors.IsCode(result.Cause, errors.ErrCodeFileCorrupted))
	assert.Empty(t, result.Templates)

	// the file is left alone until the next save
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestLoadLegacyWithNullField(t *testing.T) {
	store, _ := newStore(t, `{"Loft": {"style": "industrial", "features": null}}`)

	result := store.Load()
	assert.Equal(t, LoadOK, result.Status)
	assert.Equal(t, FormatLegacy, result.Format)
	values, ok := result.Templates.Get(models.CategoryFacade, "Loft")
	require.True(t, ok)
	assert.Equal(t, "industrial", values["style"])
}
