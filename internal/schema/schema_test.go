package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpshade/pocket-composer/internal/errors"
	"github.com/dpshade/pocket-composer/internal/models"
)

func TestEveryCategoryHasFields(t *testing.T) {
	for _, cat := range Categories() {
		fields, err := For(cat)
		require.NoError(t, err, cat)
		assert.NotEmpty(t, fields, cat)

		seen := map[string]bool{}
		for _, f := range fields {
			assert.False(t, seen[f.Name], "duplicate field %s in %s", f.Name, cat)
			seen[f.Name] = true

			switch f.Kind {
			case models.KindChoice:
				assert.Contains(t, f.Options, f.DefaultString(), "%s/%s default not in options", cat, f.Name)
			case models.KindBoundedInteger:
				assert.True(t, f.InRange(f.DefaultInt()), "%s/%s default out of range", cat, f.Name)
			case models.KindBoolean:
				_, ok := f.Default.(bool)
				assert.True(t, ok, "%s/%s default must be bool", cat, f.Name)
			default:
				_, ok := f.Default.(string)
				assert.True(t, ok, "%s/%s default must be string", cat, f.Name)
			}
		}
	}
}

func TestUnknownCategory(t *testing.T) {
	_, err := For(models.Category("Poetry"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfiguration))

	_, err = Defaults(models.Category("Poetry"))
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfiguration))
}

func TestUnknownField(t *testing.T) {
	_, err := Field(models.CategoryArchitecture, "windows")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfiguration))

	f, err := Field(models.CategoryFacade, "windows")
	require.NoError(t, err)
	assert.Equal(t, models.KindBoundedInteger, f.Kind)
	assert.Equal(t, 1, f.Min)
	assert.Equal(t, 10, f.Max)
}

func TestForReturnsCopy(t *testing.T) {
	fields, err := For(models.CategoryArchitecture)
	require.NoError(t, err)
	fields[0].Name = "mutated"
	fields[0].Options[0] = "mutated"

	again, err := For(models.CategoryArchitecture)
	require.NoError(t, err)
	assert.Equal(t, "style", again[0].Name)
	assert.Equal(t, "modern", again[0].Options[0])
}

func TestDefaults(t *testing.T) {
	values, err := Defaults(models.CategoryArchitecture)
	require.NoError(t, err)
	assert.Equal(t, "Stucco", values["material"])
	assert.Equal(t, "white", values["color"])

	values, err = Defaults(models.CategorySourceCode)
	require.NoError(t, err)
	assert.Equal(t, true, values["comments"])
}
