package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanehq/vane/internal/core"
	"github.com/vanehq/vane/internal/testutil"
)

func writeLocales(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "lang-en.yaml", `
greeter_hello: "Hello, {0}!"
greeter_bye: "Goodbye"
greeter_lore:
  - first line
  - second line
`)
	testutil.WriteFile(t, dir, "lang-de.yaml", `greeter_hello: "Hallo, {0}!"`)
	testutil.WriteFile(t, dir, "notes.txt", "ignored")
	return dir
}

func TestLocale_PrimaryThenFallback(t *testing.T) {
	l, err := NewLocale(writeLocales(t), "de", "en")
	require.NoError(t, err)

	v, err := l.Resolve("greeter_hello")
	require.NoError(t, err)
	assert.Equal(t, "Hallo, {0}!", v)

	v, err = l.Resolve("greeter_bye")
	require.NoError(t, err)
	assert.Equal(t, "Goodbye", v)

	v, err = l.Resolve("greeter_lore")
	require.NoError(t, err)
	assert.Equal(t, []any{"first line", "second line"}, v)
}

func TestLocale_MissingKeyNamesLanguage(t *testing.T) {
	l, err := NewLocale(writeLocales(t), "de", "")
	require.NoError(t, err)

	_, err = l.Resolve("greeter_bye")
	require.ErrorIs(t, err, core.ErrMissingKey)
	assert.Contains(t, err.Error(), "language de")
}

func TestLocale_DeclaredDefaultIsLastResort(t *testing.T) {
	l, err := NewLocale(writeLocales(t), "fr", "en")
	require.NoError(t, err)

	var hello, other core.Message
	l.Declare("greeter_hello", core.LangMessage("hello", &hello).WithDefault("Hi"))
	l.Declare("greeter_other", core.LangMessage("other", &other).WithDefault("Other"))

	v, err := l.Resolve("greeter_hello")
	require.NoError(t, err)
	assert.Equal(t, "Hello, {0}!", v)

	v, err = l.Resolve("greeter_other")
	require.NoError(t, err)
	assert.Equal(t, "Other", v)
}

func TestLocale_Languages(t *testing.T) {
	l, err := NewLocale(writeLocales(t), "en", "")
	require.NoError(t, err)

	langs, err := l.Languages()
	require.NoError(t, err)
	assert.Equal(t, []string{"de", "en"}, langs)
}

func TestLocale_RequiresLanguage(t *testing.T) {
	_, err := NewLocale(t.TempDir(), "", "en")
	assert.Error(t, err)
}

func TestLocale_FallbackEqualToPrimaryIsIgnored(t *testing.T) {
	dir := writeLocales(t)
	l, err := NewLocale(dir, "en", "en")
	require.NoError(t, err)
	assert.Equal(t, []string{LocaleFile(dir, "en")}, l.Files())
}

func TestLocale_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "lang-en.yaml", "a: [broken\n")

	_, err := NewLocale(dir, "en", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing language file")
}

func TestLocale_ReloadAndSnapshot(t *testing.T) {
	dir := writeLocales(t)
	l, err := NewLocale(dir, "de", "en")
	require.NoError(t, err)

	testutil.WriteFile(t, dir, "lang-de.yaml", `greeter_bye: "Tschüss"`)
	require.NoError(t, l.Reload())

	v, err := l.Resolve("greeter_bye")
	require.NoError(t, err)
	assert.Equal(t, "Tschüss", v)

	out, err := l.Snapshot()
	require.NoError(t, err)
	assert.Contains(t, string(out), "greeter_hello:")
	assert.Contains(t, string(out), "greeter_bye: Tsch")
}
