package props_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uac/cafeteria-api/internal/props"
)

func TestRestoresMissingFileWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.properties")
	s := props.NewStore(path, map[string]string{
		"account.seq": "1000",
		"greeting":    "hello",
	})

	value, err := s.Get("greeting")
	require.NoError(t, err)
	assert.Equal(t, "hello", value)

	// The restore wrote the defaults out, parent directories included.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "account.seq")

	// Later reads are served from memory and must not recreate the file.
	require.NoError(t, os.Remove(path))

	value, err = s.Get("account.seq")
	require.NoError(t, err)
	assert.Equal(t, "1000", value)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestAutoSavePersistsEveryWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.properties")
	s := props.NewStore(path, nil)

	require.NoError(t, s.Set("db.user", "cafeteria"))

	// A fresh store over the same file sees the write.
	fresh := props.NewStore(path, nil)
	value, err := fresh.Get("db.user")
	require.NoError(t, err)
	assert.Equal(t, "cafeteria", value)
}

func TestAutoSaveOff(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.properties")
	s := props.NewStore(path, map[string]string{"a": "1"})
	s.SetAutoSave(false)

	require.NoError(t, s.Set("a", "2"))

	fresh := props.NewStore(path, nil)
	value, err := fresh.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "1", value)

	require.NoError(t, s.Save())

	fresh = props.NewStore(path, nil)
	value, err = fresh.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "2", value)
}

func TestTypedAccessors(t *testing.T) {
	s := props.NewStore(filepath.Join(t.TempDir(), "config.properties"), nil)

	require.NoError(t, s.SetInt("count", 42))
	n, err := s.GetInt("count")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	require.NoError(t, s.SetFloat("price", 2.4))
	f, err := s.GetFloat("price")
	require.NoError(t, err)
	assert.InDelta(t, 2.4, f, 1e-9)

	require.NoError(t, s.Set("word", "abc"))
	_, err = s.GetInt("word")
	assert.ErrorIs(t, err, props.ErrConfig)
}

func TestSection(t *testing.T) {
	s := props.NewStore(filepath.Join(t.TempDir(), "config.properties"), map[string]string{
		"db.user":     "cafeteria",
		"db.password": "secret",
		"dbx.other":   "nope",
		"mail.host":   "localhost",
	})

	section, err := s.Section("db")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"db.user":     "cafeteria",
		"db.password": "secret",
	}, section)
}
