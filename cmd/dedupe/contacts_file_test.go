package main

import (
	"os"
	"path/filepath"
	"testing"

	"crm-dedupe/internal/matching"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func strPtr(s string) *string {
	return &s
}

func TestLoadContactsFile_YAML(t *testing.T) {
	path := writeFile(t, "contacts.yaml", `
- id: c1
  name: John Smith
  email: john@example.com
- name: Jane Doe
  phone: "+1 555 123 4567"
`)

	contacts, err := loadContactsFile(path)
	require.NoError(t, err)

	want := []matching.Contact{
		{ID: "c1", Name: "John Smith", Email: strPtr("john@example.com")},
		{ID: "2", Name: "Jane Doe", Phone: strPtr("+1 555 123 4567")},
	}
	if diff := cmp.Diff(want, contacts); diff != "" {
		t.Errorf("loadContactsFile() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadContactsFile_JSON(t *testing.T) {
	path := writeFile(t, "contacts.json", `[{"id":"a","name":"Alice","email":"alice@example.com","phone":null}]`)

	contacts, err := loadContactsFile(path)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "a", contacts[0].ID)
	assert.Nil(t, contacts[0].Phone)
}

func TestLoadContactsFile_Errors(t *testing.T) {
	t.Run("unknown extension", func(t *testing.T) {
		_, err := loadContactsFile(writeFile(t, "contacts.csv", "name\nx\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported contacts file extension")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadContactsFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read contacts file")
	})

	t.Run("unknown JSON field", func(t *testing.T) {
		_, err := loadContactsFile(writeFile(t, "contacts.json", `[{"name":"x","nickname":"y"}]`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse JSON")
	})

	t.Run("malformed YAML", func(t *testing.T) {
		_, err := loadContactsFile(writeFile(t, "contacts.yml", "- name: [unclosed"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse YAML")
	})
}
