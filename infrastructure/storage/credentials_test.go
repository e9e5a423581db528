package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"pom_automation/domain/entities"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*CredentialsManager, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	return NewCredentialsManager(filepath.Join(t.TempDir(), "creds", "test-credentials.json"), logger), &buf
}

func TestCredentialsRoundTrip(t *testing.T) {
	m, _ := newTestManager(t)
	want := entities.Credentials{Name: "Test User 1700000000000", Email: "testuser1700000000000@example.com", Password: "Test@123"}

	assert.False(t, m.Exists())
	m.Save(want)
	assert.True(t, m.Exists())

	got, ok := m.Load()
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestCredentialsFileFormat(t *testing.T) {
	m, _ := newTestManager(t)
	m.Save(entities.Credentials{Name: "A", Email: "a@example.com", Password: "p"})

	data, err := os.ReadFile(m.Path())
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"A\",\n  \"email\": \"a@example.com\",\n  \"password\": \"p\"\n}", string(data))
}

func TestCredentialsOverwrite(t *testing.T) {
	m, _ := newTestManager(t)
	m.Save(entities.Credentials{Name: "first", Email: "first@example.com", Password: "1"})
	m.Save(entities.Credentials{Name: "second", Email: "second@example.com", Password: "2"})

	got, ok := m.Load()
	require.True(t, ok)
	assert.Equal(t, "second", got.Name)
}

func TestCredentialsLoadEmptyResults(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		m, buf := newTestManager(t)
		_, ok := m.Load()
		assert.False(t, ok)
		assert.Empty(t, buf.String(), "absence is a normal state")
	})

	t.Run("invalid json", func(t *testing.T) {
		m, buf := newTestManager(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(m.Path()), 0755))
		require.NoError(t, os.WriteFile(m.Path(), []byte("{not json"), 0644))

		_, ok := m.Load()
		assert.False(t, ok)
		assert.Contains(t, buf.String(), "Failed to read credentials")
	})

	t.Run("no email", func(t *testing.T) {
		m, _ := newTestManager(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(m.Path()), 0755))
		require.NoError(t, os.WriteFile(m.Path(), []byte(`{"name":"x"}`), 0644))

		_, ok := m.Load()
		assert.False(t, ok)
		assert.True(t, m.Exists())
	})
}

func TestCredentialsSaveFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)

	// a regular file where the parent directory should be
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	m := NewCredentialsManager(filepath.Join(blocker, "creds.json"), logger)

	assert.NotPanics(t, func() {
		m.Save(entities.Credentials{Email: "a@example.com"})
	})
	assert.Contains(t, buf.String(), "Failed to save credentials")
	assert.False(t, m.Exists())
}

func TestCredentialsClear(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.Clear(), "clearing nothing is fine")

	m.Save(entities.Credentials{Email: "a@example.com"})
	require.NoError(t, m.Clear())
	assert.False(t, m.Exists())
}

func TestRelativePathResolvesAgainstWorkingDir(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	m := NewCredentialsManager("", logrus.New())
	assert.Equal(t, filepath.Join(wd, DefaultCredentialsFile), m.Path())
}
