package candidates

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const yamlFixture = `candidates:
  - id: "2"
    name: Marco Bianchi
    description: Android engineer
    location: Rome
    skills: [Kotlin]
  - id: "1"
    name: Giulia Rossi
    description: Senior iOS engineer, agile, cross-functional
    location: Monza
    skills: [Swift, SwiftUI]
    languages: [Italian, English]
`

func TestFileSourceYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "candidates.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlFixture), 0o644))

	src, err := NewSource(context.Background(), &SourceConfig{File: path}, zap.NewNop())
	require.NoError(t, err)
	defer src.Close()

	list, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, list.Len())

	assert.Equal(t, []string{"1", "2"}, list.IDs(), "ordered by name")
	assert.Equal(t, []string{"Swift", "SwiftUI"}, list.Items[0].Skills)
	assert.NotNil(t, list.Items[1].Languages)
	assert.Empty(t, list.Items[1].Languages)
}

func TestFileSourceJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "candidates.json")
	doc := `{"candidates": [{"id": "7", "name": "Luca", "location": "Turin", "skills": ["Go"], "created_at": "2024-05-01"}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	list, err := NewFileSource(path).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, list.Len())
	assert.Equal(t, "2024-05-01", list.FindByID("7").CreatedAt)
}

func TestFileSourceErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := NewFileSource(filepath.Join(dir, "missing.yaml")).Load(context.Background())
	assert.ErrorContains(t, err, "reading candidates file")

	txt := filepath.Join(dir, "candidates.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0o644))
	_, err = NewFileSource(txt).Load(context.Background())
	assert.ErrorContains(t, err, "unsupported candidates file extension")

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{"), 0o644))
	_, err = NewFileSource(broken).Load(context.Background())
	assert.ErrorContains(t, err, "parsing candidates file")
}

func TestNewSourceValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     *SourceConfig
		wantErr string
	}{
		{name: "nil config", cfg: nil, wantErr: "source configuration is required"},
		{name: "file without path", cfg: &SourceConfig{Kind: "file"}, wantErr: "source.file is required"},
		{name: "sqlite without path", cfg: &SourceConfig{Kind: "sqlite"}, wantErr: "source.sqlite is required"},
		{name: "postgres without section", cfg: &SourceConfig{Kind: "postgres"}, wantErr: "source.postgres section is required"},
		{name: "supabase without section", cfg: &SourceConfig{Kind: "supabase"}, wantErr: "source.supabase section is required"},
		{name: "supabase without url", cfg: &SourceConfig{Kind: "supabase", Supabase: &SupabaseConfig{AnonKey: "k"}}, wantErr: "supabase url is required"},
		{name: "unknown kind", cfg: &SourceConfig{Kind: "ftp"}, wantErr: "unsupported candidate source: ftp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewSource(context.Background(), tt.cfg, nil)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestNewPostgresSourceRequiresURL(t *testing.T) {
	t.Parallel()

	_, err := NewPostgresSource(context.Background(), " ", "", nil)
	assert.ErrorContains(t, err, "postgres url is required")

	_, err = NewPostgresSource(context.Background(), "postgres://%zz", "", nil)
	assert.ErrorContains(t, err, "parse postgres url")
}

func TestSelectCandidatesSQL(t *testing.T) {
	t.Parallel()

	query := selectCandidatesSQL("public.candidates")
	assert.Contains(t, query, `FROM "public"."candidates" ORDER BY name`)
}
