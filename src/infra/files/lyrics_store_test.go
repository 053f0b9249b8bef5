package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/contre95/lyricsolid/src/music"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLyricsStore_PathFor(t *testing.T) {
	root := t.TempDir()
	store := NewLyricsStore(root)

	tests := []struct {
		artist, title, want string
	}{
		{"AC/DC", "T.N.T", "AC-DC_T.N.T.txt"},
		{"Adele", "Hello", "Adele_Hello.txt"},
		{"Daft Punk", "One More Time", "Daft_Punk_One_More_Time.txt"},
		{"../etc", "passwd", "..-etc_passwd.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, filepath.Join(root, tt.want), store.PathFor(tt.artist, tt.title))
		})
	}
}

func TestLyricsStore_WriteCreatesDirectoryAndOverwrites(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "lyrics")
	store := NewLyricsStore(root)

	assert.False(t, store.Exists("Adele", "Hello"))

	path, err := store.Write("Adele", "Hello", "first\n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "Adele_Hello.txt"), path)
	assert.True(t, store.Exists("Adele", "Hello"))

	// Second write with the directory already present
	_, err = store.Write("Adele", "Hello", "second\n")
	require.NoError(t, err)

	text, err := store.Read("Adele", "Hello")
	require.NoError(t, err)
	assert.Equal(t, "second\n", text)
}

func TestLyricsStore_ReadMissingEntry(t *testing.T) {
	store := NewLyricsStore(t.TempDir())

	_, err := store.Read("Nobody", "Nothing")
	assert.ErrorIs(t, err, music.ErrNotCached)
}

func TestLyricsStore_ExistsIgnoresDirectories(t *testing.T) {
	root := t.TempDir()
	store := NewLyricsStore(root)
	require.NoError(t, os.Mkdir(store.PathFor("Adele", "Hello"), 0755))

	assert.False(t, store.Exists("Adele", "Hello"))
}

func TestLyricsStore_WriteFailsWhenRootIsAFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "lyrics")
	require.NoError(t, os.WriteFile(root, []byte("not a directory"), 0644))
	store := NewLyricsStore(root)

	_, err := store.Write("Adele", "Hello", "text\n")
	assert.Error(t, err)
}
