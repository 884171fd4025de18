package save

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"

	"github.com/BoldPhoenix/ark-asa-parser/errs"
	"github.com/BoldPhoenix/ark-asa-parser/internal/proptest"
)

func profileBytes(name string, tribeID int32, extraLevel uint16) []byte {
	return proptest.New().
		Str("PlayerName", name).
		Int32("TribeID", tribeID).
		UInt16("ExtraCharacterLevel", extraLevel).
		Bytes()
}

func tribeBytes(name string) []byte {
	return proptest.New().
		Str("TribeName", name).
		ArrayStr("MembersPlayerName", []string{"Alice", "Bob"}).
		Bytes()
}

// newMapDir builds a SavedArks map directory with profiles, tribes, and
// a world database.
func newMapDir(t *testing.T) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "TheIsland_WP")
	require.NoError(t, os.Mkdir(dir, 0o755))

	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "eos-alice.arkprofile"),
		profileBytes("Alice", 42, 104), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "eos-bob.arkprofile"),
		profileBytes("Bob", 42, 30), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "42.arktribe"),
		tribeBytes("The Wanderers"), 0o644))

	newWorldDB(t, dir)

	return dir
}

// newWorldDB writes <dir>/<dirname>.ark with one dino and one structure
// blob.
func newWorldDB(t *testing.T, dir string) {
	t.Helper()

	path := filepath.Join(dir, filepath.Base(dir)+".ark")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE game (key BLOB PRIMARY KEY, value BLOB)`)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE custom (key TEXT PRIMARY KEY, value BLOB)`)
	require.NoError(t, err)

	dino := proptest.New().
		LPString("Raptor_Character_BP_C").
		Str("TamedName", "Chompy").
		Int32("TargetingTeam", 42).
		Bytes()
	structure := proptest.New().
		LPString("StorageBox_Large_C").
		Str("OwnerName", "Alice").
		Int32("TargetingTeam", 42).
		Bytes()

	for key, blob := range map[string][]byte{
		"dino-1":      dino,
		"structure-1": structure,
	} {
		_, err = db.Exec(`INSERT INTO game (key, value) VALUES (?, ?)`, []byte(key), blob)
		require.NoError(t, err)
	}
	_, err = db.Exec(`INSERT INTO custom (key, value) VALUES ('SaveHeader', ?)`, []byte("hdr"))
	require.NoError(t, err)
}

func TestNewReaderValidation(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	file := filepath.Join(t.TempDir(), "afile")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = NewReader(file)
	require.ErrorIs(t, err, errs.ErrNotDirectory)
}

func TestReaderListing(t *testing.T) {
	dir := newMapDir(t)

	r, err := NewReader(dir)
	require.NoError(t, err)
	require.True(t, r.HasWorldSave())

	profiles, err := r.ListProfiles()
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	tribes, err := r.ListTribes()
	require.NoError(t, err)
	require.Len(t, tribes, 1)
}

func TestReadProfileAndTribe(t *testing.T) {
	dir := newMapDir(t)

	r, err := NewReader(dir)
	require.NoError(t, err)

	player, err := r.ReadProfile(filepath.Join(dir, "eos-alice.arkprofile"))
	require.NoError(t, err)
	require.Equal(t, "eos-alice", player.EOSID)
	require.NotNil(t, player.PlayerName)
	require.Equal(t, "Alice", *player.PlayerName)
	require.NotNil(t, player.Level)
	require.Equal(t, 105, *player.Level)

	tribe, err := r.ReadTribe(filepath.Join(dir, "42.arktribe"))
	require.NoError(t, err)
	require.Equal(t, int32(42), tribe.TribeID)
	require.NotNil(t, tribe.TribeName)
	require.Equal(t, "The Wanderers", *tribe.TribeName)
	require.Len(t, tribe.Members, 2)

	_, err = r.ReadTribe(filepath.Join(dir, "notanumber.arktribe"))
	require.ErrorIs(t, err, errs.ErrMalformed)
}

func TestReadProfileCompressed(t *testing.T) {
	dir := newMapDir(t)

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(profileBytes("Carol", 7, 10))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	path := filepath.Join(dir, "eos-carol.arkprofile")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	r, err := NewReader(dir)
	require.NoError(t, err)

	player, err := r.ReadProfile(path)
	require.NoError(t, err)
	require.NotNil(t, player.PlayerName)
	require.Equal(t, "Carol", *player.PlayerName)
}

func TestAllPlayersAndTribes(t *testing.T) {
	ctx := context.Background()
	dir := newMapDir(t)

	r, err := NewReader(dir, WithConcurrency(2))
	require.NoError(t, err)

	players, err := r.AllPlayers(ctx)
	require.NoError(t, err)
	require.Len(t, players, 2)
	// Listing order is sorted by path.
	require.Equal(t, "eos-alice", players[0].EOSID)
	require.Equal(t, "eos-bob", players[1].EOSID)

	tribes, err := r.AllTribes(ctx)
	require.NoError(t, err)
	require.Len(t, tribes, 1)
	require.Equal(t, int32(42), tribes[0].TribeID)
}

func TestDinosAndStructures(t *testing.T) {
	ctx := context.Background()
	dir := newMapDir(t)

	r, err := NewReader(dir)
	require.NoError(t, err)

	dinos, err := r.Dinos(ctx)
	require.NoError(t, err)
	require.Len(t, dinos, 1)
	require.Equal(t, "dino-1", dinos[0].ActorID)
	require.NotNil(t, dinos[0].SpeciesName)
	require.Equal(t, "Raptor", *dinos[0].SpeciesName)

	structures, err := r.Structures(ctx)
	require.NoError(t, err)
	require.Len(t, structures, 1)
	require.Equal(t, "structure-1", structures[0].ActorID)
	require.NotNil(t, structures[0].StructureType)
	require.Equal(t, "StorageBox Large", *structures[0].StructureType)

	header, err := r.SaveHeader(ctx)
	require.NoError(t, err)
	require.Equal(t, []byte("hdr"), header)
}

func TestWorldQueriesWithoutWorldSave(t *testing.T) {
	ctx := context.Background()

	dir := filepath.Join(t.TempDir(), "Empty_WP")
	require.NoError(t, os.Mkdir(dir, 0o755))

	r, err := NewReader(dir)
	require.NoError(t, err)
	require.False(t, r.HasWorldSave())

	_, err = r.Dinos(ctx)
	require.ErrorIs(t, err, errs.ErrNoWorldSave)
}

func TestScanServers(t *testing.T) {
	root := t.TempDir()

	mapDir := filepath.Join(root, "asaserver_astraeos",
		"ShooterGame", "Saved", "SavedArks", "Astraeos_WP")
	require.NoError(t, os.MkdirAll(mapDir, 0o755))
	newWorldDB(t, mapDir)

	// A server without a world database is skipped.
	emptyDir := filepath.Join(root, "asaserver_empty",
		"ShooterGame", "Saved", "SavedArks", "TheIsland_WP")
	require.NoError(t, os.MkdirAll(emptyDir, 0o755))

	readers, err := ScanServers(root)
	require.NoError(t, err)
	require.Len(t, readers, 1)

	r, ok := readers["astraeos"]
	require.True(t, ok)
	require.Equal(t, mapDir, r.Dir())
}
