package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/datgo/hierarchy"
	"github.com/hupe1980/datgo/snapshot"
	"github.com/hupe1980/datgo/store"
)

func TestDefault(t *testing.T) {
	p := Default()

	assert.Equal(t, "default", p.Name)
	assert.Equal(t, hierarchy.MergeNone, p.MergeType)
	assert.Equal(t, DedupNone, p.Dedup)
	assert.Equal(t, "crc", p.DedupKey)
	assert.Empty(t, p.Filters)
	require.NoError(t, p.Validate())
}

func TestParseTOML(t *testing.T) {
	data := []byte(`
merge_type = "full-non-merged"
filters = ["rom.status!=nodump", "  ", "machine.isbios!=true"]
dedup = "FULL"
dedup_key = "sha1"
one_game_per_region = true
regions = [" Europe ", "USA"]
compression = "zstd"
`)

	p, err := Parse(data, FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, hierarchy.MergeFullNonMerged, p.MergeType)
	assert.Equal(t, []string{"rom.status!=nodump", "machine.isbios!=true"}, p.Filters)
	assert.Equal(t, DedupFull, p.Dedup)
	assert.Equal(t, store.KeySHA1, p.DedupItemKey())
	assert.Equal(t, []string{"Europe", "USA"}, p.Regions)
	assert.Equal(t, snapshot.CompressionZSTD, p.SnapshotCompression())
	assert.Equal(t, "default", p.Name, "unset keys keep defaults")

	r, err := p.Runner()
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
name: arcade
merge_type: split
dedup: game
description_as_name: true
strip_scene_dates: true
`)

	p, err := Parse(data, FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "arcade", p.Name)
	assert.Equal(t, hierarchy.MergeSplit, p.MergeType)
	assert.Equal(t, store.KeyMachine, p.DedupItemKey())
	assert.True(t, p.DescriptionAsName)
	assert.True(t, p.StripSceneDates)
}

func TestParseEmptyYAML(t *testing.T) {
	p, err := Parse(nil, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, Default().Name, p.Name)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		format  Format
		invalid bool
	}{
		{"unknown toml key", `colour = "red"`, FormatTOML, false},
		{"unknown yaml key", `colour: red`, FormatYAML, false},
		{"bad merge type", `merge_type = "squashed"`, FormatTOML, false},
		{"bad dedup", `dedup = "sometimes"`, FormatTOML, true},
		{"dedup key not a hash", "dedup = \"full\"\ndedup_key = \"machine\"", FormatTOML, true},
		{"region mode without regions", `one_game_per_region = true`, FormatTOML, true},
		{"bad filter", `filters = ["rom.crc"]`, FormatTOML, true},
		{"bad compression", `compression = "gzip"`, FormatTOML, true},
		{"unsupported format", ``, Format("ini"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			require.Error(t, err)
			if tt.invalid {
				assert.ErrorIs(t, err, ErrInvalidProfile)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "profile.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(`merge_type = "merged"`), 0o600))
	p, err := Load(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, hierarchy.MergeMerged, p.MergeType)

	ymlPath := filepath.Join(dir, "profile.yml")
	require.NoError(t, os.WriteFile(ymlPath, []byte("merge_type: nonmerged\n"), 0o600))
	p, err = Load(ymlPath)
	require.NoError(t, err)
	assert.Equal(t, hierarchy.MergeNonMerged, p.MergeType)

	_, err = Load(filepath.Join(dir, "profile.json"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatTOML, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			p := Default()
			p.MergeType = hierarchy.MergeDeviceNonMerged
			p.Filters = []string{"disk.sha1==/^[0-9a-f]+$/"}

			var buf bytes.Buffer
			require.NoError(t, p.Encode(&buf, format))

			got, err := Parse(buf.Bytes(), format)
			require.NoError(t, err)
			assert.Equal(t, p.MergeType, got.MergeType)
			assert.Equal(t, p.Filters, got.Filters)
		})
	}
}
