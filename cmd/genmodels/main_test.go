package main

import (
	"path/filepath"
	"testing"

	"github.com/couchcryptid/agri-advisor-service/internal/model"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const fixtureDir = "../../testdata/models"

// The committed fixtures must be exactly what this command generates.
func TestGeneratedArtifactsMatchFixtures(t *testing.T) {
	for _, compress := range []bool{false, true} {
		ext := ".json"
		if compress {
			ext = ".json.gz"
		}
		t.Run(ext, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, run(dir, compress))

			var gotCrop, wantCrop model.ForestArtifact
			require.NoError(t, model.ReadArtifact(filepath.Join(dir, "crop_model"+ext), &gotCrop))
			require.NoError(t, model.ReadArtifact(filepath.Join(fixtureDir, "crop_model.json"), &wantCrop))
			if diff := cmp.Diff(wantCrop, gotCrop); diff != "" {
				t.Errorf("crop model differs from fixture (-fixture +generated):\n%s", diff)
			}

			var gotYield, wantYield model.YieldArtifact
			require.NoError(t, model.ReadArtifact(filepath.Join(dir, "yield_model"+ext), &gotYield))
			require.NoError(t, model.ReadArtifact(filepath.Join(fixtureDir, "yield_model.json"), &wantYield))
			if diff := cmp.Diff(wantYield, gotYield); diff != "" {
				t.Errorf("yield model differs from fixture (-fixture +generated):\n%s", diff)
			}
		})
	}
}
