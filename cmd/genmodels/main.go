// Command genmodels writes the small demonstration forests used by the test
// suites and local development. The output is loadable by the server exactly
// like artifacts exported from a trained model.
//
// Usage:
//
//	go run ./cmd/genmodels -out testdata/models
//	go run ./cmd/genmodels -out models -gzip
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/couchcryptid/agri-advisor-service/internal/domain"
	"github.com/couchcryptid/agri-advisor-service/internal/model"
)

func main() {
	outDir := flag.String("out", "", "output directory for model artifacts")
	compress := flag.Bool("gzip", false, "gzip-compress the artifacts (.json.gz)")
	flag.Parse()

	if *outDir == "" {
		flag.Usage()
		log.Fatal("missing required flag: -out")
	}
	if err := run(*outDir, *compress); err != nil {
		log.Fatal(err)
	}
}

func run(outDir string, compress bool) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	ext := ".json"
	if compress {
		ext = ".json.gz"
	}
	cropFile := "crop_model" + ext
	yieldFile := "yield_model" + ext

	if err := model.WriteArtifact(filepath.Join(outDir, cropFile), cropForest()); err != nil {
		return fmt.Errorf("writing crop model: %w", err)
	}
	log.Printf("wrote crop model: %s", filepath.Join(outDir, cropFile))

	if err := model.WriteArtifact(filepath.Join(outDir, yieldFile), yieldBundle()); err != nil {
		return fmt.Errorf("writing yield model: %w", err)
	}
	log.Printf("wrote yield model: %s", filepath.Join(outDir, yieldFile))

	// Load what was written to confirm it passes validation.
	store, err := model.LoadStore(outDir, cropFile, yieldFile)
	if err != nil {
		return err
	}
	log.Printf("crop classes: %v (%d trees)", store.Crop.Classes(), store.Crop.Trees())
	log.Printf("yield states: %v", store.Yield.StateEncoder.Classes())
	log.Printf("yield crops: %v", store.Yield.CropEncoder.Classes())
	return nil
}

// Classes: chickpea, coffee, cotton, maize, rice.
// Features: N, P, K, temperature, humidity, ph, rainfall.
func cropForest() model.ForestArtifact {
	return model.ForestArtifact{
		Kind:         model.KindClassifier,
		FeatureNames: domain.CropFeatureNames,
		Classes:      []string{"chickpea", "coffee", "cotton", "maize", "rice"},
		Trees: []model.TreeArtifact{
			{
				// humidity <= 65, then N <= 60 or rainfall <= 150.
				ChildrenLeft:  []int{1, 2, -1, -1, 5, -1, -1},
				ChildrenRight: []int{4, 3, -1, -1, 6, -1, -1},
				Feature:       []int{4, 0, -2, -2, 6, -2, -2},
				Threshold:     []float64{65, 60, -2, -2, 150, -2, -2},
				Value: [][]float64{
					{6, 3, 6, 10, 9},
					{6, 0, 5, 5, 0},
					{6, 0, 0, 2, 0},
					{0, 0, 5, 3, 0},
					{0, 3, 1, 5, 9},
					{0, 2, 1, 5, 0},
					{0, 1, 0, 0, 9},
				},
			},
			{
				// temperature <= 24, then rainfall <= 180 or K <= 35.
				ChildrenLeft:  []int{1, 2, -1, -1, 5, -1, -1},
				ChildrenRight: []int{4, 3, -1, -1, 6, -1, -1},
				Feature:       []int{3, 6, -2, -2, 2, -2, -2},
				Threshold:     []float64{24, 180, -2, -2, 35, -2, -2},
				Value: [][]float64{
					{3, 6, 8, 6, 8},
					{3, 0, 0, 5, 8},
					{3, 0, 0, 4, 1},
					{0, 0, 0, 1, 7},
					{0, 6, 8, 1, 0},
					{0, 6, 2, 0, 0},
					{0, 0, 6, 1, 0},
				},
			},
			{
				// ph <= 6.0, then P <= 50.
				ChildrenLeft:  []int{1, -1, 3, -1, -1},
				ChildrenRight: []int{2, -1, 4, -1, -1},
				Feature:       []int{5, -2, 1, -2, -2},
				Threshold:     []float64{6.0, -2, 50, -2, -2},
				Value: [][]float64{
					{3, 5, 6, 3, 9},
					{0, 5, 0, 0, 3},
					{3, 0, 6, 3, 6},
					{1, 0, 2, 1, 6},
					{2, 0, 4, 2, 0},
				},
			},
		},
	}
}

// States: Karnataka, Maharashtra, Punjab. Crops: Maize, Rice, Wheat.
func yieldBundle() model.YieldArtifact {
	return model.YieldArtifact{
		Model: model.ForestArtifact{
			Kind:         model.KindRegressor,
			FeatureNames: domain.YieldFeatureColumns,
			Trees: []model.TreeArtifact{
				{
					// crop code <= 0.5 (Maize), then rainfall <= 1000.
					ChildrenLeft:  []int{1, -1, 3, -1, -1},
					ChildrenRight: []int{2, -1, 4, -1, -1},
					Feature:       []int{1, -2, 3, -2, -2},
					Threshold:     []float64{0.5, -2, 1000, -2, -2},
					Value:         [][]float64{{2.5}, {2.5}, {2.5}, {1.8}, {3.2}},
				},
				{
					// fertilizer <= 100.
					ChildrenLeft:  []int{1, -1, -1},
					ChildrenRight: []int{2, -1, -1},
					Feature:       []int{4, -2, -2},
					Threshold:     []float64{100, -2, -2},
					Value:         [][]float64{{2.5}, {2.0}, {3.0}},
				},
			},
		},
		StateEncoder:   model.EncoderArtifact{Classes: []string{"Karnataka", "Maharashtra", "Punjab"}},
		CropEncoder:    model.EncoderArtifact{Classes: []string{"Maize", "Rice", "Wheat"}},
		FeatureColumns: domain.YieldFeatureColumns,
	}
}
