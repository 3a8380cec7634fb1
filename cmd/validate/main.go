// Command validate loads the crop and yield artifacts the way the server does
// and runs integrity checks against them: structure, encoder vocabularies, and
// known reference samples. Use it after retraining, before deploying new files.
//
// Usage:
//
//	go run ./cmd/validate -model-dir models
//	go run ./cmd/validate -model-dir testdata/models -expect-crop rice
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"slices"

	"github.com/couchcryptid/agri-advisor-service/internal/domain"
	"github.com/couchcryptid/agri-advisor-service/internal/inference"
	"github.com/couchcryptid/agri-advisor-service/internal/model"
)

// probabilityTolerance bounds how far a probability vector may sum from 1.
const probabilityTolerance = 1e-9

// riceSample is the reference crop query; a sound model ranks rice first.
var riceSample = domain.CropQuery{
	Nitrogen:    domain.NumberOf(90),
	Phosphorus:  domain.NumberOf(42),
	Potassium:   domain.NumberOf(43),
	Temperature: domain.NumberOf(20.87),
	Humidity:    domain.NumberOf(82),
	PH:          domain.NumberOf(6.5),
	Rainfall:    domain.NumberOf(202.93),
}

// maharashtraSample is the reference yield query.
var maharashtraSample = domain.YieldQuery{
	State:      "Maharashtra",
	Crop:       "Rice",
	Area:       domain.NumberOf(1200),
	Rainfall:   domain.NumberOf(1150),
	Fertilizer: domain.NumberOf(120),
	Pesticide:  domain.NumberOf(15),
}

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	modelDir := flag.String("model-dir", "models", "directory containing model artifacts")
	cropFile := flag.String("crop-file", "crop_model.json", "crop classifier artifact file name")
	yieldFile := flag.String("yield-file", "yield_model.json", "yield bundle artifact file name")
	expectCrop := flag.String("expect-crop", "rice", "crop the reference soil sample must rank first")
	flag.Parse()

	os.Exit(run(*modelDir, *cropFile, *yieldFile, *expectCrop))
}

func run(modelDir, cropFile, yieldFile, expectCrop string) int {
	fmt.Println("=== Model Artifact Validation ===")
	fmt.Println()

	store, err := model.LoadStore(modelDir, cropFile, yieldFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateStructure(store),
		validateVocabularies(store.Yield),
		validateCropSample(store.Crop, expectCrop),
		validateYieldSample(store.Yield),
		validateYieldSweep(store.Yield),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Crop model: %d classes, %d trees\n", len(store.Crop.Classes()), store.Crop.Trees())
	fmt.Printf("Yield model: %d states, %d crops, %d trees\n",
		len(store.Yield.StateEncoder.Classes()), len(store.Yield.CropEncoder.Classes()), store.Yield.Regressor.Trees())

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: structure ──

func validateStructure(store *model.Store) *phase {
	p := &phase{name: "Phase 1: Artifact structure"}

	if n := len(store.Crop.Classes()); n < inference.TopN {
		p.errorf("crop model has %d classes, want at least %d", n, inference.TopN)
	}
	if store.Crop.Trees() == 0 {
		p.errorf("crop model has no trees")
	}
	if !slices.Equal(store.Crop.FeatureNames(), domain.CropFeatureNames) {
		p.errorf("crop feature order %v, want %v", store.Crop.FeatureNames(), domain.CropFeatureNames)
	}
	if store.Yield.Regressor.Trees() == 0 {
		p.errorf("yield model has no trees")
	}
	if !slices.Equal(store.Yield.FeatureColumns, domain.YieldFeatureColumns) {
		p.errorf("yield feature columns %v, want %v", store.Yield.FeatureColumns, domain.YieldFeatureColumns)
	}
	return p
}

// ── Phase 2: vocabularies ──

func validateVocabularies(y *model.YieldBundle) *phase {
	p := &phase{name: "Phase 2: Encoder vocabularies"}

	for name, enc := range map[string]*model.LabelEncoder{"state": y.StateEncoder, "crop": y.CropEncoder} {
		classes := enc.Classes()
		if len(classes) == 0 {
			p.errorf("%s encoder is empty", name)
			continue
		}
		for want, label := range classes {
			got, err := enc.Encode(label)
			if err != nil {
				p.errorf("%s %q: %v", name, label, err)
				continue
			}
			if got != want {
				p.errorf("%s %q encodes to %d, want %d", name, label, got, want)
			}
		}
	}
	return p
}

// ── Phase 3: crop reference sample ──

func validateCropSample(c *model.Classifier, expect string) *phase {
	p := &phase{name: "Phase 3: Crop reference sample"}

	x, err := domain.EncodeCropQuery(riceSample)
	if err != nil {
		p.errorf("encode sample: %v", err)
		return p
	}

	proba, err := c.PredictProba(x)
	if err != nil {
		p.errorf("predict proba: %v", err)
		return p
	}
	var sum float64
	for i, v := range proba {
		if v < 0 || v > 1 {
			p.errorf("probability[%d] = %v out of [0,1]", i, v)
		}
		sum += v
	}
	if math.Abs(sum-1) > probabilityTolerance {
		p.errorf("probabilities sum to %v, want 1", sum)
	}

	ranking, err := inference.RecommendCrop(c, x)
	if err != nil {
		p.errorf("recommend: %v", err)
		return p
	}
	if expect != "" && ranking.Top != expect {
		p.errorf("recommended %q, want %q", ranking.Top, expect)
	}
	if len(ranking.Ranked) > 0 && ranking.Ranked[0].Crop != ranking.Top {
		p.errorf("ranking leads with %q but prediction is %q", ranking.Ranked[0].Crop, ranking.Top)
	}
	for i := 1; i < len(ranking.Ranked); i++ {
		if ranking.Ranked[i].Confidence > ranking.Ranked[i-1].Confidence {
			p.errorf("ranking not descending at %d: %v", i, ranking.Ranked)
			break
		}
	}
	fmt.Printf("  crop sample: %s %v\n", ranking.Top, ranking.Ranked)
	return p
}

// ── Phase 4: yield reference sample ──

func validateYieldSample(y *model.YieldBundle) *phase {
	p := &phase{name: "Phase 4: Yield reference sample"}

	x, err := domain.EncodeYieldQuery(maharashtraSample, y.StateEncoder, y.CropEncoder)
	if err != nil {
		p.errorf("encode sample: %v", err)
		return p
	}
	est, err := inference.PredictYield(y.Regressor, x, 1200)
	if err != nil {
		p.errorf("predict: %v", err)
		return p
	}
	if math.IsNaN(est.PerHectare) || math.IsInf(est.PerHectare, 0) || est.PerHectare <= 0 {
		p.errorf("yield %v is not a positive finite number", est.PerHectare)
	}
	if est.Total != est.PerHectare*1200 {
		p.errorf("total %v != %v * 1200", est.Total, est.PerHectare)
	}
	fmt.Printf("  yield sample: %.4f t/ha, %.2f t total\n", est.PerHectare, est.Total)
	return p
}

// ── Phase 5: vocabulary sweep ──

func validateYieldSweep(y *model.YieldBundle) *phase {
	p := &phase{name: "Phase 5: Yield vocabulary sweep"}

	for _, state := range y.StateEncoder.Classes() {
		for _, crop := range y.CropEncoder.Classes() {
			q := maharashtraSample
			q.State, q.Crop = state, crop
			x, err := domain.EncodeYieldQuery(q, y.StateEncoder, y.CropEncoder)
			if err != nil {
				p.errorf("%s/%s: encode: %v", state, crop, err)
				continue
			}
			v, err := y.Regressor.Predict(x)
			if err != nil {
				p.errorf("%s/%s: predict: %v", state, crop, err)
				continue
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				p.errorf("%s/%s: non-finite yield %v", state, crop, v)
			}
		}
	}
	return p
}
