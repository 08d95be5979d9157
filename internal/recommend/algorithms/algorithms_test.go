// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package algorithms

import (
	"context"
	"math"
	"reflect"
	"testing"

	"github.com/tomtom215/filmoteca/internal/recommend"
)

const epsilon = 1e-9

func TestTokenize(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"The Quick, brown fox! A 42 x", []string{"quick", "brown", "fox", "42"}},
		{"Led by Woody, Andy's toys", []string{"led", "woody", "andy", "toys"}},
		{"Pokémon über-fans", []string{"pokémon", "über", "fans"}},
		{"", nil},
		{"the and of", nil},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := Tokenize(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func overviewItems() []recommend.Item {
	return []recommend.Item{
		{ID: 1, Overview: "space pirates battle aliens"},
		{ID: 2, Overview: "aliens battle space marines"},
		{ID: 3, Overview: "romantic comedy wedding"},
		{ID: 4, Overview: ""},
	}
}

func TestOverview_PredictSimilar(t *testing.T) {
	alg := NewOverview(OverviewConfig{UseIDF: true})
	if alg.IsTrained() {
		t.Fatal("new algorithm should not be trained")
	}
	if err := alg.Train(context.Background(), overviewItems()); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	if !alg.IsTrained() || alg.Version() != 1 {
		t.Fatalf("trained=%v version=%d", alg.IsTrained(), alg.Version())
	}

	scores, err := alg.PredictSimilar(context.Background(), 1, []int64{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("PredictSimilar() error = %v", err)
	}
	if _, ok := scores[1]; ok {
		t.Error("query item must not score itself")
	}
	if _, ok := scores[4]; ok {
		t.Error("item without overview must not be scored")
	}
	if scores[2] <= 0 {
		t.Errorf("score[2] = %f, want > 0", scores[2])
	}
	if scores[3] != 0 {
		t.Errorf("score[3] = %f, want 0", scores[3])
	}

	empty, err := alg.PredictSimilar(context.Background(), 4, []int64{1, 2})
	if err != nil || len(empty) != 0 {
		t.Errorf("item without vector: scores=%v err=%v", empty, err)
	}
}

func pairScore(t *testing.T, alg recommend.Algorithm, a, b int64) float64 {
	t.Helper()
	scores, err := alg.PredictSimilar(context.Background(), a, []int64{b})
	if err != nil {
		t.Fatalf("PredictSimilar() error = %v", err)
	}
	got, ok := scores[b]
	if !ok {
		t.Fatalf("no score for %d against %d", b, a)
	}
	return got
}

func TestOverview_Weighting(t *testing.T) {
	items := []recommend.Item{
		{ID: 1, Overview: "cat cat dog"},
		{ID: 2, Overview: "cat"},
	}

	t.Run("term frequency", func(t *testing.T) {
		alg := NewOverview(OverviewConfig{UseIDF: false})
		if err := alg.Train(context.Background(), items); err != nil {
			t.Fatal(err)
		}
		got := pairScore(t, alg, 1, 2)
		want := 2 / math.Sqrt(5)
		if math.Abs(got-want) > epsilon {
			t.Errorf("similarity = %f, want %f", got, want)
		}
	})

	t.Run("smoothed idf", func(t *testing.T) {
		alg := NewOverview(OverviewConfig{UseIDF: true})
		if err := alg.Train(context.Background(), items); err != nil {
			t.Fatal(err)
		}
		idfCat := math.Log(3.0/3.0) + 1
		idfDog := math.Log(3.0/2.0) + 1
		catW := 2.0 / 3.0 * idfCat
		dogW := 1.0 / 3.0 * idfDog
		want := catW / math.Sqrt(catW*catW+dogW*dogW)

		got := pairScore(t, alg, 1, 2)
		if math.Abs(got-want) > epsilon {
			t.Errorf("similarity = %f, want %f", got, want)
		}
	})
}

func TestOverview_TrainCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewOverview(OverviewConfig{}).Train(ctx, overviewItems()); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestPopularity_PredictSimilar(t *testing.T) {
	alg := NewPopularity()
	items := []recommend.Item{
		{ID: 1, Popularity: 10},
		{ID: 2, Popularity: 20},
		{ID: 3, Popularity: 30},
	}
	if err := alg.Train(context.Background(), items); err != nil {
		t.Fatal(err)
	}

	scores, err := alg.PredictSimilar(context.Background(), 1, []int64{1, 2, 3, 99})
	if err != nil {
		t.Fatal(err)
	}
	want := map[int64]float64{2: 0.5, 3: 0}
	if !reflect.DeepEqual(scores, want) {
		t.Errorf("scores = %v, want %v", scores, want)
	}
}

func TestPopularity_ZeroRange(t *testing.T) {
	alg := NewPopularity()
	items := []recommend.Item{{ID: 1, Popularity: 5}, {ID: 2, Popularity: 5}}
	if err := alg.Train(context.Background(), items); err != nil {
		t.Fatal(err)
	}
	scores, _ := alg.PredictSimilar(context.Background(), 1, []int64{2})
	if scores[2] != 1 {
		t.Errorf("zero range similarity = %f, want 1", scores[2])
	}
}
