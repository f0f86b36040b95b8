// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package recommend

import (
	"slices"
	"strings"

	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/model"
)

// FilterCandidates applies the personalized constraints to the catalog, in
// order: watched exclusion, era, preferred languages and favourite genres.
// Each step is a set intersection, so the order does not change the result.
// An empty language list or genre set disables that step. A movie without a
// language never matches an active language filter.
func FilterCandidates(catalog []*model.MovieRecord, signal *model.UserSignal, era model.EraRange, genres model.GenreSet) []*model.MovieRecord {
	out := make([]*model.MovieRecord, 0, len(catalog))
	for _, m := range catalog {
		if signal.HasWatched(m.MovieId) {
			continue
		}
		if !era.Contains(m.ReleaseDate) {
			continue
		}
		if len(signal.PreferredLanguages) > 0 && !matchesLanguage(m, signal.PreferredLanguages) {
			continue
		}
		if len(genres) > 0 && !m.HasAnyGenre(genres) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// FilterByRequest applies the constraints of an explicit filter request:
// any of the listed genres, a single language and an era label. Empty fields
// and unrecognized era labels do not restrict.
func FilterByRequest(catalog []*model.MovieRecord, req *model.FilterRequest) []*model.MovieRecord {
	genres := model.NewGenreSet(req.Genres...)
	language := normalizeLanguage(req.Language)
	era := ClassifyEra(req.Era)

	out := make([]*model.MovieRecord, 0, len(catalog))
	for _, m := range catalog {
		if len(genres) > 0 && !m.HasAnyGenre(genres) {
			continue
		}
		if language != "" && strings.ToLower(m.Language) != language {
			continue
		}
		if !era.Contains(m.ReleaseDate) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func matchesLanguage(m *model.MovieRecord, languages []string) bool {
	if m.Language == "" {
		return false
	}
	return slices.Contains(languages, strings.ToLower(m.Language))
}

func normalizeLanguage(language string) string {
	return strings.ToLower(language)
}
