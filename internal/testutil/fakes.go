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

package test

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/model"
)

// FakeCatalog is an in-memory catalog reader. ReadCatalog ignores the
// criteria and returns every movie, which is what a store without pushdown
// support does.
type FakeCatalog struct {
	Movies       []*model.MovieRecord
	Err          error                 // Returned by every call when set.
	LastCriteria model.CatalogCriteria // The criteria of the last ReadCatalog call.
	Reads        int                   // The number of ReadCatalog calls.
}

// NewFakeCatalog creates a catalog holding the given movies.
func NewFakeCatalog(movies ...*model.MovieRecord) *FakeCatalog {
	return &FakeCatalog{Movies: movies}
}

func (c *FakeCatalog) ReadCatalog(_ context.Context, criteria model.CatalogCriteria) ([]*model.MovieRecord, error) {
	c.Reads++
	c.LastCriteria = criteria
	if c.Err != nil {
		return nil, c.Err
	}
	return slices.Clone(c.Movies), nil
}

func (c *FakeCatalog) FindMoviesByIds(_ context.Context, ids []int64) ([]*model.MovieRecord, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	out := make([]*model.MovieRecord, 0)
	for _, m := range c.Movies {
		if slices.Contains(ids, m.MovieId) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (c *FakeCatalog) FindMoviesByTitles(_ context.Context, titles []string) ([]*model.MovieRecord, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	out := make([]*model.MovieRecord, 0)
	for _, m := range c.Movies {
		if slices.Contains(titles, strings.ToLower(m.Title)) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (c *FakeCatalog) ListGenres(_ context.Context) ([]string, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	set := model.NewGenreSet()
	for _, m := range c.Movies {
		for _, g := range m.Genres {
			set.Add(g)
		}
	}
	return set.Names(), nil
}

// FakeProfiles is an in-memory profile reader keyed by user id.
type FakeProfiles struct {
	Signals map[string]*model.UserSignal
	Err     error
}

// NewFakeProfiles creates a profile reader holding the given signals.
func NewFakeProfiles(signals ...*model.UserSignal) *FakeProfiles {
	p := &FakeProfiles{Signals: make(map[string]*model.UserSignal)}
	for _, s := range signals {
		p.Signals[s.UserId] = s
	}
	return p
}

func (p *FakeProfiles) ReadUserSignal(_ context.Context, userId string) (*model.UserSignal, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	s, ok := p.Signals[userId]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userId, model.ErrProfileNotFound)
	}
	return s, nil
}

// NewMovie builds a catalog record. released is formatted as 2006-01-02.
func NewMovie(id int64, title string, language string, released string, rating float64, genres ...string) *model.MovieRecord {
	d, err := time.Parse(time.DateOnly, released)
	if err != nil {
		panic(err)
	}
	return &model.MovieRecord{
		MovieId:     id,
		Title:       title,
		Language:    language,
		ReleaseDate: d,
		Description: title + " description",
		Image:       fmt.Sprintf("https://images.example.com/%d.jpg", id),
		Genres:      genres,
		Rating:      rating,
	}
}

// NewSignal builds an empty signal for the given user id.
func NewSignal(userId string) *model.UserSignal {
	return &model.UserSignal{
		UserId:             userId,
		PreferredLanguages: []string{},
		FavoriteTitles:     []string{},
		SearchTerms:        []string{},
		WatchedMovieIds:    []int64{},
		ReviewedMovieIds:   []int64{},
	}
}

// FakeStore serves both the catalog and the profiles from memory.
type FakeStore struct {
	*FakeCatalog
	*FakeProfiles
}

// NewFakeStore combines a fake catalog and fake profiles.
func NewFakeStore(catalog *FakeCatalog, profiles *FakeProfiles) *FakeStore {
	return &FakeStore{FakeCatalog: catalog, FakeProfiles: profiles}
}

// SearchByTitlePrefix returns the movies whose lower-cased title starts with
// prefix, ordered by title.
func (s *FakeStore) SearchByTitlePrefix(_ context.Context, prefix string, limit int) ([]*model.MovieRecord, error) {
	if s.FakeCatalog.Err != nil {
		return nil, s.FakeCatalog.Err
	}
	out := make([]*model.MovieRecord, 0)
	for _, m := range s.Movies {
		if strings.HasPrefix(strings.ToLower(m.Title), strings.ToLower(prefix)) {
			out = append(out, m)
		}
	}
	slices.SortStableFunc(out, func(a, b *model.MovieRecord) int { return strings.Compare(a.Title, b.Title) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// PublishedMessage is a message captured by FakePublisher.
type PublishedMessage struct {
	Data       []byte
	Attributes map[string]string
}

// FakePublisher records published messages in memory.
type FakePublisher struct {
	Messages []PublishedMessage
	Err      error // Returned by Publish when set.
}

func (p *FakePublisher) Publish(_ context.Context, data []byte, attributes map[string]string) (string, error) {
	if p.Err != nil {
		return "", p.Err
	}
	p.Messages = append(p.Messages, PublishedMessage{Data: data, Attributes: attributes})
	return fmt.Sprintf("message-%d", len(p.Messages)), nil
}
