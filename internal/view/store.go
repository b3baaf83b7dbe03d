// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"context"
	"log/slog"

	"github.com/taibuivan/ludex/internal/platform/apperr"
)

// ProfileRecord is the persisted form of a [Profile].
type ProfileRecord struct {
	View   ViewSettings   `json:"view"`
	Filter FilterSettings `json:"filter"`
}

// ProfileStore defines the persistence contract for view profiles.
type ProfileStore interface {
	/*
		Load reads the record of the named profile.

		Returns:
		  - *ProfileRecord: Stored record
		  - error: apperr.NotFound when nothing was saved yet
	*/
	Load(context context.Context, name string) (*ProfileRecord, error)

	// Save overwrites the record of the named profile.
	Save(context context.Context, name string, record ProfileRecord) error
}

/*
LoadProfile builds the named profile from its stored record.

Description: A missing record yields the default settings. A stored record
whose view settings no longer validate is discarded in favour of the
defaults, keeping its filter.

Parameters:
  - context: context.Context
  - store: ProfileStore
  - name: string
  - logger: *slog.Logger

Returns:
  - *Profile: Ready profile
  - error: Storage failures other than a missing record
*/
func LoadProfile(context context.Context, store ProfileStore, name string, logger *slog.Logger) (*Profile, error) {
	record, err := store.Load(context, name)
	if err != nil {
		if !apperr.IsCode(err, apperr.CodeNotFound) {
			return nil, err
		}
		record = &ProfileRecord{View: DefaultViewSettings()}
	}

	profile, err := NewProfile(name, record.View, record.Filter)
	if err != nil {
		logger.Warn("view_profile_reset",
			slog.String("profile", name),
			slog.Any("error", err),
		)
		return NewProfile(name, DefaultViewSettings(), record.Filter)
	}
	return profile, nil
}

/*
SaveView persists new view settings and applies them to the profile once
the store accepted them.

Description: A store failure leaves both the profile and its views on the
previous settings. Concurrent saves on one profile are serialized, so the
stored record always matches the live one.

Returns:
  - error: Validation or storage failure
*/
func (p *Profile) SaveView(context context.Context, store ProfileStore, settings ViewSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	record := ProfileRecord{View: settings, Filter: p.Filter()}
	if err := store.Save(context, p.name, record); err != nil {
		return err
	}

	p.setView(settings)
	return nil
}

// SaveFilter persists new filter settings and applies them to the profile
// once the store accepted them.
func (p *Profile) SaveFilter(context context.Context, store ProfileStore, filter FilterSettings) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	record := ProfileRecord{View: p.View(), Filter: filter.Clone()}
	if err := store.Save(context, p.name, record); err != nil {
		return err
	}

	p.setFilter(filter)
	return nil
}
