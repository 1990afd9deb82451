package app

import (
	"context"
	"fmt"
	"time"

	"quantix/domain/core"
	"quantix/domain/dataset"
	"quantix/domain/selection"
	"quantix/domain/stats"
	"quantix/internal"
	"quantix/ports"
)

// Session owns one dataset snapshot and the selections of every section.
// Every mutation runs to completion, recomputing the bundle, before it
// returns; readers only ever see a bundle derived from the current dataset
// and current selections together.
//
// A Session has a single mutator. Callers that share one across goroutines
// (the HTTP server) serialize access themselves.
type Session struct {
	id       core.SessionID
	source   ports.DatasetSource
	ds       *dataset.Dataset
	sections map[selection.SectionKind]*selection.Section
	bundle   *stats.ResultBundle

	opts      DeriveOptions
	observers []ports.BundleObserver
	logger    *internal.Logger
	now       func() time.Time
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithBins sets the histogram bin count
func WithBins(n int) SessionOption {
	return func(s *Session) { s.opts.Bins = n }
}

// WithSource attaches the ingestion collaborator used by Reload
func WithSource(src ports.DatasetSource) SessionOption {
	return func(s *Session) { s.source = src }
}

// WithObserver registers a bundle observer
func WithObserver(o ports.BundleObserver) SessionOption {
	return func(s *Session) { s.observers = append(s.observers, o) }
}

// WithLogger replaces the default logger
func WithLogger(l *internal.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// WithClock overrides the time source used to stamp bundles
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// NewSession creates a session over ds with every section initialized to
// one unselected slot per role
func NewSession(ds *dataset.Dataset, opts ...SessionOption) (*Session, error) {
	if ds == nil {
		ds = dataset.Empty()
	}
	s := &Session{
		id:       core.NewSessionID(),
		ds:       ds,
		sections: make(map[selection.SectionKind]*selection.Section),
		logger:   internal.DefaultLogger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("Session")

	for _, kind := range selection.SectionKinds() {
		section, err := selection.NewSection(kind)
		if err != nil {
			return nil, err
		}
		s.sections[kind] = section
	}
	if err := s.recompute(); err != nil {
		return nil, err
	}
	s.logger.Info("session %s started over dataset %s (%d records)", s.id, ds.ID(), ds.Len())
	return s, nil
}

// ID returns the session identifier
func (s *Session) ID() core.SessionID { return s.id }

// Dataset returns the current snapshot
func (s *Session) Dataset() *dataset.Dataset { return s.ds }

// DatasetInfo describes the current snapshot
func (s *Session) DatasetInfo() dataset.Info { return s.ds.Info() }

// Fields returns the selectable field catalog
func (s *Session) Fields() []dataset.FieldMeta { return dataset.Fields() }

// Bundle returns the latest derived results
func (s *Session) Bundle() *stats.ResultBundle { return s.bundle }

// SectionState returns the current selections of one section
func (s *Session) SectionState(kind selection.SectionKind) (selection.State, error) {
	section, err := s.section(kind)
	if err != nil {
		return selection.State{}, err
	}
	return section.Snapshot(), nil
}

// States returns the selections of every section in presentation order
func (s *Session) States() []selection.State {
	states := make([]selection.State, 0, len(s.sections))
	for _, kind := range selection.SectionKinds() {
		states = append(states, s.sections[kind].Snapshot())
	}
	return states
}

// AddSlot appends an unselected slot to a section role
func (s *Session) AddSlot(kind selection.SectionKind, role selection.Role) error {
	axis, err := s.axis(kind, role)
	if err != nil {
		return err
	}
	if err := axis.AddSlot(); err != nil {
		return err
	}
	s.logger.Debug("%s/%s: added slot %d", kind, role, axis.Len()-1)
	return s.recompute()
}

// RemoveSlot removes slot index from a section role. It reports false and
// leaves the bundle untouched when nothing was removed.
func (s *Session) RemoveSlot(kind selection.SectionKind, role selection.Role, index int) (bool, error) {
	axis, err := s.axis(kind, role)
	if err != nil {
		return false, err
	}
	if !axis.RemoveSlot(index) {
		return false, nil
	}
	s.logger.Debug("%s/%s: removed slot %d", kind, role, index)
	return true, s.recompute()
}

// SetSlot assigns a field to one slot. A rejected assignment changes nothing.
func (s *Session) SetSlot(kind selection.SectionKind, role selection.Role, index int, key dataset.FieldKey) error {
	axis, err := s.axis(kind, role)
	if err != nil {
		return err
	}
	if err := axis.SetSlot(index, key); err != nil {
		return err
	}
	s.logger.Debug("%s/%s: slot %d = %q", kind, role, index, key)
	return s.recompute()
}

// ReplaceDataset swaps in a new snapshot atomically. No result derived from
// the previous snapshot survives the call.
func (s *Session) ReplaceDataset(ds *dataset.Dataset) error {
	if ds == nil {
		return fmt.Errorf("%w: nil dataset", core.ErrNotFound)
	}
	prev := s.ds
	s.ds = ds
	if err := s.recompute(); err != nil {
		s.ds = prev
		return err
	}
	s.logger.Info("dataset replaced: %s -> %s (%d records)", prev.ID(), ds.ID(), ds.Len())
	return nil
}

// Reload fetches a fresh snapshot from the attached source. On failure the
// current dataset and bundle are kept.
func (s *Session) Reload(ctx context.Context) (dataset.Info, error) {
	if s.source == nil {
		return dataset.Info{}, fmt.Errorf("%w: session has no dataset source", core.ErrNotFound)
	}
	ds, err := s.source.Load(ctx)
	if err != nil {
		s.logger.Warn("reload from %s failed: %v", s.source.Describe(), err)
		return dataset.Info{}, err
	}
	if err := s.ReplaceDataset(ds); err != nil {
		return dataset.Info{}, err
	}
	return ds.Info(), nil
}

func (s *Session) recompute() error {
	bundle, err := DeriveViews(s.ds, s.States(), s.opts)
	if err != nil {
		s.logger.Error("recompute failed: %v", err)
		return err
	}
	bundle.ComputedAt = core.NewTimestamp(s.now())
	s.bundle = bundle
	s.logger.Trace("bundle %s computed", bundle.Fingerprint)
	for _, o := range s.observers {
		o.BundleUpdated(bundle)
	}
	return nil
}

func (s *Session) section(kind selection.SectionKind) (*selection.Section, error) {
	section, ok := s.sections[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownSection, kind)
	}
	return section, nil
}

func (s *Session) axis(kind selection.SectionKind, role selection.Role) (*selection.AxisSelection, error) {
	section, err := s.section(kind)
	if err != nil {
		return nil, err
	}
	return section.Axis(role)
}

var (
	_ ports.ReaderPort    = (*Session)(nil)
	_ ports.SelectionPort = (*Session)(nil)
)
