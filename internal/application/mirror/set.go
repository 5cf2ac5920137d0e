package mirror

import (
	"context"
	"fmt"
	"sync"

	"lideranca/internal/adapters/storage/docstore"
	"lideranca/internal/domain/announcement"
	"lideranca/internal/domain/cell"
	"lideranca/internal/domain/leader"
	"lideranca/internal/domain/member"
	"lideranca/internal/domain/ministry"
	"lideranca/internal/domain/pastorword"
	"lideranca/internal/domain/study"
	"lideranca/internal/domain/track"
)

// ErrorFunc receives per-collection subscription failures. The mirror
// for a failing collection keeps its last good snapshot.
type ErrorFunc func(collection string, err error)

// Set bundles the mirrors of every collection the console works with.
type Set struct {
	Members       *Mirror[member.Member]
	Cells         *Mirror[cell.Cell]
	Leaders       *Mirror[leader.Leader]
	Ministries    *Mirror[ministry.Ministry]
	Studies       *Mirror[study.Study]
	Tracks        *Mirror[track.Track]
	Announcements *Mirror[announcement.Announcement]
	PastorWords   *Mirror[pastorword.Word]

	store   docstore.Store
	onError ErrorFunc

	mu     sync.Mutex
	unsubs []func()
}

// NewSet creates the full mirror set, not yet subscribed.
func NewSet(store docstore.Store, onError ErrorFunc) *Set {
	if onError == nil {
		onError = func(string, error) {}
	}
	return &Set{
		Members:       New(func(d docstore.Document) member.Member { return member.FromFields(d.ID, d.Fields) }),
		Cells:         New(func(d docstore.Document) cell.Cell { return cell.FromFields(d.ID, d.Fields) }),
		Leaders:       New(func(d docstore.Document) leader.Leader { return leader.FromFields(d.ID, d.Fields) }),
		Ministries:    New(func(d docstore.Document) ministry.Ministry { return ministry.FromFields(d.ID, d.Fields) }),
		Studies:       New(func(d docstore.Document) study.Study { return study.FromFields(d.ID, d.Fields) }),
		Tracks:        New(func(d docstore.Document) track.Track { return track.FromFields(d.ID, d.Fields) }),
		Announcements: New(func(d docstore.Document) announcement.Announcement { return announcement.FromFields(d.ID, d.Fields) }),
		PastorWords:   New(func(d docstore.Document) pastorword.Word { return pastorword.FromFields(d.ID, d.Fields) }),
		store:         store,
		onError:       onError,
	}
}

// Start subscribes every mirror to its collection.
// PRE: Set is not already started
// POST: each mirror tracks its collection until Stop is called
func (s *Set) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.unsubs) > 0 {
		return fmt.Errorf("mirrors already started")
	}

	type target struct {
		collection string
		replace    func([]docstore.Document)
	}
	targets := []target{
		{docstore.CollectionMembers, s.Members.Replace},
		{docstore.CollectionCells, s.Cells.Replace},
		{docstore.CollectionLeaders, s.Leaders.Replace},
		{docstore.CollectionMinistries, s.Ministries.Replace},
		{docstore.CollectionStudies, s.Studies.Replace},
		{docstore.CollectionTracks, s.Tracks.Replace},
		{docstore.CollectionAnnouncements, s.Announcements.Replace},
		{docstore.CollectionPastorWords, s.PastorWords.Replace},
	}

	for _, tgt := range targets {
		collection := tgt.collection
		unsub, err := s.store.Subscribe(ctx, collection, tgt.replace, func(err error) {
			s.onError(collection, err)
		})
		if err != nil {
			s.stopLocked()
			return fmt.Errorf("start mirror %s: %w", collection, err)
		}
		s.unsubs = append(s.unsubs, unsub)
	}
	return nil
}

// Stop detaches every subscription. Safe to call when not started.
func (s *Set) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Set) stopLocked() {
	for _, unsub := range s.unsubs {
		unsub()
	}
	s.unsubs = nil
}

// Reset empties every mirror. Runs synchronously.
// POST: every mirror reports zero records
func (s *Set) Reset() {
	s.Members.Reset()
	s.Cells.Reset()
	s.Leaders.Reset()
	s.Ministries.Reset()
	s.Studies.Reset()
	s.Tracks.Reset()
	s.Announcements.Reset()
	s.PastorWords.Reset()
}
