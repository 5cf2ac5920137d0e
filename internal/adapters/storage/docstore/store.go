// Package docstore provides a multi-collection store of schemaless
// documents with realtime full-snapshot subscriptions. It is the
// console's system of record: the UI never mutates its own mirrors,
// it writes here and observes its own writes coming back through the
// same subscription every other change arrives on.
package docstore

import "context"

// Collection names managed by the console.
const (
	CollectionMembers       = "members"
	CollectionCells         = "cells"
	CollectionLeaders       = "leaders"
	CollectionMinistries    = "ministries"
	CollectionStudies       = "studies"
	CollectionTracks        = "tracks"
	CollectionAnnouncements = "announcements"
	CollectionPastorWords   = "pastorWords"
)

// Collections lists every collection, in the order mirrors subscribe.
var Collections = []string{
	CollectionMembers,
	CollectionCells,
	CollectionLeaders,
	CollectionMinistries,
	CollectionStudies,
	CollectionTracks,
	CollectionAnnouncements,
	CollectionPastorWords,
}

// Document is a schemaless record in one collection. Fields carry
// whatever the writer stored; consumers parse-or-default.
type Document struct {
	ID     string
	Fields map[string]any
}

// SnapshotFunc receives the complete current document set of one
// collection, in the store's snapshot order.
type SnapshotFunc func(docs []Document)

// ErrorFunc receives subscription delivery errors.
type ErrorFunc func(err error)

// Store is the remote collection store contract.
//
// Subscribe delivers one initial snapshot and then a fresh full
// snapshot after every write to the collection, in write order.
// Updates are partial: fields absent from the update are preserved.
type Store interface {
	Subscribe(ctx context.Context, collection string, onSnapshot SnapshotFunc, onError ErrorFunc) (func(), error)
	Add(ctx context.Context, collection string, fields map[string]any) (string, error)
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
}
