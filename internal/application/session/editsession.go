package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"lideranca/internal/adapters/storage/docstore"
	"lideranca/internal/application/mirror"
	"lideranca/internal/application/notify"
	"lideranca/internal/domain/study"
)

// Notification copy shown by the edit session.
const (
	MsgCreatedTitle  = "Criado"
	MsgCreatedBody   = "Novo registro adicionado."
	MsgUpdatedTitle  = "Atualizado"
	MsgUpdatedBody   = "Registro salvo com sucesso."
	MsgSaveErrTitle  = "Erro"
	MsgSaveErrBody   = "Não foi possível salvar no banco de dados."
	MsgDeletedTitle  = "Removido"
	MsgDeletedBody   = "Registro excluído do banco de dados."
	MsgDeleteErrBody = "Não foi possível excluir o registro."
)

// Domain errors
var (
	ErrSaveInFlight    = errors.New("a save is already in progress")
	ErrNoEditSession   = errors.New("no edit session is open")
	ErrNoPendingDelete = errors.New("no delete is awaiting confirmation")
)

// PendingAttachment is a PDF picked during the current edit, not yet
// persisted.
type PendingAttachment struct {
	Name string
	Data []byte
}

// DeleteRequest is a delete awaiting explicit confirmation.
type DeleteRequest struct {
	Collection string
	ID         string
}

// EditSession tracks the single open create-or-edit form. Opening a
// new session replaces the previous one; saves are serialized by a
// double-submit guard.
// INVARIANT: at most one save per session reaches the store
type EditSession struct {
	store       docstore.Store
	notifier    *notify.Notifier
	attachments *AttachmentCache
	studies     *mirror.Mirror[study.Study]

	mu            sync.Mutex
	active        bool
	collection    string
	targetID      string // "" means create
	saving        bool
	pendingFile   *PendingAttachment
	pendingDelete *DeleteRequest
}

// NewEditSession wires an edit session over the store and banner.
func NewEditSession(store docstore.Store, notifier *notify.Notifier, attachments *AttachmentCache, studies *mirror.Mirror[study.Study]) *EditSession {
	return &EditSession{
		store:       store,
		notifier:    notifier,
		attachments: attachments,
		studies:     studies,
	}
}

// Open starts a create (id == "") or edit (id != "") session,
// replacing any session already open.
func (e *EditSession) Open(collection, id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active = true
	e.collection = collection
	e.targetID = id
	e.saving = false
	e.pendingFile = nil
}

// Close abandons the open session without saving.
func (e *EditSession) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active = false
	e.collection = ""
	e.targetID = ""
	e.saving = false
	e.pendingFile = nil
}

// Editing reports the open session, if any.
func (e *EditSession) Editing() (collection, id string, open bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.collection, e.targetID, e.active
}

// AttachPDF stages a PDF for the open study session. It replaces any
// previously staged file and is discarded if the session closes
// without saving.
func (e *EditSession) AttachPDF(name string, data []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.active {
		return ErrNoEditSession
	}
	e.pendingFile = &PendingAttachment{Name: name, Data: data}
	return nil
}

// Save persists the open session's fields and closes it on success.
// PRE: a session is open and no save is in flight
// POST: on success the session is closed and a success banner is
// published; on failure the session stays open and an alert banner is
// published
//
// For studies: a staged PDF is cached and written as pdfUrl/pdfName;
// when editing without a new file, the record's existing pdfUrl and
// pdfName are carried over unchanged.
func (e *EditSession) Save(ctx context.Context, fields map[string]any) error {
	e.mu.Lock()
	if !e.active {
		e.mu.Unlock()
		return ErrNoEditSession
	}
	if e.saving {
		e.mu.Unlock()
		return ErrSaveInFlight
	}
	e.saving = true
	collection := e.collection
	targetID := e.targetID
	pending := e.pendingFile
	e.mu.Unlock()

	if collection == docstore.CollectionStudies {
		e.applyAttachment(fields, targetID, pending)
	}

	var err error
	if targetID == "" {
		_, err = e.store.Add(ctx, collection, fields)
	} else {
		err = e.store.Update(ctx, collection, targetID, fields)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.saving = false

	if err != nil {
		slog.Error("edit_save_failed", "collection", collection, "id", targetID, "error", err)
		e.notifier.Alert(MsgSaveErrTitle, MsgSaveErrBody)
		return err
	}

	e.active = false
	e.collection = ""
	e.targetID = ""
	e.pendingFile = nil
	if targetID == "" {
		e.notifier.Success(MsgCreatedTitle, MsgCreatedBody)
	} else {
		e.notifier.Success(MsgUpdatedTitle, MsgUpdatedBody)
	}
	return nil
}

// applyAttachment resolves the pdfUrl/pdfName fields for a study save.
func (e *EditSession) applyAttachment(fields map[string]any, targetID string, pending *PendingAttachment) {
	if pending != nil {
		locator := e.attachments.Put(pending.Name, pending.Data)
		fields["pdfUrl"] = locator
		fields["pdfName"] = pending.Name
		return
	}
	if targetID == "" {
		fields["pdfUrl"] = ""
		fields["pdfName"] = ""
		return
	}
	// Editing without a new file: keep whatever the record had.
	for _, s := range e.studies.Snapshot() {
		if s.ID == targetID {
			fields["pdfUrl"] = s.PDFLocator
			fields["pdfName"] = s.PDFName
			return
		}
	}
	fields["pdfUrl"] = ""
	fields["pdfName"] = ""
}

// RequestDelete stages a delete for confirmation, replacing any
// earlier pending delete.
func (e *EditSession) RequestDelete(collection, id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pendingDelete = &DeleteRequest{Collection: collection, ID: id}
}

// PendingDelete returns the delete awaiting confirmation, or nil.
func (e *EditSession) PendingDelete() *DeleteRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pendingDelete == nil {
		return nil
	}
	copied := *e.pendingDelete
	return &copied
}

// CancelDelete drops the pending delete.
func (e *EditSession) CancelDelete() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pendingDelete = nil
}

// ConfirmDelete executes the pending delete.
// PRE: a delete was requested
// POST: the record is removed and a banner reports the outcome
func (e *EditSession) ConfirmDelete(ctx context.Context) error {
	e.mu.Lock()
	req := e.pendingDelete
	e.pendingDelete = nil
	e.mu.Unlock()

	if req == nil {
		return ErrNoPendingDelete
	}
	if err := e.store.Delete(ctx, req.Collection, req.ID); err != nil {
		slog.Error("edit_delete_failed", "collection", req.Collection, "id", req.ID, "error", err)
		e.notifier.Alert(MsgSaveErrTitle, MsgDeleteErrBody)
		return err
	}
	e.notifier.Alert(MsgDeletedTitle, MsgDeletedBody)
	return nil
}
