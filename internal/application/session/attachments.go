package session

import (
	"sync"

	"github.com/google/uuid"
)

// AttachmentPrefix is the locator prefix under which study PDFs are
// served while they remain cached.
const AttachmentPrefix = "/estudos/pdf/"

// Attachment is one cached PDF file.
type Attachment struct {
	Name string
	Data []byte
}

// AttachmentCache holds study PDFs in memory for the lifetime of the
// process. Locators stored on documents outlive the cache; a locator
// that no longer resolves means the file is gone, not that the record
// is broken.
type AttachmentCache struct {
	mu    sync.RWMutex
	files map[string]Attachment
}

// NewAttachmentCache creates an empty cache.
func NewAttachmentCache() *AttachmentCache {
	return &AttachmentCache{files: make(map[string]Attachment)}
}

// Put stores a file and returns its locator.
func (c *AttachmentCache) Put(name string, data []byte) string {
	locator := AttachmentPrefix + uuid.New().String()
	c.mu.Lock()
	c.files[locator] = Attachment{Name: name, Data: data}
	c.mu.Unlock()
	return locator
}

// Get resolves a locator. ok is false for unknown or expired locators.
func (c *AttachmentCache) Get(locator string) (Attachment, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	att, ok := c.files[locator]
	return att, ok
}
