// Package sessions holds in-progress edit forms. A session pairs a record
// with one asset manager per file slot until the form is submitted or discarded.
package sessions

import (
	"sync"
	"time"

	"github.com/JaimeStill/backoffice/internal/resources"
	"github.com/JaimeStill/backoffice/pkg/assets"
	"github.com/JaimeStill/backoffice/pkg/record"
)

// OpenCommand starts a session for a new record, or for an existing one when RecordID is set.
type OpenCommand struct {
	Resource string `json:"resource"`
	RecordID string `json:"record_id,omitempty"`
}

// SubmitCommand carries the scalar form fields sent with the staged files.
type SubmitCommand struct {
	Fields map[string]string `json:"fields"`
}

// Upload is one file received for staging.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
	PageCount   *int
}

// View is the externally visible state of a session.
type View struct {
	ID        string        `json:"id"`
	Resource  string        `json:"resource"`
	RecordID  string        `json:"record_id,omitempty"`
	Record    record.Record `json:"record,omitempty"`
	Slots     []SlotView    `json:"slots"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// SlotView is the state of one file slot.
type SlotView struct {
	Name     string            `json:"name"`
	Accept   string            `json:"accept,omitempty"`
	Existing []assets.Existing `json:"existing"`
	Staged   []assets.Staged   `json:"staged"`
	Previews []assets.Preview  `json:"previews"`
}

type slot struct {
	def     resources.Slot
	manager *assets.Manager
}

type session struct {
	mu sync.Mutex

	id        string
	def       resources.Definition
	recordID  string
	record    record.Record
	slots     []slot
	createdAt time.Time
	updatedAt time.Time
	closed    bool
}

func (s *session) slot(name string) (*slot, bool) {
	for i := range s.slots {
		if s.slots[i].def.Name == name {
			return &s.slots[i], true
		}
	}
	return nil, false
}

// release revokes every preview handle and marks the session closed.
// Callers hold s.mu.
func (s *session) release() {
	for _, sl := range s.slots {
		sl.manager.Release()
	}
	s.closed = true
}

func (s *session) view() *View {
	v := &View{
		ID:        s.id,
		Resource:  s.def.Name,
		RecordID:  s.recordID,
		Record:    s.record,
		Slots:     make([]SlotView, 0, len(s.slots)),
		CreatedAt: s.createdAt,
		UpdatedAt: s.updatedAt,
	}
	for _, sl := range s.slots {
		v.Slots = append(v.Slots, SlotView{
			Name:     sl.def.Name,
			Accept:   sl.def.Accept,
			Existing: nonNil(sl.manager.Existing()),
			Staged:   nonNil(sl.manager.Staged()),
			Previews: sl.manager.Previews(),
		})
	}
	return v
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
