// Package assets tracks the files attached to a record while it is being
// edited: assets already stored by the server, and local files staged for
// upload. A Manager produces the Diff submitted when the edit completes.
package assets

import (
	"fmt"
	"slices"
)

// File is a local file staged for upload.
type File struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	PageCount   *int   `json:"page_count,omitempty"`
}

// Existing is an asset already stored by the server.
type Existing struct {
	Path string `json:"path"`
}

// Staged is a local file together with the preview handle acquired for it.
type Staged struct {
	File    File   `json:"file"`
	Preview string `json:"preview"`
}

// Previewer issues revocable display handles for staged files.
type Previewer interface {
	Acquire(f File) string
	Revoke(handle string)
}

// Diff is the submission form of a Manager's state.
type Diff struct {
	KeepExistingPaths []string `json:"keep_existing_paths"`
	NewFiles          []File   `json:"new_files"`
}

// Preview is a display entry for one asset.
type Preview struct {
	URL    string `json:"url"`
	Path   string `json:"path,omitempty"`
	Name   string `json:"name,omitempty"`
	Staged bool   `json:"staged"`
}

// Manager holds the existing and staged assets of one asset field on one
// form. It is not safe for concurrent use.
type Manager struct {
	previews Previewer
	resolver Resolver
	existing []Existing
	staged   []Staged
	sealed   bool
	released bool
}

// New creates an empty Manager.
func New(previews Previewer, resolver Resolver) *Manager {
	return &Manager{
		previews: previews,
		resolver: resolver,
	}
}

// Seed loads the assets stored on the record. Each element may itself be a
// comma-joined list or JSON array. Seed may be called once, before any
// mutation; a manager that is mutated unseeded starts with no existing assets.
func (m *Manager) Seed(paths ...string) {
	m.mustBeLive("seed")
	if m.sealed {
		panic(fmt.Errorf("seed: %w", ErrAlreadySeeded))
	}
	m.sealed = true

	for _, stored := range paths {
		for _, p := range SplitPaths(stored) {
			if p = m.resolver.Normalize(p); p != "" {
				m.existing = append(m.existing, Existing{Path: p})
			}
		}
	}
}

// AddFiles stages files in order, acquiring one preview handle per file.
func (m *Manager) AddFiles(files ...File) {
	m.mustBeLive("add files")
	m.sealed = true

	for _, f := range files {
		m.staged = append(m.staged, Staged{
			File:    f,
			Preview: m.previews.Acquire(f),
		})
	}
}

// RemoveExisting drops the first existing asset matching path. Removing a
// path that is not present does nothing.
func (m *Manager) RemoveExisting(path string) {
	m.mustBeLive("remove existing")
	m.sealed = true

	target := m.resolver.Normalize(path)
	i := slices.IndexFunc(m.existing, func(e Existing) bool {
		return e.Path == target
	})
	if i < 0 {
		return
	}
	m.existing = slices.Delete(m.existing, i, i+1)
}

// RemoveStaged unstages the file at index and revokes its preview. The
// removed file is returned so the caller can discard its bytes; ok is false
// when index is out of range.
func (m *Manager) RemoveStaged(index int) (File, bool) {
	m.mustBeLive("remove staged")
	m.sealed = true

	if index < 0 || index >= len(m.staged) {
		return File{}, false
	}

	s := m.staged[index]
	m.staged = slices.Delete(m.staged, index, index+1)
	m.previews.Revoke(s.Preview)
	return s.File, true
}

// Diff returns the surviving existing paths and the staged files in insertion order.
func (m *Manager) Diff() Diff {
	d := Diff{
		KeepExistingPaths: make([]string, len(m.existing)),
		NewFiles:          make([]File, len(m.staged)),
	}
	for i, e := range m.existing {
		d.KeepExistingPaths[i] = e.Path
	}
	for i, s := range m.staged {
		d.NewFiles[i] = s.File
	}
	return d
}

// Release revokes every preview handle still held and clears them from the
// staged entries, so a released manager never hands out a dead URL. Staged
// files remain available through Diff. Calling it again does nothing.
func (m *Manager) Release() {
	if m.released {
		return
	}
	m.released = true

	for i := range m.staged {
		m.previews.Revoke(m.staged[i].Preview)
		m.staged[i].Preview = ""
	}
}

func (m *Manager) Released() bool { return m.released }

func (m *Manager) Existing() []Existing { return slices.Clone(m.existing) }

func (m *Manager) Staged() []Staged { return slices.Clone(m.staged) }

// Previews lists display entries for existing assets followed by staged
// files. Staged entries carry no URL once the manager is released.
func (m *Manager) Previews() []Preview {
	out := make([]Preview, 0, len(m.existing)+len(m.staged))
	for _, e := range m.existing {
		out = append(out, Preview{URL: m.resolver.Resolve(e.Path), Path: e.Path})
	}
	for _, s := range m.staged {
		out = append(out, Preview{URL: s.Preview, Name: s.File.Name, Staged: true})
	}
	return out
}

func (m *Manager) mustBeLive(op string) {
	if m.released {
		panic(fmt.Errorf("%s: %w", op, ErrReleased))
	}
}
