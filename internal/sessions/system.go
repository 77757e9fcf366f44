package sessions

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/backoffice/internal/resources"
	"github.com/JaimeStill/backoffice/pkg/assets"
	"github.com/JaimeStill/backoffice/pkg/formdata"
	"github.com/JaimeStill/backoffice/pkg/lifecycle"
	"github.com/JaimeStill/backoffice/pkg/record"
	"github.com/JaimeStill/backoffice/pkg/storage"
)

// Client is the content API surface used to open and submit sessions.
type Client interface {
	resources.Client
	PostForm(ctx context.Context, path, contentType string, body []byte) (record.Record, error)
}

// System manages edit sessions.
type System interface {
	Open(ctx context.Context, client Client, cmd OpenCommand) (*View, error)
	Find(id string) (*View, error)
	AddFiles(ctx context.Context, id, slot string, uploads []Upload) (*View, error)
	RemoveExisting(ctx context.Context, id, slot, path string) (*View, error)
	RemoveStaged(ctx context.Context, id, slot string, index int) (*View, error)
	Diff(id string) (map[string]assets.Diff, error)
	Submit(ctx context.Context, client Client, id string, cmd SubmitCommand) (record.Record, error)
	Discard(ctx context.Context, id string) error
	Sweep(ctx context.Context, cutoff time.Time) int
	Len() int
	Start(lc *lifecycle.Coordinator) error
}

// Config controls session expiry.
type Config struct {
	TTL           time.Duration
	SweepInterval time.Duration
	// StagingPrefix is the storage prefix under which staged files are written.
	StagingPrefix string
}

type repo struct {
	resources resources.System
	store     storage.System
	previews  assets.Previewer
	resolver  assets.Resolver
	cfg       Config
	logger    *slog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// New creates a session System. previews issues display handles for
// staged files; resolver turns stored asset paths into URLs.
func New(
	res resources.System,
	store storage.System,
	previews assets.Previewer,
	resolver assets.Resolver,
	cfg Config,
	logger *slog.Logger,
) System {
	if cfg.TTL <= 0 {
		cfg.TTL = 2 * time.Hour
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = 5 * time.Minute
	}
	if cfg.StagingPrefix == "" {
		cfg.StagingPrefix = "staging"
	}
	return &repo{
		resources: res,
		store:     store,
		previews:  previews,
		resolver:  resolver,
		cfg:       cfg,
		logger:    logger.With("system", "sessions"),
		sessions:  make(map[string]*session),
	}
}

func (r *repo) Open(ctx context.Context, client Client, cmd OpenCommand) (*View, error) {
	def, err := r.resources.Definition(cmd.Resource)
	if err != nil {
		return nil, err
	}

	op := resources.OpAdd
	if cmd.RecordID != "" {
		op = resources.OpUpdate
	}
	if !def.Supports(op) {
		return nil, fmt.Errorf("%s %s: %w", def.Name, op, resources.ErrUnsupported)
	}

	var rec record.Record
	if cmd.RecordID != "" {
		rec, err = r.resources.Find(ctx, client, def.Name, cmd.RecordID)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	s := &session{
		id:        uuid.NewString(),
		def:       def,
		recordID:  cmd.RecordID,
		record:    rec,
		createdAt: now,
		updatedAt: now,
	}
	for _, sd := range def.Slots {
		m := assets.New(r.previews, r.resolver)
		var stored []string
		for _, field := range sd.Sources {
			stored = append(stored, rec.Strings(field)...)
		}
		m.Seed(stored...)
		s.slots = append(s.slots, slot{def: sd, manager: m})
	}

	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()

	r.logger.Info("session opened", "id", s.id, "resource", def.Name, "record_id", cmd.RecordID)
	return s.view(), nil
}

func (r *repo) Find(id string) (*View, error) {
	var v *View
	err := r.with(id, func(s *session) error {
		v = s.view()
		return nil
	})
	return v, err
}

func (r *repo) AddFiles(ctx context.Context, id, slotName string, uploads []Upload) (*View, error) {
	if len(uploads) == 0 {
		return nil, ErrNoFiles
	}

	var v *View
	err := r.with(id, func(s *session) error {
		sl, ok := s.slot(slotName)
		if !ok {
			return fmt.Errorf("%s: %w", slotName, ErrSlotNotFound)
		}

		for _, u := range uploads {
			if !accepts(sl.def.Accept, u.ContentType) {
				return fmt.Errorf("%s is %s, slot %s accepts %s: %w", u.Name, u.ContentType, slotName, sl.def.Accept, ErrInvalidFile)
			}
		}

		files := make([]assets.File, 0, len(uploads))
		for _, u := range uploads {
			key := stagingKey(r.cfg.StagingPrefix, s.id, u.Name)
			if err := r.store.Store(ctx, key, u.Data); err != nil {
				r.deleteFiles(ctx, files)
				return fmt.Errorf("stage %s: %w", u.Name, err)
			}
			files = append(files, assets.File{
				Key:         key,
				Name:        u.Name,
				ContentType: u.ContentType,
				Size:        int64(len(u.Data)),
				PageCount:   u.PageCount,
			})
		}

		sl.manager.AddFiles(files...)
		v = s.view()
		return nil
	})
	return v, err
}

func (r *repo) RemoveExisting(ctx context.Context, id, slotName, path string) (*View, error) {
	var v *View
	err := r.with(id, func(s *session) error {
		sl, ok := s.slot(slotName)
		if !ok {
			return fmt.Errorf("%s: %w", slotName, ErrSlotNotFound)
		}
		sl.manager.RemoveExisting(path)
		v = s.view()
		return nil
	})
	return v, err
}

func (r *repo) RemoveStaged(ctx context.Context, id, slotName string, index int) (*View, error) {
	var v *View
	err := r.with(id, func(s *session) error {
		sl, ok := s.slot(slotName)
		if !ok {
			return fmt.Errorf("%s: %w", slotName, ErrSlotNotFound)
		}
		if f, ok := sl.manager.RemoveStaged(index); ok {
			r.deleteFiles(ctx, []assets.File{f})
		}
		v = s.view()
		return nil
	})
	return v, err
}

func (r *repo) Diff(id string) (map[string]assets.Diff, error) {
	out := make(map[string]assets.Diff)
	err := r.with(id, func(s *session) error {
		for _, sl := range s.slots {
			out[sl.def.Name] = sl.manager.Diff()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Submit sends the form to the content API. The session is released only
// when the content API accepts it; on failure it stays open for a retry.
func (r *repo) Submit(ctx context.Context, client Client, id string, cmd SubmitCommand) (record.Record, error) {
	var resp record.Record
	err := r.with(id, func(s *session) error {
		op := resources.OpAdd
		if s.recordID != "" {
			op = resources.OpUpdate
		}
		target, err := s.def.Path(op, s.recordID)
		if err != nil {
			return err
		}

		files := 0
		if len(s.slots) == 0 {
			resp, err = client.Post(ctx, target, jsonFields(cmd.Fields, s.def.HTMLFields))
		} else {
			resp, files, err = r.postForm(ctx, client, target, op, s, cmd.Fields)
		}
		if err != nil {
			return fmt.Errorf("submit %s: %w", s.def.Name, err)
		}

		r.logger.Info("session submitted",
			"id", s.id,
			"resource", s.def.Name,
			"record_id", s.recordID,
			"files", files,
		)
		r.close(ctx, s)
		return nil
	})
	return resp, err
}

func (r *repo) postForm(ctx context.Context, client Client, target string, op resources.Operation, s *session, fields map[string]string) (record.Record, int, error) {
	attachments := make([]formdata.Attachment, 0, len(s.slots))
	for _, sl := range s.slots {
		form := sl.def.Form
		if op == resources.OpAdd {
			form.ExistingField = ""
		}
		attachments = append(attachments, formdata.Attachment{Slot: form, Diff: sl.manager.Diff()})
	}

	body, err := formdata.NewEncoder(r.store, s.def.HTMLFields...).Encode(ctx, fields, attachments...)
	if err != nil {
		return nil, 0, fmt.Errorf("encode form: %w", err)
	}

	resp, err := client.PostForm(ctx, target, body.ContentType, body.Data)
	return resp, body.FileParts, err
}

// jsonFields is the payload for resources without file slots, which the
// content API accepts as a JSON object.
func jsonFields(fields map[string]string, htmlFields []string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		if slices.Contains(htmlFields, k) {
			v = formdata.SanitizeHTML(v)
		}
		out[k] = v
	}
	return out
}

func (r *repo) Discard(ctx context.Context, id string) error {
	return r.with(id, func(s *session) error {
		r.close(ctx, s)
		r.logger.Info("session discarded", "id", s.id)
		return nil
	})
}

// Sweep discards sessions untouched since cutoff and returns how many were removed.
func (r *repo) Sweep(ctx context.Context, cutoff time.Time) int {
	r.mu.Lock()
	var stale []*session
	for _, s := range r.sessions {
		stale = append(stale, s)
	}
	r.mu.Unlock()

	n := 0
	for _, s := range stale {
		s.mu.Lock()
		if !s.closed && s.updatedAt.Before(cutoff) {
			r.close(ctx, s)
			n++
		}
		s.mu.Unlock()
	}
	if n > 0 {
		r.logger.Info("expired sessions discarded", "count", n)
	}
	return n
}

func (r *repo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Start clears leftover staging files at startup, expires idle sessions
// while running, and discards every session on shutdown.
func (r *repo) Start(lc *lifecycle.Coordinator) error {
	r.logger.Info("starting session system", "ttl", r.cfg.TTL, "sweep_interval", r.cfg.SweepInterval)

	lc.OnStartup(func() {
		if err := r.store.Purge(lc.Context(), r.cfg.StagingPrefix); err != nil {
			r.logger.Error("staging purge failed", "error", err)
		}
	})

	lc.OnShutdown(func() {
		ticker := time.NewTicker(r.cfg.SweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-lc.Context().Done():
				n := r.Sweep(context.Background(), time.Now().Add(time.Hour))
				r.logger.Info("session system stopped", "discarded", n)
				return
			case <-ticker.C:
				r.Sweep(lc.Context(), time.Now().Add(-r.cfg.TTL))
			}
		}
	})

	return nil
}

// with runs fn holding the session's lock and refreshes its idle timer.
func (r *repo) with(id string, fn func(s *session) error) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrSessionNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("%s: %w", id, ErrSessionNotFound)
	}
	s.updatedAt = time.Now()
	return fn(s)
}

// close releases s and removes its staged bytes. Callers hold s.mu.
func (r *repo) close(ctx context.Context, s *session) {
	s.release()

	r.mu.Lock()
	delete(r.sessions, s.id)
	r.mu.Unlock()

	if err := r.store.Purge(ctx, path.Join(r.cfg.StagingPrefix, s.id)); err != nil {
		r.logger.Warn("staging cleanup failed", "id", s.id, "error", err)
	}
}

func (r *repo) deleteFiles(ctx context.Context, files []assets.File) {
	for _, f := range files {
		if err := r.store.Delete(ctx, f.Key); err != nil {
			r.logger.Warn("staged file cleanup failed", "key", f.Key, "error", err)
		}
	}
}

func stagingKey(prefix, sessionID, name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == ".." {
		base = "file"
	}
	return path.Join(prefix, sessionID, uuid.NewString(), base)
}

// accepts matches a content type against an accept pattern such as "image/*".
func accepts(pattern, contentType string) bool {
	if pattern == "" || pattern == "*/*" {
		return true
	}
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	pattern = strings.ToLower(pattern)
	if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
		return strings.HasPrefix(ct, prefix+"/")
	}
	return ct == pattern
}
