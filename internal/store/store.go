// Package store holds the client-side mirror of the catalog's resources. All mutations go through the catalog API,
// and the in-memory collection is patched with the server's responses.
package store

import (
	"context"
	"slices"
	"sync"

	"github.com/lrn-oss/lrc/internal/client"
	"github.com/lrn-oss/lrc/internal/model"
	"github.com/lrn-oss/lrc/internal/utils"
)

//go:generate mockery --name API --outpkg mocks --output mocks
type API interface {
	ListResources(ctx context.Context) ([]model.Resource, error)
	CreateResource(ctx context.Context, fields model.ResourceFields, file *model.Upload) (model.Resource, error)
	UpdateResource(ctx context.Context, id int64, fields model.ResourceFields, file model.FileChange) (model.Resource, error)
	DeleteResource(ctx context.Context, id int64) error
	UploadImage(ctx context.Context, resourceID int64, img model.Upload, caption string) (model.Image, error)
	DeleteImage(ctx context.Context, imageID int64) error
}

// State is a snapshot of the store
type State struct {
	Resources []model.Resource
	IsLoading bool
	Error     string
	// Version increases with every change. Subscribers may receive states out of order when operations overlap
	// and use it to drop stale ones
	Version uint64
}

// Store owns the resource collection. Every operation sets the shared error on failure and returns the error
// to the caller as well. The lock is never held while waiting for the API.
//
// Overlapping mutations of the same resource are not serialized: the response that arrives last determines
// the resulting state.
type Store struct {
	api API

	mu        sync.RWMutex
	resources []model.Resource
	loading   int
	err       string
	version   uint64

	subMu   sync.Mutex
	subs    map[int]func(State)
	nextSub int
}

func New(api API) *Store {
	return &Store{
		api:       api,
		resources: []model.Resource{},
		subs:      map[int]func(State){},
	}
}

// State returns a copy of the current state
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *Store) stateLocked() State {
	return State{
		Resources: slices.Clone(s.resources),
		IsLoading: s.loading > 0,
		Error:     s.err,
		Version:   s.version,
	}
}

func (s *Store) Resources() []model.Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.resources)
}

// Get returns the resource with the given id, if present in the collection
func (s *Store) Get(id int64) (model.Resource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return model.Resource{}, false
	}
	return s.resources[i], true
}

// Filtered returns the resources matching params, in collection order
func (s *Store) Filtered(params model.FilterParams) []model.Resource {
	return model.Filter(s.Resources(), params)
}

// Tags returns the sorted set of all tags in the collection
func (s *Store) Tags() []string {
	return model.CollectTags(s.Resources())
}

// Fetch replaces the collection with the server's, sorted by creation time, newest first.
// On failure the collection is emptied.
func (s *Store) Fetch(ctx context.Context) error {
	s.begin(true)
	res, err := s.api.ListResources(ctx)
	if err != nil {
		utils.GetLogger(ctx, "store").Error("could not fetch resources", "error", err)
		s.end(true, err, func() {
			s.resources = []model.Resource{}
		})
		return err
	}
	res = slices.Clone(res)
	slices.SortStableFunc(res, func(a, b model.Resource) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	s.end(true, nil, func() {
		s.resources = res
	})
	return nil
}

// Add creates a resource and puts it at the front of the collection
func (s *Store) Add(ctx context.Context, fields model.ResourceFields, file *model.Upload) (model.Resource, error) {
	s.begin(true)
	res, err := s.api.CreateResource(ctx, fields, file)
	if err != nil {
		s.end(true, err, nil)
		return model.Resource{}, err
	}
	s.end(true, nil, func() {
		rs := slices.DeleteFunc(slices.Clone(s.resources), func(r model.Resource) bool { return r.ID == res.ID })
		s.resources = append([]model.Resource{res}, rs...)
	})
	return res, nil
}

// Update modifies a resource and replaces it in place. If the resource has been removed from the collection
// meanwhile, the collection is left unchanged.
func (s *Store) Update(ctx context.Context, id int64, fields model.ResourceFields, file model.FileChange) (model.Resource, error) {
	s.begin(true)
	res, err := s.api.UpdateResource(ctx, id, fields, file)
	if err != nil {
		s.end(true, err, nil)
		return model.Resource{}, err
	}
	s.end(true, nil, func() {
		s.replace(id, func(model.Resource) model.Resource { return res })
	})
	return res, nil
}

func (s *Store) Remove(ctx context.Context, id int64) error {
	s.begin(true)
	err := s.api.DeleteResource(ctx, id)
	if err != nil {
		s.end(true, err, nil)
		return err
	}
	s.end(true, nil, func() {
		s.resources = slices.DeleteFunc(slices.Clone(s.resources), func(r model.Resource) bool { return r.ID == id })
	})
	return nil
}

// AddImage uploads an image and appends it to the images of the resource. It does not affect the loading state.
func (s *Store) AddImage(ctx context.Context, resourceID int64, img model.Upload, caption string) (model.Image, error) {
	s.begin(false)
	res, err := s.api.UploadImage(ctx, resourceID, img, caption)
	if err != nil {
		s.end(false, err, nil)
		return model.Image{}, err
	}
	s.end(false, nil, func() {
		s.replace(resourceID, func(r model.Resource) model.Resource {
			r.Images = append(slices.Clone(r.Images), res)
			return r
		})
	})
	return res, nil
}

// RemoveImage deletes an image and removes it from the images of the resource. It does not affect the loading state.
func (s *Store) RemoveImage(ctx context.Context, resourceID, imageID int64) error {
	s.begin(false)
	err := s.api.DeleteImage(ctx, imageID)
	if err != nil {
		s.end(false, err, nil)
		return err
	}
	s.end(false, nil, func() {
		s.replace(resourceID, func(r model.Resource) model.Resource {
			r.Images = slices.DeleteFunc(slices.Clone(r.Images), func(i model.Image) bool { return i.ID == imageID })
			return r
		})
	})
	return nil
}

func (s *Store) ClearError() {
	s.mu.Lock()
	changed := s.err != ""
	s.err = ""
	if changed {
		s.version++
	}
	st := s.stateLocked()
	s.mu.Unlock()
	if changed {
		s.notify(st)
	}
}

// Subscribe registers fn to be called with the new state after every change. fn is called synchronously
// by the goroutine that changed the state and must not call Subscribe or the returned unsubscribe function.
// With overlapping operations, fn may see an older state after a newer one; compare State.Version.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// begin clears the error and, for collection operations, marks the store as loading
func (s *Store) begin(loading bool) {
	s.mu.Lock()
	if loading {
		s.loading++
	}
	s.err = ""
	s.version++
	st := s.stateLocked()
	s.mu.Unlock()
	s.notify(st)
}

// end applies a successful result or records the error, and ends the loading state
func (s *Store) end(loading bool, err error, apply func()) {
	s.mu.Lock()
	if loading {
		s.loading--
	}
	if err != nil {
		s.err = client.ErrorText(err)
	}
	if apply != nil {
		apply()
	}
	s.version++
	st := s.stateLocked()
	s.mu.Unlock()
	s.notify(st)
}

func (s *Store) replace(id int64, fn func(model.Resource) model.Resource) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	rs := slices.Clone(s.resources)
	rs[i] = fn(rs[i])
	s.resources = rs
}

func (s *Store) indexOf(id int64) int {
	return slices.IndexFunc(s.resources, func(r model.Resource) bool { return r.ID == id })
}

func (s *Store) notify(st State) {
	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(st)
	}
}
