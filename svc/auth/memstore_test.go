package auth

import (
	"context"
	"maps"
	"sync"
)

// memData is the full state of memStore. InTx works on a clone and swaps
// it in on success, so a failed use case leaves no trace.
type memData struct {
	nextID          int64
	identities      map[int64]Identity
	bindings        map[int64]ProviderType
	profiles        map[int64]Profile
	roles           map[int64]string
	players         map[int64]bool
	modules         map[int64]ModuleGrant
	attributes      map[int64]AttributeGrant
	groupOf         map[int64]int64
	groupModules    map[int64]ModuleGrant
	groupAttributes map[int64]AttributeGrant
	sessions        map[int64]Session
	activations     map[string]ActivationTicket
}

func newMemData() *memData {
	return &memData{
		identities:      map[int64]Identity{},
		bindings:        map[int64]ProviderType{},
		profiles:        map[int64]Profile{},
		roles:           map[int64]string{},
		players:         map[int64]bool{},
		modules:         map[int64]ModuleGrant{},
		attributes:      map[int64]AttributeGrant{},
		groupOf:         map[int64]int64{},
		groupModules:    map[int64]ModuleGrant{},
		groupAttributes: map[int64]AttributeGrant{},
		sessions:        map[int64]Session{},
		activations:     map[string]ActivationTicket{},
	}
}

func (d *memData) clone() *memData {
	return &memData{
		nextID:          d.nextID,
		identities:      maps.Clone(d.identities),
		bindings:        maps.Clone(d.bindings),
		profiles:        maps.Clone(d.profiles),
		roles:           maps.Clone(d.roles),
		players:         maps.Clone(d.players),
		modules:         maps.Clone(d.modules),
		attributes:      maps.Clone(d.attributes),
		groupOf:         maps.Clone(d.groupOf),
		groupModules:    maps.Clone(d.groupModules),
		groupAttributes: maps.Clone(d.groupAttributes),
		sessions:        maps.Clone(d.sessions),
		activations:     maps.Clone(d.activations),
	}
}

type memStore struct {
	mu    sync.Mutex
	data  *memData
	fails map[string]error
	locks []int64
}

func newMemStore() *memStore {
	return &memStore{data: newMemData(), fails: map[string]error{}}
}

// failOn makes the named repository method return err.
func (s *memStore) failOn(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fails[method] = err
}

// snapshot returns a copy of the committed state.
func (s *memStore) snapshot() *memData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.clone()
}

// seed mutates the committed state directly.
func (s *memStore) seed(fn func(d *memData)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.data)
}

func (s *memStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{store: s, d: s.data.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	s.data = tx.d
	return nil
}

type memTx struct {
	store *memStore
	d     *memData
}

func (t *memTx) fail(method string) error { return t.store.fails[method] }

func (t *memTx) LockIdentity(_ context.Context, id int64) error {
	if err := t.fail("LockIdentity"); err != nil {
		return err
	}
	t.store.locks = append(t.store.locks, id)
	return nil
}

func (t *memTx) Identities() IdentityRepository { return memIdentities{t} }
func (t *memTx) Grants() GrantRepository { return memGrants{t} }
func (t *memTx) Sessions() SessionStore { return memSessions{t} }
func (t *memTx) Activations() ActivationRepository { return memActivations{t} }

type memIdentities struct{ *memTx }

func (r memIdentities) ByEmail(_ context.Context, email string) (Identity, error) {
	if err := r.fail("ByEmail"); err != nil {
		return Identity{}, err
	}
	for _, i := range r.d.identities {
		if i.Email == email {
			return i, nil
		}
	}
	return Identity{}, ErrRecordNotFound
}

func (r memIdentities) ByID(_ context.Context, id int64) (Identity, error) {
	if err := r.fail("ByID"); err != nil {
		return Identity{}, err
	}
	i, ok := r.d.identities[id]
	if !ok {
		return Identity{}, ErrRecordNotFound
	}
	return i, nil
}

func (r memIdentities) NicknameTaken(_ context.Context, nickname string) (bool, error) {
	for _, p := range r.d.profiles {
		if p.Nickname == nickname {
			return true, nil
		}
	}
	return false, nil
}

func (r memIdentities) PhoneTaken(_ context.Context, phone string) (bool, error) {
	for _, p := range r.d.profiles {
		if p.PhoneNum == phone {
			return true, nil
		}
	}
	return false, nil
}

func (r memIdentities) Create(_ context.Context, email, hash string) (Identity, error) {
	if err := r.fail("Create"); err != nil {
		return Identity{}, err
	}
	for _, i := range r.d.identities {
		if i.Email == email {
			return Identity{}, ErrDuplicate
		}
	}
	r.d.nextID++
	i := Identity{ID: r.d.nextID, Email: email, PasswordHash: hash}
	r.d.identities[i.ID] = i
	return i, nil
}

func (r memIdentities) BindProvider(_ context.Context, id int64, p ProviderType) error {
	if err := r.fail("BindProvider"); err != nil {
		return err
	}
	r.d.bindings[id] = p
	return nil
}

func (r memIdentities) Provider(_ context.Context, id int64) (ProviderType, error) {
	p, ok := r.d.bindings[id]
	if !ok {
		return 0, ErrRecordNotFound
	}
	return p, nil
}

func (r memIdentities) CreateProfile(_ context.Context, id int64, p Profile) error {
	if err := r.fail("CreateProfile"); err != nil {
		return err
	}
	r.d.profiles[id] = p
	return nil
}

func (r memIdentities) AssignRole(_ context.Context, id int64, role string) error {
	r.d.roles[id] = role
	return nil
}

func (r memIdentities) CreatePlayer(_ context.Context, id int64) error {
	r.d.players[id] = true
	return nil
}

type memGrants struct{ *memTx }

func (r memGrants) CreateModules(_ context.Context, id int64, g ModuleGrant) error {
	r.d.modules[id] = g
	return nil
}

func (r memGrants) CreateAttributes(_ context.Context, id int64, g AttributeGrant) error {
	r.d.attributes[id] = g
	return nil
}

func (r memGrants) Modules(_ context.Context, id int64) (ModuleGrant, error) {
	return lookup(r.d.modules, id)
}

func (r memGrants) Attributes(_ context.Context, id int64) (AttributeGrant, error) {
	return lookup(r.d.attributes, id)
}

func (r memGrants) GroupOf(_ context.Context, id int64) (int64, error) {
	return lookup(r.d.groupOf, id)
}

func (r memGrants) GroupModules(_ context.Context, id int64) (ModuleGrant, error) {
	return lookup(r.d.groupModules, id)
}

func (r memGrants) GroupAttributes(_ context.Context, id int64) (AttributeGrant, error) {
	return lookup(r.d.groupAttributes, id)
}

type memSessions struct{ *memTx }

func (r memSessions) Upsert(_ context.Context, s Session) error {
	if err := r.fail("Upsert"); err != nil {
		return err
	}
	r.d.sessions[s.IdentityID] = s
	return nil
}

func (r memSessions) ByIdentity(_ context.Context, id int64) (Session, error) {
	return lookup(r.d.sessions, id)
}

func (r memSessions) ByRefreshToken(_ context.Context, token string) (Session, error) {
	for _, s := range r.d.sessions {
		if s.RefreshToken == token {
			return s, nil
		}
	}
	return Session{}, ErrRecordNotFound
}

func (r memSessions) Delete(_ context.Context, id int64) error {
	delete(r.d.sessions, id)
	return nil
}

type memActivations struct{ *memTx }

func (r memActivations) Create(_ context.Context, t ActivationTicket) error {
	r.d.activations[t.Link] = t
	return nil
}

func (r memActivations) ByLink(_ context.Context, link string) (ActivationTicket, error) {
	return lookup(r.d.activations, link)
}

func (r memActivations) MarkActivated(_ context.Context, link string) error {
	t, ok := r.d.activations[link]
	if !ok {
		return ErrRecordNotFound
	}
	t.IsActivated = true
	r.d.activations[link] = t
	return nil
}

func lookup[K comparable, V any](m map[K]V, k K) (V, error) {
	v, ok := m[k]
	if !ok {
		var zero V
		return zero, ErrRecordNotFound
	}
	return v, nil
}
