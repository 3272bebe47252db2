package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeProfileRepo implements domain.ProfileRepository for tests.
type fakeProfileRepo struct {
	byID      map[string]*domain.Profile
	byEmail   map[string]*domain.Profile
	createErr error
	created   int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		byID:    make(map[string]*domain.Profile),
		byEmail: make(map[string]*domain.Profile),
	}
}

func (f *fakeProfileRepo) add(p *domain.Profile) {
	f.byID[p.ID] = p
	if p.Email != "" {
		f.byEmail[p.Email] = p
	}
}

func (f *fakeProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[p.Email]; ok && p.Email != "" {
		return domain.ErrDuplicateEmail
	}
	f.created++
	p.ID = "created-1"
	f.add(p)
	return nil
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	if p, ok := f.byEmail[email]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProfileRepo) UpdatePreferences(ctx context.Context, id, displayName, teeShirtSize string) (*domain.Profile, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.DisplayName = displayName
	p.TeeShirtSize = teeShirtSize
	return p, nil
}

// fakeConferenceRepo implements domain.ConferenceRepository for tests.
type fakeConferenceRepo struct {
	byID          map[string]*domain.Conference
	nearlySoldOut []*domain.Conference
	queried       []*domain.Conference
	lastCompiled  *query.Compiled
	createErr     error
	// onGet runs after GetByID snapshots the row, so tests can interleave
	// a concurrent write between a service's read and its update.
	onGet func()
}

func newFakeConferenceRepo() *fakeConferenceRepo {
	return &fakeConferenceRepo{byID: make(map[string]*domain.Conference)}
}

func (f *fakeConferenceRepo) Create(ctx context.Context, c *domain.Conference) error {
	if f.createErr != nil {
		return f.createErr
	}
	c.ID = "conf-created"
	f.byID[c.ID] = c
	return nil
}

func (f *fakeConferenceRepo) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	if f.onGet != nil {
		f.onGet()
	}
	return &cp, nil
}

func (f *fakeConferenceRepo) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Conference, error) {
	var out []*domain.Conference
	for _, c := range f.byID {
		if c.OrganizerID == organizerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeConferenceRepo) ListByIDs(ctx context.Context, ids []string) ([]*domain.Conference, error) {
	out := make([]*domain.Conference, 0, len(ids))
	for _, id := range ids {
		if c, ok := f.byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeConferenceRepo) Query(ctx context.Context, compiled *query.Compiled) ([]*domain.Conference, error) {
	f.lastCompiled = compiled
	return f.queried, nil
}

func (f *fakeConferenceRepo) ListNearlySoldOut(ctx context.Context) ([]*domain.Conference, error) {
	return f.nearlySoldOut, nil
}

// Update mirrors the postgres repository: seats_available is derived from the
// stored row and the capacity delta, never taken from c.
func (f *fakeConferenceRepo) Update(ctx context.Context, c *domain.Conference) error {
	stored, ok := f.byID[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	seats := stored.SeatsAvailable + c.MaxAttendees - stored.MaxAttendees
	c.SeatsAvailable = min(max(seats, 0), c.MaxAttendees)
	f.byID[c.ID] = c
	return nil
}

// fakeSessionRepo implements domain.SessionRepository for tests.
type fakeSessionRepo struct {
	byID             map[string]*domain.Session
	byConference     map[string][]*domain.Session
	createErr        error
	lastCompiled     *query.Compiled
	lastConferenceID string
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		byID:         make(map[string]*domain.Session),
		byConference: make(map[string][]*domain.Session),
	}
}

func (f *fakeSessionRepo) add(s *domain.Session) {
	f.byID[s.ID] = s
	f.byConference[s.ConferenceID] = append(f.byConference[s.ConferenceID], s)
}

func (f *fakeSessionRepo) Create(ctx context.Context, s *domain.Session) error {
	if f.createErr != nil {
		return f.createErr
	}
	s.ID = "sess-created"
	f.add(s)
	return nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	if s, ok := f.byID[id]; ok {
		return s, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSessionRepo) ListByConferenceID(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	return f.byConference[conferenceID], nil
}

func (f *fakeSessionRepo) ListByType(ctx context.Context, conferenceID, typeOfSession string) ([]*domain.Session, error) {
	var out []*domain.Session
	for _, s := range f.byConference[conferenceID] {
		if s.TypeOfSession == typeOfSession {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListBySpeaker(ctx context.Context, speakerKey string) ([]*domain.Session, error) {
	var out []*domain.Session
	for _, sessions := range f.byConference {
		for _, s := range sessions {
			if s.SpeakerKey == speakerKey {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListByIDs(ctx context.Context, ids []string) ([]*domain.Session, error) {
	out := make([]*domain.Session, 0, len(ids))
	for _, id := range ids {
		if s, ok := f.byID[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) Query(ctx context.Context, compiled *query.Compiled) ([]*domain.Session, error) {
	return nil, nil
}

func (f *fakeSessionRepo) QueryByConference(ctx context.Context, conferenceID string, compiled *query.Compiled) ([]*domain.Session, error) {
	f.lastConferenceID = conferenceID
	f.lastCompiled = compiled
	return f.byConference[conferenceID], nil
}

func (f *fakeSessionRepo) ListByTypeBeforeTime(ctx context.Context, typeOfSession string, beforeMinutes int) ([]*domain.Session, error) {
	return nil, nil
}

func (f *fakeSessionRepo) ListExcludingTypeBeforeTime(ctx context.Context, typeOfSession string, beforeMinutes int) ([]*domain.Session, error) {
	return nil, nil
}

// fakeRegistrationRepo implements domain.RegistrationRepository for tests.
type fakeRegistrationRepo struct {
	registerErr error
	removed     bool
	wishlistErr error
}

func (f *fakeRegistrationRepo) RegisterForConference(ctx context.Context, profileID, conferenceID string) error {
	return f.registerErr
}

func (f *fakeRegistrationRepo) UnregisterFromConference(ctx context.Context, profileID, conferenceID string) (bool, error) {
	return f.removed, f.registerErr
}

func (f *fakeRegistrationRepo) AddSessionToWishlist(ctx context.Context, profileID, sessionID string) error {
	return f.wishlistErr
}

func (f *fakeRegistrationRepo) RemoveSessionFromWishlist(ctx context.Context, profileID, sessionID string) (bool, error) {
	return f.removed, f.wishlistErr
}

// fakeCache implements domain.Cache for tests.
type fakeCache struct {
	entries map[domain.CacheKey][]byte
	getErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[domain.CacheKey][]byte)}
}

func (f *fakeCache) Get(ctx context.Context, key domain.CacheKey) ([]byte, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	v, ok := f.entries[key]
	return v, ok, nil
}

func (f *fakeCache) Set(ctx context.Context, key domain.CacheKey, value []byte) error {
	f.entries[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key domain.CacheKey) error {
	delete(f.entries, key)
	return nil
}

// fakeTaskQueue records enqueued tasks.
type fakeTaskQueue struct {
	tasks []enqueuedTask
	err   error
}

type enqueuedTask struct {
	name   string
	params map[string]string
}

func (f *fakeTaskQueue) Enqueue(ctx context.Context, name string, params map[string]string) error {
	if f.err != nil {
		return f.err
	}
	f.tasks = append(f.tasks, enqueuedTask{name: name, params: params})
	return nil
}

// fakePasswordHasher implements domain.PasswordHasher for tests.
type fakePasswordHasher struct {
	salt string
	hash string
}

func (f *fakePasswordHasher) GenerateSalt() (string, error) { return f.salt, nil }

func (f *fakePasswordHasher) Hash(salt, password string) (string, error) {
	if f.hash != "" {
		return f.hash, nil
	}
	return "hash-" + password, nil
}

func (f *fakePasswordHasher) Compare(hash, salt, password string) error {
	if hash != "hash-"+password && hash != f.hash {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	err error
}

func (f *fakeTokenIssuer) Issue(profileID, email string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-" + profileID, nil
}

const testTimeout = 2 * time.Second
