package services

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/yigit/campushub/internal/app/models"
	"github.com/yigit/campushub/internal/app/models/dto"
	"github.com/yigit/campushub/internal/pkg/apperrors"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// fakeDirectory is an in-memory user table serving IdentityLookup and UserReader
type fakeDirectory struct {
	mu    sync.Mutex
	users map[int64]*models.UserIdentity
	err   error
	calls int
}

func newFakeDirectory(names map[int64]string) *fakeDirectory {
	d := &fakeDirectory{users: make(map[int64]*models.UserIdentity)}
	for id, name := range names {
		d.users[id] = &models.UserIdentity{ID: id, Name: name}
	}
	return d
}

func (d *fakeDirectory) GetIdentities(_ context.Context, ids []int64) (map[int64]*models.UserIdentity, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	out := make(map[int64]*models.UserIdentity, len(ids))
	for _, id := range ids {
		if u, ok := d.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (d *fakeDirectory) Exists(_ context.Context, id int64) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.users[id]
	return ok, nil
}

type pushed struct {
	userID  int64
	event   string
	payload interface{}
}

// recordingPusher captures realtime emits
type recordingPusher struct {
	mu     sync.Mutex
	pushes []pushed
}

func (p *recordingPusher) EmitToUser(userID int64, event string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushes = append(p.pushes, pushed{userID: userID, event: event, payload: payload})
}

func (p *recordingPusher) to(userID int64) []pushed {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []pushed
	for _, e := range p.pushes {
		if e.userID == userID {
			out = append(out, e)
		}
	}
	return out
}

// recordingNotifier captures notify requests without a store
type recordingNotifier struct {
	mu       sync.Mutex
	requests []NotifyRequest
}

func (n *recordingNotifier) Notify(_ context.Context, req NotifyRequest) *dto.NotificationResponse {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.requests = append(n.requests, req)
	if req.OriginatorID != nil && *req.OriginatorID == req.ReceiverID {
		return nil
	}
	return &dto.NotificationResponse{Type: req.Type, Message: req.Message, Link: req.Link}
}

func (n *recordingNotifier) receivers() []int64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]int64, 0, len(n.requests))
	for _, r := range n.requests {
		out = append(out, r.ReceiverID)
	}
	return out
}

// fakeNotificationStore keeps notifications in insertion order
type fakeNotificationStore struct {
	mu        sync.Mutex
	items     []*models.Notification
	createErr error
	now       func() time.Time
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{now: time.Now}
}

func (s *fakeNotificationStore) Create(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	n.ID = bson.NewObjectID()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now()
	}
	copied := *n
	s.items = append(s.items, &copied)
	return nil
}

func (s *fakeNotificationStore) ListByReceiver(_ context.Context, receiverID int64, limit int) ([]*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Notification
	for i := len(s.items) - 1; i >= 0 && len(out) < limit; i-- {
		if s.items[i].ReceiverID == receiverID {
			copied := *s.items[i]
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *fakeNotificationStore) MarkAllRead(_ context.Context, receiverID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, item := range s.items {
		if item.ReceiverID == receiverID && !item.IsRead {
			item.IsRead = true
			n++
		}
	}
	return n, nil
}

func (s *fakeNotificationStore) MarkRead(_ context.Context, id bson.ObjectID, receiverID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.ID == id && item.ReceiverID == receiverID {
			item.IsRead = true
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeNotificationStore) CountUnread(_ context.Context, receiverID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, item := range s.items {
		if item.ReceiverID == receiverID && !item.IsRead {
			n++
		}
	}
	return n, nil
}

func (s *fakeNotificationStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	var deleted int64
	for _, item := range s.items {
		if item.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, item)
	}
	s.items = kept
	return deleted, nil
}

func (s *fakeNotificationStore) forReceiver(receiverID int64) []*models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Notification
	for _, item := range s.items {
		if item.ReceiverID == receiverID {
			out = append(out, item)
		}
	}
	return out
}

func (s *fakeNotificationStore) readState(receiverID int64) map[bson.ObjectID]bool {
	state := make(map[bson.ObjectID]bool)
	for _, item := range s.forReceiver(receiverID) {
		state[item.ID] = item.IsRead
	}
	return state
}

// fakePostStore orders posts newest first by CreatedAt
type fakePostStore struct {
	mu    sync.Mutex
	posts map[bson.ObjectID]*models.Post
	reads int
	clock time.Time
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{
		posts: make(map[bson.ObjectID]*models.Post),
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *fakePostStore) Create(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = s.clock.Add(time.Minute)
	post.ID = bson.NewObjectID()
	post.CreatedAt = s.clock
	post.UpdatedAt = s.clock
	copied := *post
	s.posts[post.ID] = &copied
	return nil
}

func (s *fakePostStore) GetByID(_ context.Context, id bson.ObjectID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	post, ok := s.posts[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("Post not found")
	}
	copied := *post
	return &copied, nil
}

func (s *fakePostStore) ListFeed(_ context.Context, q models.FeedQuery) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Post
	for _, p := range s.posts {
		if feedVisible(q, p) {
			copied := *p
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// feedVisible mirrors the document store's feed filter for a single post
func feedVisible(q models.FeedQuery, p *models.Post) bool {
	if p.Visibility == models.VisibilityPublic {
		return true
	}
	for _, id := range q.AuthorIDs {
		if p.UserID == id {
			return true
		}
	}
	return false
}

func (s *fakePostStore) IncrementLikes(_ context.Context, id bson.ObjectID, delta int64) (*models.Post, error) {
	return s.bump(id, delta, func(p *models.Post) *int64 { return &p.LikesCount })
}

func (s *fakePostStore) IncrementComments(_ context.Context, id bson.ObjectID, delta int64) (*models.Post, error) {
	return s.bump(id, delta, func(p *models.Post) *int64 { return &p.CommentsCount })
}

func (s *fakePostStore) bump(id bson.ObjectID, delta int64, field func(*models.Post) *int64) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("Post not found")
	}
	counter := field(post)
	if *counter+delta < 0 {
		return nil, apperrors.NewConflictError("counter would go negative")
	}
	*counter += delta
	copied := *post
	return &copied, nil
}

type fakeCommentStore struct {
	mu       sync.Mutex
	comments []*models.Comment
}

func (s *fakeCommentStore) Create(_ context.Context, c *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = bson.NewObjectID()
	c.CreatedAt = time.Now()
	copied := *c
	s.comments = append(s.comments, &copied)
	return nil
}

func (s *fakeCommentStore) ListByPost(_ context.Context, postID bson.ObjectID) ([]*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Comment
	for _, c := range s.comments {
		if c.PostID == postID {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

type likeKey struct {
	post bson.ObjectID
	user int64
}

type fakeLikeStore struct {
	mu        sync.Mutex
	likes     map[likeKey]bool
	existsErr error
}

func newFakeLikeStore() *fakeLikeStore {
	return &fakeLikeStore{likes: make(map[likeKey]bool)}
}

func (s *fakeLikeStore) Create(_ context.Context, like *models.Like) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := likeKey{like.PostID, like.UserID}
	if s.likes[key] {
		return &apperrors.CustomError{Err: apperrors.ErrConflict, Cause: apperrors.ErrAlreadyLiked, Message: "You have already liked this post."}
	}
	s.likes[key] = true
	return nil
}

func (s *fakeLikeStore) Delete(_ context.Context, postID bson.ObjectID, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := likeKey{postID, userID}
	if !s.likes[key] {
		return false, nil
	}
	delete(s.likes, key)
	return true, nil
}

func (s *fakeLikeStore) Exists(_ context.Context, postID bson.ObjectID, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.existsErr != nil {
		return false, s.existsErr
	}
	return s.likes[likeKey{postID, userID}], nil
}

func (s *fakeLikeStore) LikedPostIDs(_ context.Context, userID int64, postIDs []bson.ObjectID) (map[bson.ObjectID]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[bson.ObjectID]bool)
	for _, id := range postIDs {
		if s.likes[likeKey{id, userID}] {
			out[id] = true
		}
	}
	return out, nil
}

type followKey struct{ follower, following int64 }

type fakeFollowStore struct {
	mu    sync.Mutex
	edges map[followKey]bool
}

func newFakeFollowStore() *fakeFollowStore {
	return &fakeFollowStore{edges: make(map[followKey]bool)}
}

func (s *fakeFollowStore) Create(_ context.Context, f *models.Follow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := followKey{f.FollowerID, f.FollowingID}
	if s.edges[key] {
		return &apperrors.CustomError{Err: apperrors.ErrConflict, Cause: apperrors.ErrAlreadyFollowing, Message: "You are already following this user."}
	}
	s.edges[key] = true
	return nil
}

func (s *fakeFollowStore) Delete(_ context.Context, followerID, followingID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := followKey{followerID, followingID}
	if !s.edges[key] {
		return false, nil
	}
	delete(s.edges, key)
	return true, nil
}

func (s *fakeFollowStore) FollowingIDs(_ context.Context, followerID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []int64
	for key := range s.edges {
		if key.follower == followerID {
			out = append(out, key.following)
		}
	}
	return out, nil
}

// fakeCache stores JSON like the redis cache does
type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	hits    int
	getErr  error
	setErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return false, c.getErr
	}
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(raw, dest)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// fakeEventStore holds events, their participants and announcements
type fakeEventStore struct {
	mu            sync.Mutex
	events        map[int64]*models.Event
	participants  map[int64][]int64
	announcements []*models.Announcement
	reminded      map[int64]bool
	listErr       error
	nextID        int64
}

func newFakeEventStore(events ...*models.Event) *fakeEventStore {
	s := &fakeEventStore{
		events:       make(map[int64]*models.Event),
		participants: make(map[int64][]int64),
		reminded:     make(map[int64]bool),
		nextID:       1000,
	}
	for _, e := range events {
		s.events[e.ID] = e
	}
	return s
}

func (s *fakeEventStore) Create(_ context.Context, e *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	e.ID = s.nextID
	e.CreatedAt = time.Now()
	copied := *e
	s.events[e.ID] = &copied
	return nil
}

func (s *fakeEventStore) List(_ context.Context) ([]*models.EventSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.EventSummary, 0, len(s.events))
	for _, e := range s.events {
		copied := *e
		out = append(out, &models.EventSummary{Event: &copied, RegistrationCount: len(s.participants[e.ID])})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Event.ID < out[j].Event.ID })
	return out, nil
}

func (s *fakeEventStore) ClaimDueReminders(_ context.Context, from, until time.Time) ([]*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Event
	for id, e := range s.events {
		if s.reminded[id] || e.EventDate == nil {
			continue
		}
		if e.EventDate.After(from) && !e.EventDate.After(until) {
			s.reminded[id] = true
			copied := *e
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeEventStore) GetByID(_ context.Context, id int64) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("Event not found")
	}
	copied := *e
	return &copied, nil
}

func (s *fakeEventStore) ListParticipantIDs(_ context.Context, eventID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]int64(nil), s.participants[eventID]...), nil
}

func (s *fakeEventStore) CreateAnnouncement(_ context.Context, a *models.Announcement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = int64(len(s.announcements) + 1)
	a.CreatedAt = time.Now()
	s.announcements = append(s.announcements, a)
	return nil
}

// fakeRegistrationStore applies the same guards as the relational transaction
// under a single lock: capacity, participant uniqueness and team name uniqueness.
type fakeRegistrationStore struct {
	mu            sync.Mutex
	events        *fakeEventStore
	registrations []*models.Registration
	participants  map[int64]map[int64]bool
	teamNames     map[int64]map[string]bool
	nextID        int64
}

func newFakeRegistrationStore(events *fakeEventStore) *fakeRegistrationStore {
	return &fakeRegistrationStore{
		events:       events,
		participants: make(map[int64]map[int64]bool),
		teamNames:    make(map[int64]map[string]bool),
	}
}

func (s *fakeRegistrationStore) CountByEvent(_ context.Context, eventID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countLocked(eventID), nil
}

func (s *fakeRegistrationStore) countLocked(eventID int64) int {
	n := 0
	for _, r := range s.registrations {
		if r.EventID == eventID {
			n++
		}
	}
	return n
}

func (s *fakeRegistrationStore) FindRegisteredUsers(_ context.Context, eventID int64, userIDs []int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []int64
	for _, id := range userIDs {
		if s.participants[eventID][id] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (s *fakeRegistrationStore) guardLocked(ctx context.Context, eventID int64, userIDs []int64) error {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.IsFull(s.countLocked(eventID)) {
		return apperrors.NewEventFullError()
	}
	for _, id := range userIDs {
		if s.participants[eventID][id] {
			return apperrors.NewDuplicateRegistrationError("")
		}
	}
	return nil
}

func (s *fakeRegistrationStore) addParticipantsLocked(eventID int64, userIDs []int64) {
	if s.participants[eventID] == nil {
		s.participants[eventID] = make(map[int64]bool)
	}
	for _, id := range userIDs {
		s.participants[eventID][id] = true
	}
}

func (s *fakeRegistrationStore) CreateTeamRegistration(ctx context.Context, p models.TeamRegistrationParams) (*models.TeamRegistration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardLocked(ctx, p.EventID, p.MemberIDs); err != nil {
		return nil, err
	}
	if s.teamNames[p.EventID][p.TeamName] {
		return nil, &apperrors.CustomError{Err: apperrors.ErrConflict, Cause: apperrors.ErrTeamNameTaken, Message: "Team name already taken for this event."}
	}
	if s.teamNames[p.EventID] == nil {
		s.teamNames[p.EventID] = make(map[string]bool)
	}
	s.teamNames[p.EventID][p.TeamName] = true

	s.nextID++
	team := &models.Team{ID: s.nextID, EventID: p.EventID, Name: p.TeamName}
	for _, id := range p.MemberIDs {
		team.Members = append(team.Members, &models.TeamMember{TeamID: team.ID, UserID: id, IsLeader: id == p.LeaderID})
	}
	reg := &models.Registration{ID: s.nextID, EventID: p.EventID, TeamID: &team.ID, PaymentStatus: p.PaymentStatus}
	s.registrations = append(s.registrations, reg)
	s.addParticipantsLocked(p.EventID, p.MemberIDs)
	return &models.TeamRegistration{Team: team, Registration: reg}, nil
}

func (s *fakeRegistrationStore) CreateIndividualRegistration(ctx context.Context, p models.IndividualRegistrationParams) (*models.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardLocked(ctx, p.EventID, []int64{p.UserID}); err != nil {
		return nil, err
	}
	s.nextID++
	userID := p.UserID
	reg := &models.Registration{ID: s.nextID, EventID: p.EventID, UserID: &userID, PaymentStatus: p.PaymentStatus}
	s.registrations = append(s.registrations, reg)
	s.addParticipantsLocked(p.EventID, []int64{p.UserID})
	return reg, nil
}

// fakeClubStore keeps clubs and their member sets
type fakeClubStore struct {
	mu      sync.Mutex
	clubs   map[int64]*models.Club
	members map[int64]map[int64]bool
	nextID  int64
}

func newFakeClubStore(clubs ...*models.Club) *fakeClubStore {
	s := &fakeClubStore{clubs: make(map[int64]*models.Club), members: make(map[int64]map[int64]bool)}
	for _, c := range clubs {
		s.clubs[c.ID] = c
		s.members[c.ID] = make(map[int64]bool)
		if c.ID > s.nextID {
			s.nextID = c.ID
		}
	}
	return s
}

func (s *fakeClubStore) Create(_ context.Context, c *models.Club) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.clubs {
		if existing.Name == c.Name {
			return apperrors.NewConflictError("A club with this name already exists")
		}
	}
	s.nextID++
	c.ID = s.nextID
	c.CreatedAt = time.Now()
	c.MemberCount = 1
	copied := *c
	s.clubs[c.ID] = &copied
	s.members[c.ID] = map[int64]bool{c.OrganizerID: true}
	return nil
}

func (s *fakeClubStore) GetByID(_ context.Context, id int64) (*models.Club, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clubs[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("Club not found")
	}
	copied := *c
	copied.MemberCount = len(s.members[id])
	return &copied, nil
}

func (s *fakeClubStore) List(_ context.Context) ([]*models.Club, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Club, 0, len(s.clubs))
	for id, c := range s.clubs {
		copied := *c
		copied.MemberCount = len(s.members[id])
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *fakeClubStore) AddMember(_ context.Context, clubID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clubs[clubID]; !ok {
		return apperrors.NewResourceNotFoundError("Club not found")
	}
	if s.members[clubID][userID] {
		return apperrors.NewConflictError("User is already a member")
	}
	s.members[clubID][userID] = true
	return nil
}

func (s *fakeClubStore) RemoveMember(_ context.Context, clubID, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.members[clubID][userID] {
		return false, nil
	}
	delete(s.members[clubID], userID)
	return true, nil
}

func (s *fakeClubStore) MemberIDs(_ context.Context, clubID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int64, 0, len(s.members[clubID]))
	for id := range s.members[clubID] {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// fakeUserTable serves full user rows
type fakeUserTable map[int64]*models.User

func (t fakeUserTable) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := t[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("User not found")
	}
	copied := *u
	return &copied, nil
}

type fakeResultStore struct {
	mu      sync.Mutex
	results map[int64]*models.Result
}

func newFakeResultStore() *fakeResultStore {
	return &fakeResultStore{results: make(map[int64]*models.Result)}
}

func (s *fakeResultStore) ExistsForEvent(_ context.Context, eventID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.results[eventID]
	return ok, nil
}

func (s *fakeResultStore) Create(_ context.Context, r *models.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.results[r.EventID]; ok {
		return &apperrors.CustomError{Err: apperrors.ErrConflict, Cause: apperrors.ErrResultExists, Message: "Results for this event have already been posted"}
	}
	r.ID = int64(len(s.results) + 1)
	s.results[r.EventID] = r
	return nil
}
