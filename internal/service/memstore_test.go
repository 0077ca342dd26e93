package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/tutor_market/internal/model"
)

// memDB хранилище в памяти для сценарных тестов.
// Транзакции выполняются по одной и откатываются при ошибке.
type memDB struct {
	mu   sync.Mutex
	txMu sync.Mutex

	seq           int64
	users         map[string]model.User
	listings      map[listingKey]model.Listing
	applications  map[int64]model.Application
	appointments  map[int64]model.Appointment
	notifications []model.Notification
	points        []model.PointRecord
	blacklist     map[[2]string]time.Time
	reviews       []model.Review
}

type listingKey struct {
	id int64
	t  model.ListingType
}

type memTxKey struct{}

func newMemDB() *memDB {
	return &memDB{
		users:        map[string]model.User{},
		listings:     map[listingKey]model.Listing{},
		applications: map[int64]model.Application{},
		appointments: map[int64]model.Appointment{},
		blacklist:    map[[2]string]time.Time{},
	}
}

func (db *memDB) nextID() int64 {
	db.seq++
	return db.seq
}

type memSnapshot struct {
	seq           int64
	users         map[string]model.User
	listings      map[listingKey]model.Listing
	applications  map[int64]model.Application
	appointments  map[int64]model.Appointment
	notifications []model.Notification
	points        []model.PointRecord
	blacklist     map[[2]string]time.Time
	reviews       []model.Review
}

func (db *memDB) snapshot() memSnapshot {
	db.mu.Lock()
	defer db.mu.Unlock()

	s := memSnapshot{
		seq:           db.seq,
		users:         make(map[string]model.User, len(db.users)),
		listings:      make(map[listingKey]model.Listing, len(db.listings)),
		applications:  make(map[int64]model.Application, len(db.applications)),
		appointments:  make(map[int64]model.Appointment, len(db.appointments)),
		notifications: append([]model.Notification(nil), db.notifications...),
		points:        append([]model.PointRecord(nil), db.points...),
		blacklist:     make(map[[2]string]time.Time, len(db.blacklist)),
		reviews:       append([]model.Review(nil), db.reviews...),
	}
	for k, v := range db.users {
		s.users[k] = v
	}
	for k, v := range db.listings {
		s.listings[k] = v
	}
	for k, v := range db.applications {
		s.applications[k] = v
	}
	for k, v := range db.appointments {
		s.appointments[k] = v
	}
	for k, v := range db.blacklist {
		s.blacklist[k] = v
	}
	return s
}

func (db *memDB) restore(s memSnapshot) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.seq = s.seq
	db.users = s.users
	db.listings = s.listings
	db.applications = s.applications
	db.appointments = s.appointments
	db.notifications = s.notifications
	db.points = s.points
	db.blacklist = s.blacklist
	db.reviews = s.reviews
}

func (db *memDB) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(memTxKey{}) != nil {
		return fn(ctx)
	}

	db.txMu.Lock()
	defer db.txMu.Unlock()

	snap := db.snapshot()
	if err := fn(context.WithValue(ctx, memTxKey{}, true)); err != nil {
		db.restore(snap)
		return err
	}
	return nil
}

// helpers для проверок в тестах

func (db *memDB) application(id int64) model.Application {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.applications[id]
}

func (db *memDB) listing(id int64, t model.ListingType) model.Listing {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.listings[listingKey{id, t}]
}

func (db *memDB) user(id string) model.User {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.users[id]
}

func (db *memDB) allAppointments() []model.Appointment {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]model.Appointment, 0, len(db.appointments))
	for _, a := range db.appointments {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (db *memDB) notificationsFor(userID string) []model.Notification {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []model.Notification
	for _, n := range db.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

func (db *memDB) countApplications(listingID int64, t model.ListingType, status model.ApplicationStatus) int {
	db.mu.Lock()
	defer db.mu.Unlock()
	n := 0
	for _, a := range db.applications {
		if a.ListingID == listingID && a.ListingType == t && a.Status == status {
			n++
		}
	}
	return n
}

type memUsers struct{ db *memDB }

func (s memUsers) Create(_ context.Context, user *model.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.users[user.ID]; ok {
		return model.ErrUserExists
	}
	user.CreatedAt = time.Now()
	s.db.users[user.ID] = *user
	return nil
}

func (s memUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s memUsers) GetByTelegramChatID(_ context.Context, chatID int64) (*model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.TelegramChatID != nil && *u.TelegramChatID == chatID {
			return &u, nil
		}
	}
	return nil, nil
}

func (s memUsers) SetTelegramChatID(_ context.Context, userID string, chatID int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[userID]
	if !ok {
		return model.ErrUserNotFound
	}
	u.TelegramChatID = &chatID
	s.db.users[userID] = u
	return nil
}

func (s memUsers) ClearTelegramChatID(_ context.Context, chatID int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for id, u := range s.db.users {
		if u.TelegramChatID != nil && *u.TelegramChatID == chatID {
			u.TelegramChatID = nil
			s.db.users[id] = u
		}
	}
	return nil
}

func (s memUsers) SetPoints(_ context.Context, userID string, points int) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u := s.db.users[userID]
	u.Points = points
	s.db.users[userID] = u
	return nil
}

type memListings struct{ db *memDB }

func (s memListings) Create(_ context.Context, l *model.Listing) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	l.ID = s.db.nextID()
	if l.Status == "" {
		l.Status = l.Type.OpenStatus()
	}
	l.CreatedAt = time.Now()
	l.UpdatedAt = l.CreatedAt
	s.db.listings[listingKey{l.ID, l.Type}] = *l
	return nil
}

func (s memListings) GetByID(_ context.Context, id int64, t model.ListingType) (*model.Listing, error) {
	if !t.Valid() {
		return nil, model.ErrInvalidListingType
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	l, ok := s.db.listings[listingKey{id, t}]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (s memListings) SetStatus(_ context.Context, id int64, t model.ListingType, status model.ListingStatus) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	l, ok := s.db.listings[listingKey{id, t}]
	if !ok {
		return model.ErrListingNotFound
	}
	l.Status = status
	s.db.listings[listingKey{id, t}] = l
	return nil
}

func (s memListings) ListOpen(_ context.Context, t model.ListingType, subjectName string) ([]*model.Listing, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []*model.Listing
	for k, l := range s.db.listings {
		if k.t != t || l.Status != t.OpenStatus() {
			continue
		}
		if subjectName != "" && l.SubjectName != subjectName {
			continue
		}
		l := l
		out = append(out, &l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memApplications struct{ db *memDB }

func (s memApplications) Create(_ context.Context, app *model.Application) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, a := range s.db.applications {
		if a.ListingID == app.ListingID && a.ListingType == app.ListingType && a.ApplicantID == app.ApplicantID {
			return model.ErrDuplicateApplication
		}
	}
	app.ID = s.db.nextID()
	app.CreatedAt = time.Now()
	app.UpdatedAt = app.CreatedAt
	s.db.applications[app.ID] = *app
	return nil
}

func (s memApplications) GetByID(_ context.Context, id int64) (*model.Application, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	a, ok := s.db.applications[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (s memApplications) Exists(_ context.Context, listingID int64, t model.ListingType, applicantID string) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, a := range s.db.applications {
		if a.ListingID == listingID && a.ListingType == t && a.ApplicantID == applicantID {
			return true, nil
		}
	}
	return false, nil
}

func (s memApplications) LockByListing(ctx context.Context, listingID int64, t model.ListingType) ([]*model.Application, error) {
	return s.ListByListing(ctx, listingID, t)
}

func (s memApplications) setStatus(id int64, status model.ApplicationStatus) (bool, error) {
	a, ok := s.db.applications[id]
	if !ok {
		return false, nil
	}
	candidate := model.Application{Status: status}
	if candidate.HoldsListing() {
		for _, other := range s.db.applications {
			if other.ID != id && other.ListingID == a.ListingID && other.ListingType == a.ListingType &&
				other.HoldsListing() {
				return false, model.ErrAlreadyAccepted
			}
		}
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	s.db.applications[id] = a
	return true, nil
}

func (s memApplications) UpdateStatus(_ context.Context, id int64, status model.ApplicationStatus) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.setStatus(id, status)
}

func (s memApplications) UpdateStatusFrom(_ context.Context, id int64, from, to model.ApplicationStatus) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if a, ok := s.db.applications[id]; !ok || a.Status != from {
		return false, nil
	}
	return s.setStatus(id, to)
}

func (s memApplications) ListByListing(_ context.Context, listingID int64, t model.ListingType) ([]*model.Application, error) {
	return s.filter(func(a model.Application) bool { return a.ListingID == listingID && a.ListingType == t }), nil
}

func (s memApplications) ListByApplicant(_ context.Context, applicantID string) ([]*model.Application, error) {
	return s.filter(func(a model.Application) bool { return a.ApplicantID == applicantID }), nil
}

func (s memApplications) ListPendingByOwner(_ context.Context, ownerID string) ([]*model.Application, error) {
	s.db.mu.Lock()
	owned := map[listingKey]bool{}
	for k, l := range s.db.listings {
		if l.OwnerID == ownerID {
			owned[k] = true
		}
	}
	s.db.mu.Unlock()

	return s.filter(func(a model.Application) bool {
		return a.IsPending() && owned[listingKey{a.ListingID, a.ListingType}]
	}), nil
}

func (s memApplications) filter(keep func(model.Application) bool) []*model.Application {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []*model.Application
	for _, a := range s.db.applications {
		if keep(a) {
			a := a
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type memAppointments struct{ db *memDB }

func (s memAppointments) Create(_ context.Context, a *model.Appointment) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	a.ID = s.db.nextID()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	s.db.appointments[a.ID] = *a
	return nil
}

func (s memAppointments) GetByID(_ context.Context, id int64) (*model.Appointment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	a, ok := s.db.appointments[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (s memAppointments) UpdateStatus(_ context.Context, id int64, from, to model.AppointmentStatus) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	a, ok := s.db.appointments[id]
	if !ok || a.Status != from {
		return false, nil
	}
	a.Status = to
	s.db.appointments[id] = a
	return true, nil
}

func (s memAppointments) ListByUser(_ context.Context, userID string) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range s.db.allAppointments() {
		if a.HasParty(userID) {
			a := a
			out = append(out, &a)
		}
	}
	return out, nil
}

func (s memAppointments) ListByTutor(_ context.Context, tutorID string) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range s.db.allAppointments() {
		if a.TutorID == tutorID {
			a := a
			out = append(out, &a)
		}
	}
	return out, nil
}

type memPoints struct{ db *memDB }

func (s memPoints) Create(_ context.Context, r *model.PointRecord) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	r.ID = s.db.nextID()
	r.CreatedAt = time.Now()
	s.db.points = append(s.db.points, *r)
	return nil
}

func (s memPoints) SumByUser(_ context.Context, userID string) (int, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	total := 0
	for _, r := range s.db.points {
		if r.UserID == userID {
			total += r.Points
		}
	}
	return total, nil
}

func (s memPoints) ListByUser(_ context.Context, userID string) ([]*model.PointRecord, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []*model.PointRecord
	for _, r := range s.db.points {
		if r.UserID == userID {
			r := r
			out = append(out, &r)
		}
	}
	return out, nil
}

type memNotifications struct{ db *memDB }

func (s memNotifications) Create(_ context.Context, n *model.Notification) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	n.ID = s.db.nextID()
	n.CreatedAt = time.Now()
	s.db.notifications = append(s.db.notifications, *n)
	return nil
}

func (s memNotifications) ListByUser(_ context.Context, userID string, limit, offset int) ([]*model.Notification, error) {
	var out []*model.Notification
	for _, n := range s.db.notificationsFor(userID) {
		n := n
		out = append(out, &n)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s memNotifications) CountUnread(_ context.Context, userID string) (int, error) {
	count := 0
	for _, n := range s.db.notificationsFor(userID) {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (s memNotifications) MarkRead(_ context.Context, id int64, userID string) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for i := range s.db.notifications {
		if s.db.notifications[i].ID == id && s.db.notifications[i].UserID == userID {
			s.db.notifications[i].IsRead = true
			return true, nil
		}
	}
	return false, nil
}

func (s memNotifications) MarkAllRead(_ context.Context, userID string) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var n int64
	for i := range s.db.notifications {
		if s.db.notifications[i].UserID == userID && !s.db.notifications[i].IsRead {
			s.db.notifications[i].IsRead = true
			n++
		}
	}
	return n, nil
}

type memBlacklist struct{ db *memDB }

func (s memBlacklist) Exists(_ context.Context, userID, blockedUserID string) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	_, ok := s.db.blacklist[[2]string{userID, blockedUserID}]
	return ok, nil
}

func (s memBlacklist) Create(_ context.Context, e *model.BlacklistEntry) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	key := [2]string{e.UserID, e.BlockedUserID}
	if _, ok := s.db.blacklist[key]; ok {
		return model.ErrAlreadyBlocked
	}
	e.ID = s.db.nextID()
	e.CreatedAt = time.Now()
	s.db.blacklist[key] = e.CreatedAt
	return nil
}

func (s memBlacklist) Delete(_ context.Context, userID, blockedUserID string) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	key := [2]string{userID, blockedUserID}
	if _, ok := s.db.blacklist[key]; !ok {
		return false, nil
	}
	delete(s.db.blacklist, key)
	return true, nil
}

func (s memBlacklist) ListByUser(_ context.Context, userID string) ([]*model.BlacklistEntry, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []*model.BlacklistEntry
	for k, at := range s.db.blacklist {
		if k[0] == userID {
			out = append(out, &model.BlacklistEntry{UserID: k[0], BlockedUserID: k[1], CreatedAt: at})
		}
	}
	return out, nil
}

type memReviews struct{ db *memDB }

func (s memReviews) Create(_ context.Context, rv *model.Review) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, other := range s.db.reviews {
		if other.AppointmentID == rv.AppointmentID && other.ReviewerID == rv.ReviewerID {
			return model.ErrDuplicateReview
		}
	}
	rv.ID = s.db.nextID()
	rv.CreatedAt = time.Now()
	s.db.reviews = append(s.db.reviews, *rv)
	return nil
}

func (s memReviews) GetByID(_ context.Context, id int64) (*model.Review, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, rv := range s.db.reviews {
		if rv.ID == id {
			return &rv, nil
		}
	}
	return nil, nil
}

func (s memReviews) ListByReviewed(_ context.Context, userID string) ([]*model.Review, error) {
	return s.filter(func(rv model.Review) bool { return rv.ReviewedID == userID }), nil
}

func (s memReviews) ListByReviewer(_ context.Context, userID string) ([]*model.Review, error) {
	return s.filter(func(rv model.Review) bool { return rv.ReviewerID == userID }), nil
}

func (s memReviews) Summary(ctx context.Context, userID string) (*model.RatingSummary, error) {
	reviews, _ := s.ListByReviewed(ctx, userID)
	summary := &model.RatingSummary{UserID: userID, ReviewCount: len(reviews)}
	if len(reviews) == 0 {
		return summary, nil
	}
	total := 0
	for _, rv := range reviews {
		total += rv.Rating
	}
	summary.Rating = float64(total) / float64(len(reviews))
	return summary, nil
}

func (s memReviews) filter(keep func(model.Review) bool) []*model.Review {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []*model.Review
	for _, rv := range s.db.reviews {
		if keep(rv) {
			rv := rv
			out = append(out, &rv)
		}
	}
	return out
}
