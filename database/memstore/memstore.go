// Package memstore keeps every table in process memory. It backs STORE_DRIVER=memory for
// local runs and the service tests; it is not durable.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/anjiri1684/mentorship/database"
	"github.com/anjiri1684/mentorship/models"
	"github.com/google/uuid"
)

type Stores struct {
	Bookings      *BookingStore
	Mentors       *MentorStore
	Notifications *NotificationStore
	Users         *UserStore
}

type state struct {
	mu sync.RWMutex

	users         map[uuid.UUID]models.User
	mentors       map[uuid.UUID]models.Mentor
	bookings      map[uuid.UUID]models.Booking
	notifications map[uuid.UUID]models.Notification

	// insertion order, oldest first
	bookingOrder      []uuid.UUID
	notificationOrder []uuid.UUID
	mentorOrder       []uuid.UUID
}

func New() *Stores {
	s := &state{
		users:         make(map[uuid.UUID]models.User),
		mentors:       make(map[uuid.UUID]models.Mentor),
		bookings:      make(map[uuid.UUID]models.Booking),
		notifications: make(map[uuid.UUID]models.Notification),
	}
	return &Stores{
		Bookings:      &BookingStore{s: s},
		Mentors:       &MentorStore{s: s},
		Notifications: &NotificationStore{s: s},
		Users:         &UserStore{s: s},
	}
}

func stamp(created, updated *time.Time) {
	now := time.Now()
	if created.IsZero() {
		*created = now
	}
	if updated != nil && updated.IsZero() {
		*updated = now
	}
}

func page[T any](items []T, limit, offset int) []T {
	if limit <= 0 {
		return items
	}
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// BookingStore

type BookingStore struct {
	s *state
}

func (b *BookingStore) Create(_ context.Context, booking *models.Booking) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	if _, exists := b.s.bookings[booking.ID]; exists {
		return database.ErrDuplicate
	}
	if _, ok := b.s.mentors[booking.MentorID]; !ok {
		return database.ErrNotFound
	}
	stamp(&booking.CreatedAt, &booking.UpdatedAt)

	row := *booking
	row.Mentor = nil
	b.s.bookings[row.ID] = row
	b.s.bookingOrder = append(b.s.bookingOrder, row.ID)
	return nil
}

func (b *BookingStore) FindByID(_ context.Context, id uuid.UUID) (*models.Booking, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()
	return b.load(id)
}

// load joins the mentor; callers hold the lock.
func (b *BookingStore) load(id uuid.UUID) (*models.Booking, error) {
	row, ok := b.s.bookings[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	if mentor, ok := b.s.mentors[row.MentorID]; ok {
		m := mentor
		row.Mentor = &m
	}
	return &row, nil
}

func (b *BookingStore) ListForUser(_ context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()

	var out []models.Booking
	for i := len(b.s.bookingOrder) - 1; i >= 0; i-- {
		booking, err := b.load(b.s.bookingOrder[i])
		if err != nil {
			continue
		}
		isMentor := booking.Mentor != nil && booking.Mentor.UserID == filter.UserID
		isMentee := booking.MenteeID == filter.UserID
		switch filter.Role {
		case models.ParticipantMentor:
			if !isMentor {
				continue
			}
		case models.ParticipantMentee:
			if !isMentee {
				continue
			}
		default:
			if !isMentor && !isMentee {
				continue
			}
		}
		if filter.Status != "" && booking.Status != filter.Status {
			continue
		}
		out = append(out, *booking)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, filter.Limit, filter.Offset), nil
}

func (b *BookingStore) UpdateStatus(_ context.Context, id uuid.UUID, from, to models.BookingStatus) (*models.Booking, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	row, ok := b.s.bookings[id]
	if !ok || row.Status != from {
		return nil, database.ErrStaleBooking
	}
	row.Status = to
	row.UpdatedAt = time.Now()
	b.s.bookings[id] = row
	return b.load(id)
}

func (b *BookingStore) ListStaleRequests(_ context.Context, olderThan time.Time) ([]models.Booking, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()

	var out []models.Booking
	for _, id := range b.s.bookingOrder {
		booking, err := b.load(id)
		if err != nil {
			continue
		}
		if booking.Status == models.BookingStatusRequested && booking.RemindedAt == nil &&
			booking.CreatedAt.Before(olderThan) {
			out = append(out, *booking)
		}
	}
	return out, nil
}

func (b *BookingStore) MarkReminded(_ context.Context, id uuid.UUID, at time.Time) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	row, ok := b.s.bookings[id]
	if !ok {
		return database.ErrNotFound
	}
	row.RemindedAt = &at
	b.s.bookings[id] = row
	return nil
}

// MentorStore

type MentorStore struct {
	s *state
}

func (m *MentorStore) Create(_ context.Context, mentor *models.Mentor) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if mentor.ID == uuid.Nil {
		mentor.ID = uuid.New()
	}
	for _, existing := range m.s.mentors {
		if existing.UserID == mentor.UserID || existing.ID == mentor.ID {
			return database.ErrDuplicate
		}
	}
	if mentor.Status == "" {
		mentor.Status = models.MentorStatusActive
	}
	stamp(&mentor.CreatedAt, &mentor.UpdatedAt)

	row := *mentor
	row.User = nil
	m.s.mentors[row.ID] = row
	m.s.mentorOrder = append(m.s.mentorOrder, row.ID)
	return nil
}

func (m *MentorStore) withUser(row models.Mentor) *models.Mentor {
	if user, ok := m.s.users[row.UserID]; ok {
		u := user
		row.User = &u
	}
	return &row
}

func (m *MentorStore) FindByID(_ context.Context, id uuid.UUID) (*models.Mentor, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	row, ok := m.s.mentors[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return m.withUser(row), nil
}

func (m *MentorStore) FindByUserID(_ context.Context, userID uuid.UUID) (*models.Mentor, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	for _, row := range m.s.mentors {
		if row.UserID == userID {
			r := row
			return &r, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *MentorStore) ListActive(_ context.Context, limit, offset int) ([]models.Mentor, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	var out []models.Mentor
	for i := len(m.s.mentorOrder) - 1; i >= 0; i-- {
		row := m.s.mentors[m.s.mentorOrder[i]]
		if row.Status == models.MentorStatusActive {
			out = append(out, *m.withUser(row))
		}
	}
	return page(out, limit, offset), nil
}

// NotificationStore

type NotificationStore struct {
	s *state
}

func (n *NotificationStore) Create(_ context.Context, notification *models.Notification) error {
	n.s.mu.Lock()
	defer n.s.mu.Unlock()

	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	if _, exists := n.s.notifications[notification.ID]; exists {
		return database.ErrDuplicate
	}
	stamp(&notification.CreatedAt, nil)

	n.s.notifications[notification.ID] = *notification
	n.s.notificationOrder = append(n.s.notificationOrder, notification.ID)
	return nil
}

func (n *NotificationStore) ListForUser(_ context.Context, userID uuid.UUID, filter models.NotificationFilter) ([]models.Notification, error) {
	n.s.mu.RLock()
	defer n.s.mu.RUnlock()

	var out []models.Notification
	for i := len(n.s.notificationOrder) - 1; i >= 0; i-- {
		row := n.s.notifications[n.s.notificationOrder[i]]
		if row.UserID != userID {
			continue
		}
		if filter.UnreadOnly && !row.Unread() {
			continue
		}
		if filter.Type != "" && row.Type != filter.Type {
			continue
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, filter.Limit, filter.Offset), nil
}

func (n *NotificationStore) CountUnread(_ context.Context, userID uuid.UUID) (int64, error) {
	n.s.mu.RLock()
	defer n.s.mu.RUnlock()

	var total int64
	for _, row := range n.s.notifications {
		if row.UserID == userID && row.Unread() {
			total++
		}
	}
	return total, nil
}

func (n *NotificationStore) MarkRead(_ context.Context, userID, id uuid.UUID, at time.Time) error {
	n.s.mu.Lock()
	defer n.s.mu.Unlock()

	row, ok := n.s.notifications[id]
	if !ok || row.UserID != userID {
		return database.ErrNotFound
	}
	if row.ReadAt == nil {
		row.ReadAt = &at
		n.s.notifications[id] = row
	}
	return nil
}

func (n *NotificationStore) MarkAllRead(_ context.Context, userID uuid.UUID, at time.Time) (int64, error) {
	n.s.mu.Lock()
	defer n.s.mu.Unlock()

	var updated int64
	for id, row := range n.s.notifications {
		if row.UserID == userID && row.ReadAt == nil {
			readAt := at
			row.ReadAt = &readAt
			n.s.notifications[id] = row
			updated++
		}
	}
	return updated, nil
}

func (n *NotificationStore) UnreadSummaries(_ context.Context) ([]models.UnreadSummary, error) {
	n.s.mu.RLock()
	defer n.s.mu.RUnlock()

	counts := make(map[uuid.UUID]int64)
	for _, row := range n.s.notifications {
		if row.Unread() {
			counts[row.UserID]++
		}
	}
	out := make([]models.UnreadSummary, 0, len(counts))
	for userID, count := range counts {
		out = append(out, models.UnreadSummary{UserID: userID, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID.String() < out[j].UserID.String() })
	return out, nil
}

// UserStore

type UserStore struct {
	s *state
}

func (u *UserStore) Create(_ context.Context, user *models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	for _, existing := range u.s.users {
		if existing.ID == user.ID || strings.EqualFold(existing.Email, user.Email) {
			return database.ErrDuplicate
		}
	}
	if user.Role == "" {
		user.Role = models.RoleMember
	}
	stamp(&user.CreatedAt, &user.UpdatedAt)
	u.s.users[user.ID] = *user
	return nil
}

func (u *UserStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	row, ok := u.s.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &row, nil
}

func (u *UserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	for _, row := range u.s.users {
		if strings.EqualFold(row.Email, email) {
			r := row
			return &r, nil
		}
	}
	return nil, database.ErrNotFound
}

func (u *UserStore) Update(_ context.Context, user *models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	if _, ok := u.s.users[user.ID]; !ok {
		return database.ErrNotFound
	}
	user.UpdatedAt = time.Now()
	u.s.users[user.ID] = *user
	return nil
}

func (u *UserStore) AddXP(_ context.Context, id uuid.UUID, xp int) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	row, ok := u.s.users[id]
	if !ok {
		return database.ErrNotFound
	}
	row.XP += xp
	u.s.users[id] = row
	return nil
}

func (u *UserStore) Leaderboard(_ context.Context, limit int) ([]models.LeaderboardEntry, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	out := make([]models.LeaderboardEntry, 0, len(u.s.users))
	for _, row := range u.s.users {
		out = append(out, models.LeaderboardEntry{
			UserID:    row.ID,
			FullName:  row.FullName,
			XP:        row.XP,
			AvatarURL: row.AvatarURL,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].XP != out[j].XP {
			return out[i].XP > out[j].XP
		}
		return out[i].FullName < out[j].FullName
	})
	return page(out, limit, 0), nil
}
