package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"rentride/internal/models"
	"rentride/internal/utils"
	"rentride/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errFakeNotFound = errors.New("not found")

func testLogger() *logger.Logger {
	log, err := logger.NewLogger(&logger.Config{
		Level:  logger.ErrorLevel,
		Format: "text",
		Output: "stdout",
	})
	if err != nil {
		panic(err)
	}
	return log
}

// recordedEvent captures a single push so tests can assert on what the
// realtime layer would have delivered.
type recordedEvent struct {
	ChatID    string
	UserID    primitive.ObjectID
	EventType string
	Data      map[string]interface{}
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (n *recordingNotifier) SendChatEvent(chatID string, eventType string, data map[string]interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{ChatID: chatID, EventType: eventType, Data: data})
}

func (n *recordingNotifier) SendUserEvent(userID primitive.ObjectID, eventType string, data map[string]interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{UserID: userID, EventType: eventType, Data: data})
}

func (n *recordingNotifier) eventsOfType(eventType string) []recordedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []recordedEvent
	for _, ev := range n.events {
		if ev.EventType == eventType {
			out = append(out, ev)
		}
	}
	return out
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errFakeNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return errFakeNotFound
	}
	if name, ok := updates["name"].(string); ok {
		user.Name = name
	}
	if phone, ok := updates["phone"].(string); ok {
		user.Phone = phone
	}
	if address, ok := updates["address"].(string); ok {
		user.Address = address
	}
	if photo, ok := updates["photo_url"].(string); ok {
		user.PhotoURL = photo
	}
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, errFakeNotFound
}

func (r *fakeUserRepo) GetBySocialID(ctx context.Context, provider string, socialID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if string(user.AuthProvider) == provider && user.SocialID == socialID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, errFakeNotFound
}

func (r *fakeUserRepo) SetPresence(ctx context.Context, id primitive.ObjectID, online bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return errFakeNotFound
	}
	user.IsOnline = online
	if !online {
		now := time.Now()
		user.LastSeenAt = &now
	}
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.User, 0, len(r.users))
	for _, user := range r.users {
		copied := *user
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

type fakeVehicleRepo struct {
	mu       sync.Mutex
	vehicles map[primitive.ObjectID]*models.Vehicle
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{vehicles: make(map[primitive.ObjectID]*models.Vehicle)}
}

func (r *fakeVehicleRepo) Create(ctx context.Context, vehicle *models.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if vehicle.ID.IsZero() {
		vehicle.ID = primitive.NewObjectID()
	}
	vehicle.CreatedAt = time.Now()
	copied := *vehicle
	r.vehicles[vehicle.ID] = &copied
	return nil
}

func (r *fakeVehicleRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	vehicle, ok := r.vehicles[id]
	if !ok {
		return nil, errFakeNotFound
	}
	copied := *vehicle
	return &copied, nil
}

func (r *fakeVehicleRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vehicles[id]; !ok {
		return errFakeNotFound
	}
	return nil
}

func (r *fakeVehicleRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vehicles[id]; !ok {
		return errFakeNotFound
	}
	delete(r.vehicles, id)
	return nil
}

func (r *fakeVehicleRepo) GetByOwner(ctx context.Context, ownerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Vehicle
	for _, vehicle := range r.vehicles {
		if vehicle.OwnerID == ownerID {
			copied := *vehicle
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeVehicleRepo) Search(ctx context.Context, search *models.VehicleSearchParams, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	return r.List(ctx, params)
}

func (r *fakeVehicleRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Vehicle, 0, len(r.vehicles))
	for _, vehicle := range r.vehicles {
		copied := *vehicle
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[primitive.ObjectID]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[primitive.ObjectID]*models.Booking)}
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, errFakeNotFound
	}
	copied := *booking
	return &copied, nil
}

func (r *fakeBookingRepo) DeleteIfPending(ctx context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok || booking.Status != models.BookingStatusPending {
		return false, nil
	}
	delete(r.bookings, id)
	return true, nil
}

func (r *fakeBookingRepo) GetByCustomer(ctx context.Context, customerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Booking
	for _, booking := range r.bookings {
		if booking.CustomerID == customerID {
			copied := *booking
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) GetByOwner(ctx context.Context, ownerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Booking
	for _, booking := range r.bookings {
		if booking.OwnerID == ownerID {
			copied := *booking
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) UpdateStatusIfPending(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok || booking.Status != models.BookingStatusPending {
		return false, nil
	}
	booking.Status = status
	booking.UpdatedAt = time.Now()
	return true, nil
}

func (r *fakeBookingRepo) UpdateDatesIfPending(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok || booking.Status != models.BookingStatusPending {
		return false, nil
	}
	if start, ok := updates["start_date"].(time.Time); ok {
		booking.StartDate = start
	}
	if end, ok := updates["end_date"].(time.Time); ok {
		booking.EndDate = end
	}
	if days, ok := updates["days"].(int); ok {
		booking.Days = days
	}
	if total, ok := updates["total_price"].(float64); ok {
		booking.TotalPrice = total
	}
	booking.UpdatedAt = time.Now()
	return true, nil
}

type fakeChatRepo struct {
	mu       sync.Mutex
	chats    map[string]*models.Chat
	messages map[string][]*models.Message
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		chats:    make(map[string]*models.Chat),
		messages: make(map[string][]*models.Message),
	}
}

func (r *fakeChatRepo) Ensure(ctx context.Context, chat *models.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.chats[chat.ID]; ok {
		return nil
	}
	now := time.Now()
	copied := *chat
	copied.Participants = append([]primitive.ObjectID(nil), chat.Participants...)
	copied.CreatedAt = now
	copied.LastMessageTimestamp = now
	r.chats[chat.ID] = &copied
	return nil
}

func (r *fakeChatRepo) GetByID(ctx context.Context, id string) (*models.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[id]
	if !ok {
		return nil, errFakeNotFound
	}
	copied := *chat
	return &copied, nil
}

func (r *fakeChatRepo) GetByParticipant(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Chat, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Chat
	for _, chat := range r.chats {
		for _, participant := range chat.Participants {
			if participant == userID {
				copied := *chat
				out = append(out, &copied)
				break
			}
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeChatRepo) UpdateLastMessage(ctx context.Context, chatID string, preview string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[chatID]
	if !ok {
		return errFakeNotFound
	}
	chat.LastMessage = preview
	chat.LastMessageTimestamp = at
	return nil
}

func (r *fakeChatRepo) InsertMessage(ctx context.Context, message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if message.ID.IsZero() {
		message.ID = primitive.NewObjectID()
	}
	message.CreatedAt = time.Now()
	copied := *message
	r.messages[message.ChatID] = append(r.messages[message.ChatID], &copied)
	return nil
}

func (r *fakeChatRepo) GetMessages(ctx context.Context, chatID string, params *utils.PaginationParams) ([]*models.Message, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	messages := r.messages[chatID]
	out := make([]*models.Message, 0, len(messages))
	// Newest first, matching the store's sort.
	for i := len(messages) - 1; i >= 0; i-- {
		copied := *messages[i]
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

type fakeCallRepo struct {
	mu    sync.Mutex
	calls map[string]*models.Call
}

func newFakeCallRepo() *fakeCallRepo {
	return &fakeCallRepo{calls: make(map[string]*models.Call)}
}

func (r *fakeCallRepo) Upsert(ctx context.Context, call *models.Call) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *call
	r.calls[call.ID] = &copied
	return nil
}

func (r *fakeCallRepo) GetByID(ctx context.Context, id string) (*models.Call, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	call, ok := r.calls[id]
	if !ok {
		return nil, errFakeNotFound
	}
	copied := *call
	return &copied, nil
}

func (r *fakeCallRepo) GetRingingForReceiver(ctx context.Context, receiverID primitive.ObjectID) ([]*models.Call, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Call
	for _, call := range r.calls {
		if call.ReceiverID == receiverID && call.Status == models.CallStatusRinging {
			copied := *call
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeCallRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.calls[id]; !ok {
		return errFakeNotFound
	}
	delete(r.calls, id)
	return nil
}

func (r *fakeCallRepo) DeleteByParticipant(ctx context.Context, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, call := range r.calls {
		if call.CallerID == userID || call.ReceiverID == userID {
			delete(r.calls, id)
		}
	}
	return nil
}

// fakeCache is an in-memory CacheService sufficient for the auth flows.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string]interface{}
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]interface{})}
}

func (c *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok {
		return errFakeNotFound
	}
	return nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func (c *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok, nil
}

func (c *fakeCache) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		return false, nil
	}
	c.entries[key] = value
	return true, nil
}

func (c *fakeCache) SetExpire(ctx context.Context, key string, expiration time.Duration) error {
	return nil
}

func (c *fakeCache) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return 0, nil
}

func (c *fakeCache) Publish(ctx context.Context, channel string, message interface{}) error {
	return nil
}

func (c *fakeCache) CacheUser(ctx context.Context, user *models.User, expiration time.Duration) error {
	return nil
}

func (c *fakeCache) GetCachedUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return nil, errFakeNotFound
}

func (c *fakeCache) InvalidateUser(ctx context.Context, userID primitive.ObjectID) error {
	return nil
}

func (c *fakeCache) CacheVehicle(ctx context.Context, vehicle *models.Vehicle, expiration time.Duration) error {
	return nil
}

func (c *fakeCache) GetCachedVehicle(ctx context.Context, vehicleID primitive.ObjectID) (*models.Vehicle, error) {
	return nil, errFakeNotFound
}

func (c *fakeCache) InvalidateVehicle(ctx context.Context, vehicleID primitive.ObjectID) error {
	return nil
}

func (c *fakeCache) Ping(ctx context.Context) error {
	return nil
}
