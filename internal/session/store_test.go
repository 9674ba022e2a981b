package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/novikovva/aviapp/internal/domain"
)

func newTestStore(t *testing.T, tokenTTL, sessionTTL time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStore(client, "aviapp:", tokenTTL, sessionTTL), mr
}

// Тест 1: Токен - 16 случайных байт в hex, каждый раз новый
func TestNewToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := newToken()
		assert.NoError(t, err)
		assert.Len(t, token, 32)
		assert.False(t, seen[token], "token repeated")
		seen[token] = true
	}
}

// Тест 2: Ключи строятся под общим префиксом приложения
func TestStore_Keys(t *testing.T) {
	store := NewStore(nil, "aviapp:", time.Hour, 30*time.Minute)

	assert.Equal(t, "aviapp:auth_token:abc123", store.tokenKey("abc123"))
	assert.Equal(t, "aviapp:session:abc123", store.sessionKey("abc123"))
}

// Тест 3: Разбор сессии из redis-хэша
func TestParseSession(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC)
	data := map[string]string{
		"user_id":       "3",
		"role":          "admin",
		"username":      "ivan",
		"created_at":    "2026-03-14T12:00:00Z",
		"last_activity": "2026-03-14T12:25:00Z",
	}

	session, err := parseSession(data, now)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), session.UserID)
	assert.Equal(t, "admin", session.Role)
	assert.Equal(t, "ivan", session.Username)
	assert.Equal(t, time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC), session.CreatedAt)
	assert.Equal(t, now, session.LastActivity)
}

// Тест 4: Битые поля сессии - ошибка, а не паника
func TestParseSession_Malformed(t *testing.T) {
	now := time.Now()

	_, err := parseSession(map[string]string{"user_id": "abc"}, now)
	assert.Error(t, err)

	_, err = parseSession(map[string]string{"user_id": "3", "created_at": "yesterday"}, now)
	assert.Error(t, err)
}

// Тест 5: Пустой токен сразу отклоняется без похода в redis
func TestStore_Validate_EmptyToken(t *testing.T) {
	store := NewStore(nil, "aviapp:", time.Hour, 30*time.Minute)

	session, err := store.Validate(nil, "")

	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.Nil(t, session)
}

// Тест 6: Destroy пустого токена - no-op
func TestStore_Destroy_EmptyToken(t *testing.T) {
	store := NewStore(nil, "aviapp:", time.Hour, 30*time.Minute)

	assert.NoError(t, store.Destroy(nil, ""))
}

// Тест 7: Создание и проверка сессии
func TestStore_CreateValidate_RoundTrip(t *testing.T) {
	store, _ := newTestStore(t, time.Hour, 30*time.Minute)
	ctx := context.Background()

	token, err := store.Create(ctx, &domain.User{ID: 3, Username: "ivan", Role: domain.RoleAdmin})
	assert.NoError(t, err)
	assert.Len(t, token, 32)

	sess, err := store.Validate(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), sess.UserID)
	assert.Equal(t, "ivan", sess.Username)
	assert.Equal(t, domain.RoleAdmin, sess.Role)
}

// Тест 8: Каждый Validate продлевает сессию - активная сессия живет
// дольше своего исходного TTL
func TestStore_Validate_SlidingRefresh(t *testing.T) {
	store, mr := newTestStore(t, time.Hour, 30*time.Minute)
	ctx := context.Background()

	token, err := store.Create(ctx, &domain.User{ID: 3, Username: "ivan", Role: domain.RoleUser})
	assert.NoError(t, err)

	mr.FastForward(20 * time.Minute)
	_, err = store.Validate(ctx, token)
	assert.NoError(t, err)

	// Суммарно 40 минут с момента входа, но после продления сессия жива
	mr.FastForward(20 * time.Minute)
	sess, err := store.Validate(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), sess.UserID)
}

// Тест 9: Без продления сессия умирает по скользящему TTL
func TestStore_Validate_ExpiryWithoutRefresh(t *testing.T) {
	store, mr := newTestStore(t, time.Hour, 30*time.Minute)
	ctx := context.Background()

	token, err := store.Create(ctx, &domain.User{ID: 3, Username: "ivan", Role: domain.RoleUser})
	assert.NoError(t, err)

	mr.FastForward(31 * time.Minute)

	sess, err := store.Validate(ctx, token)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.Nil(t, sess)
}

// Тест 10: Ключ токена главный - его истечение убивает сессию, даже
// если хэш с метаданными еще жив
func TestStore_Validate_TokenExpiry(t *testing.T) {
	store, mr := newTestStore(t, 30*time.Minute, 2*time.Hour)
	ctx := context.Background()

	token, err := store.Create(ctx, &domain.User{ID: 3, Username: "ivan", Role: domain.RoleUser})
	assert.NoError(t, err)

	mr.FastForward(31 * time.Minute)
	assert.True(t, mr.Exists(store.sessionKey(token)))

	_, err = store.Validate(ctx, token)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

// Тест 11: Битые метаданные - это мертвая сессия, а не ошибка хранилища;
// оба ключа удаляются, следующий запрос уходит на повторный вход
func TestStore_Validate_CorruptMetadata(t *testing.T) {
	store, mr := newTestStore(t, time.Hour, 30*time.Minute)
	ctx := context.Background()

	token, err := store.Create(ctx, &domain.User{ID: 3, Username: "ivan", Role: domain.RoleUser})
	assert.NoError(t, err)

	mr.HSet(store.sessionKey(token), "user_id", "not-a-number")

	sess, err := store.Validate(ctx, token)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.Nil(t, sess)

	assert.False(t, mr.Exists(store.tokenKey(token)))
	assert.False(t, mr.Exists(store.sessionKey(token)))
}

// Тест 12: Повторный Destroy не ошибка, сессия после выхода мертва
func TestStore_Destroy_Idempotent(t *testing.T) {
	store, _ := newTestStore(t, time.Hour, 30*time.Minute)
	ctx := context.Background()

	token, err := store.Create(ctx, &domain.User{ID: 3, Username: "ivan", Role: domain.RoleUser})
	assert.NoError(t, err)

	assert.NoError(t, store.Destroy(ctx, token))
	assert.NoError(t, store.Destroy(ctx, token))

	_, err = store.Validate(ctx, token)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}
