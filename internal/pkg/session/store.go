package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"stackview/internal/pkg/crypto"
	pkgErrors "stackview/pkg/errors"
)

// Session 用户会话, GitHub Token加密后保存在内存中
type Session struct {
	ID        string
	Login     string // GitHub用户名
	UserID    int64  // GitHub用户ID
	token     string // AES加密后的GitHub Token
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store 进程内会话存储
// 不做持久化, 服务重启后所有会话失效, 用户需重新OAuth登录
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	aesKey   string
	ttl      time.Duration
}

// NewStore 创建会话存储
func NewStore(aesKey string, ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		aesKey:   aesKey,
		ttl:      ttl,
	}
}

// Create 创建会话, 返回会话ID
func (s *Store) Create(login string, userID int64, githubToken string) (string, error) {
	encrypted, err := crypto.Encrypt(s.aesKey, githubToken)
	if err != nil {
		return "", pkgErrors.Wrap(pkgErrors.CodeInternalError, "加密凭证失败", err)
	}

	now := time.Now()
	sess := &Session{
		ID:        uuid.NewString(),
		Login:     login,
		UserID:    userID,
		token:     encrypted,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess.ID, nil
}

// Token 取出会话对应的GitHub Token明文
// 返回的是调用时刻的快照, 会话随后被注销也不影响已发出的请求
func (s *Store) Token(sessionID string) (string, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return "", pkgErrors.ErrSessionNotFound
	}
	if time.Now().After(sess.ExpiresAt) {
		return "", pkgErrors.ErrSessionNotFound
	}

	token, err := crypto.Decrypt(s.aesKey, sess.token)
	if err != nil {
		return "", pkgErrors.Wrap(pkgErrors.CodeInternalError, "解密凭证失败", err)
	}
	return token, nil
}

// Get 获取会话元信息
func (s *Store) Get(sessionID string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok || time.Now().After(sess.ExpiresAt) {
		return nil, false
	}
	return sess, true
}

// Delete 注销会话
func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// PurgeExpired 清理过期会话, 返回清理数量
func (s *Store) PurgeExpired() int {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for id, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, id)
			count++
		}
	}
	return count
}

// Count 当前会话数量
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
