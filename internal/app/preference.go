package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"interview-scheduler/internal/config"
)

// prefKeyPrefix namespaces the one durable UI preference: which
// interviewer a session is acting as.
const prefKeyPrefix = "scheduler:pref:current-interviewer:"

// sessionHeader carries an opaque client session id; absent means a
// shared anonymous session.
const sessionHeader = "X-Session-ID"

// PreferenceStore implements Preferences over Redis. A miss or a Redis
// failure degrades to a fallback, never to an error for the user.
type PreferenceStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewPreferenceStore connects to Redis and verifies the connection.
func NewPreferenceStore(cfg *config.Config) (*PreferenceStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisPrefDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &PreferenceStore{rdb: rdb, ttl: 30 * 24 * time.Hour}, nil
}

// CurrentInterviewer returns the cached preference for a session, or
// "" on miss.
func (p *PreferenceStore) CurrentInterviewer(ctx context.Context, sessionID string) (string, error) {
	v, err := p.rdb.Get(ctx, prefKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read preference: %w", err)
	}
	return v, nil
}

// SetCurrentInterviewer stores the preference for a session.
func (p *PreferenceStore) SetCurrentInterviewer(ctx context.Context, sessionID, interviewerID string) error {
	if err := p.rdb.Set(ctx, prefKeyPrefix+sessionID, interviewerID, p.ttl).Err(); err != nil {
		return fmt.Errorf("write preference: %w", err)
	}
	return nil
}

func sessionID(c *gin.Context) string {
	if id := c.GetHeader(sessionHeader); id != "" {
		return id
	}
	return "default"
}

// GET /api/preferences/current-interviewer
// Resolves the session's cached interviewer against the live list,
// falling back to the first interviewer when the cached id is stale,
// missing, or the cache is down.
func (a *App) GetCurrentInterviewerHandler(c *gin.Context) {
	ctx := c.Request.Context()

	interviewers, err := a.Store.ListInterviewers(ctx)
	if err != nil {
		a.serverError(c, "list interviewers", err)
		return
	}
	if len(interviewers) == 0 {
		c.JSON(http.StatusOK, gin.H{"interviewer_id": "", "source": "none"})
		return
	}

	cached := ""
	if a.Prefs != nil {
		cached, err = a.Prefs.CurrentInterviewer(ctx, sessionID(c))
		if err != nil {
			a.Log.Warn("preference cache read failed", zap.Error(err))
			cached = ""
		}
	}

	for _, iv := range interviewers {
		if iv.ID == cached {
			c.JSON(http.StatusOK, gin.H{"interviewer_id": cached, "source": "cache"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"interviewer_id": interviewers[0].ID, "source": "fallback"})
}

// PUT /api/preferences/current-interviewer
func (a *App) SetCurrentInterviewerHandler(c *gin.Context) {
	var payload struct {
		InterviewerID string `json:"interviewer_id" binding:"required"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if a.Prefs != nil {
		if err := a.Prefs.SetCurrentInterviewer(c.Request.Context(), sessionID(c), payload.InterviewerID); err != nil {
			// Best effort: the preference is a convenience cache, so a
			// failed write is logged and otherwise ignored.
			a.Log.Warn("preference cache write failed", zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
