package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"interview-scheduler/internal/slotgrid"
)

// Google Calendar read integration. Interviewers connect their
// calendar to eyeball existing commitments for the scheduling week
// while painting availability; the scheduler itself never writes to
// Google Calendar.

const googleTokenHeader = "X-Google-Token"

// CalendarEvent is the trimmed event view returned to the client.
type CalendarEvent struct {
	ID        string    `json:"id"`
	Summary   string    `json:"summary"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
	Creator   string    `json:"creator,omitempty"`
}

func (a *App) googleOAuthConfig() *oauth2.Config {
	if a.Cfg.GoogleClientID == "" || a.Cfg.GoogleClientSecret == "" || a.Cfg.GoogleRedirectURL == "" {
		return nil
	}
	return &oauth2.Config{
		ClientID:     a.Cfg.GoogleClientID,
		ClientSecret: a.Cfg.GoogleClientSecret,
		RedirectURL:  a.Cfg.GoogleRedirectURL,
		Scopes:       []string{calendar.CalendarReadonlyScope},
		Endpoint:     google.Endpoint,
	}
}

// GET /api/calendar/auth
func (a *App) GoogleAuthHandler(c *gin.Context) {
	conf := a.googleOAuthConfig()
	if conf == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google Calendar not configured"})
		return
	}
	state := fmt.Sprintf("session_%s_%d", sessionID(c), time.Now().Unix())
	c.JSON(http.StatusOK, gin.H{
		"auth_url": conf.AuthCodeURL(state, oauth2.AccessTypeOffline),
		"state":    state,
	})
}

// GET /oauth2callback
func (a *App) GoogleOAuth2CallbackHandler(c *gin.Context) {
	conf := a.googleOAuthConfig()
	if conf == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google Calendar not configured"})
		return
	}
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "authorization code required"})
		return
	}
	token, err := conf.Exchange(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to exchange code for token"})
		return
	}
	tokenJSON, err := json.Marshal(token)
	if err != nil {
		a.serverError(c, "encode oauth token", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Authorization successful",
		"state":   c.Query("state"),
		"token":   string(tokenJSON),
	})
}

func (a *App) calendarService(c *gin.Context) (*calendar.Service, bool) {
	conf := a.googleOAuthConfig()
	if conf == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google Calendar not configured"})
		return nil, false
	}
	tokenStr := c.GetHeader(googleTokenHeader)
	if tokenStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Google token required in " + googleTokenHeader + " header"})
		return nil, false
	}
	var token oauth2.Token
	if err := json.Unmarshal([]byte(tokenStr), &token); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid token format"})
		return nil, false
	}
	client := conf.Client(context.Background(), &token)
	srv, err := calendar.NewService(c.Request.Context(), option.WithHTTPClient(client))
	if err != nil {
		a.serverError(c, "create calendar service", err)
		return nil, false
	}
	return srv, true
}

// GET /api/calendar/events?calendar_id=primary
// Lists the connected calendar's events inside the scheduling window.
func (a *App) GoogleCalendarEventsHandler(c *gin.Context) {
	srv, ok := a.calendarService(c)
	if !ok {
		return
	}

	from, to := slotgrid.WeekWindow()
	events, err := srv.Events.List(c.DefaultQuery("calendar_id", "primary")).
		SingleEvents(true).
		OrderBy("startTime").
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		MaxResults(250).
		Do()
	if err != nil {
		a.serverError(c, "list calendar events", err)
		return
	}

	out := make([]CalendarEvent, 0, len(events.Items))
	for _, item := range events.Items {
		ev := CalendarEvent{
			ID:      item.Id,
			Summary: item.Summary,
			Status:  item.Status,
		}
		if item.Creator != nil {
			ev.Creator = item.Creator.Email
		}
		ev.StartTime = parseEventTime(item.Start)
		ev.EndTime = parseEventTime(item.End)
		out = append(out, ev)
	}
	c.JSON(http.StatusOK, gin.H{"events": out, "count": len(out)})
}

// GET /api/calendar/calendars
func (a *App) GoogleCalendarListHandler(c *gin.Context) {
	srv, ok := a.calendarService(c)
	if !ok {
		return
	}
	list, err := srv.CalendarList.List().Do()
	if err != nil {
		a.serverError(c, "list calendars", err)
		return
	}

	type calendarInfo struct {
		ID         string `json:"id"`
		Summary    string `json:"summary"`
		Primary    bool   `json:"primary"`
		AccessRole string `json:"access_role"`
	}
	out := make([]calendarInfo, 0, len(list.Items))
	for _, item := range list.Items {
		out = append(out, calendarInfo{
			ID:         item.Id,
			Summary:    item.Summary,
			Primary:    item.Primary,
			AccessRole: item.AccessRole,
		})
	}
	c.JSON(http.StatusOK, gin.H{"calendars": out, "count": len(out)})
}

func parseEventTime(edt *calendar.EventDateTime) time.Time {
	if edt == nil {
		return time.Time{}
	}
	if edt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, edt.DateTime); err == nil {
			return t
		}
	}
	if edt.Date != "" {
		if t, err := time.Parse("2006-01-02", edt.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}
