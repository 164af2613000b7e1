package handlers

import (
	"archive/zip"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/grabthumb/thumbbot/internal/config"
	"github.com/grabthumb/thumbbot/internal/domain"
	"github.com/grabthumb/thumbbot/internal/http/middleware"
	"github.com/grabthumb/thumbbot/internal/repo"
	"github.com/grabthumb/thumbbot/internal/services"
	"github.com/grabthumb/thumbbot/internal/utils"
)

// usersPageSize is how many rows the users and tickets tables show per page.
const usersPageSize = 25

// Handler serves the admin dashboard pages and the JSON stats endpoint. All
// routes except the login pair sit behind middleware.RequireSession.
type Handler struct {
	DB       *gorm.DB
	Accounts *services.AccountService
	Tickets  *services.TicketService
	Settings *services.SettingsService
	Cfg      config.DashboardConfig

	// Now is a seam for tests; nil means time.Now.
	Now func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// ShowLogin renders the login form.
func (h *Handler) ShowLogin(c *gin.Context) {
	if _, ok := middleware.SessionUser(c); ok {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// DoLogin checks the submitted credentials against the configured dashboard
// account and opens a session. Both comparisons are constant time.
func (h *Handler) DoLogin(c *gin.Context) {
	user := c.PostForm("username")
	pass := c.PostForm("password")

	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(h.Cfg.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(h.Cfg.Password)) == 1
	if !userOK || !passOK {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": "Invalid username or password."})
		return
	}
	if err := middleware.Login(c, user); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not start session")
		return
	}
	c.Redirect(http.StatusFound, "/admin")
}

// DoLogout clears the session and returns to the login form.
func (h *Handler) DoLogout(c *gin.Context) {
	_ = middleware.Logout(c)
	c.Redirect(http.StatusFound, "/login")
}

// Dashboard renders the overview page: headline totals plus the 7-day
// new-user and request series.
func (h *Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	now := h.now()

	overview, err := repo.OverviewStats(ctx, h.DB, now)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load stats")
		return
	}
	userSeries, err := repo.UserGrowthSeries(ctx, h.DB, now)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load stats")
		return
	}
	reqSeries, err := repo.RequestSeries(ctx, h.DB, now)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load stats")
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Overview":      overview,
		"UserSeries":    userSeries,
		"RequestSeries": reqSeries,
	})
}

// Users renders one page of the users table.
func (h *Handler) Users(c *gin.Context) {
	page, offset := utils.PageQuery(c.Query("page"), usersPageSize)

	// Fetch one extra row to learn whether a next page exists.
	rows, err := repo.ListUsersPage(c.Request.Context(), h.DB, offset, usersPageSize+1)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not list users")
		return
	}
	hasNext := len(rows) > usersPageSize
	if hasNext {
		rows = rows[:usersPageSize]
	}

	c.HTML(http.StatusOK, "users.html", gin.H{
		"Users":    rows,
		"Page":     page,
		"PrevPage": page - 1,
		"NextPage": page + 1,
		"HasNext":  hasNext,
	})
}

// UserAction applies one of the per-row user actions (ban, unban, grant,
// revoke) and bounces back to the users table.
func (h *Handler) UserAction(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid user id")
		return
	}

	ctx := c.Request.Context()
	switch c.Param("action") {
	case "ban":
		err = h.Accounts.SetBanned(ctx, id, true)
	case "unban":
		err = h.Accounts.SetBanned(ctx, id, false)
	case "grant":
		err = h.Accounts.GrantPremium(ctx, id, time.Time{})
	case "revoke":
		err = h.Accounts.RevokePremium(ctx, id)
	default:
		fail(c, http.StatusNotFound, ErrCodeNotFound, "unknown action")
		return
	}

	switch {
	case errors.Is(err, services.ErrUserNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, "could not update user")
	default:
		c.Redirect(http.StatusSeeOther, "/admin/users")
	}
}

// TicketList renders one page of the support tickets table.
func (h *Handler) TicketList(c *gin.Context) {
	page, offset := utils.PageQuery(c.Query("page"), usersPageSize)

	rows, err := repo.ListTicketsPage(c.Request.Context(), h.DB, offset, usersPageSize+1)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not list tickets")
		return
	}
	hasNext := len(rows) > usersPageSize
	if hasNext {
		rows = rows[:usersPageSize]
	}

	c.HTML(http.StatusOK, "tickets.html", gin.H{
		"Tickets":  rows,
		"Page":     page,
		"PrevPage": page - 1,
		"NextPage": page + 1,
		"HasNext":  hasNext,
	})
}

// TicketDetail renders a single ticket with its full thread and attachments.
func (h *Handler) TicketDetail(c *gin.Context) {
	ctx := c.Request.Context()
	ticketID := c.Param("id")

	t, err := h.Tickets.Get(ctx, ticketID)
	if errors.Is(err, services.ErrTicketNotFound) {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "ticket not found")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load ticket")
		return
	}

	msgs, err := h.Tickets.Thread(ctx, ticketID)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load ticket thread")
		return
	}
	atts, err := h.Tickets.Attachments(ctx, ticketID)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load attachments")
		return
	}

	c.HTML(http.StatusOK, "ticket_detail.html", gin.H{
		"Ticket":      t,
		"Messages":    msgs,
		"Attachments": atts,
	})
}

// TicketStatus updates a ticket's status from the detail page dropdown.
func (h *Handler) TicketStatus(c *gin.Context) {
	ticketID := c.Param("id")
	status := c.PostForm("status")

	err := h.Tickets.SetStatus(c.Request.Context(), ticketID, status)
	switch {
	case errors.Is(err, services.ErrBadStatus):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid ticket status")
	case errors.Is(err, services.ErrTicketNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "ticket not found")
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, "could not update ticket")
	default:
		c.Redirect(http.StatusSeeOther, "/admin/tickets/"+ticketID)
	}
}

// TicketAttachmentsZip streams a zip archive describing the ticket's
// attachments: one info text file per attachment plus a README. Only opaque
// Telegram file references are exported; the media itself never touches this
// server. A ticket without attachments yields 404, not an empty archive.
func (h *Handler) TicketAttachmentsZip(c *gin.Context) {
	ctx := c.Request.Context()
	ticketID := c.Param("id")

	if _, err := h.Tickets.Get(ctx, ticketID); err != nil {
		if errors.Is(err, services.ErrTicketNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "ticket not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeExportFailed, "could not load ticket")
		return
	}

	atts, err := h.Tickets.Attachments(ctx, ticketID)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeExportFailed, "could not load attachments")
		return
	}
	if len(atts) == 0 {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "ticket has no attachments")
		return
	}

	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ticketID+"_attachments.zip"))

	zw := zip.NewWriter(c.Writer)
	werr := writeAttachmentReadme(zw, ticketID, len(atts))
	for i, a := range atts {
		if werr != nil {
			break
		}
		werr = writeAttachmentInfo(zw, i+1, a)
	}
	if cerr := zw.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		// Headers are out already; log and drop the connection.
		middleware.LoggerFrom(c).Error().Err(werr).Str("ticket_id", ticketID).Msg("attachment export failed")
	}
}

func writeAttachmentReadme(zw *zip.Writer, ticketID string, n int) error {
	w, err := zw.Create("README.txt")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w,
		"Ticket %s attachment export\n\n"+
			"%d attachment(s). The media stays on Telegram's servers; each info\n"+
			"file below holds the opaque file identifiers needed to fetch it via\n"+
			"the Bot API (getFile) with the bot's token.\n", ticketID, n)
	return err
}

func writeAttachmentInfo(zw *zip.Writer, seq int, a domain.TicketAttachment) error {
	name := fmt.Sprintf("attachment_%02d.txt", seq)
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w,
		"file_name: %s\nfile_type: %s\nfile_id: %s\nfile_unique_id: %s\nuploaded_at: %s\n",
		a.FileName, a.FileType, a.FileID, a.FileUniqueID, a.CreatedAt.Format(time.RFC3339))
	return err
}

// agentRow is one row of the agents table, with ticket counts derived from
// the tickets table rather than the cached counters on Agent.
type agentRow struct {
	domain.Agent
	Assigned int64
	Resolved int64
}

// Agents renders the agents table with derived ticket counts and the
// add-agent form.
func (h *Handler) Agents(c *gin.Context) {
	ctx := c.Request.Context()

	agents, err := repo.ListAgents(ctx, h.DB)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not list agents")
		return
	}

	rows := make([]agentRow, 0, len(agents))
	for _, a := range agents {
		assigned, resolved, err := repo.AgentTicketCounts(ctx, h.DB, a.ID)
		if err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not count agent tickets")
			return
		}
		rows = append(rows, agentRow{Agent: a, Assigned: assigned, Resolved: resolved})
	}

	c.HTML(http.StatusOK, "agents.html", gin.H{"Agents": rows})
}

// AddAgent registers a new support agent from the dashboard form.
func (h *Handler) AddAgent(c *gin.Context) {
	userID, err := strconv.ParseInt(strings.TrimSpace(c.PostForm("user_id")), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid telegram id")
		return
	}

	if err := h.Tickets.AddAgent(c.Request.Context(), userID, c.PostForm("role")); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, "could not add agent")
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/agents")
}

// ShowSettings renders the bot settings form.
func (h *Handler) ShowSettings(c *gin.Context) {
	snap, err := h.Settings.Snapshot(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load settings")
		return
	}
	c.HTML(http.StatusOK, "settings.html", gin.H{
		"Settings": snap,
		"Saved":    c.Query("saved") == "1",
	})
}

// SaveSettings persists the settings form. Unchecked checkboxes post no
// value, so their absence is written as "0".
func (h *Handler) SaveSettings(c *gin.Context) {
	ctx := c.Request.Context()
	snap, err := h.Settings.Snapshot(ctx)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load settings")
		return
	}

	values := map[string]string{
		"maintenance_mode":   checkbox(c.PostForm("maintenance_mode")),
		"force_join_enabled": checkbox(c.PostForm("force_join_enabled")),
		"force_join_channel": strings.TrimSpace(c.PostForm("force_join_channel")),
		"free_limit":         strconv.Itoa(utils.AtoiDefault(c.PostForm("free_limit"), snap.FreeLimit)),
		"premium_limit":      strconv.Itoa(utils.AtoiDefault(c.PostForm("premium_limit"), snap.PremiumLimit)),
		"referral_bonus":     strconv.Itoa(utils.AtoiDefault(c.PostForm("referral_bonus"), snap.ReferralBonus)),
		"flood_time":         strconv.Itoa(utils.AtoiDefault(c.PostForm("flood_time"), snap.FloodWindowSecs)),

		"premium_referrals_required": strconv.Itoa(utils.AtoiDefault(c.PostForm("premium_referrals_required"), snap.ReferralsNeeded)),
		"flood_threshold":            strconv.Itoa(utils.AtoiDefault(c.PostForm("flood_threshold"), snap.FloodThreshold)),
	}
	for key, value := range values {
		if err := h.Settings.Set(ctx, key, value); err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, "could not save settings")
			return
		}
	}
	c.Redirect(http.StatusSeeOther, "/admin/settings?saved=1")
}

func checkbox(v string) string {
	if v == "1" || v == "on" {
		return "1"
	}
	return "0"
}

// APIStats returns the dashboard numbers as JSON for external consumers.
func (h *Handler) APIStats(c *gin.Context) {
	ctx := c.Request.Context()
	now := h.now()

	overview, err := repo.OverviewStats(ctx, h.DB, now)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load stats")
		return
	}
	userSeries, err := repo.UserGrowthSeries(ctx, h.DB, now)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load stats")
		return
	}
	reqSeries, err := repo.RequestSeries(ctx, h.DB, now)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load stats")
		return
	}

	ok(c, http.StatusOK, gin.H{
		"overview":       overview,
		"user_series":    userSeries,
		"request_series": reqSeries,
	})
}
