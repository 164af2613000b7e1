// Package domain defines the persistence models for bot users, usage and
// flood bookkeeping, referrals, support ticketing, and global settings.
// These types are mapped with GORM and form the core data layer of the bot.
package domain

import (
	"time"
)

// Ticket status values. Tickets progress open → resolved; "closed" remains a
// legal value accepted by the dashboard for historical rows.
const (
	TicketStatusOpen     = "open"
	TicketStatusResolved = "resolved"
	TicketStatusClosed   = "closed"
)

// Payment proof review states.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusApproved = "approved"
	PaymentStatusRejected = "rejected"
)

// User represents a Telegram user known to the bot. Users are created on
// first contact and never deleted; premium/ban toggles and referral counts
// mutate the row in place.
//
// Fields:
//   - ID: the Telegram user ID (primary key, assigned by Telegram).
//   - Username / FirstName / LanguageCode: profile data captured at /start.
//   - IsPremium + PremiumExpiry: premium flag with optional expiry; an
//     expired flag must read as non-premium (enforced in the service layer).
//   - ReferredBy: Telegram ID of the referrer, if the user arrived via a
//     referral link.
//   - ReferralCount: denormalized count of rows in referrals where this user
//     is the referrer; written in the same transaction as the Referral row
//     so it is reconcilable from the relationship table.
//   - IsBanned: banned users are refused all bot actions.
//   - CreatedAt / LastActive: first contact and most recent contact.
type User struct {
	ID            int64      `json:"id"             gorm:"primaryKey;autoIncrement:false"`
	Username      string     `json:"username"       gorm:"type:varchar(64);index"`
	FirstName     string     `json:"first_name"     gorm:"type:varchar(128)"`
	LanguageCode  string     `json:"language_code"  gorm:"type:varchar(8)"`
	IsPremium     bool       `json:"is_premium"     gorm:"not null;default:false"`
	PremiumExpiry *time.Time `json:"premium_expiry,omitempty"`
	ReferredBy    *int64     `json:"referred_by,omitempty" gorm:"index"`
	ReferralCount int        `json:"referral_count" gorm:"not null;default:0"`
	IsBanned      bool       `json:"is_banned"      gorm:"not null;default:false"`
	CreatedAt     time.Time  `json:"created_at"`
	LastActive    time.Time  `json:"last_active"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// PremiumActive reports whether the user's premium flag is in force at the
// given instant. A set expiry in the past makes the flag read as false even
// while the stored column is still true; callers that notice the mismatch
// should persist the cleared state (see services.AccountService.IsPremium).
func (u *User) PremiumActive(now time.Time) bool {
	if !u.IsPremium {
		return false
	}
	if u.PremiumExpiry != nil && now.After(*u.PremiumExpiry) {
		return false
	}
	return true
}

// UsageCounter tracks how many actions a user performed on a calendar day.
// The (user, day) pair is unique; the count is bumped with a single atomic
// upsert. Rows are never deleted and accumulate as history.
type UsageCounter struct {
	ID     uint   `json:"id"      gorm:"primaryKey"`
	UserID int64  `json:"user_id" gorm:"not null;uniqueIndex:ux_usage_user_day,priority:1"`
	Day    string `json:"day"     gorm:"type:char(10);not null;uniqueIndex:ux_usage_user_day,priority:2"` // YYYY-MM-DD
	Count  int    `json:"count"   gorm:"not null;default:0"`
}

// TableName returns the database table name for UsageCounter.
func (UsageCounter) TableName() string { return "usage_counters" }

// Referral is an append-only record of one successful sign-up attributed to
// an existing user. The referrer's denormalized counter on User is updated in
// the same transaction that inserts this row.
type Referral struct {
	ID         uint      `json:"id"          gorm:"primaryKey"`
	ReferrerID int64     `json:"referrer_id" gorm:"not null;index"`
	ReferredID int64     `json:"referred_id" gorm:"not null;index"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the database table name for Referral.
func (Referral) TableName() string { return "referrals" }

// FloodWindow holds the fixed-window burst counter for one user: the number
// of requests seen in the current window and when the window started. The row
// is reset in place when the window elapses; it is transient bookkeeping and
// carries no history.
type FloodWindow struct {
	UserID       int64     `json:"user_id"       gorm:"primaryKey;autoIncrement:false"`
	RequestCount int       `json:"request_count" gorm:"not null;default:0"`
	WindowStart  time.Time `json:"window_start"`
}

// TableName returns the database table name for FloodWindow.
func (FloodWindow) TableName() string { return "flood_windows" }

// PaymentProof records a payment screenshot a user submitted for the paid
// premium flow. Only opaque Telegram file identifiers are stored; the media
// itself stays on Telegram.
type PaymentProof struct {
	ID           uint      `json:"id"             gorm:"primaryKey"`
	UserID       int64     `json:"user_id"        gorm:"not null;index"`
	FileID       string    `json:"file_id"        gorm:"type:varchar(255);not null"`
	FileUniqueID string    `json:"file_unique_id" gorm:"type:varchar(64)"`
	Status       string    `json:"status"         gorm:"type:varchar(16);not null;default:'pending'"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the database table name for PaymentProof.
func (PaymentProof) TableName() string { return "payment_proofs" }

// Ticket is a support request. The public TicketID is an 8-character
// identifier from [A-Z0-9], unique and immutable once assigned.
//
// Fields:
//   - TicketID: public identifier shown to users and agents.
//   - UserID: the requester.
//   - Status: open / resolved / closed; resolving stamps ResolvedAt.
//   - AssignedAgentID: agents table row the ticket was routed to, nil when
//     no agent was online at creation time.
//   - SLAFirstReply / SLAResolution: targets in seconds, for reporting only.
//   - FirstReplyAt: stamped on the first agent message in the thread.
//   - Escalated: set manually by admins; no automated escalation exists.
type Ticket struct {
	ID              uint       `json:"id"                gorm:"primaryKey"`
	TicketID        string     `json:"ticket_id"         gorm:"type:char(8);uniqueIndex;not null"`
	UserID          int64      `json:"user_id"           gorm:"not null;index"`
	Subject         string     `json:"subject"           gorm:"type:varchar(255);not null"`
	Status          string     `json:"status"            gorm:"type:varchar(16);not null;default:'open';index"`
	Priority        string     `json:"priority"          gorm:"type:varchar(16);not null;default:'normal'"`
	AssignedAgentID *uint      `json:"assigned_agent_id,omitempty" gorm:"index"`
	SLAFirstReply   int        `json:"sla_first_reply"   gorm:"not null;default:3600"`
	SLAResolution   int        `json:"sla_resolution"    gorm:"not null;default:86400"`
	FirstReplyAt    *time.Time `json:"first_reply_at,omitempty"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
	Escalated       bool       `json:"escalated"         gorm:"not null;default:false"`
	CreatedAt       time.Time  `json:"created_at"`
}

// TableName returns the database table name for Ticket.
func (Ticket) TableName() string { return "support_tickets" }

// TicketMessage is one utterance in a ticket thread, authored either by the
// requesting user or by an agent. Append-only.
type TicketMessage struct {
	ID        uint      `json:"id"        gorm:"primaryKey"`
	TicketID  string    `json:"ticket_id" gorm:"type:char(8);not null;index"`
	SenderID  int64     `json:"sender_id" gorm:"not null"`
	Body      string    `json:"body"      gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for TicketMessage.
func (TicketMessage) TableName() string { return "support_messages" }

// TicketAttachment references media attached to a ticket by its opaque
// Telegram file identifiers. The bytes live on Telegram's servers; the
// dashboard export ships these references, never the media. Append-only.
type TicketAttachment struct {
	ID           uint      `json:"id"             gorm:"primaryKey"`
	TicketID     string    `json:"ticket_id"      gorm:"type:char(8);not null;index"`
	FileID       string    `json:"file_id"        gorm:"type:varchar(255);not null"`
	FileUniqueID string    `json:"file_unique_id" gorm:"type:varchar(64)"`
	FileType     string    `json:"file_type"      gorm:"type:varchar(16);not null"`
	FileName     string    `json:"file_name"      gorm:"type:varchar(255)"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the database table name for TicketAttachment.
func (TicketAttachment) TableName() string { return "support_attachments" }

// Agent is a human support operator eligible for ticket assignment.
//
// Fields:
//   - UserID: the operator's Telegram ID (unique).
//   - IsOnline: toggled by the agent; only online agents receive new tickets.
//   - AssignedTickets: live count incremented on assignment. There is no
//     decrement on resolution and no reassignment when an agent goes
//     offline; an offline agent keeps its tickets.
//   - TotalHandled / TotalClosed / AvgReplySeconds: reporting counters.
type Agent struct {
	ID              uint      `json:"id"                gorm:"primaryKey"`
	UserID          int64     `json:"user_id"           gorm:"uniqueIndex;not null"`
	Role            string    `json:"role"              gorm:"type:varchar(32);not null;default:'support'"`
	IsOnline        bool      `json:"is_online"         gorm:"not null;default:false"`
	AssignedTickets int       `json:"assigned_tickets"  gorm:"not null;default:0"`
	TotalHandled    int       `json:"total_handled"     gorm:"not null;default:0"`
	TotalClosed     int       `json:"total_closed"      gorm:"not null;default:0"`
	AvgReplySeconds int       `json:"avg_reply_seconds" gorm:"not null;default:0"`
	CreatedAt       time.Time `json:"created_at"`
	LastActive      time.Time `json:"last_active"`
}

// TableName returns the database table name for Agent.
func (Agent) TableName() string { return "agents" }

// FAQEntry is a canned answer matched by substring against its keyword list.
type FAQEntry struct {
	ID        uint      `json:"id"        gorm:"primaryKey"`
	Keywords  string    `json:"keywords"  gorm:"type:varchar(255);not null"`
	Answer    string    `json:"answer"    gorm:"type:text;not null"`
	Language  string    `json:"language"  gorm:"type:varchar(8);not null;default:'en'"`
	IsActive  bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for FAQEntry.
func (FAQEntry) TableName() string { return "faq_entries" }

// Setting is one global key/value configuration row, editable from the
// dashboard and read fresh by the bot on every check. Defaults are seeded at
// migration time; see repo.SeedDefaultSettings.
type Setting struct {
	Key       string    `json:"key"   gorm:"primaryKey;type:varchar(64)"`
	Value     string    `json:"value" gorm:"type:text;not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Setting.
func (Setting) TableName() string { return "bot_settings" }
