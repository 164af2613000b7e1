package repo

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/grabthumb/thumbbot/internal/domain"
)

func newTicketRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("ticket_repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	err = db.AutoMigrate(
		&domain.Ticket{},
		&domain.TicketMessage{},
		&domain.TicketAttachment{},
		&domain.Agent{},
	)
	if err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func seedTicket(t *testing.T, db *gorm.DB, ticketID string, userID int64) *domain.Ticket {
	t.Helper()
	tk := &domain.Ticket{TicketID: ticketID, UserID: userID, Subject: "subject"}
	if err := CreateTicket(context.Background(), db, tk); err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	return tk
}

func TestCreateTicket_SetsOpenStatus(t *testing.T) {
	db := newTicketRepoDB(t)
	tk := seedTicket(t, db, "AAAA1111", 1)
	if tk.Status != domain.TicketStatusOpen || tk.CreatedAt.IsZero() {
		t.Fatalf("unexpected ticket after create: %+v", tk)
	}

	exists, err := TicketIDExists(context.Background(), db, "AAAA1111")
	if err != nil || !exists {
		t.Fatalf("TicketIDExists = %v err=%v, want true", exists, err)
	}
	exists, err = TicketIDExists(context.Background(), db, "ZZZZ9999")
	if err != nil || exists {
		t.Fatalf("TicketIDExists = %v err=%v, want false", exists, err)
	}
}

func TestUpdateTicketStatus_ResolvedStampsTime(t *testing.T) {
	db := newTicketRepoDB(t)
	seedTicket(t, db, "AAAA1111", 1)
	ctx := context.Background()

	if err := UpdateTicketStatus(ctx, db, "AAAA1111", domain.TicketStatusResolved); err != nil {
		t.Fatalf("UpdateTicketStatus: %v", err)
	}
	tk, err := GetTicket(ctx, db, "AAAA1111")
	if err != nil {
		t.Fatalf("GetTicket: %v", err)
	}
	if tk.Status != domain.TicketStatusResolved || tk.ResolvedAt == nil {
		t.Fatalf("resolution not stamped: %+v", tk)
	}

	if err := UpdateTicketStatus(ctx, db, "MISSING1", domain.TicketStatusClosed); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAssignTicket_BumpsAgentCounter(t *testing.T) {
	db := newTicketRepoDB(t)
	ctx := context.Background()
	seedTicket(t, db, "AAAA1111", 1)
	if err := AddAgent(ctx, db, 500, "support"); err != nil {
		t.Fatalf("AddAgent: %v", err)
	}
	agent, err := GetAgentByUserID(ctx, db, 500)
	if err != nil {
		t.Fatalf("GetAgentByUserID: %v", err)
	}

	if err := AssignTicket(ctx, db, "AAAA1111", agent.ID); err != nil {
		t.Fatalf("AssignTicket: %v", err)
	}

	tk, _ := GetTicket(ctx, db, "AAAA1111")
	if tk.AssignedAgentID == nil || *tk.AssignedAgentID != agent.ID {
		t.Fatalf("assignment not written: %+v", tk)
	}
	agent, _ = GetAgentByUserID(ctx, db, 500)
	if agent.AssignedTickets != 1 {
		t.Fatalf("AssignedTickets = %d, want 1", agent.AssignedTickets)
	}

	if err := AssignTicket(ctx, db, "MISSING1", agent.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddTicketMessage_FirstAgentReplyStampsOnce(t *testing.T) {
	db := newTicketRepoDB(t)
	ctx := context.Background()
	seedTicket(t, db, "AAAA1111", 1)

	// User message never stamps FirstReplyAt.
	if err := AddTicketMessage(ctx, db, "AAAA1111", 1, "help", false); err != nil {
		t.Fatalf("user message: %v", err)
	}
	tk, _ := GetTicket(ctx, db, "AAAA1111")
	if tk.FirstReplyAt != nil {
		t.Fatalf("FirstReplyAt set by user message")
	}

	if err := AddTicketMessage(ctx, db, "AAAA1111", 500, "hello", true); err != nil {
		t.Fatalf("agent message: %v", err)
	}
	tk, _ = GetTicket(ctx, db, "AAAA1111")
	if tk.FirstReplyAt == nil {
		t.Fatalf("FirstReplyAt not stamped by agent reply")
	}
	first := *tk.FirstReplyAt

	// A later agent reply keeps the original stamp.
	time.Sleep(5 * time.Millisecond)
	if err := AddTicketMessage(ctx, db, "AAAA1111", 500, "again", true); err != nil {
		t.Fatalf("second agent message: %v", err)
	}
	tk, _ = GetTicket(ctx, db, "AAAA1111")
	if !tk.FirstReplyAt.Equal(first) {
		t.Fatalf("FirstReplyAt moved: %v -> %v", first, tk.FirstReplyAt)
	}

	msgs, err := ListTicketMessages(ctx, db, "AAAA1111")
	if err != nil {
		t.Fatalf("ListTicketMessages: %v", err)
	}
	if len(msgs) != 3 || msgs[0].Body != "help" {
		t.Fatalf("unexpected thread: %+v", msgs)
	}
}

func TestTicketAttachments_Roundtrip(t *testing.T) {
	db := newTicketRepoDB(t)
	ctx := context.Background()
	seedTicket(t, db, "AAAA1111", 1)

	a := domain.TicketAttachment{
		TicketID: "AAAA1111",
		FileID:   "tg-file-id",
		FileType: "photo",
		FileName: "shot.jpg",
	}
	if err := AddTicketAttachment(ctx, db, &a); err != nil {
		t.Fatalf("AddTicketAttachment: %v", err)
	}
	got, err := ListTicketAttachments(ctx, db, "AAAA1111")
	if err != nil {
		t.Fatalf("ListTicketAttachments: %v", err)
	}
	if len(got) != 1 || got[0].FileID != "tg-file-id" || got[0].FileType != "photo" {
		t.Fatalf("unexpected attachments: %+v", got)
	}
}

func TestListOpenTickets_ExcludesResolvedOldestFirst(t *testing.T) {
	db := newTicketRepoDB(t)
	ctx := context.Background()
	seedTicket(t, db, "TICKET01", 1)
	time.Sleep(5 * time.Millisecond)
	seedTicket(t, db, "TICKET02", 2)
	time.Sleep(5 * time.Millisecond)
	seedTicket(t, db, "TICKET03", 3)
	if err := UpdateTicketStatus(ctx, db, "TICKET02", domain.TicketStatusResolved); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	got, err := ListOpenTickets(ctx, db)
	if err != nil {
		t.Fatalf("ListOpenTickets: %v", err)
	}
	if len(got) != 2 || got[0].TicketID != "TICKET01" || got[1].TicketID != "TICKET03" {
		t.Fatalf("unexpected queue: %+v", got)
	}
}

func TestLeastBusyOnlineAgent(t *testing.T) {
	db := newTicketRepoDB(t)
	ctx := context.Background()

	if _, err := LeastBusyOnlineAgent(ctx, db); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound with empty pool, got %v", err)
	}

	for _, uid := range []int64{500, 501, 502} {
		if err := AddAgent(ctx, db, uid, "support"); err != nil {
			t.Fatalf("AddAgent %d: %v", uid, err)
		}
		if err := SetAgentOnline(ctx, db, uid, true); err != nil {
			t.Fatalf("SetAgentOnline %d: %v", uid, err)
		}
	}
	// Load two of them.
	if err := db.Model(&domain.Agent{}).Where("user_id = ?", 500).Update("assigned_tickets", 5).Error; err != nil {
		t.Fatalf("load 500: %v", err)
	}
	if err := db.Model(&domain.Agent{}).Where("user_id = ?", 501).Update("assigned_tickets", 2).Error; err != nil {
		t.Fatalf("load 501: %v", err)
	}
	// Busiest-free agent goes offline.
	if err := SetAgentOnline(ctx, db, 502, false); err != nil {
		t.Fatalf("offline 502: %v", err)
	}

	a, err := LeastBusyOnlineAgent(ctx, db)
	if err != nil {
		t.Fatalf("LeastBusyOnlineAgent: %v", err)
	}
	if a.UserID != 501 {
		t.Fatalf("picked agent %d, want 501", a.UserID)
	}
}
