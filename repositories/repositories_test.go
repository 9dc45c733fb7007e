package repositories

import (
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/clipdigest/clipdigest/database"
	"github.com/clipdigest/clipdigest/models"
	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	// Create a temporary database for testing
	dbPath := "test_" + time.Now().Format("20060102150405.000") + ".db"

	// Clean up function
	t.Cleanup(func() {
		os.Remove(dbPath)
	})

	// Initialize test database using the actual migration system
	if err := database.InitializeDatabase(dbPath); err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}

	return database.GetDB()
}

func TestSummaryRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSummaryRepository(db)

	// Test Create
	summary := &models.Summary{
		VideoID:     "dQw4w9WgXcQ",
		VideoURL:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Platform:    "twitter",
		SummaryText: "A classic video about commitment.",
		PostText:    "A classic video about commitment. #AI #Summary https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	}

	err := repo.Create(summary)
	if err != nil {
		t.Fatalf("Failed to create summary: %v", err)
	}

	if summary.ID == 0 {
		t.Error("Expected summary ID to be set after creation")
	}

	// Test GetByID
	retrieved, err := repo.GetByID(summary.ID)
	if err != nil {
		t.Fatalf("Failed to get summary by ID: %v", err)
	}

	if retrieved.VideoID != summary.VideoID {
		t.Errorf("Expected video ID %s, got %s", summary.VideoID, retrieved.VideoID)
	}

	if retrieved.Posted {
		t.Error("Expected new summary to be unposted")
	}

	// Test MarkPosted
	err = repo.MarkPosted(summary.ID, "1234567890")
	if err != nil {
		t.Fatalf("Failed to mark summary posted: %v", err)
	}

	posted, err := repo.GetByID(summary.ID)
	if err != nil {
		t.Fatalf("Failed to get posted summary: %v", err)
	}

	if !posted.Posted {
		t.Error("Expected summary to be marked posted")
	}

	if posted.PostRef != "1234567890" {
		t.Errorf("Expected post ref 1234567890, got %s", posted.PostRef)
	}

	// Test Count
	count, err := repo.Count()
	if err != nil {
		t.Fatalf("Failed to count summaries: %v", err)
	}

	if count != 1 {
		t.Errorf("Expected count 1, got %d", count)
	}
}

func TestSummaryRepositoryGetRecent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSummaryRepository(db)

	for i := 0; i < 5; i++ {
		summary := &models.Summary{
			VideoID:     "video0000" + string(rune('A'+i)),
			VideoURL:    "https://youtu.be/video0000" + string(rune('A'+i)),
			Platform:    "linkedin",
			SummaryText: "Summary text",
		}
		if err := repo.Create(summary); err != nil {
			t.Fatalf("Failed to create summary %d: %v", i, err)
		}
	}

	recent, err := repo.GetRecent(3)
	if err != nil {
		t.Fatalf("Failed to get recent summaries: %v", err)
	}

	if len(recent) != 3 {
		t.Errorf("Expected 3 summaries, got %d", len(recent))
	}

	// Newest first
	if recent[0].VideoID != "video0000E" {
		t.Errorf("Expected newest summary first, got %s", recent[0].VideoID)
	}
}

func TestSummaryRepositoryMarkPostedMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSummaryRepository(db)

	err := repo.MarkPosted(999, "ref")
	if err == nil {
		t.Error("Expected error when marking missing summary posted")
	}
}

func TestAuditRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuditRepository(db)

	entry := &models.AuditLogEntry{
		Actor:     "twitter",
		Method:    "POST",
		Path:      "/post",
		FormData:  "platform=twitter",
		UserAgent: "test-agent",
		IPAddress: "127.0.0.1",
	}

	err := repo.Create(entry)
	if err != nil {
		t.Fatalf("Failed to create audit log entry: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM audit_log").Scan(&count); err != nil {
		t.Fatalf("Failed to count audit log entries: %v", err)
	}

	if count != 1 {
		t.Errorf("Expected 1 audit log entry, got %d", count)
	}
}
