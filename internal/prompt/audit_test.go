package prompt

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kayz/docanalyze/internal/config"
)

func TestRecordAppendsSameDay(t *testing.T) {
	dir := t.TempDir()
	a := NewAuditor(config.AuditConfig{
		Enabled:       true,
		Dir:           filepath.Join(dir, "audit"),
		RetentionDays: 7,
		FilePrefix:    "assemble",
	})

	bundle := Bundle{SystemPrompt: "sys", UserPrompt: "usr"}
	if err := a.Record("execute", bundle, []string{"Output Format"}); err != nil {
		t.Fatalf("write first audit record: %v", err)
	}
	if err := a.Record("execute", bundle, []string{"Output Format"}); err != nil {
		t.Fatalf("write second audit record: %v", err)
	}

	auditFile := filepath.Join(dir, "audit", "assemble-"+time.Now().Format("2006-01-02")+".jsonl")
	data, err := os.ReadFile(auditFile)
	if err != nil {
		t.Fatalf("read audit file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 audit lines, got %d", len(lines))
	}

	var rec auditRecord
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("unmarshal first line: %v", err)
	}
	if rec.ID == "" || rec.Timestamp == "" || rec.PromptDigest == "" {
		t.Fatalf("expected id, timestamp and prompt_digest set: %#v", rec)
	}
	if rec.Operation != "execute" {
		t.Fatalf("unexpected operation: %q", rec.Operation)
	}
	if rec.SystemChars != len("sys") || rec.UserChars != len("usr") {
		t.Fatalf("unexpected char counts: %#v", rec)
	}
}

func TestRecordDisabledIsNoOp(t *testing.T) {
	dir := t.TempDir()
	a := NewAuditor(config.AuditConfig{Enabled: false, Dir: filepath.Join(dir, "audit")})

	if err := a.Record("execute", Bundle{}, nil); err != nil {
		t.Fatalf("disabled record: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "audit")); !os.IsNotExist(err) {
		t.Fatalf("expected no audit dir created")
	}
}

func TestCleanupRemovesExpiredFiles(t *testing.T) {
	dir := t.TempDir()
	auditDir := filepath.Join(dir, "audit")
	if err := os.MkdirAll(auditDir, 0755); err != nil {
		t.Fatalf("mkdir audit dir: %v", err)
	}

	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	oldName := "assemble-" + now.AddDate(0, 0, -10).Format("2006-01-02") + ".jsonl"
	freshName := "assemble-" + now.Format("2006-01-02") + ".jsonl"
	for _, name := range []string{oldName, freshName} {
		if err := os.WriteFile(filepath.Join(auditDir, name), []byte("{}\n"), 0644); err != nil {
			t.Fatalf("write fixture %s: %v", name, err)
		}
	}

	a := NewAuditor(config.AuditConfig{
		Enabled:       true,
		Dir:           auditDir,
		RetentionDays: 7,
		FilePrefix:    "assemble",
	})
	if err := a.cleanupWithNow(now); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	if _, err := os.Stat(filepath.Join(auditDir, oldName)); !os.IsNotExist(err) {
		t.Fatalf("expected old file removed")
	}
	if _, err := os.Stat(filepath.Join(auditDir, freshName)); err != nil {
		t.Fatalf("expected fresh file kept: %v", err)
	}
}
