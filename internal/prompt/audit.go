package prompt

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kayz/docanalyze/internal/config"
)

var auditMu sync.Mutex

// Auditor appends one JSONL record per prompt assembly and prunes old
// daily files past the retention window.
type Auditor struct {
	cfg config.AuditConfig
}

// NewAuditor creates an Auditor from config.
func NewAuditor(cfg config.AuditConfig) *Auditor {
	return &Auditor{cfg: cfg}
}

type auditRecord struct {
	ID           string   `json:"id"`
	Timestamp    string   `json:"timestamp"`
	Operation    string   `json:"operation"`
	PromptDigest string   `json:"prompt_digest"`
	Sections     []string `json:"sections,omitempty"`
	SystemChars  int      `json:"system_chars"`
	UserChars    int      `json:"user_chars"`
}

// Record writes one audit line for an assembled bundle. Operation names
// the assembly flow ("execute", "continue"). A disabled auditor is a
// no-op.
func (a *Auditor) Record(operation string, bundle Bundle, sections []string) error {
	if !a.cfg.Enabled {
		return nil
	}

	auditDir := a.cfg.Dir
	if auditDir == "" {
		auditDir = ".docanalyze/audit"
	}
	if err := os.MkdirAll(auditDir, 0755); err != nil {
		return fmt.Errorf("create audit dir: %w", err)
	}

	now := time.Now()
	filePath := filepath.Join(auditDir, a.fileName(now))

	record := auditRecord{
		ID:           uuid.NewString(),
		Timestamp:    now.Format(time.RFC3339),
		Operation:    operation,
		PromptDigest: bundleDigest(bundle),
		Sections:     sections,
		SystemChars:  len(bundle.SystemPrompt),
		UserChars:    len(bundle.UserPrompt),
	}

	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal audit record: %w", err)
	}

	auditMu.Lock()
	defer auditMu.Unlock()

	if err := appendJSONL(filePath, line); err != nil {
		return err
	}

	return a.cleanupWithNow(now)
}

func (a *Auditor) fileName(now time.Time) string {
	prefix := strings.TrimSpace(a.cfg.FilePrefix)
	if prefix == "" {
		prefix = "assemble"
	}
	return fmt.Sprintf("%s-%s.jsonl", prefix, now.Format("2006-01-02"))
}

func appendJSONL(filePath string, line []byte) error {
	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open audit file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write audit file: %w", err)
	}
	return nil
}

// Cleanup removes audit files older than the retention window.
func (a *Auditor) Cleanup() error {
	auditMu.Lock()
	defer auditMu.Unlock()
	return a.cleanupWithNow(time.Now())
}

func (a *Auditor) cleanupWithNow(now time.Time) error {
	if !a.cfg.Enabled || a.cfg.RetentionDays <= 0 {
		return nil
	}

	auditDir := a.cfg.Dir
	if auditDir == "" {
		auditDir = ".docanalyze/audit"
	}
	entries, err := os.ReadDir(auditDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("list audit dir: %w", err)
	}

	prefix := strings.TrimSpace(a.cfg.FilePrefix)
	if prefix == "" {
		prefix = "assemble"
	}

	cutoff := now.AddDate(0, 0, -a.cfg.RetentionDays)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, prefix+"-") || !strings.HasSuffix(name, ".jsonl") {
			continue
		}

		filePath := filepath.Join(auditDir, name)
		fileDate, ok := parseAuditDate(name, prefix)
		if ok {
			if fileDate.Before(startOfDay(cutoff)) {
				if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("remove old audit file %s: %w", filePath, err)
				}
			}
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return fmt.Errorf("stat audit file %s: %w", filePath, err)
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("remove old audit file %s: %w", filePath, err)
			}
		}
	}

	return nil
}

func parseAuditDate(filename, prefix string) (time.Time, bool) {
	raw := strings.TrimSuffix(filename, ".jsonl")
	raw = strings.TrimPrefix(raw, prefix+"-")
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func bundleDigest(bundle Bundle) string {
	sum := sha256.Sum256([]byte(bundle.SystemPrompt + "\x00" + bundle.UserPrompt))
	return hex.EncodeToString(sum[:])
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
