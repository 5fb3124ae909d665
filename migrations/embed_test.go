package migrations

import (
	"io/fs"
	"regexp"
	"sort"
	"strings"
	"testing"
)

func readAll(t *testing.T) map[string]string {
	t.Helper()
	entries, err := fs.ReadDir(FS, ".")
	if err != nil {
		t.Fatalf("reading embedded migrations: %v", err)
	}

	files := make(map[string]string)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".sql") {
			content, err := fs.ReadFile(FS, e.Name())
			if err != nil {
				t.Fatalf("reading %s: %v", e.Name(), err)
			}
			files[e.Name()] = string(content)
		}
	}
	return files
}

func TestMigrationsEmbeddedInOrder(t *testing.T) {
	files := readAll(t)
	if len(files) == 0 {
		t.Fatal("no embedded .sql migrations")
	}

	var names []string
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for i, name := range names {
		prefix := name[:strings.Index(name, "_")]
		if want := i + 1; prefix != padded(want) {
			t.Errorf("migration %q out of sequence, want prefix %s", name, padded(want))
		}
	}
}

func padded(n int) string {
	return string([]byte{'0', '0', byte('0' + n)})
}

// Audit rows must never block deleting the record they point at: the
// verification trail's receipt pointer and every log table's user FK
// null out instead of restricting the delete.
func TestAuditForeignKeysDoNotBlockDeletes(t *testing.T) {
	files := readAll(t)
	all := strings.Join([]string{files["002_invoices_receipts.sql"], files["003_audit_and_settings.sql"]}, "\n")

	checks := []struct {
		column string
		re     *regexp.Regexp
	}{
		{"verification_logs.item_receipt_id",
			regexp.MustCompile(`item_receipt_id INTEGER REFERENCES item_receipts\(id\) ON DELETE SET NULL`)},
		{"verification_logs.performed_by",
			regexp.MustCompile(`performed_by INTEGER REFERENCES users\(id\) ON DELETE SET NULL`)},
		{"login_logs.user_id",
			regexp.MustCompile(`user_id INTEGER REFERENCES users\(id\) ON DELETE SET NULL`)},
		{"admin_action_logs.admin_user_id",
			regexp.MustCompile(`admin_user_id INTEGER REFERENCES users\(id\) ON DELETE SET NULL`)},
	}
	for _, c := range checks {
		if !c.re.MatchString(all) {
			t.Errorf("%s must use ON DELETE SET NULL so audit rows never block a delete", c.column)
		}
	}

	// Receipt and invoice actor stamps likewise survive a user deletion
	for _, col := range []string{"verified_by", "tax_invoice_issued_by"} {
		re := regexp.MustCompile(col + ` INTEGER REFERENCES users\(id\) ON DELETE SET NULL`)
		if !re.MatchString(files["002_invoices_receipts.sql"]) {
			t.Errorf("%s must use ON DELETE SET NULL", col)
		}
	}
}
