package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// run executes one command line against dbPath and returns its stdout.
func run(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root, closeApp := NewRootCommand(&out, &errOut)
	root.SetArgs(append([]string{"--db", dbPath}, args...))

	err := root.Execute()
	if cerr := closeApp(); cerr != nil {
		t.Fatalf("close: %v", cerr)
	}
	return out.String(), err
}

func mustRun(t *testing.T, dbPath string, args ...string) string {
	t.Helper()
	out, err := run(t, dbPath, args...)
	if err != nil {
		t.Fatalf("expy %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func testDB(t *testing.T) string {
	t.Helper()
	t.Setenv("EXPY_LOG_LEVEL", "error")
	return filepath.Join(t.TempDir(), "expy.db")
}

func TestAddAndGet(t *testing.T) {
	db := testDB(t)

	out := mustRun(t, db, "add", "--date", "2024-03-01", "--category", "Groceries",
		"--description", "weekly shop", "--value", "54.20")
	if !strings.Contains(out, "Added transaction 1.") {
		t.Fatalf("unexpected add output %q", out)
	}

	out = mustRun(t, db, "get", "1")
	for _, want := range []string{"Groceries", "weekly shop", "54.20", "2024-03-01"} {
		if !strings.Contains(out, want) {
			t.Errorf("get output missing %q:\n%s", want, out)
		}
	}

	out = mustRun(t, db, "get", "2")
	if !strings.Contains(out, "No transaction with id 2.") {
		t.Errorf("unexpected get output %q", out)
	}
}

func TestAddRequiresCategoryAndValue(t *testing.T) {
	db := testDB(t)
	if _, err := run(t, db, "add", "--value", "1"); err == nil {
		t.Fatal("expected error without --category")
	}
	if _, err := run(t, db, "add", "--category", "x", "--value", "abc"); err == nil {
		t.Fatal("expected error for invalid --value")
	}
}

func TestAddRejectsNonPositiveID(t *testing.T) {
	db := testDB(t)
	for _, id := range []string{"0", "-3"} {
		if _, err := run(t, db, "add", "--id="+id, "--category", "Rent", "--value", "900"); err == nil {
			t.Fatalf("expected error for --id %s", id)
		}
	}
	out := mustRun(t, db, "stats")
	if !strings.Contains(out, "Transactions: 0") {
		t.Fatalf("rejected adds must not store anything:\n%s", out)
	}
}

func TestListCategoryWithComma(t *testing.T) {
	db := testDB(t)
	mustRun(t, db, "add", "--category", "Food, drink", "--value", "8")
	mustRun(t, db, "add", "--category", "Food", "--value", "3")

	out := mustRun(t, db, "list", "--category", "Food, drink")
	if !strings.Contains(out, "8.00") || strings.Contains(out, "3.00") {
		t.Fatalf("expected only the \"Food, drink\" row:\n%s", out)
	}
}

func TestAddDuplicateIDFails(t *testing.T) {
	db := testDB(t)
	mustRun(t, db, "add", "--id", "5", "--category", "Rent", "--value", "900")
	_, err := run(t, db, "add", "--id", "5", "--category", "Rent", "--value", "900")
	if err == nil || !strings.Contains(err.Error(), "conflicts") {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestListFilters(t *testing.T) {
	db := testDB(t)
	mustRun(t, db, "add", "--date", "2024-01-10", "--category", "Food", "--value", "12.50")
	mustRun(t, db, "add", "--date", "2024-02-10", "--category", "Fuel", "--value", "40")
	mustRun(t, db, "add", "--date", "2024-02-20", "--category", "Food", "--value", "7.25")

	out := mustRun(t, db, "list")
	if got := strings.Count(out, "\n"); got != 4 {
		t.Fatalf("expected header and 3 rows, got:\n%s", out)
	}

	out = mustRun(t, db, "list", "--from", "2024-02-01", "--category", "Food")
	if !strings.Contains(out, "7.25") || strings.Contains(out, "12.50") || strings.Contains(out, "Fuel") {
		t.Fatalf("unexpected filtered output:\n%s", out)
	}

	out = mustRun(t, db, "list", "--min", "10", "--max", "20")
	if !strings.Contains(out, "12.50") || strings.Contains(out, "40.00") || strings.Contains(out, "7.25") {
		t.Fatalf("unexpected value filtered output:\n%s", out)
	}

	out = mustRun(t, db, "list", "--category", "Travel")
	if !strings.Contains(out, "No transactions found.") {
		t.Fatalf("expected no matches, got:\n%s", out)
	}

	out = mustRun(t, db, "list", "--summary")
	if !strings.Contains(out, "TOTAL") || !strings.Contains(out, "59.75") {
		t.Fatalf("expected summary totals, got:\n%s", out)
	}

	if _, err := run(t, db, "list", "--from", "someday"); err == nil {
		t.Fatal("expected error for invalid --from")
	}
}

func TestUpdateChangesOnlyGivenFields(t *testing.T) {
	db := testDB(t)
	mustRun(t, db, "add", "--date", "2024-03-01", "--category", "Food",
		"--description", "lunch", "--value", "10")

	out := mustRun(t, db, "update", "1", "--value", "11.40")
	if !strings.Contains(out, "Updated transaction 1.") {
		t.Fatalf("unexpected update output %q", out)
	}

	out = mustRun(t, db, "get", "1")
	for _, want := range []string{"Food", "lunch", "11.40", "2024-03-01"} {
		if !strings.Contains(out, want) {
			t.Errorf("get after update missing %q:\n%s", want, out)
		}
	}

	out = mustRun(t, db, "update", "9", "--value", "1")
	if !strings.Contains(out, "Nothing to update") {
		t.Errorf("unexpected output for unknown id %q", out)
	}
}

func TestDelete(t *testing.T) {
	db := testDB(t)
	mustRun(t, db, "add", "--category", "Food", "--value", "3")

	out := mustRun(t, db, "delete", "1")
	if !strings.Contains(out, "Deleted transaction 1.") {
		t.Fatalf("unexpected delete output %q", out)
	}
	out = mustRun(t, db, "delete", "1")
	if !strings.Contains(out, "Nothing to delete") {
		t.Fatalf("unexpected second delete output %q", out)
	}
	if _, err := run(t, db, "delete", "zero"); err == nil {
		t.Fatal("expected error for invalid id")
	}
}

func TestStats(t *testing.T) {
	db := testDB(t)

	out := mustRun(t, db, "stats")
	if !strings.Contains(out, "Transactions: 0") {
		t.Fatalf("unexpected empty stats %q", out)
	}

	mustRun(t, db, "add", "--category", "Food", "--value", "3", "--cc-value", "3")
	mustRun(t, db, "add", "--category", "Rent", "--value", "900")

	out = mustRun(t, db, "stats")
	for _, want := range []string{"Transactions: 2", "Food", "Rent", "903.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q:\n%s", want, out)
		}
	}
}

func TestInvalidConfig(t *testing.T) {
	t.Setenv("EXPY_LOG_FORMAT", "xml")
	if _, err := run(t, filepath.Join(t.TempDir(), "expy.db"), "stats"); err == nil {
		t.Fatal("expected configuration error")
	}
}
