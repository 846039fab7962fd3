// Package git provides Git operations for GitMuse.
package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// setupTestRepo creates a temporary git repository for testing.
func setupTestRepo(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	runGit(t, tmpDir, "init")
	runGit(t, tmpDir, "config", "user.email", "test@example.com")
	runGit(t, tmpDir, "config", "user.name", "Test User")

	return tmpDir
}

// runGit runs a git command in the specified directory.
func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\nOutput: %s", args, err, output)
	}
	return string(output)
}

// writeTestFile creates a file with the given content.
func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directories: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

func commitAll(t *testing.T, dir, message string) {
	t.Helper()
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", message)
}

func TestStagedDiff(t *testing.T) {
	tmpDir := setupTestRepo(t)
	client := NewClientWithWorkDir(tmpDir)

	writeTestFile(t, tmpDir, "main.go", "package main\n")
	commitAll(t, tmpDir, "initial commit")

	diff, err := client.StagedDiff(context.Background())
	if err != nil {
		t.Fatalf("StagedDiff() error = %v", err)
	}
	if strings.TrimSpace(diff) != "" {
		t.Errorf("StagedDiff() = %q, want empty after commit", diff)
	}

	writeTestFile(t, tmpDir, "main.go", "package main\n\nfunc main() {}\n")
	runGit(t, tmpDir, "add", ".")

	diff, err = client.StagedDiff(context.Background())
	if err != nil {
		t.Fatalf("StagedDiff() error = %v", err)
	}
	if !strings.Contains(diff, "func main()") {
		t.Errorf("StagedDiff() = %q, want staged change visible", diff)
	}
}

func TestUnstagedDiff(t *testing.T) {
	tmpDir := setupTestRepo(t)
	client := NewClientWithWorkDir(tmpDir)

	writeTestFile(t, tmpDir, "notes.txt", "one\n")
	commitAll(t, tmpDir, "initial commit")

	writeTestFile(t, tmpDir, "notes.txt", "one\ntwo\n")

	diff, err := client.UnstagedDiff(context.Background())
	if err != nil {
		t.Fatalf("UnstagedDiff() error = %v", err)
	}
	if !strings.Contains(diff, "+two") {
		t.Errorf("UnstagedDiff() = %q, want unstaged change visible", diff)
	}

	// Staged changes must not appear in the unstaged diff.
	staged, err := client.StagedDiff(context.Background())
	if err != nil {
		t.Fatalf("StagedDiff() error = %v", err)
	}
	if strings.TrimSpace(staged) != "" {
		t.Errorf("StagedDiff() = %q, want empty for unstaged-only change", staged)
	}
}

func TestUntrackedFiles(t *testing.T) {
	tmpDir := setupTestRepo(t)
	client := NewClientWithWorkDir(tmpDir)

	writeTestFile(t, tmpDir, "tracked.txt", "tracked\n")
	commitAll(t, tmpDir, "initial commit")

	files, err := client.UntrackedFiles(context.Background())
	if err != nil {
		t.Fatalf("UntrackedFiles() error = %v", err)
	}
	if len(files) != 0 {
		t.Errorf("UntrackedFiles() = %v, want none", files)
	}

	writeTestFile(t, tmpDir, "new.txt", "new\n")
	writeTestFile(t, tmpDir, "sub/other.txt", "other\n")

	files, err = client.UntrackedFiles(context.Background())
	if err != nil {
		t.Fatalf("UntrackedFiles() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("UntrackedFiles() = %v, want 2 entries", files)
	}
}

func TestUntrackedFiles_RespectsIgnoreRules(t *testing.T) {
	tmpDir := setupTestRepo(t)
	client := NewClientWithWorkDir(tmpDir)

	writeTestFile(t, tmpDir, ".gitignore", "*.log\n")
	commitAll(t, tmpDir, "add gitignore")
	writeTestFile(t, tmpDir, "debug.log", "noise\n")

	files, err := client.UntrackedFiles(context.Background())
	if err != nil {
		t.Fatalf("UntrackedFiles() error = %v", err)
	}
	for _, f := range files {
		if f == "debug.log" {
			t.Error("UntrackedFiles() should not list ignored files")
		}
	}
}

func TestAddAllAndCommit(t *testing.T) {
	tmpDir := setupTestRepo(t)
	client := NewClientWithWorkDir(tmpDir)
	ctx := context.Background()

	writeTestFile(t, tmpDir, "a.txt", "a\n")
	if err := client.AddAll(ctx); err != nil {
		t.Fatalf("AddAll() error = %v", err)
	}
	if err := client.Commit(ctx, "Add a.txt"); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	log := runGit(t, tmpDir, "log", "--oneline")
	if !strings.Contains(log, "Add a.txt") {
		t.Errorf("git log = %q, want commit message present", log)
	}
}

func TestCommit_NothingStagedFails(t *testing.T) {
	tmpDir := setupTestRepo(t)
	client := NewClientWithWorkDir(tmpDir)

	writeTestFile(t, tmpDir, "a.txt", "a\n")
	commitAll(t, tmpDir, "initial commit")

	if err := client.Commit(context.Background(), "empty"); err == nil {
		t.Error("Commit() should fail with nothing staged")
	}
}

func TestCurrentBranch(t *testing.T) {
	tmpDir := setupTestRepo(t)
	client := NewClientWithWorkDir(tmpDir)

	writeTestFile(t, tmpDir, "a.txt", "a\n")
	commitAll(t, tmpDir, "initial commit")
	runGit(t, tmpDir, "checkout", "-b", "feature/tags")

	branch, err := client.CurrentBranch(context.Background())
	if err != nil {
		t.Fatalf("CurrentBranch() error = %v", err)
	}
	if branch != "feature/tags" {
		t.Errorf("CurrentBranch() = %q, want %q", branch, "feature/tags")
	}
}

func TestHasRemote(t *testing.T) {
	tmpDir := setupTestRepo(t)
	client := NewClientWithWorkDir(tmpDir)
	ctx := context.Background()

	hasRemote, err := client.HasRemote(ctx)
	if err != nil {
		t.Fatalf("HasRemote() error = %v", err)
	}
	if hasRemote {
		t.Error("HasRemote() = true for a repo with no remotes")
	}

	runGit(t, tmpDir, "remote", "add", "origin", "https://example.com/repo.git")

	hasRemote, err = client.HasRemote(ctx)
	if err != nil {
		t.Fatalf("HasRemote() error = %v", err)
	}
	if !hasRemote {
		t.Error("HasRemote() = false after adding a remote")
	}
}

func TestTagLifecycle(t *testing.T) {
	tmpDir := setupTestRepo(t)
	client := NewClientWithWorkDir(tmpDir)
	ctx := context.Background()

	writeTestFile(t, tmpDir, "a.txt", "a\n")
	commitAll(t, tmpDir, "initial commit")

	tags, err := client.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags() error = %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("ListTags() = %v, want none", tags)
	}

	for _, tag := range []string{"v0.1.0", "v0.2.0", "v0.10.0"} {
		if err := client.CreateTag(ctx, tag); err != nil {
			t.Fatalf("CreateTag(%q) error = %v", tag, err)
		}
	}

	tags, err = client.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags() error = %v", err)
	}
	if len(tags) != 3 {
		t.Fatalf("ListTags() = %v, want 3 tags", tags)
	}
	// Version sort, descending: v0.10.0 ahead of v0.2.0.
	if tags[0] != "v0.10.0" {
		t.Errorf("ListTags()[0] = %q, want %q", tags[0], "v0.10.0")
	}
}

func TestCreateTag_DuplicateFails(t *testing.T) {
	tmpDir := setupTestRepo(t)
	client := NewClientWithWorkDir(tmpDir)
	ctx := context.Background()

	writeTestFile(t, tmpDir, "a.txt", "a\n")
	commitAll(t, tmpDir, "initial commit")

	if err := client.CreateTag(ctx, "v1.0.0"); err != nil {
		t.Fatalf("CreateTag() error = %v", err)
	}
	if err := client.CreateTag(ctx, "v1.0.0"); err == nil {
		t.Error("CreateTag() should fail for a duplicate tag")
	}
}

func TestRun_NotARepository(t *testing.T) {
	client := NewClientWithWorkDir(t.TempDir())

	_, err := client.StagedDiff(context.Background())
	if err == nil {
		t.Error("StagedDiff() should fail outside a git repository")
	}
}
