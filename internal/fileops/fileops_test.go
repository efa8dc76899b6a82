package fileops

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateFile(t *testing.T) {
	tempDir := t.TempDir()

	err := CreateFile(tempDir, "testfile.txt")
	if err != nil {
		t.Fatalf("CreateFile failed: %v", err)
	}

	filePath := filepath.Join(tempDir, "testfile.txt")
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		t.Error("File was not created")
	}

	// Creating a file that already exists must fail
	err = CreateFile(tempDir, "testfile.txt")
	if err == nil {
		t.Error("Expected error when creating existing file")
	}
}

func TestCreateDir(t *testing.T) {
	tempDir := t.TempDir()

	err := CreateDir(tempDir, "testdir")
	if err != nil {
		t.Fatalf("CreateDir failed: %v", err)
	}

	dirPath := filepath.Join(tempDir, "testdir")
	info, err := os.Stat(dirPath)
	if os.IsNotExist(err) {
		t.Error("Directory was not created")
	}
	if err == nil && !info.IsDir() {
		t.Error("Created path is not a directory")
	}

	err = CreateDir(tempDir, "testdir")
	if err == nil {
		t.Error("Expected error when creating existing directory")
	}
}

func TestRename(t *testing.T) {
	tempDir := t.TempDir()

	oldPath := filepath.Join(tempDir, "oldname.txt")
	os.WriteFile(oldPath, []byte("test content"), 0644)

	err := Rename(oldPath, "newname.txt")
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}

	newPath := filepath.Join(tempDir, "newname.txt")
	if _, err := os.Stat(newPath); os.IsNotExist(err) {
		t.Error("Renamed file does not exist")
	}
	if _, err := os.Stat(oldPath); !os.IsNotExist(err) {
		t.Error("Old file still exists after rename")
	}

	// Renaming onto an existing file must fail instead of clobbering it
	anotherFile := filepath.Join(tempDir, "another.txt")
	os.WriteFile(anotherFile, []byte("another"), 0644)
	err = Rename(newPath, "another.txt")
	if err == nil {
		t.Error("Expected error when renaming to existing file")
	}
}

func TestCountSources(t *testing.T) {
	tempDir := t.TempDir()
	os.WriteFile(filepath.Join(tempDir, "a.txt"), make([]byte, 100), 0644)
	sub := filepath.Join(tempDir, "sub")
	os.Mkdir(sub, 0755)
	os.WriteFile(filepath.Join(sub, "b.txt"), make([]byte, 50), 0644)

	files, bytes, err := CountSources([]string{tempDir})
	if err != nil {
		t.Fatalf("CountSources failed: %v", err)
	}
	if files != 2 {
		t.Errorf("files = %d, want 2", files)
	}
	if bytes != 150 {
		t.Errorf("bytes = %d, want 150", bytes)
	}

	if _, _, err := CountSources([]string{filepath.Join(tempDir, "missing")}); err == nil {
		t.Error("Expected error for a missing source")
	}
}

func TestCopyAllReportsProgress(t *testing.T) {
	tempDir := t.TempDir()
	srcDir := filepath.Join(tempDir, "src")
	os.Mkdir(srcDir, 0755)
	os.WriteFile(filepath.Join(srcDir, "file1.txt"), []byte("content1"), 0644)

	sub := filepath.Join(srcDir, "subdir")
	os.Mkdir(sub, 0755)
	os.WriteFile(filepath.Join(sub, "file2.txt"), []byte("content2"), 0644)

	dstDir := filepath.Join(tempDir, "dst")
	os.Mkdir(dstDir, 0755)

	var snapshots []Progress
	err := CopyAll([]string{srcDir}, dstDir, func(p Progress) {
		snapshots = append(snapshots, p)
	})
	if err != nil {
		t.Fatalf("CopyAll failed: %v", err)
	}

	// Both files land under dst/src
	if _, err := os.Stat(filepath.Join(dstDir, "src", "file1.txt")); os.IsNotExist(err) {
		t.Error("file1.txt was not copied")
	}
	if _, err := os.Stat(filepath.Join(dstDir, "src", "subdir", "file2.txt")); os.IsNotExist(err) {
		t.Error("subdir/file2.txt was not copied")
	}

	if len(snapshots) == 0 {
		t.Fatal("no progress was reported")
	}
	final := snapshots[len(snapshots)-1]
	if final.DoneFiles != 2 || final.TotalFiles != 2 {
		t.Errorf("final files = %d/%d, want 2/2", final.DoneFiles, final.TotalFiles)
	}
	if final.DoneBytes != 16 || final.TotalBytes != 16 {
		t.Errorf("final bytes = %d/%d, want 16/16", final.DoneBytes, final.TotalBytes)
	}

	// Progress never goes backwards
	for i := 1; i < len(snapshots); i++ {
		if snapshots[i].DoneBytes < snapshots[i-1].DoneBytes {
			t.Errorf("progress went backwards at snapshot %d", i)
		}
	}
}

func TestCopyAllPreservesContent(t *testing.T) {
	tempDir := t.TempDir()
	srcPath := filepath.Join(tempDir, "source.txt")
	content := []byte("test content")
	os.WriteFile(srcPath, content, 0644)

	dstDir := filepath.Join(tempDir, "dest")
	os.Mkdir(dstDir, 0755)

	if err := CopyAll([]string{srcPath}, dstDir, nil); err != nil {
		t.Fatalf("CopyAll failed: %v", err)
	}

	dstContent, _ := os.ReadFile(filepath.Join(dstDir, "source.txt"))
	if string(dstContent) != string(content) {
		t.Error("Copied file content doesn't match original")
	}
}

func TestMoveAll(t *testing.T) {
	tempDir := t.TempDir()
	srcPath := filepath.Join(tempDir, "moved.txt")
	os.WriteFile(srcPath, []byte("payload"), 0644)

	dstDir := filepath.Join(tempDir, "dest")
	os.Mkdir(dstDir, 0755)

	var snapshots []Progress
	err := MoveAll([]string{srcPath}, dstDir, func(p Progress) {
		snapshots = append(snapshots, p)
	})
	if err != nil {
		t.Fatalf("MoveAll failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dstDir, "moved.txt")); os.IsNotExist(err) {
		t.Error("File was not moved to destination")
	}
	if _, err := os.Stat(srcPath); !os.IsNotExist(err) {
		t.Error("Source still exists after move")
	}

	if len(snapshots) == 0 {
		t.Fatal("no progress was reported")
	}
	final := snapshots[len(snapshots)-1]
	if final.DoneFiles != 1 || final.DoneBytes != 7 {
		t.Errorf("final progress = %d files, %d bytes, want 1 file, 7 bytes", final.DoneFiles, final.DoneBytes)
	}
}

func TestCopyAllSymlink(t *testing.T) {
	tempDir := t.TempDir()
	target := filepath.Join(tempDir, "target.txt")
	os.WriteFile(target, []byte("data"), 0644)
	link := filepath.Join(tempDir, "link.txt")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	dstDir := filepath.Join(tempDir, "dest")
	os.Mkdir(dstDir, 0755)

	if err := CopyAll([]string{link}, dstDir, nil); err != nil {
		t.Fatalf("CopyAll failed: %v", err)
	}

	copied := filepath.Join(dstDir, "link.txt")
	got, err := os.Readlink(copied)
	if err != nil {
		t.Fatalf("copy is not a symlink: %v", err)
	}
	if got != target {
		t.Errorf("link target = %s, want %s", got, target)
	}
}
