package fileops

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Progress is one snapshot of a running copy/move operation
type Progress struct {
	DoneFiles  int
	TotalFiles int
	DoneBytes  int64
	TotalBytes int64
	Current    string // path currently being transferred
}

// ProgressFunc receives progress snapshots during CopyAll/MoveAll
type ProgressFunc func(Progress)

const copyChunkSize = 256 * 1024

// CountSources walks the given paths and returns the total number of
// regular files and bytes that a copy of them would transfer
func CountSources(paths []string) (files int, bytes int64, err error) {
	for _, path := range paths {
		err = filepath.Walk(path, func(_ string, info os.FileInfo, werr error) error {
			if werr != nil {
				return werr
			}
			if info.Mode().IsRegular() {
				files++
				bytes += info.Size()
			}
			return nil
		})
		if err != nil {
			return 0, 0, fmt.Errorf("cannot scan %s: %w", path, err)
		}
	}
	return files, bytes, nil
}

// CopyAll copies multiple files/directories into destDir, reporting
// progress after every chunk and completed file
func CopyAll(sources []string, destDir string, report ProgressFunc) error {
	totalFiles, totalBytes, err := CountSources(sources)
	if err != nil {
		return err
	}

	tally := Progress{TotalFiles: totalFiles, TotalBytes: totalBytes}
	for _, srcPath := range sources {
		destPath := filepath.Join(destDir, filepath.Base(srcPath))
		if err := copyPath(srcPath, destPath, &tally, report); err != nil {
			return err
		}
	}
	return nil
}

// MoveAll moves multiple files/directories into destDir. A plain rename is
// attempted first; cross-device moves fall back to copy-then-delete
func MoveAll(sources []string, destDir string, report ProgressFunc) error {
	totalFiles, totalBytes, err := CountSources(sources)
	if err != nil {
		return err
	}

	tally := Progress{TotalFiles: totalFiles, TotalBytes: totalBytes}
	for _, srcPath := range sources {
		destPath := filepath.Join(destDir, filepath.Base(srcPath))

		files, bytes, err := CountSources([]string{srcPath})
		if err != nil {
			return err
		}

		if err := os.Rename(srcPath, destPath); err == nil {
			tally.DoneFiles += files
			tally.DoneBytes += bytes
			tally.Current = destPath
			if report != nil {
				report(tally)
			}
			continue
		}

		if err := copyPath(srcPath, destPath, &tally, report); err != nil {
			return err
		}
		if err := os.RemoveAll(srcPath); err != nil {
			return fmt.Errorf("cannot remove %s after copy: %w", srcPath, err)
		}
	}
	return nil
}

// copyPath copies a file or directory tree, updating the running tally
func copyPath(src, dst string, tally *Progress, report ProgressFunc) error {
	srcInfo, err := os.Lstat(src)
	if err != nil {
		return fmt.Errorf("cannot stat %s: %w", src, err)
	}

	switch {
	case srcInfo.Mode()&os.ModeSymlink != 0:
		target, err := os.Readlink(src)
		if err != nil {
			return fmt.Errorf("cannot read link %s: %w", src, err)
		}
		return os.Symlink(target, dst)

	case srcInfo.IsDir():
		if err := os.MkdirAll(dst, srcInfo.Mode()); err != nil {
			return fmt.Errorf("cannot create directory %s: %w", dst, err)
		}
		entries, err := os.ReadDir(src)
		if err != nil {
			return fmt.Errorf("cannot read directory %s: %w", src, err)
		}
		for _, entry := range entries {
			srcEntry := filepath.Join(src, entry.Name())
			dstEntry := filepath.Join(dst, entry.Name())
			if err := copyPath(srcEntry, dstEntry, tally, report); err != nil {
				return err
			}
		}
		return nil

	default:
		return copyFile(src, dst, srcInfo.Mode(), tally, report)
	}
}

// copyFile streams a single file in chunks so progress stays current even
// for large files
func copyFile(src, dst string, mode os.FileMode, tally *Progress, report ProgressFunc) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", dst, err)
	}
	defer out.Close()

	tally.Current = src
	buf := make([]byte, copyChunkSize)
	for {
		n, rerr := in.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				return fmt.Errorf("cannot write %s: %w", dst, werr)
			}
			tally.DoneBytes += int64(n)
			if report != nil {
				report(*tally)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return fmt.Errorf("cannot read %s: %w", src, rerr)
		}
	}

	tally.DoneFiles++
	if report != nil {
		report(*tally)
	}
	return out.Close()
}

// MoveToTrash moves a file or directory to the system trash/recycle bin
func MoveToTrash(path string) error {
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf(`tell application "Finder" to delete POSIX file "%s"`, path)
		cmd := exec.Command("osascript", "-e", script)
		return cmd.Run()

	case "windows":
		cmd := exec.Command("powershell", "-Command", fmt.Sprintf(`Add-Type -AssemblyName Microsoft.VisualBasic; [Microsoft.VisualBasic.FileIO.FileSystem]::DeleteFile('%s', 'OnlyErrorDialogs', 'SendToRecycleBin')`, path))
		return cmd.Run()

	default:
		if commandExists("gio") {
			cmd := exec.Command("gio", "trash", path)
			return cmd.Run()
		}
		if commandExists("trash-put") {
			cmd := exec.Command("trash-put", path)
			return cmd.Run()
		}
		return fmt.Errorf("trash command not available (install trash-cli or gvfs)")
	}
}

// Delete deletes a file or directory (tries trash first, then permanent delete)
func Delete(path string, isDir bool) error {
	if err := MoveToTrash(path); err != nil {
		if isDir {
			return os.RemoveAll(path)
		}
		return os.Remove(path)
	}
	return nil
}

// Rename renames a file or directory in place
func Rename(oldPath, newName string) error {
	newPath := filepath.Join(filepath.Dir(oldPath), newName)
	if _, err := os.Lstat(newPath); err == nil {
		return fmt.Errorf("%s already exists", newName)
	}
	return os.Rename(oldPath, newPath)
}

// CreateFile creates a new empty file
func CreateFile(dir, name string) error {
	path := filepath.Join(dir, name)
	if _, err := os.Lstat(path); err == nil {
		return fmt.Errorf("%s already exists", name)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	return file.Close()
}

// CreateDir creates a new directory
func CreateDir(dir, name string) error {
	path := filepath.Join(dir, name)
	return os.Mkdir(path, 0755)
}

// commandExists checks if a command is available in PATH
func commandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}
